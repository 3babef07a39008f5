// Package lib is imported by namedfacts.
package lib

func Fail(msg string) { // want Fail:`reaches\(panic\)` `possible panic spot found in "namedfacts/lib.Fail"`
	panic(msg)
}
