// Package customsinks covers the -sinks flag.
package customsinks

import "os"

func fail(msg string) {
	println(msg)
}

func badCallsFail() { // want `possible panic spot found in "customsinks.badCallsFail"`
	fail("x")
}

func badExit() { // want `possible panic spot found in "customsinks.badExit"`
	os.Exit(1)
}

// goodPanics is not reported: panic is not a configured sink.
func goodPanics() {
	panic("not a sink here")
}
