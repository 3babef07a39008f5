// Package indirect covers sinks reached through other functions.
package indirect

import "os"

func badLeaf() { // want `possible panic spot found in "indirect.badLeaf"`
	panic("leaf")
}

func badMiddle() { // want `possible panic spot found in "indirect.badMiddle"`
	badLeaf()
}

func badTop() { // want `possible panic spot found in "indirect.badTop"`
	goodHelper()
	badMiddle()
}

// badBoth reaches two sinks through two different callees.
func badBoth() { // want `possible panic spot found in "indirect.badBoth"`
	badLeaf()
	exit()
}

func exit() { // want `possible panic spot found in "indirect.exit"`
	os.Exit(2)
}

func goodHelper() int {
	return 42
}

func goodCallsHelper() int {
	return goodHelper() + goodHelper()
}
