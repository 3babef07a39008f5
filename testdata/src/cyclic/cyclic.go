// Package cyclic covers recursion with and without sinks.
package cyclic

func goodPing(n int) {
	if n > 0 {
		goodPong(n - 1)
	}
}

func goodPong(n int) {
	if n > 0 {
		goodPing(n - 1)
	}
}

func goodSelf(n int) int {
	if n <= 1 {
		return 1
	}
	return n * goodSelf(n-1)
}

func badLoopA(n int) { // want `possible panic spot found in "cyclic.badLoopA"`
	if n > 0 {
		badLoopB(n - 1)
	}
}

func badLoopB(n int) { // want `possible panic spot found in "cyclic.badLoopB"`
	if n == 0 {
		panic("bottom")
	}
	badLoopA(n)
}
