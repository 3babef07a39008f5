// Package ignore covers the //panicreach:ignore directive.
package ignore

func badPartlyIgnored(ok bool) { // want `possible panic spot found in "ignore.badPartlyIgnored"`
	if !ok {
		panic("reported")
	}
	panic("ignored") //panicreach:ignore
}

func goodFullyIgnored() {
	//panicreach:ignore - startup invariant
	panic("ignored")
}

func goodIgnoredCall() {
	goodFullyIgnored() //panicreach:ignore
}

func goodUnused() {
	//panicreach:ignore // want `unused panicreach:ignore directive`
}
