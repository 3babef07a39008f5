// Package allentries covers the -all-entries flag.
package allentries

//panicreach:silence
func badSilenced() { // want `possible panic spot found in "allentries.badSilenced"`
	panic("reported anyway")
}

func badCaller() { // want `possible panic spot found in "allentries.badCaller"`
	badSilenced()
}

func goodNoSink() {}
