// Package facts covers sinks reached through imported packages.
package facts

import "facts/dep"

func badViaDep() { // want badViaDep:`reaches\(panic\)` `possible panic spot found in "facts.badViaDep"`
	dep.Must(nil)
}

func badViaMethod() { // want badViaMethod:`reaches\(log.Fatal\)` `possible panic spot found in "facts.badViaMethod"`
	var c dep.Config
	c.Load()
}

// badViaSilenced is reported: silencing Check only hides Check itself.
func badViaSilenced() { // want badViaSilenced:`reaches\(os.Exit, panic\)` `possible panic spot found in "facts.badViaSilenced"`
	dep.Check(true)
}

func goodSafe() {
	dep.Safe()
}
