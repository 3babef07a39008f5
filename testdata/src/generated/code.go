// Package generated covers skipping of generated files.
package generated

func badCallsGenerated() { // want `possible panic spot found in "generated.badCallsGenerated"`
	generatedPanic()
}

func goodNoSink() {}
