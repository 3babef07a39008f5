// Package silence covers the //panicreach:silence directive.
package silence

//panicreach:silence
func mustConfig() {
	panic("config missing")
}

// mustParse panics on bad input.
//
//panicreach:silence
func mustParse(s string) int {
	if s == "" {
		panic("empty")
	}
	return len(s)
}

type Registry struct{}

//panicreach:silence
func (Registry) MustRegister() {
	panic("duplicate")
}

// badUsesSilenced is still reported: silencing a function does not cut it
// out of the call graph.
func badUsesSilenced() { // want `possible panic spot found in "silence.badUsesSilenced"`
	mustConfig()
}

func badUsesMethod(r Registry) { // want `possible panic spot found in "silence.badUsesMethod"`
	r.MustRegister()
}

func goodNoSink() string {
	return "ok"
}
