// Package closures covers function literals, go statements and function
// values.
package closures

func badLiteral() { // want `possible panic spot found in "closures.badLiteral"`
	f := func() {
		panic("literal")
	}
	f()
}

func badCapture(msg string) { // want `possible panic spot found in "closures.badCapture"`
	f := func() {
		panic(msg)
	}
	f()
}

func badGoroutine() { // want `possible panic spot found in "closures.badGoroutine"`
	go func() {
		panic("in goroutine")
	}()
}

func badCaptureGoroutine(msg string) { // want `possible panic spot found in "closures.badCaptureGoroutine"`
	go func() {
		panic(msg)
	}()
}

func badCaptureDefer(ok bool) { // want `possible panic spot found in "closures.badCaptureDefer"`
	defer func() {
		if !ok {
			panic("deferred")
		}
	}()
}

func badCaptureCallback(code int) { // want `possible panic spot found in "closures.badCaptureCallback"`
	run(func() {
		if code != 0 {
			panic(code)
		}
	})
}

func badDefer() { // want `possible panic spot found in "closures.badDefer"`
	defer badExplode()
}

func badFuncValue() { // want `possible panic spot found in "closures.badFuncValue"`
	run(badExplode)
}

func badMethodValue(s *S) { // want `possible panic spot found in "closures.badMethodValue"`
	f := s.Explode
	f()
}

func badExplode() { // want `possible panic spot found in "closures.badExplode"`
	panic("explode")
}

type S struct{}

func (s *S) Explode() { // want `possible panic spot found in "closures.S.Explode"`
	panic("method")
}

type Exploder interface {
	Explode()
}

// goodInterface is not reported: interface calls are not edges.
func goodInterface(e Exploder) {
	e.Explode()
}

// goodDynamic is not reported: calling a parameter is not an edge.
func goodDynamic(f func()) {
	f()
}

func goodLiteral() int {
	f := func() int { return 1 }
	return f()
}

func run(f func()) {
	f()
}
