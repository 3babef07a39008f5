// Package fnindextest builds in-memory function indexes for tests.
package fnindextest

import (
	"go/token"

	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/span"
)

// stride is the position range reserved for each function.
const stride = 10000

// Fixture hands out functions with disjoint synthetic spans.
// Each function owns [base, base+stride): its declaration is the first 10
// bytes and its body covers the rest of the range.
type Fixture struct {
	Index  *fnindex.Index
	bodies fnindex.Bodies
	next   int
	cursor map[*fnindex.Node]token.Pos
}

// New creates an empty fixture.
func New() *Fixture {
	bodies := make(fnindex.Bodies)
	return &Fixture{
		Index:  fnindex.New(bodies),
		bodies: bodies,
		cursor: make(map[*fnindex.Node]token.Pos),
	}
}

// Func creates a function with an empty resident body.
func (f *Fixture) Func(name string) *fnindex.Node {
	return f.FuncKey(name, name)
}

// FuncKey creates a function under an explicit key, so that several
// functions may share a display name.
func (f *Fixture) FuncKey(key any, name string) *fnindex.Node {
	base := f.alloc()
	n := f.Index.Intern(key, name, span.New(base, base+10))
	f.bodies[key] = &fnindex.Body{Span: span.New(base, base+stride-1)}
	f.cursor[n] = base + 20
	return n
}

// Extern creates a function without a resident body.
func (f *Fixture) Extern(name string) *fnindex.Node {
	base := f.alloc()
	return f.Index.Intern(name, name, span.New(base, base+10))
}

// Call appends one call operation per callee to caller's body and returns
// the span of each call, in order.
func (f *Fixture) Call(caller *fnindex.Node, callees ...*fnindex.Node) []span.Span {
	body := f.bodies[caller.Key()]
	spans := make([]span.Span, 0, len(callees))
	for _, callee := range callees {
		s := f.nextSpan(caller)
		body.Ops = append(body.Ops, fnindex.Op{Span: s, Callee: callee})
		spans = append(spans, s)
	}
	return spans
}

// Op appends an arbitrary operation to caller's body.
func (f *Fixture) Op(caller *fnindex.Node, op fnindex.Op) {
	body := f.bodies[caller.Key()]
	body.Ops = append(body.Ops, op)
}

// Body returns the body span of a function created by Func.
func (f *Fixture) Body(n *fnindex.Node) span.Span {
	return f.bodies[n.Key()].Span
}

func (f *Fixture) alloc() token.Pos {
	base := token.Pos(1 + f.next*stride)
	f.next++
	return base
}

func (f *Fixture) nextSpan(caller *fnindex.Node) span.Span {
	start := f.cursor[caller]
	f.cursor[caller] = start + 10
	return span.New(start, start+5)
}
