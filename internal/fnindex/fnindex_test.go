package fnindex

import (
	"testing"

	"github.com/mpyw/panicreach/internal/span"
)

func TestInternIsIdempotent(t *testing.T) {
	ix := New(nil)

	a := ix.Intern("k", "A", span.New(1, 2))
	b := ix.Intern("k", "other", span.New(3, 4))

	if a != b {
		t.Fatal("Intern with the same key must return the same node")
	}
	if a.Name() != "A" || a.Decl() != span.New(1, 2) {
		t.Errorf("second Intern must not overwrite: got %s %v", a.Name(), a.Decl())
	}
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}
}

func TestSameNameDistinctIdentity(t *testing.T) {
	ix := New(nil)

	a := ix.Intern(1, "F", span.Span{})
	b := ix.Intern(2, "F", span.Span{})

	if a == b {
		t.Fatal("nodes with different keys must be distinct even with equal names")
	}
	if got := ix.Nodes(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Nodes should keep creation order, got %v", got)
	}
}

func TestBodyResolvedOnce(t *testing.T) {
	calls := 0
	ix := New(ResolverFunc(func(key any, idx *Index) (*Body, bool) {
		calls++
		if key == "leaf" {
			return nil, false
		}
		callee := idx.Intern("leaf", "leaf", span.Span{})
		return &Body{Span: span.New(1, 100), Ops: []Op{{Span: span.New(5, 6), Callee: callee}}}, true
	}))

	root := ix.Intern("root", "root", span.New(1, 3))
	for range 3 {
		body, ok := ix.Body(root)
		if !ok || len(body.Ops) != 1 {
			t.Fatalf("Body(root) = %v, %v", body, ok)
		}
	}
	if calls != 1 {
		t.Errorf("resolver called %d times, want 1", calls)
	}

	leaf := ix.Get("leaf")
	if leaf == nil {
		t.Fatal("resolver should have interned the callee")
	}
	if _, ok := ix.Body(leaf); ok {
		t.Error("leaf has no resident body")
	}
}

func TestNilResolverMakesLeaves(t *testing.T) {
	ix := New(nil)
	n := ix.Intern("x", "x", span.Span{})
	if _, ok := ix.Body(n); ok {
		t.Error("nil resolver should yield no body")
	}
}

func TestBodiesResolver(t *testing.T) {
	bodies := Bodies{"a": {Span: span.New(1, 9)}, "nil": nil}
	ix := New(bodies)

	if _, ok := ix.Body(ix.Intern("a", "a", span.Span{})); !ok {
		t.Error("a should resolve")
	}
	if _, ok := ix.Body(ix.Intern("nil", "nil", span.Span{})); ok {
		t.Error("nil body should not resolve")
	}
	if _, ok := ix.Body(ix.Intern("missing", "missing", span.Span{})); ok {
		t.Error("missing body should not resolve")
	}
}
