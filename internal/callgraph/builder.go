package callgraph

import (
	"github.com/mpyw/panicreach/internal/fnindex"
)

// Builder expands function nodes into a Graph.
// A Builder is not safe for concurrent use.
type Builder struct {
	idx       *fnindex.Index
	graph     *Graph
	expanding map[*fnindex.Node]struct{}
	done      bool
}

// NewBuilder creates a builder resolving bodies through idx.
func NewBuilder(idx *fnindex.Index) *Builder {
	return &Builder{
		idx:       idx,
		graph:     newGraph(),
		expanding: make(map[*fnindex.Node]struct{}),
	}
}

// Expand records the callees of n and of everything n reaches.
func (b *Builder) Expand(n *fnindex.Node) {
	if b.done {
		panic("callgraph: Expand after Canonicalize")
	}
	b.expand(n)
}

func (b *Builder) expand(n *fnindex.Node) {
	if b.graph.Expanded(n) {
		return
	}
	if _, busy := b.expanding[n]; busy {
		return
	}
	b.expanding[n] = struct{}{}
	defer delete(b.expanding, n)

	callees := b.callees(n)
	for _, callee := range callees.list {
		b.graph.addBackward(callee, n)
	}

	// Until its callees are done, n is only guarded by the in-progress
	// marker, so a cycle back to n stops there.
	for _, callee := range callees.list {
		b.expand(callee)
	}
	b.graph.setForward(n, callees)
}

// callees collects the distinct functions referenced by n's body.
func (b *Builder) callees(n *fnindex.Node) *nodeSet {
	set := newNodeSet()
	body, ok := b.idx.Body(n)
	if !ok {
		return set
	}
	for _, op := range body.Ops {
		if op.Callee != nil {
			set.add(op.Callee)
		}
	}
	return set
}

// Canonicalize orders every map and adjacency set by display name and
// returns the finished graph. No further Expand calls are allowed.
func (b *Builder) Canonicalize() *Graph {
	if !b.done {
		b.graph.canonicalize()
		b.done = true
	}
	return b.graph
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Build expands every entry and canonicalizes the result.
func Build(idx *fnindex.Index, entries []*fnindex.Node) *Graph {
	b := NewBuilder(idx)
	for _, e := range entries {
		b.Expand(e)
	}
	return b.Canonicalize()
}
