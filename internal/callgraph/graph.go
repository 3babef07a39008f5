package callgraph

import (
	"cmp"
	"slices"

	"github.com/mpyw/panicreach/internal/fnindex"
)

// nodeSet is an insertion-ordered set of nodes keyed by identity.
type nodeSet struct {
	list []*fnindex.Node
	has  map[*fnindex.Node]struct{}
}

func newNodeSet() *nodeSet {
	return &nodeSet{has: make(map[*fnindex.Node]struct{})}
}

func (s *nodeSet) add(n *fnindex.Node) bool {
	if _, ok := s.has[n]; ok {
		return false
	}
	s.has[n] = struct{}{}
	s.list = append(s.list, n)
	return true
}

func (s *nodeSet) contains(n *fnindex.Node) bool {
	if s == nil {
		return false
	}
	_, ok := s.has[n]
	return ok
}

func (s *nodeSet) nodes() []*fnindex.Node {
	if s == nil {
		return nil
	}
	return s.list
}

func (s *nodeSet) sort() {
	sortByName(s.list)
}

func sortByName(nodes []*fnindex.Node) {
	slices.SortStableFunc(nodes, func(a, b *fnindex.Node) int {
		return cmp.Compare(a.Name(), b.Name())
	})
}

// Graph holds forward (caller -> callees) and backward (callee -> callers)
// adjacency. A node has a forward entry iff it has been expanded.
type Graph struct {
	forward     map[*fnindex.Node]*nodeSet
	backward    map[*fnindex.Node]*nodeSet
	forwardKeys []*fnindex.Node
	backKeys    []*fnindex.Node
}

func newGraph() *Graph {
	return &Graph{
		forward:  make(map[*fnindex.Node]*nodeSet),
		backward: make(map[*fnindex.Node]*nodeSet),
	}
}

func (g *Graph) setForward(n *fnindex.Node, callees *nodeSet) {
	if _, ok := g.forward[n]; !ok {
		g.forwardKeys = append(g.forwardKeys, n)
	}
	g.forward[n] = callees
}

func (g *Graph) addBackward(callee, caller *fnindex.Node) {
	callers, ok := g.backward[callee]
	if !ok {
		callers = newNodeSet()
		g.backward[callee] = callers
		g.backKeys = append(g.backKeys, callee)
	}
	callers.add(caller)
}

// Expanded reports whether n has a forward entry.
func (g *Graph) Expanded(n *fnindex.Node) bool {
	_, ok := g.forward[n]
	return ok
}

// Nodes returns every expanded node.
func (g *Graph) Nodes() []*fnindex.Node {
	return g.forwardKeys
}

// Callees returns the distinct direct callees of n.
func (g *Graph) Callees(n *fnindex.Node) []*fnindex.Node {
	return g.forward[n].nodes()
}

// Callers returns the distinct direct callers of n.
func (g *Graph) Callers(n *fnindex.Node) []*fnindex.Node {
	return g.backward[n].nodes()
}

// HasEdge reports whether caller references callee directly.
func (g *Graph) HasEdge(caller, callee *fnindex.Node) bool {
	return g.forward[caller].contains(callee)
}

// CalledNodes returns every node with at least one recorded caller.
func (g *Graph) CalledNodes() []*fnindex.Node {
	return g.backKeys
}

// Len returns the number of expanded nodes.
func (g *Graph) Len() int {
	return len(g.forwardKeys)
}

// Lookup returns the first expanded node whose display name is name.
// The scan is linear; one unit's function count keeps it cheap.
func (g *Graph) Lookup(name string) *fnindex.Node {
	for _, n := range g.forwardKeys {
		if n.Name() == name {
			return n
		}
	}
	return nil
}

func (g *Graph) canonicalize() {
	sortByName(g.forwardKeys)
	sortByName(g.backKeys)
	for _, s := range g.forward {
		s.sort()
	}
	for _, s := range g.backward {
		s.sort()
	}
}
