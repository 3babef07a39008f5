package callgraph

import (
	"strings"

	"github.com/mpyw/panicreach/internal/fnindex"
)

// Path is a non-empty sequence of nodes joined by forward edges.
type Path []*fnindex.Node

func (p Path) String() string {
	names := make([]string, len(p))
	for i, n := range p {
		names[i] = n.Name()
	}
	return strings.Join(names, " -> ")
}

// Reachable reports whether a forward walk from start reaches stop.
// start itself only counts when it is reached again through an edge.
func (g *Graph) Reachable(start, stop *fnindex.Node) bool {
	visited := make(map[*fnindex.Node]struct{})
	stack := append([]*fnindex.Node(nil), g.Callees(start)...)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n == stop {
			return true
		}
		if _, seen := visited[n]; seen {
			continue
		}
		visited[n] = struct{}{}
		stack = append(stack, g.Callees(n)...)
	}

	return false
}

// Ancestors returns every node with a forward walk of at least one edge
// to n.
func (g *Graph) Ancestors(n *fnindex.Node) map[*fnindex.Node]struct{} {
	seen := make(map[*fnindex.Node]struct{})
	stack := append([]*fnindex.Node(nil), g.Callers(n)...)

	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		stack = append(stack, g.Callers(m)...)
	}

	return seen
}

// CallPaths returns every walk from start to stop along forward edges.
// A walk ends as soon as it reaches stop. Nodes already on the current walk
// are not entered again.
//
// The number of walks can grow exponentially with the graph; use
// CallPathsN to bound it.
func (g *Graph) CallPaths(start, stop *fnindex.Node) []Path {
	return g.CallPathsN(start, stop, 0)
}

// CallPathsN is CallPaths returning at most limit walks.
// A limit of zero or less means no limit.
func (g *Graph) CallPathsN(start, stop *fnindex.Node, limit int) []Path {
	w := newWalker(g.Callees, start, limit)
	w.within = g.Ancestors(stop)
	w.forward(start, stop)
	return w.found
}

// Backtrace returns every walk from a root to sink, root first. A root is
// a node without recorded callers. Branches that only lead back into the
// current walk are dropped.
func (g *Graph) Backtrace(sink *fnindex.Node) []Path {
	return g.BacktraceN(sink, 0)
}

// BacktraceN is Backtrace returning at most limit walks.
// A limit of zero or less means no limit.
func (g *Graph) BacktraceN(sink *fnindex.Node, limit int) []Path {
	w := newWalker(g.Callers, sink, limit)
	w.backward(sink)
	return w.found
}

type walker struct {
	next   func(*fnindex.Node) []*fnindex.Node
	onPath map[*fnindex.Node]struct{}
	path   Path
	found  []Path
	limit  int

	// within restricts forward walks to nodes that can still reach stop.
	within map[*fnindex.Node]struct{}
}

func newWalker(next func(*fnindex.Node) []*fnindex.Node, from *fnindex.Node, limit int) *walker {
	return &walker{
		next:   next,
		onPath: map[*fnindex.Node]struct{}{from: {}},
		path:   Path{from},
		limit:  limit,
	}
}

func (w *walker) full() bool {
	return w.limit > 0 && len(w.found) >= w.limit
}

func (w *walker) record(p Path) {
	w.found = append(w.found, append(Path(nil), p...))
}

func (w *walker) forward(cur, stop *fnindex.Node) {
	for _, n := range w.next(cur) {
		if w.full() {
			return
		}
		if n == stop {
			w.record(append(w.path, n))
			continue
		}
		if _, ok := w.within[n]; !ok {
			continue
		}
		if !w.push(n) {
			continue
		}
		w.forward(n, stop)
		w.pop()
	}
}

func (w *walker) backward(cur *fnindex.Node) {
	callers := w.next(cur)
	if len(callers) == 0 {
		rev := make(Path, len(w.path))
		for i, n := range w.path {
			rev[len(w.path)-1-i] = n
		}
		w.found = append(w.found, rev)
		return
	}
	for _, n := range callers {
		if w.full() {
			return
		}
		if !w.push(n) {
			continue
		}
		w.backward(n)
		w.pop()
	}
}

func (w *walker) push(n *fnindex.Node) bool {
	if _, ok := w.onPath[n]; ok {
		return false
	}
	w.onPath[n] = struct{}{}
	w.path = append(w.path, n)
	return true
}

func (w *walker) pop() {
	last := w.path[len(w.path)-1]
	w.path = w.path[:len(w.path)-1]
	delete(w.onPath, last)
}
