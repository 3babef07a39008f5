// Package callgraph builds a whole-program call graph over function nodes
// and answers reachability and path queries on it.
//
// # Construction
//
// A [Builder] expands function nodes depth-first. Expanding a node scans its
// resident body for operations that reference a function directly and
// records one edge per distinct callee:
//
//	b := callgraph.NewBuilder(idx)
//	for _, entry := range entries {
//	    b.Expand(entry)
//	}
//	g := b.Canonicalize()
//
// Nodes without a resident body become leaves. Expansion is memoized; a
// node that is already expanded, or currently being expanded, is skipped.
//
// # Queries
//
// Once canonicalized, the [Graph] is read-only:
//
//	g.Reachable(a, sink)  // any forward walk from a hits sink
//	g.CallPaths(a, sink)  // every walk from a to sink
//	g.Backtrace(sink)     // every walk from a root to sink
//
// Walks never revisit a node already on the current path, so cyclic graphs
// terminate.
//
// # Snapshots
//
// [Graph.Snapshot] produces a versioned, name-ordered form of both adjacency
// maps for printing and for comparing graphs in tests.
package callgraph
