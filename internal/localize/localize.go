// Package localize finds the call sites that let an entry reach a sink.
package localize

import (
	"slices"

	"github.com/mpyw/panicreach/internal/callgraph"
	"github.com/mpyw/panicreach/internal/detect"
	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/span"
)

// Witness is a source span inside a caller's body that leads to a sink.
type Witness struct {
	Span   span.Span
	Callee *fnindex.Node // function referenced at Span
	Sink   *fnindex.Node // sink reached through Callee
}

// Record collects the witnesses of one caller.
type Record struct {
	Caller    *fnindex.Node
	Decl      span.Span
	Body      span.Span
	Witnesses []Witness
}

// Spots maps callers to their records in insertion order.
type Spots struct {
	records map[*fnindex.Node]*Record
	order   []*fnindex.Node
}

// NewSpots returns an empty Spots.
func NewSpots() *Spots {
	return &Spots{records: make(map[*fnindex.Node]*Record)}
}

// Add merges witnesses into the record of caller. Witnesses whose span equals
// the caller's declaration or body span are dropped, as are spans already
// recorded for caller. Nothing is stored when no witness survives.
func (s *Spots) Add(caller *fnindex.Node, body span.Span, witnesses []Witness) {
	decl := caller.Decl()
	rec := s.records[caller]

	for _, w := range witnesses {
		if w.Span == decl || w.Span == body {
			continue
		}
		if rec == nil {
			rec = &Record{Caller: caller, Decl: decl, Body: body}
			s.records[caller] = rec
			s.order = append(s.order, caller)
		}
		if slices.ContainsFunc(rec.Witnesses, func(o Witness) bool { return o.Span == w.Span }) {
			continue
		}
		rec.Witnesses = append(rec.Witnesses, w)
	}

	if rec != nil {
		slices.SortStableFunc(rec.Witnesses, func(a, b Witness) int {
			switch {
			case a.Span.Less(b.Span):
				return -1
			case b.Span.Less(a.Span):
				return 1
			}
			return 0
		})
	}
}

// Records returns every record in insertion order.
func (s *Spots) Records() []*Record {
	out := make([]*Record, len(s.order))
	for i, caller := range s.order {
		out[i] = s.records[caller]
	}
	return out
}

// Get returns the record for caller, or nil.
func (s *Spots) Get(caller *fnindex.Node) *Record {
	return s.records[caller]
}

// Len returns the number of records.
func (s *Spots) Len() int {
	return len(s.order)
}

// Empty reports whether no caller has a witness.
func (s *Spots) Empty() bool {
	return len(s.order) == 0
}

// Localize produces the witnesses of every (entry, sink) pair of p.
// g must be complete and canonicalized.
//
// A body operation witnesses a pair when its callee lies on one of the
// walks g.CallPaths(entry, sink) returns. The walks are not enumerated: a
// callee lies on one exactly when it is the entry or the sink, or when it
// reaches the sink without passing through the entry.
func Localize(idx *fnindex.Index, g *callgraph.Graph, p *detect.Policy) *Spots {
	spots := NewSpots()
	if !p.HasSinks() {
		return spots
	}

	ancestors := make(map[*fnindex.Node]map[*fnindex.Node]struct{}, len(p.Sinks()))
	for _, sink := range p.Sinks() {
		ancestors[sink] = g.Ancestors(sink)
	}

	for _, entry := range p.Entries() {
		body, ok := idx.Body(entry)
		if !ok {
			continue
		}
		for _, sink := range p.Sinks() {
			reaching := ancestors[sink]
			if _, ok := reaching[entry]; !ok {
				continue
			}
			q := &query{g: g, entry: entry, sink: sink, reaching: reaching, memo: make(map[*fnindex.Node]bool)}
			spots.Add(entry, body.Span, witnesses(body, sink, q.onPath))
		}
	}

	return spots
}

// query answers path membership for one (entry, sink) pair.
type query struct {
	g        *callgraph.Graph
	entry    *fnindex.Node
	sink     *fnindex.Node
	reaching map[*fnindex.Node]struct{}
	memo     map[*fnindex.Node]bool
}

// onPath reports whether n lies on a walk from the entry to the sink.
func (q *query) onPath(n *fnindex.Node) bool {
	if n == q.entry || n == q.sink {
		return true
	}
	if _, ok := q.reaching[n]; !ok {
		return false
	}
	if v, ok := q.memo[n]; ok {
		return v
	}
	v := q.avoidsEntry(n)
	q.memo[n] = v
	return v
}

// avoidsEntry searches for a walk from start to the sink that does not pass
// through the entry, staying among nodes that reach the sink.
func (q *query) avoidsEntry(start *fnindex.Node) bool {
	visited := map[*fnindex.Node]struct{}{q.entry: {}, start: {}}
	stack := []*fnindex.Node{start}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, m := range q.g.Callees(n) {
			if m == q.sink {
				return true
			}
			if _, ok := q.reaching[m]; !ok {
				continue
			}
			if _, ok := visited[m]; ok {
				continue
			}
			visited[m] = struct{}{}
			stack = append(stack, m)
		}
	}

	return false
}

// witnesses walks body once and keeps the operations whose callee satisfies
// onPath and which lie inside the body. Results are grouped by callee in
// first reference order.
func witnesses(body *fnindex.Body, sink *fnindex.Node, onPath func(*fnindex.Node) bool) []Witness {
	byCallee := make(map[*fnindex.Node][]Witness)
	var callees []*fnindex.Node

	for _, op := range body.Ops {
		if op.Callee == nil {
			continue
		}
		if !onPath(op.Callee) {
			continue
		}
		if !body.Span.Contains(op.Span) {
			continue
		}
		if _, seen := byCallee[op.Callee]; !seen {
			callees = append(callees, op.Callee)
		}
		byCallee[op.Callee] = append(byCallee[op.Callee], Witness{Span: op.Span, Callee: op.Callee, Sink: sink})
	}

	var out []Witness
	for _, c := range callees {
		out = append(out, byCallee[c]...)
	}
	return out
}
