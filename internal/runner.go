package internal

import (
	"github.com/mpyw/panicreach/internal/callgraph"
	"github.com/mpyw/panicreach/internal/detect"
	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/localize"
)

// Mode selects how the surrounding process treats a finished run.
type Mode int

const (
	// Driver runs inside a build driver (go vet, golangci-lint).
	Driver Mode = iota
	// Standalone runs as the whole process (panicgraph).
	Standalone
)

// Status tells the caller whether to continue after the analysis.
type Status int

const (
	// StatusContinue lets the surrounding build go on.
	StatusContinue Status = iota
	// StatusStop ends the process once results are emitted.
	StatusStop
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusStop:
		return "stop"
	}
	return "unknown"
}

// StatusFor returns the status a run in mode ends with.
// Findings never change it.
func StatusFor(mode Mode) Status {
	if mode == Standalone {
		return StatusStop
	}
	return StatusContinue
}

// Options configures one run.
type Options struct {
	Mode Mode

	// Sinks are display names of failure sinks. Nil selects detect.DefaultSinks.
	Sinks []string

	// AllEntries keeps suppressed candidates as entries.
	AllEntries bool

	// ExtraSink reports whether an expanded node fails by itself even though
	// Sinks does not name it, as imported functions carrying a fact do.
	ExtraSink func(n *fnindex.Node) bool
}

// Result is everything one run produces.
type Result struct {
	Status Status
	Graph  *callgraph.Graph
	Policy *detect.Policy
	Spots  *localize.Spots
}

// Run builds the call graph from every candidate, resolves the sinks,
// and localizes the witnesses of the entries.
//
// Suppressed candidates are expanded too, so the graph is the same whatever
// the entry policy; only reporting depends on it.
func Run(idx *fnindex.Index, candidates []detect.Candidate, opts Options) *Result {
	b := callgraph.NewBuilder(idx)
	for _, c := range candidates {
		b.Expand(c.Node)
	}
	g := b.Canonicalize()

	sinks := opts.Sinks
	if sinks == nil {
		sinks = detect.DefaultSinks
	}

	var extra []*fnindex.Node
	if opts.ExtraSink != nil {
		for _, n := range g.Nodes() {
			if opts.ExtraSink(n) {
				extra = append(extra, n)
			}
		}
	}

	entries := detect.FilterEntries(candidates, opts.AllEntries)
	policy := detect.New(g, sinks, entries, extra...)

	return &Result{
		Status: StatusFor(opts.Mode),
		Graph:  g,
		Policy: policy,
		Spots:  localize.Localize(idx, g, policy),
	}
}

// ReachedSinks returns the sinks n reaches, in sink order.
func (r *Result) ReachedSinks(n *fnindex.Node) []*fnindex.Node {
	var out []*fnindex.Node
	for _, sink := range r.Policy.Sinks() {
		if n == sink {
			continue
		}
		if r.Graph.Reachable(n, sink) {
			out = append(out, sink)
		}
	}
	return out
}
