// Package detect resolves failure sinks and holds the analysis entries.
package detect

import (
	"github.com/mpyw/panicreach/internal/callgraph"
	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/funcspec"
)

// DefaultSinks are the functions whose invocation marks a failure.
var DefaultSinks = []string{
	"panic",
	"log.Fatal",
	"log.Fatalf",
	"log.Fatalln",
	"log.Panic",
	"log.Panicf",
	"log.Panicln",
	"log.Logger.Fatal",
	"log.Logger.Fatalf",
	"log.Logger.Fatalln",
	"log.Logger.Panic",
	"log.Logger.Panicf",
	"log.Logger.Panicln",
	"os.Exit",
}

// ParseSinks parses a comma-separated sink list into canonical names.
// An empty value selects DefaultSinks.
func ParseSinks(s string) []string {
	specs := funcspec.ParseList(s)
	if len(specs) == 0 {
		return DefaultSinks
	}
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.String()
	}
	return names
}

// Policy holds the resolved sinks and the entry functions of one run.
type Policy struct {
	sinks   []*fnindex.Node
	isSink  map[*fnindex.Node]bool
	entries []*fnindex.Node
}

// New resolves sinkNames against g. Names that are not part of the graph are
// skipped. extra adds nodes already known to be sinks; those outside the
// graph are skipped too. entries are kept verbatim.
func New(g *callgraph.Graph, sinkNames []string, entries []*fnindex.Node, extra ...*fnindex.Node) *Policy {
	p := &Policy{
		isSink:  make(map[*fnindex.Node]bool),
		entries: entries,
	}

	for _, name := range sinkNames {
		if n := g.Lookup(name); n != nil {
			p.addSink(n)
		}
	}
	for _, n := range extra {
		if g.Expanded(n) {
			p.addSink(n)
		}
	}

	return p
}

func (p *Policy) addSink(n *fnindex.Node) {
	if p.isSink[n] {
		return
	}
	p.isSink[n] = true
	p.sinks = append(p.sinks, n)
}

// Entries returns the entry functions as configured.
func (p *Policy) Entries() []*fnindex.Node {
	return p.entries
}

// Sinks returns the resolved sinks in resolution order.
func (p *Policy) Sinks() []*fnindex.Node {
	return p.sinks
}

// HasSinks reports whether any sink resolved.
func (p *Policy) HasSinks() bool {
	return len(p.sinks) > 0
}

// IsSink reports whether n is a resolved sink.
func (p *Policy) IsSink(n *fnindex.Node) bool {
	return p.isSink[n]
}

// Candidate is a function that may become an entry.
type Candidate struct {
	Node       *fnindex.Node
	Suppressed bool // carries the suppression marker
}

// FilterEntries drops suppressed candidates unless includeSuppressed is set.
func FilterEntries(candidates []Candidate, includeSuppressed bool) []*fnindex.Node {
	entries := make([]*fnindex.Node, 0, len(candidates))
	for _, c := range candidates {
		if c.Suppressed && !includeSuppressed {
			continue
		}
		entries = append(entries, c.Node)
	}
	return entries
}
