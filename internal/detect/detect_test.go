package detect_test

import (
	"testing"

	"github.com/mpyw/panicreach/internal/callgraph"
	"github.com/mpyw/panicreach/internal/detect"
	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/fnindex/fnindextest"
)

func TestParseSinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty selects defaults", in: "", want: detect.DefaultSinks},
		{name: "custom", in: "os.Exit, example.com/m.Must", want: []string{"os.Exit", "example.com/m.Must"}},
		{name: "dedup", in: "panic,panic", want: []string{"panic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect.ParseSinks(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSinks(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSinks(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewResolvesPresentSinksOnly(t *testing.T) {
	f := fnindextest.New()
	main := f.Func("main")
	exit := f.Extern("os.Exit")
	f.Call(main, exit)

	g := callgraph.Build(f.Index, []*fnindex.Node{main})
	p := detect.New(g, []string{"panic", "os.Exit", "log.Fatal", "os.Exit"}, []*fnindex.Node{main})

	if got := p.Sinks(); len(got) != 1 || got[0] != exit {
		t.Fatalf("Sinks = %v, want [os.Exit]", got)
	}
	if !p.HasSinks() || !p.IsSink(exit) || p.IsSink(main) {
		t.Error("IsSink/HasSinks disagree with Sinks")
	}
	if got := p.Entries(); len(got) != 1 || got[0] != main {
		t.Errorf("Entries = %v", got)
	}
}

func TestNewMissingSinks(t *testing.T) {
	f := fnindextest.New()
	a := f.Func("A")

	g := callgraph.Build(f.Index, []*fnindex.Node{a})
	p := detect.New(g, detect.DefaultSinks, []*fnindex.Node{a})

	if p.HasSinks() {
		t.Errorf("no sink is referenced, got %v", p.Sinks())
	}
}

func TestNewExtraSinks(t *testing.T) {
	f := fnindextest.New()
	a := f.Func("A")
	dep := f.Extern("example.com/dep.Must")
	unused := f.Extern("example.com/dep.Other")
	f.Call(a, dep)

	g := callgraph.Build(f.Index, []*fnindex.Node{a})
	p := detect.New(g, nil, nil, dep, unused, dep)

	if got := p.Sinks(); len(got) != 1 || got[0] != dep {
		t.Errorf("Sinks = %v, want only the referenced extra sink", got)
	}
}

func TestFilterEntries(t *testing.T) {
	f := fnindextest.New()
	a, b := f.Func("A"), f.Func("B")
	candidates := []detect.Candidate{{Node: a, Suppressed: true}, {Node: b}}

	if got := detect.FilterEntries(candidates, false); len(got) != 1 || got[0] != b {
		t.Errorf("filtered entries = %v, want [B]", got)
	}
	if got := detect.FilterEntries(candidates, true); len(got) != 2 {
		t.Errorf("unfiltered entries = %v, want [A B]", got)
	}
}
