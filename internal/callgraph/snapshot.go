package callgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mpyw/panicreach/internal/fnindex"
)

// SnapshotVersion is the version written by Graph.Snapshot.
const SnapshotVersion = 1

// Snapshot is the serialized form of a Graph.
type Snapshot struct {
	Version  int         `json:"version"`
	Forward  []Adjacency `json:"forward"`
	Backward []Adjacency `json:"backward"`
}

// Adjacency lists the neighbours of one node by display name.
type Adjacency struct {
	Node  string   `json:"node"`
	Edges []string `json:"edges"`
}

// Snapshot captures both adjacency maps in the graph's current order.
// Call it after Canonicalize for a deterministic result.
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{Version: SnapshotVersion}
	for _, n := range g.forwardKeys {
		s.Forward = append(s.Forward, adjacency(n, g.forward[n].nodes()))
	}
	for _, n := range g.backKeys {
		s.Backward = append(s.Backward, adjacency(n, g.backward[n].nodes()))
	}
	return s
}

func adjacency(n *fnindex.Node, edges []*fnindex.Node) Adjacency {
	a := Adjacency{Node: n.Name(), Edges: make([]string, len(edges))}
	for i, e := range edges {
		a.Edges[i] = e.Name()
	}
	return a
}

// Encode writes s as indented JSON.
func (s Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode call graph snapshot: %w", err)
	}
	return nil
}

// String renders s one adjacency per line:
//
//	forward:
//	  A -> B, C
//	backward:
//	  B <- A
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "version %d\nforward:\n", s.Version)
	for _, a := range s.Forward {
		fmt.Fprintf(&b, "  %s -> %s\n", a.Node, strings.Join(a.Edges, ", "))
	}
	b.WriteString("backward:\n")
	for _, a := range s.Backward {
		fmt.Fprintf(&b, "  %s <- %s\n", a.Node, strings.Join(a.Edges, ", "))
	}
	return b.String()
}
