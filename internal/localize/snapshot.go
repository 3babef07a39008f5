package localize

import (
	"encoding/json"
	"fmt"
	"go/token"
	"io"
	"strings"

	"github.com/mpyw/panicreach/internal/span"
)

// SnapshotVersion is the version written by Spots.Snapshot.
const SnapshotVersion = 1

// Snapshot is the serialized form of Spots.
type Snapshot struct {
	Version int              `json:"version"`
	Records []RecordSnapshot `json:"records"`
}

// RecordSnapshot is the serialized form of a Record.
type RecordSnapshot struct {
	Caller    string            `json:"caller"`
	Decl      SpanSnapshot      `json:"decl"`
	Body      SpanSnapshot      `json:"body"`
	Witnesses []WitnessSnapshot `json:"witnesses"`
}

// WitnessSnapshot is the serialized form of a Witness.
type WitnessSnapshot struct {
	SpanSnapshot
	Callee string `json:"callee"`
	Sink   string `json:"sink"`
}

// SpanSnapshot holds raw positions and, when a FileSet was given, the
// formatted location.
type SpanSnapshot struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Location string `json:"location,omitempty"`
}

func snapSpan(s span.Span, fset *token.FileSet) SpanSnapshot {
	out := SpanSnapshot{Start: int(s.Start), End: int(s.End)}
	if fset != nil {
		out.Location = s.Format(fset)
	}
	return out
}

// Snapshot captures every record. fset may be nil.
func (s *Spots) Snapshot(fset *token.FileSet) Snapshot {
	snap := Snapshot{Version: SnapshotVersion, Records: []RecordSnapshot{}}
	for _, rec := range s.Records() {
		rs := RecordSnapshot{
			Caller: rec.Caller.Name(),
			Decl:   snapSpan(rec.Decl, fset),
			Body:   snapSpan(rec.Body, fset),
		}
		for _, w := range rec.Witnesses {
			rs.Witnesses = append(rs.Witnesses, WitnessSnapshot{
				SpanSnapshot: snapSpan(w.Span, fset),
				Callee:       w.Callee.Name(),
				Sink:         w.Sink.Name(),
			})
		}
		snap.Records = append(snap.Records, rs)
	}
	return snap
}

// Encode writes s as indented JSON.
func (s Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode panic spots snapshot: %w", err)
	}
	return nil
}

// String renders one line per witness: "caller: callee@start-end -> sink".
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "version %d\n", s.Version)
	for _, r := range s.Records {
		for _, w := range r.Witnesses {
			fmt.Fprintf(&b, "%s: %s@%d-%d -> %s\n", r.Caller, w.Callee, w.Start, w.End, w.Sink)
		}
	}
	return b.String()
}
