// Package emit turns localized witnesses into user-facing output.
package emit

import (
	"fmt"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/panicreach/internal/directives/ignore"
	"github.com/mpyw/panicreach/internal/localize"
)

const (
	// MessageSpot is the headline of every finding.
	MessageSpot = "possible panic spot found in %q"
	// LabelWitness annotates each witness span.
	LabelWitness = "this may panic"
	// LabelContext annotates the declaration of the reported function.
	LabelContext = "for this function"
)

// Ignores holds the ignore maps of a unit keyed by filename.
type Ignores map[string]ignore.Map

// Filter drops the witnesses of rec that an ignore directive covers.
// It returns nil when no witness remains.
func (ig Ignores) Filter(fset *token.FileSet, rec *localize.Record) *localize.Record {
	if len(ig) == 0 {
		return rec
	}

	kept := make([]localize.Witness, 0, len(rec.Witnesses))
	for _, w := range rec.Witnesses {
		pos := fset.Position(w.Span.Start)
		if m := ig[pos.Filename]; m != nil && m.ShouldIgnore(pos.Line) {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return nil
	}

	out := *rec
	out.Witnesses = kept
	return &out
}

// Unused returns the positions of directives that suppressed nothing.
func (ig Ignores) Unused() []token.Pos {
	var out []token.Pos
	for _, m := range ig {
		out = append(out, m.Unused()...)
	}
	return out
}

// Diagnostic converts one record into an analysis diagnostic positioned at
// the declaration, with one related entry per witness.
func Diagnostic(rec *localize.Record) analysis.Diagnostic {
	related := make([]analysis.RelatedInformation, len(rec.Witnesses))
	for i, w := range rec.Witnesses {
		related[i] = analysis.RelatedInformation{
			Pos:     w.Span.Start,
			End:     w.Span.End,
			Message: LabelWitness,
		}
	}

	return analysis.Diagnostic{
		Pos:     rec.Decl.Start,
		End:     rec.Decl.End,
		Message: fmt.Sprintf(MessageSpot, rec.Caller.Name()),
		Related: related,
	}
}

// Diagnostics converts every record of spots that keeps a witness after
// filtering through ig.
func Diagnostics(fset *token.FileSet, spots *localize.Spots, ig Ignores) []analysis.Diagnostic {
	var out []analysis.Diagnostic
	for _, rec := range spots.Records() {
		if rec = ig.Filter(fset, rec); rec == nil {
			continue
		}
		out = append(out, Diagnostic(rec))
	}
	return out
}
