// Package span provides half-open source ranges over a single token.FileSet.
package span

import (
	"fmt"
	"go/ast"
	"go/token"
)

// Span is a half-open range [Start, End) of source positions.
// All spans compared with each other must come from the same FileSet.
type Span struct {
	Start token.Pos
	End   token.Pos
}

// Of returns the span covered by an AST node.
func Of(n ast.Node) Span {
	if n == nil {
		return Span{}
	}
	return Span{Start: n.Pos(), End: n.End()}
}

// New returns the span [start, end).
func New(start, end token.Pos) Span {
	return Span{Start: start, End: end}
}

// Valid reports whether both ends are known and ordered.
func (s Span) Valid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start <= s.End
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	if !s.Valid() {
		return 0
	}
	return int(s.End - s.Start)
}

// Contains reports whether other lies within s (bounds inclusive).
// Invalid spans contain nothing and are contained by nothing.
func (s Span) Contains(other Span) bool {
	if !s.Valid() || !other.Valid() {
		return false
	}
	return s.Start <= other.Start && other.End <= s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if !other.Valid() {
		return s
	}
	if !s.Valid() {
		return other
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Offset returns the byte range of s relative to the start of base.
// ok is false when s does not lie within base.
func (s Span) Offset(base Span) (lo, hi int, ok bool) {
	if !base.Contains(s) {
		return 0, 0, false
	}
	return int(s.Start - base.Start), int(s.End - base.Start), true
}

// Less orders spans by start, then by end.
func (s Span) Less(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Format renders s as file:line:col-line:col using fset.
func (s Span) Format(fset *token.FileSet) string {
	if fset == nil || !s.Valid() {
		return s.String()
	}
	start := fset.Position(s.Start)
	end := fset.Position(s.End)
	return fmt.Sprintf("%s:%d:%d-%d:%d", start.Filename, start.Line, start.Column, end.Line, end.Column)
}
