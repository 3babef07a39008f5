// Package funcspec provides function specification parsing and display names.
package funcspec

import (
	"go/types"
	"strings"
	"unicode"
)

// Spec holds parsed components of a function specification.
// Format: "pkg/path.Func", "pkg/path.Type.Method" or a bare builtin name.
type Spec struct {
	PkgPath  string
	TypeName string // empty for package-level functions
	FuncName string
}

// Parse parses a single function specification string into components.
// Format: "pkg/path.Func" or "pkg/path.Type.Method".
func Parse(s string) Spec {
	s = strings.TrimSpace(s)
	spec := Spec{}

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		spec.FuncName = s

		return spec
	}

	spec.FuncName = s[lastDot+1:]
	prefix := s[:lastDot]

	// Check if there's another dot (indicating Type.Method)
	// Type names start with uppercase in Go.
	secondLastDot := strings.LastIndex(prefix, ".")
	if secondLastDot != -1 && secondLastDot > strings.LastIndex(prefix, "/") {
		possibleType := prefix[secondLastDot+1:]
		if len(possibleType) > 0 && unicode.IsUpper(rune(possibleType[0])) {
			spec.TypeName = possibleType
			spec.PkgPath = prefix[:secondLastDot]

			return spec
		}
	}

	spec.PkgPath = prefix

	return spec
}

// FromFunc builds the Spec naming fn.
func FromFunc(fn *types.Func) Spec {
	spec := Spec{FuncName: fn.Name()}
	if pkg := fn.Pkg(); pkg != nil {
		spec.PkgPath = pkg.Path()
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return spec
	}

	recvType := sig.Recv().Type()
	// Handle pointer receivers
	if ptr, ok := recvType.(*types.Pointer); ok {
		recvType = ptr.Elem()
	}

	switch t := recvType.(type) {
	case *types.Named:
		spec.TypeName = t.Obj().Name()
	case *types.Alias:
		spec.TypeName = t.Obj().Name()
	}

	return spec
}

// String returns the canonical form accepted by Parse.
func (s Spec) String() string {
	var b strings.Builder
	if s.PkgPath != "" {
		b.WriteString(s.PkgPath)
		b.WriteByte('.')
	}
	if s.TypeName != "" {
		b.WriteString(s.TypeName)
		b.WriteByte('.')
	}
	b.WriteString(s.FuncName)
	return b.String()
}

// Matches checks if a types.Func matches this specification.
func (s Spec) Matches(fn *types.Func) bool {
	if fn == nil {
		return false
	}
	return FromFunc(fn) == s
}

// ParseList parses a comma-separated list of specifications,
// skipping empty entries and duplicates.
func ParseList(s string) []Spec {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var specs []Spec
	seen := make(map[Spec]bool)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		spec := Parse(part)
		if seen[spec] {
			continue
		}
		seen[spec] = true
		specs = append(specs, spec)
	}

	return specs
}
