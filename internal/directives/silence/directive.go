// Package silence handles //panicreach:silence directives.
//
// A function whose doc comment (or the line right above its declaration)
// carries the directive is not treated as an analysis entry. It stays in
// the call graph, so its callers are still reported.
package silence

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"
)

// Directive is the comment prefix recognized by this package.
const Directive = "panicreach:silence"

// Set holds the functions marked with the directive.
type Set struct {
	funcs map[*types.Func]struct{}
}

// Contains reports whether fn is marked.
func (s *Set) Contains(fn *types.Func) bool {
	if s == nil || fn == nil {
		return false
	}
	_, ok := s.funcs[fn.Origin()]
	return ok
}

// Len returns the number of marked functions.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.funcs)
}

// Merge adds the functions marked in other.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for fn := range other.funcs {
		s.funcs[fn] = struct{}{}
	}
}

// Build scans files for function declarations marked with the directive.
func Build(fset *token.FileSet, files []*ast.File, info *types.Info) *Set {
	s := &Set{funcs: make(map[*types.Func]struct{})}

	for _, file := range files {
		buildForFile(fset, file, info, s.funcs)
	}

	return s
}

// buildForFile scans a single file for silence directives.
func buildForFile(fset *token.FileSet, file *ast.File, info *types.Info, m map[*types.Func]struct{}) {
	// Build a set of directive lines for quick lookup
	lines := make(map[int]bool)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if IsDirective(c.Text) {
				lines[fset.Position(c.Pos()).Line] = true
			}
		}
	}

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		if !hasDirective(funcDecl, fset, lines) {
			continue
		}

		// Get the types.Func for this declaration
		fn, ok := info.Defs[funcDecl.Name].(*types.Func)
		if !ok {
			continue
		}

		m[fn] = struct{}{}
	}
}

func hasDirective(decl *ast.FuncDecl, fset *token.FileSet, lines map[int]bool) bool {
	if decl.Doc != nil {
		for _, c := range decl.Doc.List {
			if IsDirective(c.Text) {
				return true
			}
		}
	}

	return lines[fset.Position(decl.Pos()).Line-1]
}

// IsDirective checks if a comment is a silence directive.
func IsDirective(text string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, Directive) {
		return false
	}

	rest := strings.TrimPrefix(text, Directive)
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}
