// Package loader loads whole programs for standalone analysis.
package loader

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/mpyw/panicreach/internal/directives/ignore"
	"github.com/mpyw/panicreach/internal/directives/silence"
	"github.com/mpyw/panicreach/internal/emit"
)

// ErrNoPackages is returned when the patterns match nothing analyzable.
var ErrNoPackages = errors.New("no packages to analyze")

// Options controls package loading.
type Options struct {
	Dir      string
	Tests    bool
	Patterns []string
}

// Program is a loaded whole program with every body built.
type Program struct {
	Fset     *token.FileSet
	SSA      *ssa.Program
	Packages []*packages.Package

	// Funcs are the declared functions and methods of the initial packages.
	Funcs    []*ssa.Function
	Silenced *silence.Set
	Ignores  emit.Ignores
}

// Load loads the packages matching opts.Patterns with their dependencies
// and builds SSA for all of them.
func Load(ctx context.Context, opts Options, prog *Progress) (*Program, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	prog.Log("Loading packages %v ...", patterns)

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo |
			packages.NeedTypesSizes,
		Dir:   opts.Dir,
		Fset:  fset,
		Tests: opts.Tests,
	}

	initial, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("packages.Load: %w", err)
	}

	var errCount int
	packages.Visit(initial, nil, func(pkg *packages.Package) {
		if len(pkg.Errors) > 0 {
			errCount++
			prog.Verbose("  warning: %s has %d errors: %v", pkg.PkgPath, len(pkg.Errors), pkg.Errors[0])
		}
	})
	if errCount > 0 {
		prog.Log("  %d packages had errors (continuing)", errCount)
	}

	prog.Log("Building SSA...")
	ssaProg, ssaPkgs := ssautil.AllPackages(initial, ssa.InstantiateGenerics)
	ssaProg.Build()

	p := &Program{
		Fset:     fset,
		SSA:      ssaProg,
		Silenced: silence.Build(fset, nil, nil),
		Ignores:  make(emit.Ignores),
	}

	superseded := testVariants(initial)
	for i, sp := range ssaPkgs {
		pkg := initial[i]
		if superseded(pkg) {
			prog.Verbose("Skipping %s: covered by its test variant", pkg.ID)
			continue
		}
		if sp == nil {
			prog.Verbose("SSA build skipped package: %s", pkg.PkgPath)
			continue
		}
		p.Packages = append(p.Packages, pkg)
		p.addPackage(pkg)
	}

	if len(p.Packages) == 0 {
		return nil, fmt.Errorf("%v: %w", patterns, ErrNoPackages)
	}

	prog.Log("Loaded %d packages (%d functions)", len(p.Packages), len(p.Funcs))

	return p, nil
}

// testVariants returns a predicate for the packages that must not be
// analysed when tests are loaded: a package whose test variant ("p [p.test]")
// is also present, and the generated test main ("p.test"). Each function is
// then indexed once.
func testVariants(initial []*packages.Package) func(*packages.Package) bool {
	covered := make(map[string]bool)
	for _, pkg := range initial {
		if pkg.ForTest != "" && pkg.PkgPath == pkg.ForTest {
			covered[pkg.PkgPath] = true
		}
	}
	return func(pkg *packages.Package) bool {
		if pkg.ForTest == "" && covered[pkg.PkgPath] {
			return true
		}
		return pkg.Name == "main" && strings.HasSuffix(pkg.PkgPath, ".test")
	}
}

// addPackage records the declared functions, silence directives and ignore
// maps of one initial package. Generated files are skipped.
func (p *Program) addPackage(pkg *packages.Package) {
	var files []*ast.File
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}
		files = append(files, file)
		p.Ignores[p.Fset.Position(file.Pos()).Filename] = ignore.Build(p.Fset, file)
	}

	p.Silenced.Merge(silence.Build(p.Fset, files, pkg.TypesInfo))

	for _, file := range files {
		for _, decl := range file.Decls {
			fdecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			obj, ok := pkg.TypesInfo.Defs[fdecl.Name].(*types.Func)
			if !ok {
				continue
			}
			if fn := p.SSA.FuncValue(obj); fn != nil {
				p.Funcs = append(p.Funcs, fn)
			}
		}
	}
}
