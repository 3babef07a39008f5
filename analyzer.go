// Package panicreach provides a go/analysis based analyzer that reports
// functions which can reach a failure sink such as panic, log.Fatal or
// os.Exit, pointing at the call sites responsible.
package panicreach

import (
	"errors"
	"flag"
	"go/ast"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/panicreach/internal"
	"github.com/mpyw/panicreach/internal/detect"
	"github.com/mpyw/panicreach/internal/directives/ignore"
	"github.com/mpyw/panicreach/internal/directives/silence"
	"github.com/mpyw/panicreach/internal/emit"
	"github.com/mpyw/panicreach/internal/fnindex"
	internalssa "github.com/mpyw/panicreach/internal/ssa"
)

// Flags for the analyzer.
var (
	sinks      string
	allEntries bool
	useFacts   bool
)

func init() {
	Analyzer.Flags.StringVar(&sinks, "sinks", "",
		"comma-separated list of failure sinks (e.g., panic,log.Fatal,pkg.Type.Method); defaults to panic, log.Fatal*, log.Panic* and os.Exit")
	Analyzer.Flags.BoolVar(&allEntries, "all-entries", false,
		"also report functions marked with //panicreach:silence")
	Analyzer.Flags.BoolVar(&useFacts, "facts", true,
		"treat imported functions known to reach a sink as sinks")
}

// Analyzer is the main analyzer for panicreach.
var Analyzer = &analysis.Analyzer{
	Name:      "panicreach",
	Doc:       "reports functions that can reach panic, log.Fatal, os.Exit or another failure sink",
	Requires:  []*analysis.Analyzer{internalssa.BuildSSAAnalyzer},
	Run:       run,
	Flags:     flag.FlagSet{},
	FactTypes: []analysis.Fact{(*ReachesSink)(nil)},
}

// ErrNoSSA is returned when the buildssa result is missing.
var ErrNoSSA = errors.New("buildssa analyzer result not found")

// ReachesSink marks a package-level function or method that can reach a
// failure sink. Sinks lists the underlying sinks by display name.
type ReachesSink struct {
	Sinks []string
}

// AFact implements analysis.Fact.
func (*ReachesSink) AFact() {}

func (f *ReachesSink) String() string {
	return "reaches(" + strings.Join(f.Sinks, ", ") + ")"
}

func run(pass *analysis.Pass) (any, error) {
	prog := internalssa.Build(pass)
	if prog == nil {
		return nil, ErrNoSSA
	}

	// Standard library functions only fail when named as sinks, so their
	// packages export nothing.
	if isStandard(pass) {
		return nil, nil
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build ignore maps for each file (excluding skipped files)
	ignores := buildIgnores(pass, skipFiles)

	silenced := silence.Build(pass.Fset, pass.Files, pass.TypesInfo)

	x := internalssa.NewIndexer()
	candidates := x.Candidates(localFuncs(pass, prog, skipFiles), silenced)

	sinkNames := detect.ParseSinks(sinks)
	imported := make(map[*fnindex.Node][]string)
	opts := internal.Options{
		Mode:       internal.Driver,
		Sinks:      sinkNames,
		AllEntries: allEntries,
	}
	if useFacts {
		opts.ExtraSink = func(n *fnindex.Node) bool {
			// Named sinks keep their own name.
			if slices.Contains(sinkNames, n.Name()) {
				return false
			}
			obj := x.Object(n)
			if obj == nil || obj.Pkg() == pass.Pkg {
				return false
			}
			var fact ReachesSink
			if !pass.ImportObjectFact(obj, &fact) {
				return false
			}
			imported[n] = fact.Sinks
			return true
		}
	}

	res := internal.Run(x.Index(), candidates, opts)

	if useFacts {
		exportFacts(pass, x, candidates, res, imported)
	}

	for _, d := range emit.Diagnostics(pass.Fset, res.Spots, ignores) {
		pass.Report(d)
	}

	// Report unused ignore directives
	for _, pos := range ignores.Unused() {
		pass.Reportf(pos, "unused %s directive", ignore.Directive)
	}

	return nil, nil
}

func isStandard(pass *analysis.Pass) bool {
	return len(pass.Files) > 0 && internalssa.InStd(pass.Fset.Position(pass.Files[0].Pos()).Filename)
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		if ast.IsGenerated(file) {
			skipFiles[pass.Fset.Position(file.Pos()).Filename] = true
		}
	}

	return skipFiles
}

// buildIgnores creates ignore maps for each file in the pass.
func buildIgnores(pass *analysis.Pass, skipFiles map[string]bool) emit.Ignores {
	ignores := make(emit.Ignores)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignores[filename] = ignore.Build(pass.Fset, file)
	}

	return ignores
}

// localFuncs returns the declared functions of the package outside skipped
// files.
func localFuncs(pass *analysis.Pass, prog *internalssa.Program, skipFiles map[string]bool) []*ssa.Function {
	var out []*ssa.Function
	for _, fn := range prog.TopLevel() {
		if skipFiles[pass.Fset.Position(fn.Pos()).Filename] {
			continue
		}
		out = append(out, fn)
	}
	return out
}

// exportFacts marks every local function reaching a sink, suppressed ones
// included, so dependent packages see the failure through it.
func exportFacts(
	pass *analysis.Pass,
	x *internalssa.Indexer,
	candidates []detect.Candidate,
	res *internal.Result,
	imported map[*fnindex.Node][]string,
) {
	for _, c := range candidates {
		obj := x.Object(c.Node)
		if obj == nil || !exportable(obj) {
			continue
		}

		var names []string
		for _, sink := range res.ReachedSinks(c.Node) {
			if via, ok := imported[sink]; ok {
				names = append(names, via...)
			} else {
				names = append(names, sink.Name())
			}
		}
		if len(names) == 0 {
			continue
		}
		slices.Sort(names)

		pass.ExportObjectFact(obj, &ReachesSink{Sinks: slices.Compact(names)})
	}
}

// exportable reports whether facts about fn can be seen by other packages.
func exportable(fn *types.Func) bool {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return false
	}
	if sig.Recv() == nil {
		return fn.Name() != "init" && fn.Parent() == fn.Pkg().Scope()
	}
	return true
}
