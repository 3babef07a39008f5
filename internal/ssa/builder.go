// Package ssa adapts SSA programs to the function node index.
package ssa

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"
)

// BuildSSAAnalyzer is the buildssa analyzer that must be in Requires.
var BuildSSAAnalyzer = buildssa.Analyzer

// Program wraps an SSA program with the analyzed package.
type Program struct {
	*ssa.Program
	Pkg      *ssa.Package
	SrcFuncs []*ssa.Function
}

// Build creates an SSA program from the analysis pass.
// This requires buildssa.Analyzer to be in the pass's Requires.
func Build(pass *analysis.Pass) *Program {
	ssaResult, ok := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	if !ok || ssaResult == nil {
		return nil
	}

	return &Program{
		Program:  ssaResult.Pkg.Prog,
		Pkg:      ssaResult.Pkg,
		SrcFuncs: ssaResult.SrcFuncs,
	}
}

// TopLevel returns the declared functions and methods of the package,
// excluding anonymous and synthetic functions.
func (p *Program) TopLevel() []*ssa.Function {
	return TopLevel(p.SrcFuncs)
}

// TopLevel filters fns down to declared functions and methods.
func TopLevel(fns []*ssa.Function) []*ssa.Function {
	var out []*ssa.Function
	for _, fn := range fns {
		if fn.Parent() != nil || fn.Synthetic != "" {
			continue
		}
		out = append(out, fn)
	}
	return out
}
