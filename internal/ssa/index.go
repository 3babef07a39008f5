package ssa

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/panicreach/internal/detect"
	"github.com/mpyw/panicreach/internal/directives/silence"
	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/funcspec"
	"github.com/mpyw/panicreach/internal/span"
)

// builtinKey keys the synthetic node of a builtin function.
type builtinKey string

// PanicBuiltin is the display name of the node standing for the panic
// builtin, which SSA lowers to a Panic instruction rather than a call.
const PanicBuiltin = "panic"

// Indexer builds function nodes from SSA functions.
type Indexer struct {
	idx   *fnindex.Index
	sites map[*ssa.Function]map[token.Pos]span.Span
}

// NewIndexer creates an empty indexer.
func NewIndexer() *Indexer {
	x := &Indexer{sites: make(map[*ssa.Function]map[token.Pos]span.Span)}
	x.idx = fnindex.New(fnindex.ResolverFunc(x.resolve))
	return x
}

// Index returns the underlying function node index.
func (x *Indexer) Index() *fnindex.Index {
	return x.idx
}

// Node returns the node of fn. Generic instantiations share the node of
// their origin.
func (x *Indexer) Node(fn *ssa.Function) *fnindex.Node {
	if origin := fn.Origin(); origin != nil {
		fn = origin
	}
	return x.idx.Intern(fn, DisplayName(fn), declSpan(fn))
}

// Func returns the SSA function behind n, or nil for builtins.
func (x *Indexer) Func(n *fnindex.Node) *ssa.Function {
	fn, _ := n.Key().(*ssa.Function)
	return fn
}

// Object returns the declared function behind n, or nil.
func (x *Indexer) Object(n *fnindex.Node) *types.Func {
	fn := x.Func(n)
	if fn == nil {
		return nil
	}
	obj, _ := fn.Object().(*types.Func)
	return obj
}

// Candidates interns fns and marks those silenced by the directive.
func (x *Indexer) Candidates(fns []*ssa.Function, silenced *silence.Set) []detect.Candidate {
	out := make([]detect.Candidate, 0, len(fns))
	for _, fn := range fns {
		obj, _ := fn.Object().(*types.Func)
		out = append(out, detect.Candidate{
			Node:       x.Node(fn),
			Suppressed: silenced.Contains(obj),
		})
	}
	return out
}

func (x *Indexer) builtin(name string) *fnindex.Node {
	return x.idx.Intern(builtinKey(name), name, span.Span{})
}

// DisplayName names fn for sorting, printing and sink lookup.
// Declared functions use the funcspec form ("pkg/path.Type.Method").
func DisplayName(fn *ssa.Function) string {
	if obj, ok := fn.Object().(*types.Func); ok && fn.Parent() == nil && fn.Synthetic == "" {
		return funcspec.FromFunc(obj).String()
	}
	return fn.String()
}

// declSpan covers the function header: from the func keyword to the end of
// the signature.
func declSpan(fn *ssa.Function) span.Span {
	switch syntax := fn.Syntax().(type) {
	case *ast.FuncDecl:
		return span.New(syntax.Pos(), syntax.Type.End())
	case *ast.FuncLit:
		return span.New(syntax.Pos(), syntax.Type.End())
	}
	return span.New(fn.Pos(), fn.Pos())
}

func (x *Indexer) resolve(key any, _ *fnindex.Index) (*fnindex.Body, bool) {
	fn, ok := key.(*ssa.Function)
	if !ok || len(fn.Blocks) == 0 || Standard(fn) {
		return nil, false
	}

	body := &fnindex.Body{Span: span.Of(fn.Syntax())}
	var rands []*ssa.Value

	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			if p, ok := instr.(*ssa.Panic); ok {
				body.Ops = append(body.Ops, fnindex.Op{
					Span:   x.siteSpan(fn, p.Pos()),
					Callee: x.builtin(PanicBuiltin),
				})
				continue
			}

			rands = instr.Operands(rands[:0])
			for _, rand := range rands {
				if rand == nil {
					continue
				}
				callee, ok := (*rand).(*ssa.Function)
				if !ok {
					continue
				}
				body.Ops = append(body.Ops, fnindex.Op{
					Span:   x.siteSpan(fn, instrPos(instr)),
					Callee: x.Node(callee),
				})
			}
		}
	}

	return body, true
}

// instrPos returns the position that best identifies the source construct
// of instr.
func instrPos(instr ssa.Instruction) token.Pos {
	switch instr := instr.(type) {
	case ssa.CallInstruction:
		if pos := instr.Common().Pos(); pos.IsValid() {
			return pos
		}
	case *ssa.MakeClosure:
		if pos := instr.Pos(); pos.IsValid() {
			return pos // method value: the selector
		}
		// Function literals leave MakeClosure without a position; the
		// literal's func keyword identifies it.
		if fn, ok := instr.Fn.(*ssa.Function); ok {
			return fn.Pos()
		}
	}
	return instr.Pos()
}

// siteSpan widens pos to the call expression, function literal or method
// selector it identifies inside fn's syntax.
func (x *Indexer) siteSpan(fn *ssa.Function, pos token.Pos) span.Span {
	if !pos.IsValid() {
		return span.Span{}
	}
	if s, ok := x.sitesOf(fn)[pos]; ok {
		return s
	}
	return span.New(pos, pos+1)
}

func (x *Indexer) sitesOf(fn *ssa.Function) map[token.Pos]span.Span {
	if m, ok := x.sites[fn]; ok {
		return m
	}

	m := make(map[token.Pos]span.Span)
	if syntax := fn.Syntax(); syntax != nil {
		ast.Inspect(syntax, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.CallExpr:
				m[n.Lparen] = span.Of(n)
			case *ast.FuncLit:
				m[n.Pos()] = span.Of(n)
			case *ast.SelectorExpr:
				m[n.Sel.Pos()] = span.Of(n)
			}
			return true
		})
	}
	x.sites[fn] = m

	return m
}
