// Package ssa adapts SSA functions to the function node index.
//
// # Program Building
//
// Use [Build] to obtain the SSA form of the package under analysis:
//
//	prog := ssa.Build(pass)
//	entries := prog.TopLevel()
//
// # Indexing
//
// An [Indexer] interns one node per SSA function and resolves bodies on
// demand. Generic instantiations collapse onto their origin function, and
// Panic instructions become calls to a synthetic "panic" node:
//
//	x := ssa.NewIndexer()
//	node := x.Node(fn)
//	body, ok := x.Index().Body(node)
//
// Every SSA instruction that refers to a function as an operand yields one
// op. Calls, go and defer statements, closure creation and function values
// passed as arguments are all covered. The op span is the enclosing call
// expression or function literal.
//
// Functions without blocks (declared in packages whose bodies were not
// built) resolve to no body and act as leaves.
package ssa
