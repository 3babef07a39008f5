// Package fnindex provides stable identities for function definitions.
package fnindex

import (
	"github.com/mpyw/panicreach/internal/span"
)

// Op is a single operation of a function body.
type Op struct {
	Span   span.Span
	Callee *Node // function referenced as a direct operand, nil if none
}

// Body is the resident body of a function.
type Body struct {
	Span span.Span
	Ops  []Op
}

// Node is a function definition. Identity is the pointer: two nodes with the
// same display name are still distinct functions.
type Node struct {
	key      any
	name     string
	decl     span.Span
	body     *Body
	resolved bool
}

// Key returns the opaque key the node was interned under.
func (n *Node) Key() any { return n.key }

// Name returns the display name. Use it for sorting and printing only.
func (n *Node) Name() string { return n.name }

// Decl returns the declaration span.
func (n *Node) Decl() span.Span { return n.decl }

func (n *Node) String() string { return n.name }

// Resolver materializes the body of the function interned under key.
// It returns false when the body is not resident (external declarations).
// Resolvers may intern callee nodes through idx.
type Resolver interface {
	Resolve(key any, idx *Index) (*Body, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(key any, idx *Index) (*Body, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(key any, idx *Index) (*Body, bool) { return f(key, idx) }

// Index owns every node of one analysis run.
type Index struct {
	nodes    map[any]*Node
	order    []*Node
	resolver Resolver
}

// New creates an empty index. A nil resolver makes every node a leaf.
func New(r Resolver) *Index {
	return &Index{
		nodes:    make(map[any]*Node),
		resolver: r,
	}
}

// Intern returns the node for key, creating it on first use.
// name and decl are ignored when the node already exists.
func (ix *Index) Intern(key any, name string, decl span.Span) *Node {
	if n, ok := ix.nodes[key]; ok {
		return n
	}
	n := &Node{key: key, name: name, decl: decl}
	ix.nodes[key] = n
	ix.order = append(ix.order, n)
	return n
}

// Get returns the node for key, or nil.
func (ix *Index) Get(key any) *Node {
	return ix.nodes[key]
}

// Nodes returns all nodes in creation order.
func (ix *Index) Nodes() []*Node {
	return ix.order
}

// Len returns the number of interned nodes.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Body returns the resident body of n, resolving it at most once.
func (ix *Index) Body(n *Node) (*Body, bool) {
	if !n.resolved {
		n.resolved = true
		if ix.resolver != nil {
			if body, ok := ix.resolver.Resolve(n.key, ix); ok {
				n.body = body
			}
		}
	}
	return n.body, n.body != nil
}

// Bodies is a Resolver backed by bodies that were built up front.
type Bodies map[any]*Body

// Resolve implements Resolver.
func (b Bodies) Resolve(key any, _ *Index) (*Body, bool) {
	body, ok := b[key]
	return body, ok && body != nil
}
