// Package query implements the select/update dict-shaped driver (§4.6):
// a small typed AST standing in for the "expr" the external surface
// evaluator (out of scope, §1) would otherwise build and hand to the core,
// modeled on freeeve-machparse/visitor's Visitor/Walk shape (SPEC_FULL
// DOMAIN STACK).
package query

import "github.com/arrowcol/engine/core/value"

// Node is any AST node Select/Update can evaluate.
type Node interface{ node() }

// ColumnRef names a mounted table column by its symbol name.
type ColumnRef struct{ Name string }

// Literal wraps an already-constructed value — how a caller hands a
// pre-evaluated TABLE (the `from` key) or a constant into the driver.
type Literal struct{ Value *value.Value }

// Call applies a named function to evaluated arguments: an arithmetic/
// comparison operator ("+", "=", ...), an aggregator ("sum", "avg", ...),
// or an ops function ("asc", "distinct", ...).
type Call struct {
	Fn   string
	Args []Node
}

func (*ColumnRef) node() {}
func (*Literal) node()   {}
func (*Call) node()      {}

// Visitor mirrors freeeve-machparse/visitor.Visitor: Visit returns the
// Visitor to continue with for a node's children, or nil to stop.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	if c, ok := node.(*Call); ok {
		for _, a := range c.Args {
			Walk(v, a)
		}
	}
}

// Dict is the select/update keyword-dict surface (§6): "from", "where",
// "by" are reserved; every other key is a projection bound to that
// symbol's evaluated value.
type Dict struct {
	From Node
	Where Node // optional
	By    Node // optional
	// Projections preserves insertion order the way a TABLE's column
	// order must be deterministic; nil means "no explicit projections"
	// (§4.6 step 6).
	Projections []Projection
}

// Projection is one non-reserved `name: expr` dict entry.
type Projection struct {
	Name string
	Expr Node
}
