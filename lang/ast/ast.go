// Package ast defines the abstract syntax tree produced by lang/parser and
// consumed by lang/resolver and lang/interpreter: the tree-walking half of
// the pipeline, as opposed to the single-pass lang/compiler that emits
// bytecode directly without building a tree.
package ast

// Node is implemented by every AST node.
type Node interface {
	// Line returns the source line the node starts on, for error reporting.
	Line() int

	// Walk enters each child node, to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmt()
}
