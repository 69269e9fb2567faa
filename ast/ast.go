package ast

import (
	"nanoc/report"
	"nanoc/types"
)

// Node is the abstract interface for all AST nodes.
type Node interface {
	// The text span of the source text the node was produced from.  Nodes
	// synthesized by a desugaring pass inherit the span of the nearest real
	// ancestor so diagnostics always refer to an original source position.
	Span() *report.TextSpan
}

// -----------------------------------------------------------------------------

// Expr represents an expression, simple or complex.  All expression nodes
// implement the `Expr` interface.
type Expr interface {
	Node

	// Type is the yielded type of the expression.  It is the Unknown
	// placeholder until the type checker runs.
	Type() types.Type

	// SetType sets the type of the expression.
	SetType(types.Type)
}

// ExprBase is the base struct embedded in all expression nodes.
type ExprBase struct {
	span *report.TextSpan
	typ  types.Type
}

// NewExprBase creates a new expression base with the given span and the
// Unknown placeholder type.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{span: span, typ: types.Unknown}
}

func (eb *ExprBase) Span() *report.TextSpan {
	return eb.span
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

// -----------------------------------------------------------------------------

// Stmt represents a statement.  All statement nodes implement the `Stmt`
// interface.
type Stmt interface {
	Node
}

// StmtBase is the base struct embedded in all statement nodes.
type StmtBase struct {
	span *report.TextSpan
}

// NewStmtBase creates a new statement base with the given span.
func NewStmtBase(span *report.TextSpan) StmtBase {
	return StmtBase{span: span}
}

func (sb *StmtBase) Span() *report.TextSpan {
	return sb.span
}

// -----------------------------------------------------------------------------

// Program is the root of the AST: the list of top-level function
// declarations of a single source file.
type Program struct {
	// The path of the source file the program was parsed from.
	Path string

	// The top-level function declarations in source order.
	Funcs []*FuncDecl
}
