package ast

import "nanoc/common"

// NumberLit represents an integer or floating-point literal, discriminated by
// the IsFloat flag.
type NumberLit struct {
	ExprBase

	IsFloat    bool
	IntValue   int64
	FloatValue float64
}

// BoolLit represents a `true` or `false` literal.  Bool literals are rewritten
// into number literals by the bool desugaring pass.
type BoolLit struct {
	ExprBase

	Value bool
}

// StringLit represents a string literal.  The value has the delimiting quotes
// trimmed off.
type StringLit struct {
	ExprBase

	Value string
}

// Identifier represents a named value.
type Identifier struct {
	ExprBase

	Name string

	// The resolved symbol of the identifier.  This is nil until scope
	// resolution runs; the reference is non-owning.
	Sym *common.Symbol
}

// -----------------------------------------------------------------------------

// IndexExpr represents an array subscript `a[i]`.
type IndexExpr struct {
	ExprBase

	Array Expr
	Index Expr
}

// UnaryOp represents a unary operator application.  The operator is one of
// `-`, `!`, `++`, `--`; the increment forms occur only at statement position
// and are desugared into assignments.
type UnaryOp struct {
	ExprBase

	Op      string
	Operand Expr
}

// BinaryOp represents a binary operator application, including assignment and
// compound assignment.
type BinaryOp struct {
	ExprBase

	Op       string
	Lhs, Rhs Expr
}

// CallExpr represents a function call.  Functions are only callable by name.
type CallExpr struct {
	ExprBase

	Callee string
	Args   []Expr

	// The resolved symbol of the callee.  This is nil until scope resolution
	// runs; the reference is non-owning.
	Sym *common.Symbol
}
