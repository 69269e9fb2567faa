package desugar

import (
	"nanoc/ast"
	"nanoc/report"
)

// IncDecPass rewrites statement-position `++v` and `--v` into `v = v + 1` and
// `v = v - 1`.  The parser rejects increments inside larger expressions, so
// only expression statements need rewriting here.
type IncDecPass struct{}

func (p *IncDecPass) Name() string {
	return "inc-dec"
}

func (p *IncDecPass) Transform(prog *ast.Program) *ast.Program {
	for _, fn := range prog.Funcs {
		fn.Body = p.transformStmt(fn.Body).(*ast.Block)
	}

	return prog
}

func (p *IncDecPass) transformStmt(stmt ast.Stmt) ast.Stmt {
	switch v := stmt.(type) {
	case *ast.Block:
		for i, s := range v.Stmts {
			v.Stmts[i] = p.transformStmt(s)
		}
	case *ast.ExprStmt:
		return p.desugarExprStmt(v)
	case *ast.IfStmt:
		v.Then = p.transformStmt(v.Then)
		if v.Else != nil {
			v.Else = p.transformStmt(v.Else)
		}
	case *ast.WhileLoop:
		v.Body = p.transformStmt(v.Body)
	case *ast.ForLoop:
		if v.Init != nil {
			v.Init = p.transformStmt(v.Init)
		}
		v.Body = p.transformStmt(v.Body)
	}

	return stmt
}

func (p *IncDecPass) desugarExprStmt(stmt *ast.ExprStmt) ast.Stmt {
	unary, ok := stmt.Expr.(*ast.UnaryOp)
	if !ok || (unary.Op != "++" && unary.Op != "--") {
		return stmt
	}

	ident, ok := unary.Operand.(*ast.Identifier)
	if !ok {
		panic(report.Raise(report.ErrInvalidAssignTarget, unary.Span(), "`%s` requires a variable", unary.Op))
	}

	op := "+"
	if unary.Op == "--" {
		op = "-"
	}

	stmt.Expr = &ast.BinaryOp{
		ExprBase: ast.NewExprBase(unary.Span()),
		Op:       "=",
		Lhs:      ident,
		Rhs: &ast.BinaryOp{
			ExprBase: ast.NewExprBase(unary.Span()),
			Op:       op,
			Lhs:      ast.CloneExpr(ident),
			Rhs:      &ast.NumberLit{ExprBase: ast.NewExprBase(unary.Span()), IntValue: 1},
		},
	}

	return stmt
}
