package desugar

import (
	"nanoc/ast"
	"nanoc/report"
)

// CompoundAssignPass rewrites `x += e` into `x = x + e`.  The left-hand side
// must be a variable or an array index; the read of the left-hand side is a
// deep copy since the tree owns each child exactly once.
type CompoundAssignPass struct{}

func (p *CompoundAssignPass) Name() string {
	return "compound-assign"
}

func (p *CompoundAssignPass) Transform(prog *ast.Program) *ast.Program {
	for _, fn := range prog.Funcs {
		fn.Body = p.transformStmt(fn.Body).(*ast.Block)
	}

	return prog
}

func (p *CompoundAssignPass) transformStmt(stmt ast.Stmt) ast.Stmt {
	switch v := stmt.(type) {
	case *ast.Block:
		for i, s := range v.Stmts {
			v.Stmts[i] = p.transformStmt(s)
		}
	case *ast.ExprStmt:
		v.Expr = p.transformExpr(v.Expr)
	case *ast.PrintStmt:
		v.Value = p.transformExpr(v.Value)
	case *ast.VarDecl:
		if v.Initializer != nil {
			v.Initializer = p.transformExpr(v.Initializer)
		}
	case *ast.IfStmt:
		v.Cond = p.transformExpr(v.Cond)
		v.Then = p.transformStmt(v.Then)
		if v.Else != nil {
			v.Else = p.transformStmt(v.Else)
		}
	case *ast.WhileLoop:
		v.Cond = p.transformExpr(v.Cond)
		v.Body = p.transformStmt(v.Body)
	case *ast.ForLoop:
		if v.Init != nil {
			v.Init = p.transformStmt(v.Init)
		}
		if v.Cond != nil {
			v.Cond = p.transformExpr(v.Cond)
		}
		if v.Post != nil {
			v.Post = p.transformExpr(v.Post)
		}
		v.Body = p.transformStmt(v.Body)
	case *ast.ReturnStmt:
		if v.Value != nil {
			v.Value = p.transformExpr(v.Value)
		}
	}

	return stmt
}

func (p *CompoundAssignPass) transformExpr(expr ast.Expr) ast.Expr {
	switch v := expr.(type) {
	case *ast.BinaryOp:
		v.Lhs = p.transformExpr(v.Lhs)
		v.Rhs = p.transformExpr(v.Rhs)

		if v.Op == "+=" {
			switch v.Lhs.(type) {
			case *ast.Identifier, *ast.IndexExpr:
			default:
				panic(report.Raise(report.ErrInvalidAssignTarget, v.Span(), "Invalid assignment target"))
			}

			return &ast.BinaryOp{
				ExprBase: v.ExprBase,
				Op:       "=",
				Lhs:      v.Lhs,
				Rhs: &ast.BinaryOp{
					ExprBase: ast.NewExprBase(v.Span()),
					Op:       "+",
					Lhs:      ast.CloneExpr(v.Lhs),
					Rhs:      v.Rhs,
				},
			}
		}
	case *ast.UnaryOp:
		v.Operand = p.transformExpr(v.Operand)
	case *ast.IndexExpr:
		v.Array = p.transformExpr(v.Array)
		v.Index = p.transformExpr(v.Index)
	case *ast.CallExpr:
		for i, arg := range v.Args {
			v.Args[i] = p.transformExpr(arg)
		}
	}

	return expr
}
