package desugar

import (
	"nanoc/ast"
	"nanoc/types"
)

// BoolLitPass replaces the literals `true` and `false` with the integer
// literals 1 and 0.  It runs after type checking, so the replacement carries
// the integer type; bool type markers on declarations persist, and downstream
// code accepts integers wherever a boolean is expected.
type BoolLitPass struct{}

func (p *BoolLitPass) Name() string {
	return "bool-to-int"
}

func (p *BoolLitPass) Transform(prog *ast.Program) *ast.Program {
	for _, fn := range prog.Funcs {
		fn.Body = p.transformStmt(fn.Body).(*ast.Block)
	}

	return prog
}

func (p *BoolLitPass) transformStmt(stmt ast.Stmt) ast.Stmt {
	switch v := stmt.(type) {
	case *ast.Block:
		for i, s := range v.Stmts {
			v.Stmts[i] = p.transformStmt(s)
		}
	case *ast.VarDecl:
		if v.Initializer != nil {
			v.Initializer = p.transformExpr(v.Initializer)
		}
	case *ast.ExprStmt:
		v.Expr = p.transformExpr(v.Expr)
	case *ast.PrintStmt:
		v.Value = p.transformExpr(v.Value)
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

func (p *BoolLitPass) transformExpr(expr ast.Expr) ast.Expr {
	switch v := expr.(type) {
	case *ast.BoolLit:
		lit := &ast.NumberLit{ExprBase: ast.NewExprBase(v.Span())}
		if v.Value {
			lit.IntValue = 1
		}
		lit.SetType(types.I32)

		return lit
	case *ast.BinaryOp:
		v.Lhs = p.transformExpr(v.Lhs)
		v.Rhs = p.transformExpr(v.Rhs)
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
