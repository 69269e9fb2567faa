package desugar

import "nanoc/ast"

// IfElsePass normalizes `if (c) T else E` into
//
//	{
//	    if (c) T
//	    if (!c) E
//	}
//
// The condition subtree is referenced twice after the split, so the second
// reference is a structural deep copy.  Nested ifs are transformed bottom-up
// so the split applies at every level.
type IfElsePass struct{}

func (p *IfElsePass) Name() string {
	return "if-else-split"
}

func (p *IfElsePass) Transform(prog *ast.Program) *ast.Program {
	for _, fn := range prog.Funcs {
		fn.Body = p.transformStmt(fn.Body).(*ast.Block)
	}

	return prog
}

func (p *IfElsePass) transformStmt(stmt ast.Stmt) ast.Stmt {
	switch v := stmt.(type) {
	case *ast.Block:
		for i, s := range v.Stmts {
			v.Stmts[i] = p.transformStmt(s)
		}

		return v
	case *ast.WhileLoop:
		v.Body = p.transformStmt(v.Body)
		return v
	case *ast.ForLoop:
		if v.Init != nil {
			v.Init = p.transformStmt(v.Init)
		}
		v.Body = p.transformStmt(v.Body)
		return v
	case *ast.IfStmt:
		return p.desugarIf(v)
	default:
		return stmt
	}
}

func (p *IfElsePass) desugarIf(stmt *ast.IfStmt) ast.Stmt {
	stmt.Then = p.transformStmt(stmt.Then)

	if stmt.Else == nil {
		return stmt
	}

	elseBranch := p.transformStmt(stmt.Else)
	stmt.Else = nil

	negated := &ast.UnaryOp{
		ExprBase: ast.NewExprBase(stmt.Cond.Span()),
		Op:       "!",
		Operand:  ast.CloneExpr(stmt.Cond),
	}

	return &ast.Block{
		StmtBase: ast.NewStmtBase(stmt.Span()),
		Stmts: []ast.Stmt{
			stmt,
			&ast.IfStmt{
				StmtBase: ast.NewStmtBase(stmt.Span()),
				Cond:     negated,
				Then:     elseBranch,
			},
		},
	}
}
