package desugar

import "nanoc/ast"

// ForWhilePass rewrites `for (init; cond; post) body` into
//
//	{
//	    init;
//	    while (cond) {
//	        body;
//	        post;
//	    }
//	}
//
// A missing condition becomes the integer literal 1; a missing init or post
// is simply omitted.  The surrounding block is essential: the new scope must
// contain init's declarations.
type ForWhilePass struct{}

func (p *ForWhilePass) Name() string {
	return "for-to-while"
}

func (p *ForWhilePass) Transform(prog *ast.Program) *ast.Program {
	for _, fn := range prog.Funcs {
		fn.Body = p.transformStmt(fn.Body).(*ast.Block)
	}

	return prog
}

func (p *ForWhilePass) transformStmt(stmt ast.Stmt) ast.Stmt {
	switch v := stmt.(type) {
	case *ast.Block:
		for i, s := range v.Stmts {
			v.Stmts[i] = p.transformStmt(s)
		}

		return v
	case *ast.IfStmt:
		v.Then = p.transformStmt(v.Then)
		if v.Else != nil {
			v.Else = p.transformStmt(v.Else)
		}

		return v
	case *ast.WhileLoop:
		v.Body = p.transformStmt(v.Body)
		return v
	case *ast.ForLoop:
		return p.desugarFor(v)
	default:
		return stmt
	}
}

func (p *ForWhilePass) desugarFor(loop *ast.ForLoop) ast.Stmt {
	block := &ast.Block{StmtBase: ast.NewStmtBase(loop.Span())}

	if loop.Init != nil {
		block.Stmts = append(block.Stmts, p.transformStmt(loop.Init))
	}

	cond := loop.Cond
	if cond == nil {
		cond = &ast.NumberLit{ExprBase: ast.NewExprBase(loop.Span()), IntValue: 1}
	}

	body := p.transformStmt(loop.Body)
	if loop.Post != nil {
		body = &ast.Block{
			StmtBase: ast.NewStmtBase(loop.Span()),
			Stmts: []ast.Stmt{
				body,
				&ast.ExprStmt{StmtBase: ast.NewStmtBase(loop.Post.Span()), Expr: loop.Post},
			},
		}
	}

	block.Stmts = append(block.Stmts, &ast.WhileLoop{
		StmtBase: ast.NewStmtBase(loop.Span()),
		Cond:     cond,
		Body:     body,
	})

	return block
}
