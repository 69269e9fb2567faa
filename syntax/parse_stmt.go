package syntax

import (
	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// block := '{' stmt* '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startTok := p.want(TOK_LBRACE)

	var stmts []ast.Stmt
	for !p.has(TOK_RBRACE) {
		if p.has(TOK_EOF) {
			p.reject("expected `}`")
		}

		stmts = append(stmts, p.parseStmt())
	}

	endTok := p.want(TOK_RBRACE)

	return &ast.Block{
		StmtBase: ast.NewStmtBase(report.NewSpanOver(startTok.Span, endTok.Span)),
		Stmts:    stmts,
	}
}

// stmt := var_decl | if_stmt | while_loop | for_loop | print_stmt
//       | return_stmt | 'break' ';' | 'continue' ';' | block | expr_stmt ;
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	case TOK_FOR:
		return p.parseForLoop()
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_PRINT:
		p.next()
		startSpan := p.lookbehind.Span

		value := p.parseExpr()
		p.want(TOK_SEMI)

		return &ast.PrintStmt{
			StmtBase: ast.NewStmtBase(report.NewSpanOver(startSpan, value.Span())),
			Value:    value,
		}
	case TOK_RETURN:
		p.next()
		startSpan := p.lookbehind.Span

		var value ast.Expr
		if !p.has(TOK_SEMI) {
			value = p.parseExpr()
		}

		p.want(TOK_SEMI)

		return &ast.ReturnStmt{
			StmtBase: ast.NewStmtBase(startSpan),
			Value:    value,
		}
	case TOK_BREAK:
		p.next()
		stmt := &ast.BreakStmt{StmtBase: ast.NewStmtBase(p.lookbehind.Span)}
		p.want(TOK_SEMI)
		return stmt
	case TOK_CONTINUE:
		p.next()
		stmt := &ast.ContinueStmt{StmtBase: ast.NewStmtBase(p.lookbehind.Span)}
		p.want(TOK_SEMI)
		return stmt
	default:
		if isTypeToken(p.tok.Kind) {
			stmt := p.parseVarDecl()
			p.want(TOK_SEMI)
			return stmt
		}

		return p.parseExprStmt()
	}
}

// var_decl := type ['[' NUMBER ']'] IDENT ['=' expr] ;
func (p *Parser) parseVarDecl() ast.Stmt {
	startSpan := p.tok.Span
	declType := p.parseType()

	if p.has(TOK_LBRACKET) {
		p.next()
		sizeTok := p.want(TOK_NUMLIT)
		p.want(TOK_RBRACKET)

		size, isFloat := parseNumber(sizeTok)
		if isFloat || size < 0 {
			panic(report.Raise(report.ErrParse, sizeTok.Span, "array size must be a non-negative integer"))
		}

		declType = &types.ArrayType{Elem: declType, Len: int(size)}
	}

	nameTok := p.want(TOK_IDENT)

	var init ast.Expr
	if p.has(TOK_ASSIGN) {
		p.next()
		init = p.parseExpr()
	}

	return &ast.VarDecl{
		StmtBase:    ast.NewStmtBase(report.NewSpanOver(startSpan, nameTok.Span)),
		Name:        nameTok.Value,
		DeclType:    declType,
		Initializer: init,
	}
}

// if_stmt := 'if' '(' expr ')' stmt ['else' stmt] ;
func (p *Parser) parseIfStmt() ast.Stmt {
	startTok := p.want(TOK_IF)
	p.want(TOK_LPAREN)
	cond := p.parseExpr()
	p.want(TOK_RPAREN)

	then := p.parseStmt()

	var elseBranch ast.Stmt
	if p.has(TOK_ELSE) {
		p.next()
		elseBranch = p.parseStmt()
	}

	return &ast.IfStmt{
		StmtBase: ast.NewStmtBase(startTok.Span),
		Cond:     cond,
		Then:     then,
		Else:     elseBranch,
	}
}

// while_loop := 'while' '(' expr ')' stmt ;
func (p *Parser) parseWhileLoop() ast.Stmt {
	startTok := p.want(TOK_WHILE)
	p.want(TOK_LPAREN)
	cond := p.parseExpr()
	p.want(TOK_RPAREN)

	return &ast.WhileLoop{
		StmtBase: ast.NewStmtBase(startTok.Span),
		Cond:     cond,
		Body:     p.parseStmt(),
	}
}

// for_loop := 'for' '(' [var_decl | expr] ';' [expr] ';' [expr] ')' stmt ;
func (p *Parser) parseForLoop() ast.Stmt {
	startTok := p.want(TOK_FOR)
	p.want(TOK_LPAREN)

	var init ast.Stmt
	if !p.has(TOK_SEMI) {
		if isTypeToken(p.tok.Kind) {
			init = p.parseVarDecl()
		} else {
			expr := p.parseExpr()
			init = &ast.ExprStmt{StmtBase: ast.NewStmtBase(expr.Span()), Expr: expr}
		}
	}
	p.want(TOK_SEMI)

	var cond ast.Expr
	if !p.has(TOK_SEMI) {
		cond = p.parseExpr()
	}
	p.want(TOK_SEMI)

	var post ast.Expr
	if !p.has(TOK_RPAREN) {
		post = p.parseAssignment()
		rejectNestedIncDec(post, true)
	}
	p.want(TOK_RPAREN)

	return &ast.ForLoop{
		StmtBase: ast.NewStmtBase(startTok.Span),
		Init:     init,
		Cond:     cond,
		Post:     post,
		Body:     p.parseStmt(),
	}
}

// expr_stmt := (expr | ('++' | '--') IDENT) ';' ;
func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseAssignment()
	rejectNestedIncDec(expr, true)

	p.want(TOK_SEMI)

	return &ast.ExprStmt{StmtBase: ast.NewStmtBase(expr.Span()), Expr: expr}
}

// rejectNestedIncDec raises a parse error for any `++`/`--` node that is not
// the root of its expression statement.
func rejectNestedIncDec(expr ast.Expr, root bool) {
	switch v := expr.(type) {
	case *ast.UnaryOp:
		if (v.Op == "++" || v.Op == "--") && !root {
			panic(report.Raise(report.ErrParse, v.Span(), "`%s` is only allowed as a statement", v.Op))
		}

		rejectNestedIncDec(v.Operand, false)
	case *ast.BinaryOp:
		rejectNestedIncDec(v.Lhs, false)
		rejectNestedIncDec(v.Rhs, false)
	case *ast.IndexExpr:
		rejectNestedIncDec(v.Array, false)
		rejectNestedIncDec(v.Index, false)
	case *ast.CallExpr:
		for _, arg := range v.Args {
			rejectNestedIncDec(arg, false)
		}
	}
}
