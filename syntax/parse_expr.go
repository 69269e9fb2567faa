package syntax

import (
	"strconv"

	"nanoc/ast"
	"nanoc/report"
)

// expr := assignment ;
//
// Increment and decrement are statements, not expressions: parseExpr rejects
// them anywhere in its production.  Statement positions that allow a root
// `++`/`--` (expression statements and for-loop post-expressions) parse the
// assignment production directly.
func (p *Parser) parseExpr() ast.Expr {
	expr := p.parseAssignment()
	rejectNestedIncDec(expr, false)

	return expr
}

// assignment := logic_or [('=' | '+=') assignment] ;
func (p *Parser) parseAssignment() ast.Expr {
	lhs := p.parseLogicOr()

	if p.has(TOK_ASSIGN) || p.has(TOK_PLUSASSIGN) {
		opTok := p.tok
		p.next()

		op := "="
		if opTok.Kind == TOK_PLUSASSIGN {
			op = "+="
		}

		rhs := p.parseAssignment()

		return &ast.BinaryOp{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// logic_or := logic_and {'||' logic_and} ;
func (p *Parser) parseLogicOr() ast.Expr {
	lhs := p.parseLogicAnd()

	for p.has(TOK_LOR) {
		p.next()
		rhs := p.parseLogicAnd()
		lhs = binaryOver("||", lhs, rhs)
	}

	return lhs
}

// logic_and := equality {'&&' equality} ;
func (p *Parser) parseLogicAnd() ast.Expr {
	lhs := p.parseEquality()

	for p.has(TOK_LAND) {
		p.next()
		rhs := p.parseEquality()
		lhs = binaryOver("&&", lhs, rhs)
	}

	return lhs
}

// equality := comparison {('==' | '!=') comparison} ;
func (p *Parser) parseEquality() ast.Expr {
	lhs := p.parseComparison()

	for p.has(TOK_EQ) || p.has(TOK_NEQ) {
		op := "=="
		if p.has(TOK_NEQ) {
			op = "!="
		}
		p.next()

		rhs := p.parseComparison()
		lhs = binaryOver(op, lhs, rhs)
	}

	return lhs
}

// comparison := term {('<' | '<=' | '>' | '>=') term} ;
func (p *Parser) parseComparison() ast.Expr {
	lhs := p.parseTerm()

	for {
		var op string
		switch p.tok.Kind {
		case TOK_LT:
			op = "<"
		case TOK_LTEQ:
			op = "<="
		case TOK_GT:
			op = ">"
		case TOK_GTEQ:
			op = ">="
		default:
			return lhs
		}
		p.next()

		rhs := p.parseTerm()
		lhs = binaryOver(op, lhs, rhs)
	}
}

// term := factor {('+' | '-') factor} ;
func (p *Parser) parseTerm() ast.Expr {
	lhs := p.parseFactor()

	for p.has(TOK_PLUS) || p.has(TOK_MINUS) {
		op := "+"
		if p.has(TOK_MINUS) {
			op = "-"
		}
		p.next()

		rhs := p.parseFactor()
		lhs = binaryOver(op, lhs, rhs)
	}

	return lhs
}

// factor := unary {('*' | '/' | '%') unary} ;
func (p *Parser) parseFactor() ast.Expr {
	lhs := p.parseUnary()

	for {
		var op string
		switch p.tok.Kind {
		case TOK_STAR:
			op = "*"
		case TOK_DIV:
			op = "/"
		case TOK_MOD:
			op = "%"
		default:
			return lhs
		}
		p.next()

		rhs := p.parseUnary()
		lhs = binaryOver(op, lhs, rhs)
	}
}

// unary := ('!' | '-' | '++' | '--') unary | postfix ;
func (p *Parser) parseUnary() ast.Expr {
	var op string
	switch p.tok.Kind {
	case TOK_NOT:
		op = "!"
	case TOK_MINUS:
		op = "-"
	case TOK_INC:
		op = "++"
	case TOK_DEC:
		op = "--"
	default:
		return p.parsePostfix()
	}

	startTok := p.tok
	p.next()

	operand := p.parseUnary()

	return &ast.UnaryOp{
		ExprBase: ast.NewExprBase(report.NewSpanOver(startTok.Span, operand.Span())),
		Op:       op,
		Operand:  operand,
	}
}

// postfix := primary {'[' expr ']'} ;
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for p.has(TOK_LBRACKET) {
		p.next()
		index := p.parseExpr()
		endTok := p.want(TOK_RBRACKET)

		expr = &ast.IndexExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(expr.Span(), endTok.Span)),
			Array:    expr,
			Index:    index,
		}
	}

	return expr
}

// primary := NUMBER | STRING | 'true' | 'false' | IDENT ['(' [args] ')']
//          | '(' expr ')' ;
func (p *Parser) parsePrimary() ast.Expr {
	switch p.tok.Kind {
	case TOK_NUMLIT:
		tok := p.tok
		p.next()

		if value, isFloat := parseNumber(tok); isFloat {
			return &ast.NumberLit{
				ExprBase:   ast.NewExprBase(tok.Span),
				IsFloat:    true,
				FloatValue: value,
			}
		}

		intValue, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			panic(report.Raise(report.ErrLex, tok.Span, "invalid numeric literal `%s`", tok.Value))
		}

		return &ast.NumberLit{
			ExprBase: ast.NewExprBase(tok.Span),
			IntValue: intValue,
		}
	case TOK_STRINGLIT:
		tok := p.tok
		p.next()

		return &ast.StringLit{ExprBase: ast.NewExprBase(tok.Span), Value: tok.Value}
	case TOK_TRUE, TOK_FALSE:
		tok := p.tok
		p.next()

		return &ast.BoolLit{ExprBase: ast.NewExprBase(tok.Span), Value: tok.Kind == TOK_TRUE}
	case TOK_IDENT:
		tok := p.tok
		p.next()

		if p.has(TOK_LPAREN) {
			return p.parseCallArgs(tok)
		}

		return &ast.Identifier{ExprBase: ast.NewExprBase(tok.Span), Name: tok.Value}
	case TOK_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.want(TOK_RPAREN)
		return expr
	default:
		p.reject("expected an expression")
		return nil
	}
}

// args := expr {',' expr} ;
func (p *Parser) parseCallArgs(calleeTok *Token) ast.Expr {
	p.want(TOK_LPAREN)

	var args []ast.Expr
	for !p.has(TOK_RPAREN) {
		if len(args) > 0 {
			p.want(TOK_COMMA)
		}

		args = append(args, p.parseExpr())
	}

	endTok := p.want(TOK_RPAREN)

	return &ast.CallExpr{
		ExprBase: ast.NewExprBase(report.NewSpanOver(calleeTok.Span, endTok.Span)),
		Callee:   calleeTok.Value,
		Args:     args,
	}
}

// -----------------------------------------------------------------------------

// binaryOver builds a binary operator node spanning its operands.
func binaryOver(op string, lhs, rhs ast.Expr) ast.Expr {
	return &ast.BinaryOp{
		ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
		Op:       op,
		Lhs:      lhs,
		Rhs:      rhs,
	}
}

// parseNumber converts a numeric literal token into its value.  The second
// return indicates whether the literal has a fractional part.
func parseNumber(tok *Token) (float64, bool) {
	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		panic(report.Raise(report.ErrLex, tok.Span, "invalid numeric literal `%s`", tok.Value))
	}

	for _, c := range tok.Value {
		if c == '.' {
			return value, true
		}
	}

	return value, false
}
