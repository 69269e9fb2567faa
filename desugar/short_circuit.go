package desugar

import (
	"fmt"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// ShortCircuitPass lowers the logical operators `&&` and `||` into `if`
// statements over a fresh temporary so that the right operand is only
// evaluated when the left operand requires it:
//
//	a && b   =>   int _s0 = 0; if (a) { if (b) _s0 = 1; }         ... _s0
//	a || b   =>   int _s0 = 0; if (a) _s0 = 1; else { if (b) _s0 = 1; }  ... _s0
//
// The synthesized statements are placed immediately before the statement the
// operator occurred in.  For a `while` condition this evaluates the operand
// chain once per loop entry, matching the placement contract of the
// normalization pass.  Temporaries use the reserved `_s` prefix.
type ShortCircuitPass struct {
	tempCounter int
}

func (p *ShortCircuitPass) Name() string {
	return "short-circuit"
}

func (p *ShortCircuitPass) Transform(prog *ast.Program) *ast.Program {
	for _, fn := range prog.Funcs {
		fn.Body = p.transformBlock(fn.Body)
	}

	return prog
}

func (p *ShortCircuitPass) transformBlock(block *ast.Block) *ast.Block {
	var stmts []ast.Stmt
	for _, stmt := range block.Stmts {
		stmts = append(stmts, p.transformStmt(stmt)...)
	}

	block.Stmts = stmts
	return block
}

// transformStmt rewrites a single statement, returning it along with any
// statements synthesized for logical operators inside it.
func (p *ShortCircuitPass) transformStmt(stmt ast.Stmt) []ast.Stmt {
	var out []ast.Stmt

	switch v := stmt.(type) {
	case *ast.Block:
		return []ast.Stmt{p.transformBlock(v)}
	case *ast.VarDecl:
		if v.Initializer != nil {
			v.Initializer = p.transformExpr(v.Initializer, &out)
		}
	case *ast.ExprStmt:
		v.Expr = p.transformExpr(v.Expr, &out)
	case *ast.PrintStmt:
		v.Value = p.transformExpr(v.Value, &out)
	case *ast.ReturnStmt:
		if v.Value != nil {
			v.Value = p.transformExpr(v.Value, &out)
		}
	case *ast.IfStmt:
		v.Cond = p.transformExpr(v.Cond, &out)
		v.Then = wrapStmts(p.transformStmt(v.Then), v.Then.Span())
		if v.Else != nil {
			v.Else = wrapStmts(p.transformStmt(v.Else), v.Else.Span())
		}
	case *ast.WhileLoop:
		v.Cond = p.transformExpr(v.Cond, &out)
		v.Body = wrapStmts(p.transformStmt(v.Body), v.Body.Span())
	}

	return append(out, stmt)
}

func (p *ShortCircuitPass) transformExpr(expr ast.Expr, out *[]ast.Stmt) ast.Expr {
	switch v := expr.(type) {
	case *ast.BinaryOp:
		if v.Op == "&&" || v.Op == "||" {
			return p.lowerLogical(v, out)
		}

		v.Lhs = p.transformExpr(v.Lhs, out)
		v.Rhs = p.transformExpr(v.Rhs, out)
	case *ast.UnaryOp:
		v.Operand = p.transformExpr(v.Operand, out)
	case *ast.IndexExpr:
		v.Array = p.transformExpr(v.Array, out)
		v.Index = p.transformExpr(v.Index, out)
	case *ast.CallExpr:
		for i, arg := range v.Args {
			v.Args[i] = p.transformExpr(arg, out)
		}
	}

	return expr
}

// lowerLogical lowers one `&&` or `||` application.  The left operand is
// lowered into the enclosing statement buffer; the right operand is lowered
// into the conditional branch that guards its evaluation.
func (p *ShortCircuitPass) lowerLogical(bop *ast.BinaryOp, out *[]ast.Stmt) ast.Expr {
	span := bop.Span()

	lhs := p.transformExpr(bop.Lhs, out)

	var rhsStmts []ast.Stmt
	rhs := p.transformExpr(bop.Rhs, &rhsStmts)

	temp := p.newTemp()
	*out = append(*out, &ast.VarDecl{
		StmtBase:    ast.NewStmtBase(span),
		Name:        temp,
		DeclType:    types.I32,
		Initializer: &ast.NumberLit{ExprBase: ast.NewExprBase(span)},
	})

	// if (rhs) temp = 1;
	setOnRhs := append(rhsStmts, &ast.IfStmt{
		StmtBase: ast.NewStmtBase(span),
		Cond:     rhs,
		Then:     p.setTemp(temp, span),
	})

	if bop.Op == "&&" {
		*out = append(*out, &ast.IfStmt{
			StmtBase: ast.NewStmtBase(span),
			Cond:     lhs,
			Then:     wrapStmts(setOnRhs, span),
		})
	} else {
		*out = append(*out, &ast.IfStmt{
			StmtBase: ast.NewStmtBase(span),
			Cond:     lhs,
			Then:     p.setTemp(temp, span),
			Else:     wrapStmts(setOnRhs, span),
		})
	}

	return &ast.Identifier{ExprBase: ast.NewExprBase(span), Name: temp}
}

// setTemp builds the statement `temp = 1;`.
func (p *ShortCircuitPass) setTemp(temp string, span *report.TextSpan) ast.Stmt {
	return &ast.ExprStmt{
		StmtBase: ast.NewStmtBase(span),
		Expr: &ast.BinaryOp{
			ExprBase: ast.NewExprBase(span),
			Op:       "=",
			Lhs:      &ast.Identifier{ExprBase: ast.NewExprBase(span), Name: temp},
			Rhs:      &ast.NumberLit{ExprBase: ast.NewExprBase(span), IntValue: 1},
		},
	}
}

func (p *ShortCircuitPass) newTemp() string {
	name := fmt.Sprintf("_s%d", p.tempCounter)
	p.tempCounter++

	return name
}
