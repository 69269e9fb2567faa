package anf

import (
	"fmt"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// Pass converts a desugared program into A-normal form: after the pass, every
// operand of a binary, unary, call, or index expression is an atom (a literal
// or a variable), as is every condition and return value.  Compound
// subexpressions are lifted into fresh temporaries declared immediately
// before the statement they occurred in.
//
// Temporaries use the reserved `_t` prefix with a counter that is monotonic
// per pass value, so compiling the same input twice yields identical names.
type Pass struct {
	tempCounter int
}

// Transform rewrites the program into A-normal form.
func (p *Pass) Transform(prog *ast.Program) (err error) {
	defer report.CatchError(&err)

	for _, fn := range prog.Funcs {
		fn.Body = p.transformBlock(fn.Body)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (p *Pass) transformBlock(block *ast.Block) *ast.Block {
	var stmts []ast.Stmt
	for _, stmt := range block.Stmts {
		stmts = append(stmts, p.transformStmt(stmt)...)
	}

	block.Stmts = stmts
	return block
}

// transformStmt rewrites a single statement into the statement list that
// replaces it: the lifted temporary bindings followed by the statement
// itself.
func (p *Pass) transformStmt(stmt ast.Stmt) []ast.Stmt {
	var out []ast.Stmt

	switch v := stmt.(type) {
	case *ast.Block:
		return []ast.Stmt{p.transformBlock(v)}
	case *ast.VarDecl:
		if v.Initializer != nil {
			v.Initializer = p.transformExpr(v.Initializer, &out)
		}
	case *ast.ExprStmt:
		if assign, ok := v.Expr.(*ast.BinaryOp); ok && assign.Op == "=" {
			p.transformAssign(assign, &out)
		} else {
			// The root of an expression statement needs no binding: its
			// value is discarded.  This keeps void calls legal.
			v.Expr = p.lowerOperands(v.Expr, &out)
		}
	case *ast.PrintStmt:
		v.Value = p.transformExpr(v.Value, &out)
	case *ast.ReturnStmt:
		if v.Value != nil {
			v.Value = p.transformExpr(v.Value, &out)
		}
	case *ast.IfStmt:
		v.Cond = p.transformExpr(v.Cond, &out)
		v.Then = p.wrap(p.transformStmt(v.Then), v.Then.Span())
		if v.Else != nil {
			v.Else = p.wrap(p.transformStmt(v.Else), v.Else.Span())
		}
	case *ast.WhileLoop:
		v.Cond = p.transformExpr(v.Cond, &out)
		v.Body = p.wrap(p.transformStmt(v.Body), v.Body.Span())
	}

	return append(out, stmt)
}

// transformAssign rewrites `lhs = rhs` in place.  The right-hand side is
// lowered to an atom; an index target keeps its subscript atomic as well.
// The assignment itself remains a single statement.
func (p *Pass) transformAssign(assign *ast.BinaryOp, out *[]ast.Stmt) {
	switch lhs := assign.Lhs.(type) {
	case *ast.Identifier:
	case *ast.IndexExpr:
		lhs.Index = p.transformExpr(lhs.Index, out)
	default:
		panic(report.RaiseICE("assignment target survived desugaring: %T", assign.Lhs))
	}

	assign.Rhs = p.transformExpr(assign.Rhs, out)
}

// transformExpr lowers an expression to an atom, lifting any compound
// computation into temporaries appended to `out`.
func (p *Pass) transformExpr(expr ast.Expr, out *[]ast.Stmt) ast.Expr {
	switch v := expr.(type) {
	case *ast.NumberLit, *ast.BoolLit, *ast.StringLit, *ast.Identifier:
		return expr
	case *ast.BinaryOp:
		if v.Op == "=" {
			// A nested assignment is kept as its own statement; its target
			// stands in for the expression's value.
			p.transformAssign(v, out)
			*out = append(*out, &ast.ExprStmt{StmtBase: ast.NewStmtBase(v.Span()), Expr: v})

			return ast.CloneExpr(v.Lhs)
		}

		return p.bindTemp(p.lowerOperands(v, out), out)
	case *ast.UnaryOp, *ast.CallExpr, *ast.IndexExpr:
		return p.bindTemp(p.lowerOperands(expr, out), out)
	default:
		panic(report.RaiseICE("unknown expression in normalization: %T", expr))
	}
}

// lowerOperands lowers the direct operands of a compound expression to atoms
// without binding the expression itself.
func (p *Pass) lowerOperands(expr ast.Expr, out *[]ast.Stmt) ast.Expr {
	switch v := expr.(type) {
	case *ast.BinaryOp:
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

// bindTemp declares a fresh temporary initialized with the given expression
// and returns a variable referencing it.  The temporary's declared type is
// the Unknown placeholder; the checker infers it from the initializer.
func (p *Pass) bindTemp(expr ast.Expr, out *[]ast.Stmt) ast.Expr {
	temp := p.newTemp()

	*out = append(*out, &ast.VarDecl{
		StmtBase:    ast.NewStmtBase(expr.Span()),
		Name:        temp,
		DeclType:    types.Unknown,
		Initializer: expr,
	})

	return &ast.Identifier{ExprBase: ast.NewExprBase(expr.Span()), Name: temp}
}

func (p *Pass) wrap(stmts []ast.Stmt, span *report.TextSpan) ast.Stmt {
	if len(stmts) == 1 {
		return stmts[0]
	}

	return &ast.Block{StmtBase: ast.NewStmtBase(span), Stmts: stmts}
}

func (p *Pass) newTemp() string {
	name := fmt.Sprintf("_t%d", p.tempCounter)
	p.tempCounter++

	return name
}
