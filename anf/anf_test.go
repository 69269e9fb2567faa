package anf

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"nanoc/ast"
	"nanoc/desugar"
	"nanoc/syntax"
	"nanoc/types"
)

func normalized(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, err := syntax.Parse("test.nano", strings.NewReader(src))
	be.Err(t, err, nil)
	be.Err(t, desugar.Run(prog), nil)
	be.Err(t, (&Pass{}).Transform(prog), nil)

	return prog
}

func inMain(stmtsSrc string) string {
	return "int main() {\n" + stmtsSrc + "\nreturn 0;\n}"
}

// isAtom reports whether an expression needs no computation of its own.
func isAtom(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.NumberLit, *ast.BoolLit, *ast.StringLit, *ast.Identifier:
		return true
	default:
		return false
	}
}

// assertOperandsAtomic walks a normalized tree and fails on any compound
// operand of a binary, unary, call, or index expression.
func assertOperandsAtomic(t *testing.T, expr ast.Expr) {
	t.Helper()

	switch v := expr.(type) {
	case *ast.BinaryOp:
		if v.Op == "=" {
			assertOperandsAtomic(t, v.Lhs)
			if !isAtom(v.Rhs) {
				assertOperandsAtomic(t, v.Rhs)
			}

			return
		}

		be.True(t, isAtom(v.Lhs))
		be.True(t, isAtom(v.Rhs))
	case *ast.UnaryOp:
		be.True(t, isAtom(v.Operand))
	case *ast.IndexExpr:
		be.True(t, isAtom(v.Array))
		be.True(t, isAtom(v.Index))
	case *ast.CallExpr:
		for _, arg := range v.Args {
			be.True(t, isAtom(arg))
		}
	}
}

func assertStmtNormalized(t *testing.T, stmt ast.Stmt) {
	t.Helper()

	switch v := stmt.(type) {
	case *ast.Block:
		for _, s := range v.Stmts {
			assertStmtNormalized(t, s)
		}
	case *ast.VarDecl:
		if v.Initializer != nil {
			assertOperandsAtomic(t, v.Initializer)
		}
	case *ast.ExprStmt:
		assertOperandsAtomic(t, v.Expr)
	case *ast.PrintStmt:
		be.True(t, isAtom(v.Value))
	case *ast.ReturnStmt:
		if v.Value != nil {
			be.True(t, isAtom(v.Value))
		}
	case *ast.IfStmt:
		be.True(t, isAtom(v.Cond))
		assertStmtNormalized(t, v.Then)
		if v.Else != nil {
			assertStmtNormalized(t, v.Else)
		}
	case *ast.WhileLoop:
		be.True(t, isAtom(v.Cond))
		assertStmtNormalized(t, v.Body)
	}
}

func TestNestedArithmeticIsLifted(t *testing.T) {
	prog := normalized(t, inMain("int x = 2 + 3 * 4;\nprint x;"))

	stmts := prog.Funcs[0].Body.Stmts

	// _t0 = 3 * 4; _t1 = 2 + _t0; x = _t1
	t0 := stmts[0].(*ast.VarDecl)
	be.Equal(t, t0.Name, "_t0")
	be.True(t, types.IsUnknown(t0.DeclType))

	mul := t0.Initializer.(*ast.BinaryOp)
	be.Equal(t, mul.Op, "*")
	be.Equal(t, mul.Lhs.(*ast.NumberLit).IntValue, int64(3))

	t1 := stmts[1].(*ast.VarDecl)
	be.Equal(t, t1.Name, "_t1")

	add := t1.Initializer.(*ast.BinaryOp)
	be.Equal(t, add.Op, "+")
	be.Equal(t, add.Lhs.(*ast.NumberLit).IntValue, int64(2))
	be.Equal(t, add.Rhs.(*ast.Identifier).Name, "_t0")

	x := stmts[2].(*ast.VarDecl)
	be.Equal(t, x.Name, "x")
	be.Equal(t, x.Initializer.(*ast.Identifier).Name, "_t1")
}

func TestEverythingIsAtomicAfterwards(t *testing.T) {
	prog := normalized(t, inMain(`
		int[4] a;
		a[1 + 2] = f(3 * 4, -g(5));
		if (a[0] < a[1] && a[2] > 0) { print a[3]; }
		while (a[0] != 9) { a[0] = a[0] + 1; }
		print "done";`))

	for _, fn := range prog.Funcs {
		assertStmtNormalized(t, fn.Body)
	}
}

func TestConditionBindingsPrecedeIf(t *testing.T) {
	prog := normalized(t, inMain("if (x + 1 < 5) print 1;"))

	stmts := prog.Funcs[0].Body.Stmts

	// _t0 = x + 1; _t1 = _t0 < 5; if (_t1) ...
	be.Equal(t, stmts[0].(*ast.VarDecl).Name, "_t0")
	be.Equal(t, stmts[1].(*ast.VarDecl).Name, "_t1")

	ifStmt := stmts[2].(*ast.IfStmt)
	be.Equal(t, ifStmt.Cond.(*ast.Identifier).Name, "_t1")
}

func TestReturnValueIsAtomized(t *testing.T) {
	prog := normalized(t, "int f(int n) { return n * 2; }\nint main() { return 0; }")

	stmts := prog.Funcs[0].Body.Stmts
	be.Equal(t, stmts[0].(*ast.VarDecl).Name, "_t0")

	ret := stmts[1].(*ast.ReturnStmt)
	be.Equal(t, ret.Value.(*ast.Identifier).Name, "_t0")
}

func TestAtomicAssignmentStaysSingleStatement(t *testing.T) {
	prog := normalized(t, inMain("x = y;"))

	stmts := prog.Funcs[0].Body.Stmts
	assign := stmts[0].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, assign.Op, "=")
	be.Equal(t, assign.Rhs.(*ast.Identifier).Name, "y")
}

func TestTempCounterIsPerPass(t *testing.T) {
	first := normalized(t, inMain("int x = 1 + 2 * 3;"))
	second := normalized(t, inMain("int x = 1 + 2 * 3;"))

	be.True(t, ast.EqualProgram(first, second))
}
