package syntax

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, err := Parse("test.nano", strings.NewReader(src))
	be.Err(t, err, nil)

	return prog
}

func parseErr(t *testing.T, src string) *report.CompileError {
	t.Helper()

	_, err := Parse("test.nano", strings.NewReader(src))
	be.True(t, err != nil)

	return err.(*report.CompileError)
}

func mainBody(t *testing.T, stmtsSrc string) []ast.Stmt {
	t.Helper()

	prog := parseSrc(t, "int main() {\n"+stmtsSrc+"\nreturn 0;\n}")
	be.Equal(t, len(prog.Funcs), 1)

	return prog.Funcs[0].Body.Stmts
}

func TestParseFunctionSignature(t *testing.T) {
	prog := parseSrc(t, "double hypot(double a, double b) { return a; }")

	fn := prog.Funcs[0]
	be.Equal(t, fn.Name, "hypot")
	be.True(t, types.Equals(fn.ReturnType, types.F64))
	be.Equal(t, len(fn.Params), 2)
	be.Equal(t, fn.Params[0].Name, "a")
	be.True(t, types.Equals(fn.Params[1].Type, types.F64))
}

func TestParsePrecedence(t *testing.T) {
	stmts := mainBody(t, "int x = 2 + 3 * 4;")

	decl := stmts[0].(*ast.VarDecl)
	add := decl.Initializer.(*ast.BinaryOp)
	be.Equal(t, add.Op, "+")

	mul := add.Rhs.(*ast.BinaryOp)
	be.Equal(t, mul.Op, "*")
	be.Equal(t, mul.Lhs.(*ast.NumberLit).IntValue, int64(3))
	be.Equal(t, mul.Rhs.(*ast.NumberLit).IntValue, int64(4))
}

func TestParseComparisonBindsTighterThanLogic(t *testing.T) {
	stmts := mainBody(t, "if (a < 5 && b > 2) print 1;")

	cond := stmts[0].(*ast.IfStmt).Cond.(*ast.BinaryOp)
	be.Equal(t, cond.Op, "&&")
	be.Equal(t, cond.Lhs.(*ast.BinaryOp).Op, "<")
	be.Equal(t, cond.Rhs.(*ast.BinaryOp).Op, ">")
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	stmts := mainBody(t, "a = b = 1;")

	outer := stmts[0].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, outer.Op, "=")
	be.Equal(t, outer.Lhs.(*ast.Identifier).Name, "a")

	inner := outer.Rhs.(*ast.BinaryOp)
	be.Equal(t, inner.Op, "=")
	be.Equal(t, inner.Lhs.(*ast.Identifier).Name, "b")
}

func TestParseArrayDeclAndIndex(t *testing.T) {
	stmts := mainBody(t, "int[3] a; a[1] = 5; print a[1];")

	decl := stmts[0].(*ast.VarDecl)
	arr := decl.DeclType.(*types.ArrayType)
	be.Equal(t, arr.Len, 3)
	be.True(t, types.Equals(arr.Elem, types.I32))

	assign := stmts[1].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	_, isIndex := assign.Lhs.(*ast.IndexExpr)
	be.True(t, isIndex)
}

func TestParseForLoop(t *testing.T) {
	stmts := mainBody(t, "for (int i = 0; i < 3; i = i + 1) print i;")

	loop := stmts[0].(*ast.ForLoop)
	_, isDecl := loop.Init.(*ast.VarDecl)
	be.True(t, isDecl)
	be.Equal(t, loop.Cond.(*ast.BinaryOp).Op, "<")
	be.True(t, loop.Post != nil)
}

func TestParseIfElse(t *testing.T) {
	stmts := mainBody(t, "if (x < 5) { print x; } else { print 0; }")

	ifStmt := stmts[0].(*ast.IfStmt)
	be.True(t, ifStmt.Else != nil)
}

func TestParseCallArguments(t *testing.T) {
	stmts := mainBody(t, "print add(1, 2 * 3);")

	call := stmts[0].(*ast.PrintStmt).Value.(*ast.CallExpr)
	be.Equal(t, call.Callee, "add")
	be.Equal(t, len(call.Args), 2)
}

func TestParseIncDecStatementOnly(t *testing.T) {
	stmts := mainBody(t, "++i;")
	unary := stmts[0].(*ast.ExprStmt).Expr.(*ast.UnaryOp)
	be.Equal(t, unary.Op, "++")

	cerr := parseErr(t, "int main() { int x = ++i; return 0; }")
	be.Equal(t, cerr.Kind, report.ErrParse)
}

func TestParseErrorHasPosition(t *testing.T) {
	cerr := parseErr(t, "int main() { int 5; }")

	be.Equal(t, cerr.Kind, report.ErrParse)
	be.True(t, cerr.Span != nil)
	be.Equal(t, cerr.Span.StartLine, 0)
}

func TestParseUnsignedTypes(t *testing.T) {
	stmts := mainBody(t, "unsigned long u = 1;")

	decl := stmts[0].(*ast.VarDecl)
	it := decl.DeclType.(types.IntType)
	be.Equal(t, it.Bits, 64)
	be.True(t, it.Unsigned)
}

func TestParseSpansCoverSource(t *testing.T) {
	stmts := mainBody(t, "int value = 1;")

	decl := stmts[0].(*ast.VarDecl)
	be.Equal(t, decl.Span().StartLine, 1)
	be.Equal(t, decl.Span().StartCol, 0)
}
