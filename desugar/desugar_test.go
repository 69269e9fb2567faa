package desugar

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/syntax"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, err := syntax.Parse("test.nano", strings.NewReader(src))
	be.Err(t, err, nil)

	return prog
}

func inMain(stmtsSrc string) string {
	return "int main() {\n" + stmtsSrc + "\nreturn 0;\n}"
}

func TestForBecomesWhile(t *testing.T) {
	prog := parseSrc(t, inMain("for (i = 0; i < 3; i = i + 1) print i;"))
	(&ForWhilePass{}).Transform(prog)

	// { i = 0; while (i < 3) { print i; i = i + 1; } }
	block := prog.Funcs[0].Body.Stmts[0].(*ast.Block)
	be.Equal(t, len(block.Stmts), 2)

	init := block.Stmts[0].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, init.Op, "=")

	loop := block.Stmts[1].(*ast.WhileLoop)
	be.Equal(t, loop.Cond.(*ast.BinaryOp).Op, "<")

	body := loop.Body.(*ast.Block)
	be.Equal(t, len(body.Stmts), 2)
	_, isPrint := body.Stmts[0].(*ast.PrintStmt)
	be.True(t, isPrint)
}

func TestForWithoutConditionLoopsOnOne(t *testing.T) {
	prog := parseSrc(t, inMain("for (;;) break;"))
	(&ForWhilePass{}).Transform(prog)

	block := prog.Funcs[0].Body.Stmts[0].(*ast.Block)
	loop := block.Stmts[0].(*ast.WhileLoop)

	cond := loop.Cond.(*ast.NumberLit)
	be.Equal(t, cond.IntValue, int64(1))

	// Synthesized literals inherit a source position.
	be.True(t, cond.Span() != nil)
}

func TestCompoundAssign(t *testing.T) {
	prog := parseSrc(t, inMain("x += 2;"))
	(&CompoundAssignPass{}).Transform(prog)

	assign := prog.Funcs[0].Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, assign.Op, "=")
	be.Equal(t, assign.Lhs.(*ast.Identifier).Name, "x")

	add := assign.Rhs.(*ast.BinaryOp)
	be.Equal(t, add.Op, "+")
	be.Equal(t, add.Lhs.(*ast.Identifier).Name, "x")
	be.Equal(t, add.Rhs.(*ast.NumberLit).IntValue, int64(2))
}

func TestCompoundAssignBadTarget(t *testing.T) {
	prog := parseSrc(t, inMain("f() += 2;"))

	err := Run(prog)
	be.True(t, err != nil)
	be.Equal(t, err.(*report.CompileError).Kind, report.ErrInvalidAssignTarget)
}

func TestIncDec(t *testing.T) {
	prog := parseSrc(t, inMain("++i;\n--j;"))
	(&IncDecPass{}).Transform(prog)

	inc := prog.Funcs[0].Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, inc.Op, "=")
	be.Equal(t, inc.Rhs.(*ast.BinaryOp).Op, "+")

	dec := prog.Funcs[0].Body.Stmts[1].(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, dec.Rhs.(*ast.BinaryOp).Op, "-")
	be.Equal(t, dec.Rhs.(*ast.BinaryOp).Rhs.(*ast.NumberLit).IntValue, int64(1))
}

func TestIfElseSplit(t *testing.T) {
	prog := parseSrc(t, inMain("if (x < 5) { print x; } else { print 0; }"))
	(&IfElsePass{}).Transform(prog)

	// { if (x<5) {...}; if (!(x<5)) {...} }
	block := prog.Funcs[0].Body.Stmts[0].(*ast.Block)
	be.Equal(t, len(block.Stmts), 2)

	first := block.Stmts[0].(*ast.IfStmt)
	be.True(t, first.Else == nil)
	be.Equal(t, first.Cond.(*ast.BinaryOp).Op, "<")

	second := block.Stmts[1].(*ast.IfStmt)
	be.True(t, second.Else == nil)

	negated := second.Cond.(*ast.UnaryOp)
	be.Equal(t, negated.Op, "!")
	be.Equal(t, negated.Operand.(*ast.BinaryOp).Op, "<")
}

func TestIfElseSplitDeepCopiesCondition(t *testing.T) {
	prog := parseSrc(t, inMain("if (x < 5) { print x; } else { print 0; }"))
	(&IfElsePass{}).Transform(prog)

	block := prog.Funcs[0].Body.Stmts[0].(*ast.Block)
	first := block.Stmts[0].(*ast.IfStmt).Cond.(*ast.BinaryOp)
	second := block.Stmts[1].(*ast.IfStmt).Cond.(*ast.UnaryOp).Operand.(*ast.BinaryOp)

	be.True(t, ast.EqualExpr(first, second))

	// Mutating one copy must not affect the other.
	first.Rhs.(*ast.NumberLit).IntValue = 99
	be.True(t, !ast.EqualExpr(first, second))
	be.Equal(t, second.Rhs.(*ast.NumberLit).IntValue, int64(5))
}

func TestNestedIfElseSplitsAtEveryLevel(t *testing.T) {
	prog := parseSrc(t, inMain("if (a) { print 1; } else { if (b) { print 2; } else { print 3; } }"))
	(&IfElsePass{}).Transform(prog)

	outer := prog.Funcs[0].Body.Stmts[0].(*ast.Block)
	be.Equal(t, len(outer.Stmts), 2)

	// The negated branch holds the inner split.
	negatedBranch := outer.Stmts[1].(*ast.IfStmt).Then.(*ast.Block)
	inner := negatedBranch.Stmts[0].(*ast.Block)
	be.Equal(t, len(inner.Stmts), 2)
	be.True(t, inner.Stmts[0].(*ast.IfStmt).Else == nil)
	be.True(t, inner.Stmts[1].(*ast.IfStmt).Else == nil)
}

func TestBoolLitsBecomeInts(t *testing.T) {
	prog := parseSrc(t, inMain("bool b = true;\nbool c = false;"))
	(&BoolLitPass{}).Transform(prog)

	first := prog.Funcs[0].Body.Stmts[0].(*ast.VarDecl)
	be.Equal(t, first.Initializer.(*ast.NumberLit).IntValue, int64(1))

	second := prog.Funcs[0].Body.Stmts[1].(*ast.VarDecl)
	be.Equal(t, second.Initializer.(*ast.NumberLit).IntValue, int64(0))
}

func TestShortCircuitAndLowersToIf(t *testing.T) {
	prog := parseSrc(t, inMain("int r = a && b;"))
	(&ShortCircuitPass{}).Transform(prog)

	stmts := prog.Funcs[0].Body.Stmts

	// int _s0 = 0; if (a) { if (b) _s0 = 1; }  int r = _s0;
	temp := stmts[0].(*ast.VarDecl)
	be.Equal(t, temp.Name, "_s0")
	be.Equal(t, temp.Initializer.(*ast.NumberLit).IntValue, int64(0))

	guard := stmts[1].(*ast.IfStmt)
	be.Equal(t, guard.Cond.(*ast.Identifier).Name, "a")
	be.True(t, guard.Else == nil)

	inner := guard.Then.(*ast.IfStmt)
	be.Equal(t, inner.Cond.(*ast.Identifier).Name, "b")

	decl := stmts[2].(*ast.VarDecl)
	be.Equal(t, decl.Name, "r")
	be.Equal(t, decl.Initializer.(*ast.Identifier).Name, "_s0")
}

func TestShortCircuitOrTakesElseBranch(t *testing.T) {
	prog := parseSrc(t, inMain("int r = a || b;"))
	(&ShortCircuitPass{}).Transform(prog)

	stmts := prog.Funcs[0].Body.Stmts

	guard := stmts[1].(*ast.IfStmt)
	be.Equal(t, guard.Cond.(*ast.Identifier).Name, "a")
	be.True(t, guard.Else != nil)

	// The true branch short-circuits the right operand entirely.
	set := guard.Then.(*ast.ExprStmt).Expr.(*ast.BinaryOp)
	be.Equal(t, set.Lhs.(*ast.Identifier).Name, "_s0")
}

func TestDesugarPassesAreIdempotent(t *testing.T) {
	src := inMain(`
		for (int i = 0; i < 3; i = i + 1) {
			if (i == 1 && i < 2) { print i; } else { print 0; }
			i += 1;
			++i;
			bool ok = true;
		}`)

	once := parseSrc(t, src)
	be.Err(t, Run(once), nil)

	twice := parseSrc(t, src)
	be.Err(t, Run(twice), nil)
	be.Err(t, Run(twice), nil)

	be.True(t, ast.EqualProgram(once, twice))
}
