package desugar

import (
	"nanoc/ast"
	"nanoc/report"
)

// Pass is a semantics-preserving AST-to-AST rewrite over a whole program.
// Each pass recursively walks all statement and expression constructors and
// rebuilds the tree bottom-up; unaffected nodes pass through.  Every pass is
// idempotent: transforming an already-transformed tree is a no-op.
type Pass interface {
	// Name returns the display name of the pass.
	Name() string

	// Transform rewrites the program in place and returns it.
	Transform(prog *ast.Program) *ast.Program
}

// Passes returns the pre-checking desugaring passes in their required order.
// The order matters: loops are rewritten before their post-expressions become
// statement-position increments, increments before the short-circuit pass
// introduces fresh statements, and the if/else split runs after the
// short-circuit pass so that synthesized else branches are split too.
//
// The bool literal lowering is not part of this set: it runs after type
// checking so that a bool stored into an int still diagnoses as a mismatch
// rather than silently becoming an integer.
func Passes() []Pass {
	return []Pass{
		&ForWhilePass{},
		&CompoundAssignPass{},
		&IncDecPass{},
		&ShortCircuitPass{},
		&IfElsePass{},
	}
}

// Run applies all pre-checking desugaring passes to the program in order.  It
// returns the first compile error raised by any pass.
func Run(prog *ast.Program) (err error) {
	defer report.CatchError(&err)

	for _, pass := range Passes() {
		prog = pass.Transform(prog)
	}

	return nil
}

// LowerBools applies the bool literal lowering.  It is invoked by the driver
// once checking has succeeded.
func LowerBools(prog *ast.Program) *ast.Program {
	return (&BoolLitPass{}).Transform(prog)
}

// -----------------------------------------------------------------------------

// wrapStmts wraps a statement list into a single statement, reusing the lone
// statement when the list has exactly one element.  Synthesized blocks
// inherit the given span.
func wrapStmts(stmts []ast.Stmt, span *report.TextSpan) ast.Stmt {
	if len(stmts) == 1 {
		return stmts[0]
	}

	return &ast.Block{StmtBase: ast.NewStmtBase(span), Stmts: stmts}
}
