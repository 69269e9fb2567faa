package walk

import (
	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// Walker is responsible for walking a resolved program and type checking it:
// it assigns a type to every expression, verifies operator and assignment
// compatibility, and enforces the function signature rules.
type Walker struct {
	// The return type of the enclosing function.
	enclosingReturnType types.Type

	// The number of loops enclosing the current statement.
	loopDepth int
}

// Check type checks the given program.  After a successful check every
// expression carries a concrete (non-placeholder) type.
func Check(prog *ast.Program) (err error) {
	defer report.CatchError(&err)

	w := &Walker{}

	var mainFn *ast.FuncDecl
	for _, fn := range prog.Funcs {
		if fn.Name == "main" {
			mainFn = fn
		}

		w.walkFuncDecl(fn)
	}

	// Exactly one top-level `main` returning int with no parameters must
	// exist.  Duplicates are already rejected by the resolver.
	if mainFn == nil {
		w.error(nil, report.ErrNoMain, "Program must define main function")
	}

	if !types.Equals(mainFn.ReturnType, types.I32) {
		w.error(mainFn.Span(), report.ErrNoMain, "main must return int")
	}

	if len(mainFn.Params) != 0 {
		w.error(mainFn.Span(), report.ErrNoMain, "main takes no parameters")
	}

	return nil
}

// -----------------------------------------------------------------------------

// walkFuncDecl walks a function declaration.
func (w *Walker) walkFuncDecl(fn *ast.FuncDecl) {
	w.enclosingReturnType = fn.ReturnType
	w.loopDepth = 0

	w.walkStmt(fn.Body)

	// A non-void function must return on every terminating path.  The
	// syntactic approximation: its body must end with a return statement.
	if !types.IsVoid(fn.ReturnType) && !endsWithReturn(fn.Body) {
		w.error(fn.Span(), report.ErrMissingReturn, "Non-void function must return a value")
	}
}

// endsWithReturn reports whether a statement's final reachable statement is
// syntactically a return.
func endsWithReturn(stmt ast.Stmt) bool {
	switch v := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.Block:
		return len(v.Stmts) > 0 && endsWithReturn(v.Stmts[len(v.Stmts)-1])
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// error raises a compile error that aborts checking.
func (w *Walker) error(span *report.TextSpan, kind report.ErrorKind, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}
