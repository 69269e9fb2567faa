package walk

import (
	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// walkStmt type checks a single statement.
func (w *Walker) walkStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		for _, s := range v.Stmts {
			w.walkStmt(s)
		}
	case *ast.VarDecl:
		w.walkVarDecl(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.PrintStmt:
		w.walkPrintStmt(v)
	case *ast.IfStmt:
		w.walkCond(v.Cond, "If condition must be bool or int")
		w.walkStmt(v.Then)
		if v.Else != nil {
			w.walkStmt(v.Else)
		}
	case *ast.WhileLoop:
		w.walkCond(v.Cond, "While condition must be bool or int")

		w.loopDepth++
		w.walkStmt(v.Body)
		w.loopDepth--
	case *ast.ForLoop:
		// For loops are desugared away before checking in the standard
		// pipeline; walking them keeps the checker total over the tree.
		if v.Init != nil {
			w.walkStmt(v.Init)
		}
		if v.Cond != nil {
			w.walkCond(v.Cond, "For condition must be bool or int")
		}
		if v.Post != nil {
			w.walkExpr(v.Post)
		}

		w.loopDepth++
		w.walkStmt(v.Body)
		w.loopDepth--
	case *ast.ReturnStmt:
		w.walkReturnStmt(v)
	case *ast.BreakStmt:
		if w.loopDepth == 0 {
			w.error(v.Span(), report.ErrParse, "cannot use break outside a loop")
		}
	case *ast.ContinueStmt:
		if w.loopDepth == 0 {
			w.error(v.Span(), report.ErrParse, "cannot use continue outside a loop")
		}
	default:
		panic(report.RaiseICE("unknown statement in checking: %T", stmt))
	}
}

// walkVarDecl type checks a variable declaration.  Declarations synthesized
// by the normalization passes carry the placeholder type; their type is
// inferred from the initializer.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	if vd.Initializer == nil {
		if types.IsUnknown(vd.DeclType) {
			panic(report.RaiseICE("variable '%s' has neither type nor initializer", vd.Name))
		}

		return
	}

	initType := w.walkExpr(vd.Initializer)

	if types.IsUnknown(vd.DeclType) {
		vd.DeclType = initType
		if vd.Sym != nil {
			vd.Sym.Type = initType
		}

		return
	}

	if !types.IsAssignable(vd.DeclType, initType) {
		w.error(vd.Span(), report.ErrTypeMismatch, "Type mismatch in variable declaration")
	}
}

// walkPrintStmt type checks a print statement.  Print accepts integer,
// floating, boolean, and string operands.
func (w *Walker) walkPrintStmt(ps *ast.PrintStmt) {
	t := w.walkExpr(ps.Value)

	switch t.(type) {
	case types.IntType, types.FloatType, types.BoolType, types.StringType:
	default:
		w.error(ps.Span(), report.ErrTypeMismatch, "cannot print a value of type %s", t.Repr())
	}
}

// walkReturnStmt type checks a return statement against the enclosing
// function's return type.
func (w *Walker) walkReturnStmt(rs *ast.ReturnStmt) {
	if rs.Value == nil {
		if !types.IsVoid(w.enclosingReturnType) {
			w.error(rs.Span(), report.ErrReturnTypeMismatch, "Return value required")
		}

		return
	}

	valueType := w.walkExpr(rs.Value)

	if types.IsVoid(w.enclosingReturnType) {
		w.error(rs.Span(), report.ErrReturnTypeMismatch, "void function cannot return a value")
	}

	if !types.IsAssignable(w.enclosingReturnType, valueType) {
		w.error(rs.Span(), report.ErrReturnTypeMismatch, "Return type mismatch")
	}
}

// walkCond type checks a condition expression, which must be a boolean or an
// integer treated as zero/nonzero.
func (w *Walker) walkCond(cond ast.Expr, msg string) {
	if !types.IsCondition(w.walkExpr(cond)) {
		w.error(cond.Span(), report.ErrNonBoolean, msg)
	}
}
