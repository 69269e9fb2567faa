package walk

import (
	"nanoc/ast"
	"nanoc/common"
	"nanoc/report"
	"nanoc/types"
)

// walkExpr type checks an expression post-order, stores the resulting type on
// the node, and returns it.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	var t types.Type

	switch v := expr.(type) {
	case *ast.NumberLit:
		if v.IsFloat {
			t = types.F64
		} else {
			t = types.I32
		}
	case *ast.BoolLit:
		t = types.Bool
	case *ast.StringLit:
		t = types.String
	case *ast.Identifier:
		if v.Sym == nil {
			panic(report.RaiseICE("unresolved variable '%s' reached checking", v.Name))
		}

		if v.Sym.Kind == common.SymFunction {
			w.error(v.Span(), report.ErrTypeMismatch, "function '%s' used as a value", v.Name)
		}

		t = v.Sym.Type
	case *ast.IndexExpr:
		t = w.walkIndexExpr(v)
	case *ast.UnaryOp:
		t = w.walkUnaryOp(v)
	case *ast.BinaryOp:
		t = w.walkBinaryOp(v)
	case *ast.CallExpr:
		t = w.walkCallExpr(v)
	default:
		panic(report.RaiseICE("unknown expression in checking: %T", expr))
	}

	expr.SetType(t)
	return t
}

// walkIndexExpr type checks an array subscript.
func (w *Walker) walkIndexExpr(idx *ast.IndexExpr) types.Type {
	arrType := w.walkExpr(idx.Array)
	indexType := w.walkExpr(idx.Index)

	at, ok := arrType.(*types.ArrayType)
	if !ok {
		w.error(idx.Span(), report.ErrTypeMismatch, "Subscripted value is not an array")
	}

	if !types.IsInteger(indexType) {
		w.error(idx.Index.Span(), report.ErrTypeMismatch, "Array index must be integer")
	}

	return at.Elem
}

// walkUnaryOp type checks a unary operator application.
func (w *Walker) walkUnaryOp(uop *ast.UnaryOp) types.Type {
	operandType := w.walkExpr(uop.Operand)

	switch uop.Op {
	case "!":
		if !types.IsCondition(operandType) {
			w.error(uop.Span(), report.ErrNonBoolean, "'!' expects bool or int")
		}

		return types.Bool
	case "-":
		if !types.IsNumeric(operandType) {
			w.error(uop.Span(), report.ErrNonNumeric, "Unary '-' expects numeric")
		}

		return operandType
	default:
		panic(report.RaiseICE("operator '%s' survived desugaring", uop.Op))
	}
}

// walkBinaryOp type checks a binary operator application.
func (w *Walker) walkBinaryOp(bop *ast.BinaryOp) types.Type {
	if bop.Op == "=" {
		return w.walkAssign(bop)
	}

	lhsType := w.walkExpr(bop.Lhs)
	rhsType := w.walkExpr(bop.Rhs)

	switch bop.Op {
	case "+", "-", "*", "/", "%":
		if !types.IsNumeric(lhsType) || !types.IsNumeric(rhsType) {
			w.error(bop.Span(), report.ErrNonNumeric, "Arithmetic requires numeric operands")
		}

		if bop.Op == "%" && !(types.IsInteger(lhsType) && types.IsInteger(rhsType)) {
			w.error(bop.Span(), report.ErrNonNumeric, "'%%' requires integer operands")
		}

		return types.Widen(lhsType, rhsType)
	case "<", "<=", ">", ">=":
		if !types.IsNumeric(lhsType) || !types.IsNumeric(rhsType) {
			w.error(bop.Span(), report.ErrNonNumeric, "Comparison requires numeric operands")
		}

		return types.Bool
	case "==", "!=":
		// Operands must agree after numeric widening; booleans compare with
		// integers since the short-circuit temporaries are integers.
		comparable := types.Equals(lhsType, rhsType) ||
			(types.IsNumeric(lhsType) && types.IsNumeric(rhsType)) ||
			(types.IsCondition(lhsType) && types.IsCondition(rhsType))
		if !comparable {
			w.error(bop.Span(), report.ErrTypeMismatch, "Equality requires operands of the same type")
		}

		return types.Bool
	case "&&", "||":
		if !types.IsCondition(lhsType) || !types.IsCondition(rhsType) {
			w.error(bop.Span(), report.ErrNonBoolean, "Logical operator expects bool or int operands")
		}

		return types.Bool
	default:
		panic(report.RaiseICE("operator '%s' survived desugaring", bop.Op))
	}
}

// walkAssign type checks an assignment.
func (w *Walker) walkAssign(assign *ast.BinaryOp) types.Type {
	switch assign.Lhs.(type) {
	case *ast.Identifier, *ast.IndexExpr:
	default:
		w.error(assign.Span(), report.ErrInvalidAssignTarget, "Invalid assignment target")
	}

	lhsType := w.walkExpr(assign.Lhs)
	rhsType := w.walkExpr(assign.Rhs)

	if !types.IsAssignable(lhsType, rhsType) {
		w.error(assign.Span(), report.ErrTypeMismatch, "Assignment type mismatch")
	}

	return lhsType
}

// walkCallExpr type checks a function call against the callee's signature.
func (w *Walker) walkCallExpr(call *ast.CallExpr) types.Type {
	if call.Sym == nil || call.Sym.Kind != common.SymFunction {
		panic(report.RaiseICE("unresolved call to '%s' reached checking", call.Callee))
	}

	if len(call.Args) != len(call.Sym.ParamTypes) {
		w.error(call.Span(), report.ErrBadArgumentCount, "Incorrect number of arguments to '%s'", call.Callee)
	}

	for i, arg := range call.Args {
		argType := w.walkExpr(arg)

		if !types.IsAssignable(call.Sym.ParamTypes[i], argType) {
			w.error(arg.Span(), report.ErrTypeMismatch, "Argument type mismatch")
		}
	}

	return call.Sym.Type
}
