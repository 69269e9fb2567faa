package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// generateExpr generates an expression.  The produced value's LLVM type is
// always the representation of the expression's checked type.
func (g *Generator) generateExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.NumberLit:
		if v.IsFloat {
			return constant.NewFloat(g.llType(v.Type()).(*lltypes.FloatType), v.FloatValue)
		}

		return constant.NewInt(g.llType(v.Type()).(*lltypes.IntType), v.IntValue)
	case *ast.StringLit:
		return g.internString(v.Value)
	case *ast.Identifier:
		slot := g.lookupVar(v.Name)
		return g.block.NewLoad(g.llType(slot.typ), slot.ptr)
	case *ast.IndexExpr:
		elemPtr, elemType := g.generateIndexAddr(v)
		return g.block.NewLoad(g.llType(elemType), elemPtr)
	case *ast.UnaryOp:
		return g.generateUnaryOp(v)
	case *ast.BinaryOp:
		return g.generateBinaryOp(v)
	case *ast.CallExpr:
		args := make([]value.Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = g.coerce(g.generateExpr(arg), arg.Type(), v.Sym.ParamTypes[i])
		}

		return g.block.NewCall(g.funcs[v.Callee], args...)
	default:
		panic(report.RaiseICE("unknown expression in generation: %T", expr))
	}
}

// generateUnaryOp generates a unary operator application.
func (g *Generator) generateUnaryOp(uop *ast.UnaryOp) value.Value {
	operand := g.generateExpr(uop.Operand)

	switch uop.Op {
	case "-":
		if types.IsFloating(uop.Operand.Type()) {
			return g.block.NewFNeg(operand)
		}

		zero := constant.NewInt(g.llType(uop.Operand.Type()).(*lltypes.IntType), 0)
		return g.block.NewSub(zero, operand)
	case "!":
		isZero := g.block.NewICmp(enum.IPredEQ, operand,
			constant.NewInt(operand.Type().(*lltypes.IntType), 0))
		return g.block.NewZExt(isZero, lltypes.I32)
	default:
		panic(report.RaiseICE("operator '%s' survived desugaring", uop.Op))
	}
}

// generateBinaryOp generates an arithmetic, comparison, or equality operator
// application over operands widened onto a common numeric type.
func (g *Generator) generateBinaryOp(bop *ast.BinaryOp) value.Value {
	lhsType, rhsType := bop.Lhs.Type(), bop.Rhs.Type()

	switch bop.Op {
	case "=":
		return g.generateAssign(bop)
	case "+", "-", "*", "/", "%":
		common := bop.Type()
		lhs := g.coerceArith(g.generateExpr(bop.Lhs), lhsType, common)
		rhs := g.coerceArith(g.generateExpr(bop.Rhs), rhsType, common)

		return g.generateArith(bop.Op, lhs, rhs, common)
	case "<", "<=", ">", ">=", "==", "!=":
		common := comparisonType(lhsType, rhsType)
		lhs := g.coerceArith(g.generateExpr(bop.Lhs), lhsType, common)
		rhs := g.coerceArith(g.generateExpr(bop.Rhs), rhsType, common)

		return g.generateCompare(bop.Op, lhs, rhs, common)
	default:
		panic(report.RaiseICE("operator '%s' survived desugaring", bop.Op))
	}
}

func (g *Generator) generateArith(op string, lhs, rhs value.Value, t types.Type) value.Value {
	if types.IsFloating(t) {
		switch op {
		case "+":
			return g.block.NewFAdd(lhs, rhs)
		case "-":
			return g.block.NewFSub(lhs, rhs)
		case "*":
			return g.block.NewFMul(lhs, rhs)
		default:
			return g.block.NewFDiv(lhs, rhs)
		}
	}

	unsigned := t.(types.IntType).Unsigned

	switch op {
	case "+":
		return g.block.NewAdd(lhs, rhs)
	case "-":
		return g.block.NewSub(lhs, rhs)
	case "*":
		return g.block.NewMul(lhs, rhs)
	case "/":
		if unsigned {
			return g.block.NewUDiv(lhs, rhs)
		}

		return g.block.NewSDiv(lhs, rhs)
	default:
		if unsigned {
			return g.block.NewURem(lhs, rhs)
		}

		return g.block.NewSRem(lhs, rhs)
	}
}

func (g *Generator) generateCompare(op string, lhs, rhs value.Value, t types.Type) value.Value {
	var bit value.Value

	if types.IsFloating(t) {
		preds := map[string]enum.FPred{
			"<": enum.FPredOLT, "<=": enum.FPredOLE,
			">": enum.FPredOGT, ">=": enum.FPredOGE,
			"==": enum.FPredOEQ, "!=": enum.FPredONE,
		}
		bit = g.block.NewFCmp(preds[op], lhs, rhs)
	} else if it, ok := t.(types.IntType); ok && it.Unsigned {
		preds := map[string]enum.IPred{
			"<": enum.IPredULT, "<=": enum.IPredULE,
			">": enum.IPredUGT, ">=": enum.IPredUGE,
			"==": enum.IPredEQ, "!=": enum.IPredNE,
		}
		bit = g.block.NewICmp(preds[op], lhs, rhs)
	} else {
		preds := map[string]enum.IPred{
			"<": enum.IPredSLT, "<=": enum.IPredSLE,
			">": enum.IPredSGT, ">=": enum.IPredSGE,
			"==": enum.IPredEQ, "!=": enum.IPredNE,
		}
		bit = g.block.NewICmp(preds[op], lhs, rhs)
	}

	// Comparison results carry the boolean type, represented as i32.
	return g.block.NewZExt(bit, lltypes.I32)
}

// comparisonType picks the common operand type of a comparison: the widened
// numeric type when both operands are numeric, the shared type otherwise.
// Booleans compare as 32-bit integers.
func comparisonType(lhs, rhs types.Type) types.Type {
	l, r := lhs, rhs
	if types.IsBool(l) {
		l = types.I32
	}
	if types.IsBool(r) {
		r = types.I32
	}

	if types.IsNumeric(l) && types.IsNumeric(r) {
		return types.Widen(l, r)
	}

	return l
}

// generateAssign generates an assignment and yields the stored value.
func (g *Generator) generateAssign(assign *ast.BinaryOp) value.Value {
	switch lhs := assign.Lhs.(type) {
	case *ast.Identifier:
		slot := g.lookupVar(lhs.Name)
		val := g.coerce(g.generateExpr(assign.Rhs), assign.Rhs.Type(), slot.typ)
		g.block.NewStore(val, slot.ptr)

		return val
	case *ast.IndexExpr:
		elemPtr, elemType := g.generateIndexAddr(lhs)
		val := g.coerce(g.generateExpr(assign.Rhs), assign.Rhs.Type(), elemType)
		g.block.NewStore(val, elemPtr)

		return val
	default:
		panic(report.RaiseICE("assignment target survived desugaring: %T", assign.Lhs))
	}
}

// generateCond generates an expression as a branch condition: a single bit
// that is set when the value is nonzero.
func (g *Generator) generateCond(cond ast.Expr) value.Value {
	val := g.generateExpr(cond)

	if types.IsFloating(cond.Type()) {
		zero := constant.NewFloat(val.Type().(*lltypes.FloatType), 0)
		return g.block.NewFCmp(enum.FPredONE, val, zero)
	}

	zero := constant.NewInt(val.Type().(*lltypes.IntType), 0)
	return g.block.NewICmp(enum.IPredNE, val, zero)
}

// -----------------------------------------------------------------------------

// generateIndexAddr generates a bounds-checked address of an array element.
// An out-of-bounds index prints a diagnostic and returns the zero value of
// the enclosing function's return type.
func (g *Generator) generateIndexAddr(idx *ast.IndexExpr) (value.Value, types.Type) {
	arrIdent, ok := idx.Array.(*ast.Identifier)
	if !ok {
		panic(report.RaiseICE("array expression is not a variable: %T", idx.Array))
	}

	arr := g.lookupVar(arrIdent.Name)
	arrType, ok := arr.typ.(*types.ArrayType)
	if !ok {
		panic(report.RaiseICE("subscript of non-array '%s' reached generation", arrIdent.Name))
	}

	indexType := idx.Index.Type().(types.IntType)
	index := g.coerceInt(g.generateExpr(idx.Index), indexType, types.I64)

	// if (index < 0 || index >= len) { report and bail }
	length := constant.NewInt(lltypes.I64, int64(arrType.Len))
	nonNegative := g.block.NewICmp(enum.IPredSGE, index, constant.NewInt(lltypes.I64, 0))
	belowLength := g.block.NewICmp(enum.IPredSLT, index, length)
	inBounds := g.block.NewAnd(nonNegative, belowLength)

	okBlock := g.newBlock("idx.ok")
	oobBlock := g.newBlock("idx.oob")
	g.block.NewCondBr(inBounds, okBlock, oobBlock)

	g.block = oobBlock
	g.block.NewCall(g.printf, g.internString("Array index out of bounds\n"))
	g.generateZeroReturn()

	g.block = okBlock
	elemPtr := g.block.NewGetElementPtr(g.llType(arrType), arr.ptr,
		constant.NewInt(lltypes.I64, 0), index)

	return elemPtr, arrType.Elem
}
