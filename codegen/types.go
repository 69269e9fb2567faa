package codegen

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"nanoc/report"
	"nanoc/types"
)

// llType maps a source type onto its LLVM representation.  Booleans are
// represented as 32-bit integers: the bool literal desugar has already
// lowered their values.
func (g *Generator) llType(t types.Type) lltypes.Type {
	switch v := t.(type) {
	case types.IntType:
		switch v.Bits {
		case 8:
			return lltypes.I8
		case 16:
			return lltypes.I16
		case 64:
			return lltypes.I64
		default:
			return lltypes.I32
		}
	case types.FloatType:
		if v.Bits == 64 {
			return lltypes.Double
		}

		return lltypes.Float
	case types.BoolType:
		return lltypes.I32
	case types.StringType:
		return lltypes.NewPointer(lltypes.I8)
	case *types.ArrayType:
		return lltypes.NewArray(uint64(v.Len), g.llType(v.Elem))
	case types.VoidType:
		return lltypes.Void
	default:
		panic(report.RaiseICE("type %s has no LLVM representation", t.Repr()))
	}
}

// zeroValue returns the zero constant of a source type.
func (g *Generator) zeroValue(t types.Type) constant.Constant {
	switch v := t.(type) {
	case types.IntType, types.BoolType:
		return constant.NewInt(g.llType(t).(*lltypes.IntType), 0)
	case types.FloatType:
		return constant.NewFloat(g.llType(t).(*lltypes.FloatType), 0)
	case types.StringType:
		return constant.NewNull(lltypes.NewPointer(lltypes.I8))
	case *types.ArrayType:
		return constant.NewZeroInitializer(g.llType(v))
	default:
		panic(report.RaiseICE("type %s has no zero value", t.Repr()))
	}
}

// coerce converts a value from one source type into another along the
// permitted implicit conversions: identity, integer widening into a
// floating-point target, and integers standing in for booleans.
func (g *Generator) coerce(v value.Value, from, to types.Type) value.Value {
	if types.Equals(from, to) {
		return v
	}

	if fi, ok := from.(types.IntType); ok {
		switch to.(type) {
		case types.FloatType:
			if fi.Unsigned {
				return g.block.NewUIToFP(v, g.llType(to))
			}

			return g.block.NewSIToFP(v, g.llType(to))
		case types.BoolType:
			return g.coerceInt(v, fi, types.I32)
		}
	}

	if _, ok := from.(types.BoolType); ok {
		if ti, ok := to.(types.IntType); ok {
			return g.coerceInt(v, types.I32, ti)
		}
	}

	panic(report.RaiseICE("no conversion from %s to %s", from.Repr(), to.Repr()))
}

// coerceArith converts a numeric operand onto the widened result type of an
// arithmetic or comparison operation.
func (g *Generator) coerceArith(v value.Value, from, to types.Type) value.Value {
	if types.Equals(from, to) {
		return v
	}

	fi, fromInt := from.(types.IntType)

	switch tv := to.(type) {
	case types.IntType:
		if !fromInt {
			break
		}

		if fi.Bits == tv.Bits {
			return v
		}

		if fi.Unsigned {
			return g.block.NewZExt(v, g.llType(to))
		}

		return g.block.NewSExt(v, g.llType(to))
	case types.FloatType:
		if fromInt {
			if fi.Unsigned {
				return g.block.NewUIToFP(v, g.llType(to))
			}

			return g.block.NewSIToFP(v, g.llType(to))
		}

		if ff, ok := from.(types.FloatType); ok && ff.Bits < tv.Bits {
			return g.block.NewFPExt(v, g.llType(to))
		}

		return v
	}

	panic(report.RaiseICE("no arithmetic conversion from %s to %s", from.Repr(), to.Repr()))
}

// coerceInt adjusts an integer value between integer widths.
func (g *Generator) coerceInt(v value.Value, from, to types.IntType) value.Value {
	if from.Bits == to.Bits {
		return v
	}

	if from.Bits > to.Bits {
		return g.block.NewTrunc(v, g.llType(to))
	}

	if from.Unsigned {
		return g.block.NewZExt(v, g.llType(to))
	}

	return g.block.NewSExt(v, g.llType(to))
}
