package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestEqualsScalars(t *testing.T) {
	be.True(t, Equals(I32, IntType{Bits: 32}))
	be.True(t, !Equals(I32, I64))
	be.True(t, !Equals(I32, IntType{Bits: 32, Unsigned: true}))
	be.True(t, !Equals(I32, F32))
	be.True(t, Equals(Bool, BoolType{}))
	be.True(t, !Equals(Bool, I32))
	be.True(t, Equals(Void, VoidType{}))
}

func TestEqualsNested(t *testing.T) {
	a := &ArrayType{Elem: I32, Len: 4}
	b := &ArrayType{Elem: I32, Len: 4}
	c := &ArrayType{Elem: I64, Len: 4}
	d := &ArrayType{Elem: I32, Len: 5}

	be.True(t, Equals(a, b))
	be.True(t, !Equals(a, c))
	be.True(t, !Equals(a, d))

	f1 := &FuncType{ParamTypes: []Type{I32, a}, ReturnType: Void}
	f2 := &FuncType{ParamTypes: []Type{I32, b}, ReturnType: Void}
	f3 := &FuncType{ParamTypes: []Type{I32}, ReturnType: Void}

	be.True(t, Equals(f1, f2))
	be.True(t, !Equals(f1, f3))
}

func TestCloneIsDeep(t *testing.T) {
	arr := &ArrayType{Elem: &ArrayType{Elem: I32, Len: 2}, Len: 3}
	cloned := arr.Clone().(*ArrayType)

	be.True(t, Equals(arr, cloned))

	cloned.Elem.(*ArrayType).Len = 9
	be.True(t, !Equals(arr, cloned))
	be.Equal(t, arr.Elem.(*ArrayType).Len, 2)
}

func TestIsNumeric(t *testing.T) {
	be.True(t, IsNumeric(I8))
	be.True(t, IsNumeric(F64))
	be.True(t, !IsNumeric(Bool))
	be.True(t, !IsNumeric(String))
	be.True(t, !IsNumeric(&ArrayType{Elem: I32, Len: 1}))
}

func TestIsAssignable(t *testing.T) {
	// Structural equality assigns.
	be.True(t, IsAssignable(I32, I32))
	be.True(t, IsAssignable(F64, F64))

	// Integers widen into floating targets, never the reverse.
	be.True(t, IsAssignable(F64, I32))
	be.True(t, IsAssignable(F32, I64))
	be.True(t, !IsAssignable(I32, F64))

	// Bool targets accept integers since bool literals lower to integers.
	be.True(t, IsAssignable(Bool, I32))
	be.True(t, !IsAssignable(I32, Bool))

	// Mismatched widths do not assign.
	be.True(t, !IsAssignable(I32, I64))
	be.True(t, !IsAssignable(String, I32))
}

func TestWiden(t *testing.T) {
	be.Equal(t, Widen(I32, I32).(IntType).Bits, 32)
	be.Equal(t, Widen(I32, I64).(IntType).Bits, 64)
	be.True(t, IsFloating(Widen(I32, F32)))
	be.Equal(t, Widen(F32, F64).(FloatType).Bits, 64)
	be.Equal(t, Widen(I64, F32).(FloatType).Bits, 64)
}
