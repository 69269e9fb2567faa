package depm

import (
	"testing"

	"github.com/nalgeon/be"

	"nanoc/common"
	"nanoc/types"
)

func TestNewSymbolTableOpensGlobalScope(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st != nil)
	be.Equal(t, st.CurrentDepth(), 0)
}

func TestDeclareAndLookup(t *testing.T) {
	st := NewSymbolTable()

	sym, ok := st.Declare("x", common.SymVariable)
	be.True(t, ok)
	be.Equal(t, sym.Name, "x")
	be.Equal(t, sym.Depth, 0)
	be.Equal(t, sym.Kind, common.SymVariable)
	be.True(t, types.IsUnknown(sym.Type))

	found := st.Lookup("x")
	be.True(t, found == sym)
}

func TestDeclareDuplicateFails(t *testing.T) {
	st := NewSymbolTable()

	_, ok := st.Declare("x", common.SymVariable)
	be.True(t, ok)

	_, ok = st.Declare("x", common.SymVariable)
	be.True(t, !ok)
}

func TestLookupMissingReturnsNil(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st.Lookup("nope") == nil)
}

func TestShadowingFindsInnermost(t *testing.T) {
	st := NewSymbolTable()

	outer, _ := st.Declare("x", common.SymVariable)
	st.EnterScope()
	inner, _ := st.Declare("x", common.SymVariable)

	be.Equal(t, inner.Depth, 1)
	be.True(t, st.Lookup("x") == inner)

	st.ExitScope()
	be.True(t, st.Lookup("x") == outer)
}

func TestIsDeclaredInCurrentScope(t *testing.T) {
	st := NewSymbolTable()

	st.Declare("x", common.SymVariable)
	st.EnterScope()

	be.True(t, !st.IsDeclaredInCurrentScope("x"))
	be.True(t, st.Lookup("x") != nil)

	st.Declare("x", common.SymVariable)
	be.True(t, st.IsDeclaredInCurrentScope("x"))
}

func TestGlobalScopeIsNeverPopped(t *testing.T) {
	st := NewSymbolTable()

	st.Declare("f", common.SymFunction)
	st.ExitScope()
	st.ExitScope()

	be.Equal(t, st.CurrentDepth(), 0)
	be.True(t, st.Lookup("f") != nil)
}
