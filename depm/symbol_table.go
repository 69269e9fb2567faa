package depm

import (
	"nanoc/common"
	"nanoc/types"
)

// SymbolTable is the stack of scopes used during scope resolution.  Each
// scope is a unique-key mapping from name to symbol.  A fresh table begins
// with one open scope, the global scope, which is never popped.
type SymbolTable struct {
	scopes []map[string]*common.Symbol
}

// NewSymbolTable creates a new symbol table with the global scope open.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]*common.Symbol{make(map[string]*common.Symbol)}}
}

// -----------------------------------------------------------------------------

// EnterScope pushes a new scope onto the scope stack.
func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, make(map[string]*common.Symbol))
}

// ExitScope pops the top scope from the scope stack.  The global scope is
// never popped.
func (st *SymbolTable) ExitScope() {
	if len(st.scopes) == 1 {
		return
	}

	st.scopes = st.scopes[:len(st.scopes)-1]
}

// CurrentDepth returns the nesting depth of the current scope.  The global
// scope is depth 0.
func (st *SymbolTable) CurrentDepth() int {
	return len(st.scopes) - 1
}

// -----------------------------------------------------------------------------

// Declare inserts a new symbol into the top scope.  It returns the inserted
// symbol and whether the insertion succeeded: declaration fails if the name
// already exists in the top scope.
func (st *SymbolTable) Declare(name string, kind common.SymbolKind) (*common.Symbol, bool) {
	scope := st.scopes[len(st.scopes)-1]

	if _, ok := scope[name]; ok {
		return nil, false
	}

	sym := &common.Symbol{
		Name:  name,
		Kind:  kind,
		Depth: st.CurrentDepth(),
		Type:  types.Unknown,
	}
	scope[name] = sym

	return sym, true
}

// Lookup searches the scope stack top-down and returns the innermost symbol
// matching the given name, or nil if no scope declares it.
func (st *SymbolTable) Lookup(name string) *common.Symbol {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i][name]; ok {
			return sym
		}
	}

	return nil
}

// IsDeclaredInCurrentScope returns whether the given name is declared in the
// top scope specifically.
func (st *SymbolTable) IsDeclaredInCurrentScope(name string) bool {
	_, ok := st.scopes[len(st.scopes)-1][name]
	return ok
}
