package common

import (
	"nanoc/report"
	"nanoc/types"
)

// SymbolKind indicates what sort of declaration a symbol corresponds to.
type SymbolKind int

// Enumeration of symbol kinds.
const (
	SymVariable SymbolKind = iota
	SymFunction
)

// Symbol represents the resolved identity of a name: its kind, declared type,
// and declaration scope.  Symbols are owned by the symbol table; AST nodes
// hold non-owning references that remain valid for all passes after scope
// resolution.
type Symbol struct {
	// The name of the symbol.
	Name string

	// The kind of the symbol.
	Kind SymbolKind

	// The scope nesting level at which the symbol was declared.  The global
	// scope is depth 0.
	Depth int

	// The declared type of the symbol.  For functions, this is the return
	// type; the parameter types are stored separately.
	Type types.Type

	// The parameter types of a function symbol, in declaration order.
	ParamTypes []types.Type

	// The span of the identifier that declared the symbol.
	DefSpan *report.TextSpan
}
