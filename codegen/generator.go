package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// Generator is responsible for converting a desugared, resolved, and
// type-checked program into an LLVM module.  The module is built with the
// llir/llvm IR library and serialized as textual IR; assembling and linking
// are left to the external LLVM tools.
type Generator struct {
	// The LLVM module being generated.
	mod *ir.Module

	// The declared C printf function backing the print statement.
	printf *ir.Func

	// The LLVM functions of the program by source name.
	funcs map[string]*ir.Func

	// The function and block currently being generated.
	fn    *ir.Func
	fnRet types.Type
	block *ir.Block

	// The stack of local variable scopes.
	scopes []map[string]variable

	// The stack of enclosing loop targets for break/continue.
	loops []loopBlocks

	// Interned format/message string globals by content.
	strings map[string]*ir.Global

	strCounter   int
	blockCounter int
}

// variable is a stack slot bound to a source name.
type variable struct {
	ptr value.Value
	typ types.Type
}

// loopBlocks records the branch targets of one enclosing loop.
type loopBlocks struct {
	cond *ir.Block
	end  *ir.Block
}

// Generate converts the program into an LLVM module.
func Generate(prog *ast.Program) (mod *ir.Module, err error) {
	defer report.CatchError(&err)

	g := &Generator{
		mod:     ir.NewModule(),
		funcs:   make(map[string]*ir.Func),
		strings: make(map[string]*ir.Global),
	}

	g.printf = g.mod.NewFunc("printf", lltypes.I32,
		ir.NewParam("format", lltypes.NewPointer(lltypes.I8)))
	g.printf.Sig.Variadic = true

	// Declare every function up front so calls resolve regardless of
	// definition order.
	for _, fn := range prog.Funcs {
		g.declareFunction(fn)
	}

	for _, fn := range prog.Funcs {
		g.generateFunction(fn)
	}

	return g.mod, nil
}

// -----------------------------------------------------------------------------

// declareFunction creates the LLVM function for a source function.
func (g *Generator) declareFunction(fn *ast.FuncDecl) {
	params := make([]*ir.Param, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = ir.NewParam(param.Name, g.llType(param.Type))
	}

	g.funcs[fn.Name] = g.mod.NewFunc(fn.Name, g.llType(fn.ReturnType), params...)
}

// generateFunction generates a function body.  Every parameter gets a stack
// slot so that parameters and locals assign uniformly.
func (g *Generator) generateFunction(fn *ast.FuncDecl) {
	g.fn = g.funcs[fn.Name]
	g.fnRet = fn.ReturnType
	g.block = g.fn.NewBlock("entry")
	g.loops = nil

	g.pushScope()

	for i, param := range fn.Params {
		slot := g.block.NewAlloca(g.llType(param.Type))
		g.block.NewStore(g.fn.Params[i], slot)
		g.bind(param.Name, variable{ptr: slot, typ: param.Type})
	}

	g.generateStmts(fn.Body.Stmts)

	// A block left open falls off the end of the function: void functions
	// simply return, non-void functions return the zero value (the checker
	// already guarantees a syntactic return on the main path).
	if g.block.Term == nil {
		g.generateZeroReturn()
	}

	g.popScope()
}

// generateZeroReturn terminates the current block by returning the zero value
// of the enclosing function's return type.
func (g *Generator) generateZeroReturn() {
	if types.IsVoid(g.fnRet) {
		g.block.NewRet(nil)
		return
	}

	g.block.NewRet(g.zeroValue(g.fnRet))
}

// -----------------------------------------------------------------------------

// newBlock appends a fresh labeled block to the current function.
func (g *Generator) newBlock(label string) *ir.Block {
	block := g.fn.NewBlock(fmt.Sprintf("%s.%d", label, g.blockCounter))
	g.blockCounter++

	return block
}

// internString returns a pointer to a null-terminated global holding the
// given contents, creating the global on first use.
func (g *Generator) internString(contents string) value.Value {
	global, ok := g.strings[contents]
	if !ok {
		global = g.mod.NewGlobalDef(fmt.Sprintf(".str.%d", g.strCounter),
			constant.NewCharArrayFromString(contents+"\x00"))
		global.Immutable = true
		g.strings[contents] = global
		g.strCounter++
	}

	zero := constant.NewInt(lltypes.I64, 0)
	return constant.NewGetElementPtr(global.ContentType, global, zero, zero)
}

// -----------------------------------------------------------------------------

func (g *Generator) pushScope() {
	g.scopes = append(g.scopes, make(map[string]variable))
}

func (g *Generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

func (g *Generator) bind(name string, v variable) {
	g.scopes[len(g.scopes)-1][name] = v
}

// lookupVar finds the innermost stack slot bound to a name.
func (g *Generator) lookupVar(name string) variable {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if v, ok := g.scopes[i][name]; ok {
			return v
		}
	}

	panic(report.RaiseICE("no stack slot for variable '%s'", name))
}
