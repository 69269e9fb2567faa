package codegen

import (
	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// generateStmts generates a statement list into the current block, stopping
// once a statement terminates it.
func (g *Generator) generateStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if g.block.Term != nil {
			return
		}

		g.generateStmt(stmt)
	}
}

func (g *Generator) generateStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		g.pushScope()
		g.generateStmts(v.Stmts)
		g.popScope()
	case *ast.VarDecl:
		g.generateVarDecl(v)
	case *ast.ExprStmt:
		g.generateExprStmt(v)
	case *ast.PrintStmt:
		g.generatePrint(v)
	case *ast.IfStmt:
		g.generateIf(v)
	case *ast.WhileLoop:
		g.generateWhile(v)
	case *ast.ReturnStmt:
		if v.Value == nil {
			g.block.NewRet(nil)
			return
		}

		val := g.coerce(g.generateExpr(v.Value), v.Value.Type(), g.fnRet)
		g.block.NewRet(val)
	case *ast.BreakStmt:
		g.block.NewBr(g.loops[len(g.loops)-1].end)
	case *ast.ContinueStmt:
		g.block.NewBr(g.loops[len(g.loops)-1].cond)
	default:
		panic(report.RaiseICE("unknown statement in generation: %T", stmt))
	}
}

// generateVarDecl allocates a stack slot for a variable and stores its
// initializer, if any.
func (g *Generator) generateVarDecl(vd *ast.VarDecl) {
	slot := g.block.NewAlloca(g.llType(vd.DeclType))
	g.bind(vd.Name, variable{ptr: slot, typ: vd.DeclType})

	if vd.Initializer != nil {
		val := g.coerce(g.generateExpr(vd.Initializer), vd.Initializer.Type(), vd.DeclType)
		g.block.NewStore(val, slot)
	}
}

// generateExprStmt generates an expression statement for effect.
func (g *Generator) generateExprStmt(es *ast.ExprStmt) {
	g.generateExpr(es.Expr)
}

// generatePrint generates a printf call routed on the operand type.
func (g *Generator) generatePrint(ps *ast.PrintStmt) {
	val := g.generateExpr(ps.Value)

	switch t := ps.Value.Type().(type) {
	case types.StringType:
		g.block.NewCall(g.printf, g.internString("%s\n"), val)
	case types.FloatType:
		if t.Bits < 64 {
			val = g.block.NewFPExt(val, g.llType(types.F64))
		}

		g.block.NewCall(g.printf, g.internString("%f\n"), val)
	case types.IntType:
		g.block.NewCall(g.printf, g.internString("%ld\n"), g.coerceInt(val, t, types.I64))
	case types.BoolType:
		g.block.NewCall(g.printf, g.internString("%ld\n"), g.coerceInt(val, types.I32, types.I64))
	default:
		panic(report.RaiseICE("unprintable type %s reached generation", t.Repr()))
	}
}

// generateIf generates an if statement.  The else branch is usually gone by
// now (the if/else split removes it), but the generator handles both shapes.
func (g *Generator) generateIf(is *ast.IfStmt) {
	cond := g.generateCond(is.Cond)

	thenBlock := g.newBlock("if.then")
	endBlock := g.newBlock("if.end")

	elseTarget := endBlock
	if is.Else != nil {
		elseTarget = g.newBlock("if.else")
	}

	g.block.NewCondBr(cond, thenBlock, elseTarget)

	g.block = thenBlock
	g.generateStmt(is.Then)
	if g.block.Term == nil {
		g.block.NewBr(endBlock)
	}

	if is.Else != nil {
		g.block = elseTarget
		g.generateStmt(is.Else)
		if g.block.Term == nil {
			g.block.NewBr(endBlock)
		}
	}

	g.block = endBlock
}

// generateWhile generates a while loop as a condition block, a body block,
// and an exit block.
func (g *Generator) generateWhile(wl *ast.WhileLoop) {
	condBlock := g.newBlock("while.cond")
	bodyBlock := g.newBlock("while.body")
	endBlock := g.newBlock("while.end")

	g.block.NewBr(condBlock)

	g.block = condBlock
	cond := g.generateCond(wl.Cond)
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.loops = append(g.loops, loopBlocks{cond: condBlock, end: endBlock})
	g.block = bodyBlock
	g.generateStmt(wl.Body)
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}
	g.loops = g.loops[:len(g.loops)-1]

	g.block = endBlock
}
