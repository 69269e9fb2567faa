package visualize

import (
	"fmt"
	"strings"

	"nanoc/ast"
)

// Graphviz renders a program's AST as a Graphviz digraph.  The output is
// meant for `dot -Tpng`; it is the CLI's `dot` emit mode.
type Graphviz struct {
	sb     strings.Builder
	nodeID int
}

// Draw renders the given program.
func Draw(prog *ast.Program) string {
	g := &Graphviz{}

	g.sb.WriteString("digraph AST {\n")
	g.sb.WriteString("node [shape=box];\n")

	for _, fn := range prog.Funcs {
		id := g.newNode(fmt.Sprintf("Function %s", fn.Name))
		g.drawStmt(fn.Body, id)
	}

	g.sb.WriteString("}\n")

	return g.sb.String()
}

// -----------------------------------------------------------------------------

func (g *Graphviz) drawStmt(stmt ast.Stmt, parent int) {
	switch v := stmt.(type) {
	case *ast.Block:
		id := g.link(parent, "Block")
		for _, s := range v.Stmts {
			g.drawStmt(s, id)
		}
	case *ast.VarDecl:
		id := g.link(parent, fmt.Sprintf("VarDecl %s", v.Name))
		if v.Initializer != nil {
			g.drawExpr(v.Initializer, id)
		}
	case *ast.ExprStmt:
		id := g.link(parent, "ExprStmt")
		g.drawExpr(v.Expr, id)
	case *ast.PrintStmt:
		id := g.link(parent, "Print")
		g.drawExpr(v.Value, id)
	case *ast.IfStmt:
		id := g.link(parent, "If")
		g.drawExpr(v.Cond, id)
		g.drawStmt(v.Then, id)
		if v.Else != nil {
			elseID := g.link(id, "Else")
			g.drawStmt(v.Else, elseID)
		}
	case *ast.WhileLoop:
		id := g.link(parent, "While")
		g.drawExpr(v.Cond, id)
		g.drawStmt(v.Body, id)
	case *ast.ForLoop:
		id := g.link(parent, "For")
		if v.Init != nil {
			g.drawStmt(v.Init, id)
		}
		if v.Cond != nil {
			g.drawExpr(v.Cond, id)
		}
		if v.Post != nil {
			g.drawExpr(v.Post, id)
		}
		g.drawStmt(v.Body, id)
	case *ast.ReturnStmt:
		id := g.link(parent, "Return")
		if v.Value != nil {
			g.drawExpr(v.Value, id)
		}
	case *ast.BreakStmt:
		g.link(parent, "Break")
	case *ast.ContinueStmt:
		g.link(parent, "Continue")
	}
}

func (g *Graphviz) drawExpr(expr ast.Expr, parent int) {
	switch v := expr.(type) {
	case *ast.NumberLit:
		if v.IsFloat {
			g.link(parent, fmt.Sprintf("Float(%g)", v.FloatValue))
		} else {
			g.link(parent, fmt.Sprintf("Int(%d)", v.IntValue))
		}
	case *ast.BoolLit:
		g.link(parent, fmt.Sprintf("Bool(%t)", v.Value))
	case *ast.StringLit:
		g.link(parent, fmt.Sprintf("String(%q)", v.Value))
	case *ast.Identifier:
		label := fmt.Sprintf("Var(%s)", v.Name)
		if v.Sym != nil {
			label = fmt.Sprintf("Var(%s, depth %d)", v.Name, v.Sym.Depth)
		}

		g.link(parent, label)
	case *ast.IndexExpr:
		id := g.link(parent, "Index")
		g.drawExpr(v.Array, id)
		g.drawExpr(v.Index, id)
	case *ast.UnaryOp:
		id := g.link(parent, fmt.Sprintf("Unary(%s)", v.Op))
		g.drawExpr(v.Operand, id)
	case *ast.BinaryOp:
		id := g.link(parent, fmt.Sprintf("Binary(%s)", v.Op))
		g.drawExpr(v.Lhs, id)
		g.drawExpr(v.Rhs, id)
	case *ast.CallExpr:
		id := g.link(parent, fmt.Sprintf("Call(%s)", v.Callee))
		for _, arg := range v.Args {
			g.drawExpr(arg, id)
		}
	}
}

// -----------------------------------------------------------------------------

// newNode emits a node with the given label and returns its id.
func (g *Graphviz) newNode(label string) int {
	id := g.nodeID
	g.nodeID++

	fmt.Fprintf(&g.sb, "n%d [label=%q];\n", id, label)
	return id
}

// link emits a node and an edge from its parent, returning the new node's id.
func (g *Graphviz) link(parent int, label string) int {
	id := g.newNode(label)
	fmt.Fprintf(&g.sb, "n%d -> n%d;\n", parent, id)

	return id
}
