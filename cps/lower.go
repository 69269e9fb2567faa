package cps

import (
	"fmt"
	"strconv"

	"nanoc/ast"
	"nanoc/report"
)

// Lowerer converts a normalized, resolved, type-checked program into the CPS
// IR.  The input must be in A-normal form: every operand it encounters must
// be an atom.  Result temporaries use the reserved `_k` prefix with a counter
// owned by the lowerer, so lowering the same input twice yields structurally
// identical IR.
type Lowerer struct {
	tempCounter int
	loopCounter int

	// loops is the stack of enclosing loop contexts.
	loops []loopCtx
}

// loopCtx records the continuation names of one enclosing loop.
type loopCtx struct {
	// head re-enters the loop; exit resumes after it.
	head, exit string
}

// Lower converts the program into a CPS module.
func Lower(prog *ast.Program) (mod *Module, err error) {
	defer report.CatchError(&err)

	l := &Lowerer{}
	mod = &Module{}

	for _, fn := range prog.Funcs {
		mod.Funcs = append(mod.Funcs, l.lowerFunction(fn))
	}

	return mod, nil
}

// -----------------------------------------------------------------------------

// lowerFunction lowers one function body with the top-level continuation.
func (l *Lowerer) lowerFunction(fn *ast.FuncDecl) *Func {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Name
	}

	tail := Expr(&Call{Func: HaltCont, Args: []string{"0"}})

	return &Func{
		Name:   fn.Name,
		Params: params,
		Body:   l.lowerStmts(fn.Body.Stmts, tail, HaltCont),
	}
}

// lowerStmts folds a statement list right-to-left, threading each statement's
// CPS result as the continuation of the previous one.
func (l *Lowerer) lowerStmts(stmts []ast.Stmt, tail Expr, k string) Expr {
	cur := tail
	for i := len(stmts) - 1; i >= 0; i-- {
		cur = l.lowerStmt(stmts[i], cur, k)
	}

	return cur
}

// lowerStmt lowers one statement.  `rest` is the CPS expression that follows
// the statement; `k` is the enclosing continuation name.
func (l *Lowerer) lowerStmt(stmt ast.Stmt, rest Expr, k string) Expr {
	switch v := stmt.(type) {
	case *ast.Block:
		return l.lowerStmts(v.Stmts, rest, k)
	case *ast.VarDecl:
		if v.Initializer == nil {
			return rest
		}

		return l.lowerBind(v.Name, v.Initializer, rest)
	case *ast.ExprStmt:
		return l.lowerExprStmt(v.Expr, rest)
	case *ast.PrintStmt:
		return &Let{
			Var:  l.newTemp(),
			Rhs:  &Call{Func: "_print", Args: []string{atomName(v.Value)}},
			Body: rest,
		}
	case *ast.ReturnStmt:
		if v.Value == nil {
			return &Return{Value: "0"}
		}

		return &Return{Value: atomName(v.Value)}
	case *ast.IfStmt:
		if v.Else != nil {
			return &If{
				Cond: atomName(v.Cond),
				Then: l.lowerStmt(v.Then, rest, k),
				Else: l.lowerStmt(v.Else, rest, k),
			}
		}

		return &If{
			Cond: atomName(v.Cond),
			Then: l.lowerStmt(v.Then, rest, k),
			Else: rest,
		}
	case *ast.WhileLoop:
		return l.lowerWhile(v, rest, k)
	case *ast.BreakStmt:
		if len(l.loops) == 0 {
			panic(report.RaiseICE("break outside a loop reached lowering"))
		}

		return &Call{Func: l.loops[len(l.loops)-1].exit, Args: []string{"0"}}
	case *ast.ContinueStmt:
		if len(l.loops) == 0 {
			panic(report.RaiseICE("continue outside a loop reached lowering"))
		}

		return &Call{Func: l.loops[len(l.loops)-1].head, Args: []string{"0"}}
	default:
		panic(report.RaiseICE("unknown statement in lowering: %T", stmt))
	}
}

// lowerWhile lowers a while loop.  The loop header and exit become
// distinguished continuation names: re-entering the loop is a call to the
// header, leaving it is a call to the exit, and the branch on the (already
// atomic) condition selects between the body and the code after the loop.
func (l *Lowerer) lowerWhile(loop *ast.WhileLoop, rest Expr, k string) Expr {
	ctx := loopCtx{
		head: fmt.Sprintf("%s%d", LoopContPrefix, l.loopCounter),
		exit: fmt.Sprintf("%s%d", BreakContPrefix, l.loopCounter),
	}
	l.loopCounter++

	l.loops = append(l.loops, ctx)
	body := l.lowerStmt(loop.Body, &Call{Func: ctx.head, Args: []string{"0"}}, k)
	l.loops = l.loops[:len(l.loops)-1]

	return &If{
		Cond: atomName(loop.Cond),
		Then: body,
		Else: rest,
	}
}

// lowerExprStmt lowers an expression statement.  Assignments to a variable
// pass through to their right-hand side: the store of the left-hand side is
// the backend's concern.  An assignment to an array element lowers to a
// `_store` call.  An atomic expression statement has no effect and lowers to
// the rest of the computation.
func (l *Lowerer) lowerExprStmt(expr ast.Expr, rest Expr) Expr {
	if assign, ok := expr.(*ast.BinaryOp); ok && assign.Op == "=" {
		switch lhs := assign.Lhs.(type) {
		case *ast.Identifier:
			return l.lowerBind(lhs.Name, assign.Rhs, rest)
		case *ast.IndexExpr:
			return &Let{
				Var: l.newTemp(),
				Rhs: &Call{
					Func: "_store",
					Args: []string{atomName(lhs.Array), atomName(lhs.Index), atomName(assign.Rhs)},
				},
				Body: rest,
			}
		default:
			panic(report.RaiseICE("assignment target survived desugaring: %T", assign.Lhs))
		}
	}

	if isAtom(expr) {
		return rest
	}

	return &Let{Var: l.newTemp(), Rhs: l.callFor(expr), Body: rest}
}

// lowerBind lowers `name = rhs`.  A compound right-hand side becomes a Let of
// the primitive application; an atomic right-hand side is left for the store
// pass.
func (l *Lowerer) lowerBind(name string, rhs ast.Expr, rest Expr) Expr {
	if isAtom(rhs) {
		return rest
	}

	return &Let{Var: name, Rhs: l.callFor(rhs), Body: rest}
}

// callFor renders a single-level compound expression as a primitive
// application over atoms.
func (l *Lowerer) callFor(expr ast.Expr) Expr {
	switch v := expr.(type) {
	case *ast.BinaryOp:
		return &Call{Func: v.Op, Args: []string{atomName(v.Lhs), atomName(v.Rhs)}}
	case *ast.UnaryOp:
		switch v.Op {
		case "-":
			return &Call{Func: "neg", Args: []string{atomName(v.Operand)}}
		case "!":
			return &Call{Func: "not", Args: []string{atomName(v.Operand)}}
		default:
			panic(report.RaiseICE("operator '%s' survived desugaring", v.Op))
		}
	case *ast.CallExpr:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = atomName(arg)
		}

		return &Call{Func: v.Callee, Args: args}
	case *ast.IndexExpr:
		return &Call{Func: "_load", Args: []string{atomName(v.Array), atomName(v.Index)}}
	default:
		panic(report.RaiseICE("unknown expression in lowering: %T", expr))
	}
}

func (l *Lowerer) newTemp() string {
	name := fmt.Sprintf("_k%d", l.tempCounter)
	l.tempCounter++

	return name
}

// -----------------------------------------------------------------------------

// isAtom reports whether an expression is an atom: a literal or a variable.
func isAtom(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.NumberLit, *ast.BoolLit, *ast.StringLit, *ast.Identifier:
		return true
	default:
		return false
	}
}

// atomName renders an atom as its textual form.  A compound expression here
// means a normalization invariant was violated upstream.
func atomName(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.NumberLit:
		if v.IsFloat {
			return strconv.FormatFloat(v.FloatValue, 'g', -1, 64)
		}

		return strconv.FormatInt(v.IntValue, 10)
	case *ast.BoolLit:
		if v.Value {
			return "1"
		}

		return "0"
	case *ast.StringLit:
		return strconv.Quote(v.Value)
	default:
		panic(report.RaiseICE("expected an atom, found %T", expr))
	}
}
