package resolve

import (
	"nanoc/ast"
	"nanoc/common"
	"nanoc/depm"
	"nanoc/report"
)

// Resolver binds every name use in a program to its declaration.  It walks
// the tree top-down with a fresh symbol table, entering a scope per block and
// failing fast on the first name error.
type Resolver struct {
	table *depm.SymbolTable
}

// Resolve resolves all names in the given program.  After a successful
// resolution every variable and call node carries a non-nil symbol reference.
func Resolve(prog *ast.Program) (err error) {
	defer report.CatchError(&err)

	r := &Resolver{table: depm.NewSymbolTable()}
	r.resolveProgram(prog)

	return nil
}

// -----------------------------------------------------------------------------

// resolveProgram resolves a whole program.  Function declarations are hoisted
// into the global scope by a pre-pass before any body is resolved, so that
// mutually recursive functions resolve regardless of source order.  Variable
// uses have no such forward references: a use before its declaration in the
// same block is an error.
func (r *Resolver) resolveProgram(prog *ast.Program) {
	for _, fn := range prog.Funcs {
		r.declareFunction(fn)
	}

	for _, fn := range prog.Funcs {
		r.resolveFunction(fn)
	}
}

// declareFunction hoists a function declaration into the global scope.
func (r *Resolver) declareFunction(fn *ast.FuncDecl) {
	if r.table.IsDeclaredInCurrentScope(fn.Name) {
		r.error(fn.Span(), report.ErrRedeclaration, "Redeclaration of function '%s'", fn.Name)
	}

	sym, _ := r.table.Declare(fn.Name, common.SymFunction)
	sym.Type = fn.ReturnType
	sym.DefSpan = fn.Span()

	for _, param := range fn.Params {
		sym.ParamTypes = append(sym.ParamTypes, param.Type)
	}

	fn.Sym = sym
}

// resolveFunction resolves a function's parameters and body.  Parameters get
// their own scope enclosing the body block's scope.
func (r *Resolver) resolveFunction(fn *ast.FuncDecl) {
	r.table.EnterScope()

	for _, param := range fn.Params {
		if r.table.IsDeclaredInCurrentScope(param.Name) {
			r.error(param.Span, report.ErrRedeclaration, "Redeclaration of parameter '%s'", param.Name)
		}

		sym, _ := r.table.Declare(param.Name, common.SymVariable)
		sym.Type = param.Type
		sym.DefSpan = param.Span
	}

	r.resolveStmt(fn.Body)
	r.table.ExitScope()
}

// -----------------------------------------------------------------------------

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		r.table.EnterScope()
		for _, s := range v.Stmts {
			r.resolveStmt(s)
		}
		r.table.ExitScope()
	case *ast.VarDecl:
		if r.table.IsDeclaredInCurrentScope(v.Name) {
			r.error(v.Span(), report.ErrRedeclaration, "Redeclaration of variable '%s'", v.Name)
		}

		sym, _ := r.table.Declare(v.Name, common.SymVariable)
		sym.Type = v.DeclType
		sym.DefSpan = v.Span()
		v.Sym = sym

		if v.Initializer != nil {
			r.resolveExpr(v.Initializer)
		}
	case *ast.ExprStmt:
		r.resolveExpr(v.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(v.Value)
	case *ast.IfStmt:
		r.resolveExpr(v.Cond)
		r.resolveStmt(v.Then)
		if v.Else != nil {
			r.resolveStmt(v.Else)
		}
	case *ast.WhileLoop:
		r.resolveExpr(v.Cond)
		r.resolveStmt(v.Body)
	case *ast.ForLoop:
		// The loop and its body share a scope so init-declared names are
		// visible in the condition, post-expression, and body.  For loops
		// are normally desugared away before resolution; this keeps the
		// resolver total over the statement set.
		r.table.EnterScope()
		if v.Init != nil {
			r.resolveStmt(v.Init)
		}
		if v.Cond != nil {
			r.resolveExpr(v.Cond)
		}
		if v.Post != nil {
			r.resolveExpr(v.Post)
		}
		r.resolveStmt(v.Body)
		r.table.ExitScope()
	case *ast.ReturnStmt:
		if v.Value != nil {
			r.resolveExpr(v.Value)
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
	default:
		panic(report.RaiseICE("unknown statement in resolution: %T", stmt))
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.NumberLit, *ast.BoolLit, *ast.StringLit:
	case *ast.Identifier:
		sym := r.table.Lookup(v.Name)
		if sym == nil {
			r.error(v.Span(), report.ErrUndeclaredName, "Use of undeclared variable '%s'", v.Name)
		}

		v.Sym = sym
	case *ast.IndexExpr:
		r.resolveExpr(v.Array)
		r.resolveExpr(v.Index)
	case *ast.UnaryOp:
		r.resolveExpr(v.Operand)
	case *ast.BinaryOp:
		if v.Op == "=" {
			r.resolveAssignTarget(v)
			r.resolveExpr(v.Rhs)
			return
		}

		r.resolveExpr(v.Lhs)
		r.resolveExpr(v.Rhs)
	case *ast.CallExpr:
		sym := r.table.Lookup(v.Callee)
		if sym == nil {
			r.error(v.Span(), report.ErrUndeclaredName, "Call to undeclared function '%s'", v.Callee)
		}

		if sym.Kind != common.SymFunction {
			r.error(v.Span(), report.ErrNotCallable, "Attempt to call non-function '%s'", v.Callee)
		}

		v.Sym = sym

		for _, arg := range v.Args {
			r.resolveExpr(arg)
		}
	default:
		panic(report.RaiseICE("unknown expression in resolution: %T", expr))
	}
}

// resolveAssignTarget resolves the left-hand side of an assignment.  The
// target must be a variable or an array index; assignment never declares.
func (r *Resolver) resolveAssignTarget(assign *ast.BinaryOp) {
	switch lhs := assign.Lhs.(type) {
	case *ast.Identifier:
		sym := r.table.Lookup(lhs.Name)
		if sym == nil {
			r.error(assign.Span(), report.ErrUndeclaredName, "Assignment to undeclared variable '%s'", lhs.Name)
		}

		lhs.Sym = sym
	case *ast.IndexExpr:
		r.resolveExpr(lhs.Array)
		r.resolveExpr(lhs.Index)
	default:
		r.error(assign.Span(), report.ErrInvalidAssignTarget, "Invalid assignment target")
	}
}

// error raises a compile error that aborts resolution.
func (r *Resolver) error(span *report.TextSpan, kind report.ErrorKind, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}
