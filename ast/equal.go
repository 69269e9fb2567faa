package ast

// EqualExpr returns whether two expressions are structurally equal: same node
// kinds, operators, names, and literal values, recursively.  Spans, resolved
// symbols, and inferred types are not compared.
func EqualExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *NumberLit:
		bv, ok := b.(*NumberLit)
		return ok && av.IsFloat == bv.IsFloat &&
			av.IntValue == bv.IntValue && av.FloatValue == bv.FloatValue
	case *BoolLit:
		bv, ok := b.(*BoolLit)
		return ok && av.Value == bv.Value
	case *StringLit:
		bv, ok := b.(*StringLit)
		return ok && av.Value == bv.Value
	case *Identifier:
		bv, ok := b.(*Identifier)
		return ok && av.Name == bv.Name
	case *IndexExpr:
		bv, ok := b.(*IndexExpr)
		return ok && EqualExpr(av.Array, bv.Array) && EqualExpr(av.Index, bv.Index)
	case *UnaryOp:
		bv, ok := b.(*UnaryOp)
		return ok && av.Op == bv.Op && EqualExpr(av.Operand, bv.Operand)
	case *BinaryOp:
		bv, ok := b.(*BinaryOp)
		return ok && av.Op == bv.Op && EqualExpr(av.Lhs, bv.Lhs) && EqualExpr(av.Rhs, bv.Rhs)
	case *CallExpr:
		bv, ok := b.(*CallExpr)
		if !ok || av.Callee != bv.Callee || len(av.Args) != len(bv.Args) {
			return false
		}

		for i, arg := range av.Args {
			if !EqualExpr(arg, bv.Args[i]) {
				return false
			}
		}

		return true
	}

	return false
}

// EqualStmt returns whether two statements are structurally equal under the
// same rules as EqualExpr.
func EqualStmt(a, b Stmt) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *VarDecl:
		bv, ok := b.(*VarDecl)
		return ok && av.Name == bv.Name && EqualExpr(av.Initializer, bv.Initializer)
	case *ExprStmt:
		bv, ok := b.(*ExprStmt)
		return ok && EqualExpr(av.Expr, bv.Expr)
	case *PrintStmt:
		bv, ok := b.(*PrintStmt)
		return ok && EqualExpr(av.Value, bv.Value)
	case *Block:
		bv, ok := b.(*Block)
		if !ok || len(av.Stmts) != len(bv.Stmts) {
			return false
		}

		for i, stmt := range av.Stmts {
			if !EqualStmt(stmt, bv.Stmts[i]) {
				return false
			}
		}

		return true
	case *IfStmt:
		bv, ok := b.(*IfStmt)
		return ok && EqualExpr(av.Cond, bv.Cond) &&
			EqualStmt(av.Then, bv.Then) && EqualStmt(av.Else, bv.Else)
	case *WhileLoop:
		bv, ok := b.(*WhileLoop)
		return ok && EqualExpr(av.Cond, bv.Cond) && EqualStmt(av.Body, bv.Body)
	case *ForLoop:
		bv, ok := b.(*ForLoop)
		return ok && EqualStmt(av.Init, bv.Init) && EqualExpr(av.Cond, bv.Cond) &&
			EqualExpr(av.Post, bv.Post) && EqualStmt(av.Body, bv.Body)
	case *ReturnStmt:
		bv, ok := b.(*ReturnStmt)
		return ok && EqualExpr(av.Value, bv.Value)
	case *BreakStmt:
		_, ok := b.(*BreakStmt)
		return ok
	case *ContinueStmt:
		_, ok := b.(*ContinueStmt)
		return ok
	case *FuncDecl:
		bv, ok := b.(*FuncDecl)
		if !ok || av.Name != bv.Name || len(av.Params) != len(bv.Params) {
			return false
		}

		for i, param := range av.Params {
			if param.Name != bv.Params[i].Name {
				return false
			}
		}

		return EqualStmt(av.Body, bv.Body)
	}

	return false
}

// EqualProgram returns whether two programs are structurally equal.
func EqualProgram(a, b *Program) bool {
	if len(a.Funcs) != len(b.Funcs) {
		return false
	}

	for i, fn := range a.Funcs {
		if !EqualStmt(fn, b.Funcs[i]) {
			return false
		}
	}

	return true
}
