package ast

// CloneExpr returns a structural deep copy of an expression.  The if/else
// desugaring pass references a condition twice after splitting, so the copy
// must share no nodes with the original.  Spans are shared (they are never
// mutated); resolved symbols and types are carried over.
func CloneExpr(expr Expr) Expr {
	switch v := expr.(type) {
	case *NumberLit:
		c := *v
		return &c
	case *BoolLit:
		c := *v
		return &c
	case *StringLit:
		c := *v
		return &c
	case *Identifier:
		c := *v
		return &c
	case *IndexExpr:
		return &IndexExpr{
			ExprBase: v.ExprBase,
			Array:    CloneExpr(v.Array),
			Index:    CloneExpr(v.Index),
		}
	case *UnaryOp:
		return &UnaryOp{
			ExprBase: v.ExprBase,
			Op:       v.Op,
			Operand:  CloneExpr(v.Operand),
		}
	case *BinaryOp:
		return &BinaryOp{
			ExprBase: v.ExprBase,
			Op:       v.Op,
			Lhs:      CloneExpr(v.Lhs),
			Rhs:      CloneExpr(v.Rhs),
		}
	case *CallExpr:
		args := make([]Expr, len(v.Args))
		for i, arg := range v.Args {
			args[i] = CloneExpr(arg)
		}

		return &CallExpr{
			ExprBase: v.ExprBase,
			Callee:   v.Callee,
			Args:     args,
			Sym:      v.Sym,
		}
	}

	// unreachable
	return nil
}
