package ast

// Clone returns a deep copy of a program tree.  Spans are shared since they are
// never mutated.
func Clone(prog *Program) *Program {
	result := &Program{
		VarInits: make([]*VarInit, len(prog.VarInits)),
		FuncDefs: make([]*FuncDef, len(prog.FuncDefs)),
		Stmts:    cloneStmts(prog.Stmts),
	}

	for i, vi := range prog.VarInits {
		result.VarInits[i] = cloneVarInit(vi)
	}

	for i, fd := range prog.FuncDefs {
		fdCopy := *fd
		fdCopy.Params = make([]*Param, len(fd.Params))
		for j, param := range fd.Params {
			paramCopy := *param
			fdCopy.Params[j] = &paramCopy
		}

		fdCopy.Inits = make([]*VarInit, len(fd.Inits))
		for j, vi := range fd.Inits {
			fdCopy.Inits[j] = cloneVarInit(vi)
		}

		fdCopy.Body = cloneStmts(fd.Body)
		result.FuncDefs[i] = &fdCopy
	}

	return result
}

func cloneVarInit(vi *VarInit) *VarInit {
	viCopy := *vi
	viCopy.Init = cloneExpr(vi.Init).(*Literal)
	return &viCopy
}

func cloneStmts(stmts []Stmt) []Stmt {
	if stmts == nil {
		return nil
	}

	result := make([]Stmt, len(stmts))
	for i, stmt := range stmts {
		result[i] = cloneStmt(stmt)
	}

	return result
}

func cloneStmt(stmt Stmt) Stmt {
	switch v := stmt.(type) {
	case *Pass:
		c := *v
		return &c
	case *Assign:
		c := *v
		c.Value = cloneExpr(v.Value)
		return &c
	case *ExprStmt:
		c := *v
		c.Expr = cloneExpr(v.Expr)
		return &c
	case *Return:
		c := *v
		c.Value = cloneExpr(v.Value)
		return &c
	case *While:
		c := *v
		c.Cond = cloneExpr(v.Cond)
		c.Body = cloneStmts(v.Body)
		return &c
	case *If:
		c := *v
		c.Cond = cloneExpr(v.Cond)
		c.Body = cloneStmts(v.Body)
		c.Else = cloneStmts(v.Else)

		if v.Elifs != nil {
			c.Elifs = make([]*Elif, len(v.Elifs))
			for i, elif := range v.Elifs {
				elifCopy := *elif
				elifCopy.Cond = cloneExpr(elif.Cond)
				elifCopy.Body = cloneStmts(elif.Body)
				c.Elifs[i] = &elifCopy
			}
		}

		return &c
	}

	return stmt
}

func cloneExpr(expr Expr) Expr {
	switch v := expr.(type) {
	case *Literal:
		c := *v
		return &c
	case *Identifier:
		c := *v
		return &c
	case *Call:
		c := *v
		c.Args = make([]Expr, len(v.Args))
		for i, arg := range v.Args {
			c.Args[i] = cloneExpr(arg)
		}

		return &c
	case *BinaryOp:
		c := *v
		c.Lhs = cloneExpr(v.Lhs)
		c.Rhs = cloneExpr(v.Rhs)
		return &c
	case *UnaryOp:
		c := *v
		c.Operand = cloneExpr(v.Operand)
		return &c
	}

	return expr
}
