package walk

import (
	"snek/ast"
	"snek/types"
)

// Enumeration of control modes.  A control mode summarizes how control leaves
// a statement or block.
const (
	controlNone   = iota // Control may fall through.
	controlReturn        // Every path returns from the enclosing function.
)

// walkBlock walks a list of statements and returns its control mode: a block
// returns if any of its statements returns on every path.
func (w *Walker) walkBlock(stmts []ast.Stmt) int {
	cm := controlNone

	for _, stmt := range stmts {
		if w.walkStmt(stmt) == controlReturn {
			cm = controlReturn
		}
	}

	return cm
}

// walkStmt walks a statement and returns its control mode.
func (w *Walker) walkStmt(stmt ast.Stmt) int {
	switch v := stmt.(type) {
	case *ast.Pass:
	case *ast.Assign:
		w.walkAssign(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.Return:
		w.walkReturn(v)
		return controlReturn
	case *ast.While:
		w.mustBeBool(v.Cond, "while condition")

		// the loop body may never run: it can never make the loop return
		w.walkBlock(v.Body)
	case *ast.If:
		return w.walkIf(v)
	}

	return controlNone
}

// walkAssign walks an assignment statement.
func (w *Walker) walkAssign(as *ast.Assign) {
	info, ok := w.env.lookup(as.Name)
	if !ok {
		w.error(as.Span(), "cannot assign to undeclared variable `%s`", as.Name)
	}

	as.Scope = info.scope

	if valueType := w.walkExpr(as.Value); valueType != info.typ {
		w.error(as.Value.Span(), "cannot assign %s to %s", valueType, info.typ)
	}
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(ret *ast.Return) {
	if !w.env.inFunc {
		w.error(ret.Span(), "cannot return outside of a function")
	}

	if valueType := w.walkExpr(ret.Value); valueType != w.env.retType {
		w.error(ret.Value.Span(), "cannot return %s from a function returning %s", valueType, w.env.retType)
	}
}

// walkIf walks an if statement.  The statement returns only if its body, the
// body of every elif, and a non-empty else body all return.
func (w *Walker) walkIf(ifStmt *ast.If) int {
	w.mustBeBool(ifStmt.Cond, "if condition")
	cm := w.walkBlock(ifStmt.Body)

	for _, elif := range ifStmt.Elifs {
		w.mustBeBool(elif.Cond, "elif condition")

		if w.walkBlock(elif.Body) != controlReturn {
			cm = controlNone
		}
	}

	// an if without an else always has a path which falls through
	if len(ifStmt.Else) == 0 || w.walkBlock(ifStmt.Else) != controlReturn {
		cm = controlNone
	}

	return cm
}

// mustBeBool walks a condition and checks that it is a bool.
func (w *Walker) mustBeBool(cond ast.Expr, what string) {
	if condType := w.walkExpr(cond); condType != types.Bool {
		w.error(cond.Span(), "%s must be bool, got %s", what, condType)
	}
}
