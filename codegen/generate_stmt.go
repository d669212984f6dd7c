package codegen

import (
	"fmt"

	"snek/ast"
)

// generateBlock generates a list of statements.
func (g *Generator) generateBlock(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		g.generateStmt(stmt)
	}
}

// generateStmt generates a statement.
func (g *Generator) generateStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Pass:
		g.emit("(nop)")
	case *ast.Assign:
		storage := g.storageFor(v.Span(), v.Name, v.Scope)
		g.generateExpr(v.Value)
		g.emit(fmt.Sprintf("(%s.set $%s)", storage, v.Name))
	case *ast.ExprStmt:
		// The value of an expression statement is kept in the scratch slot so
		// the entry routine can return it.
		g.generateExpr(v.Expr)
		g.emit(fmt.Sprintf("(local.set $%s)", scratchSlot))
	case *ast.Return:
		g.generateExpr(v.Value)
		g.emit("(return)")
	case *ast.While:
		g.generateWhile(v)
	case *ast.If:
		g.generateIfChain(v.Cond, v.Body, v.Elifs, v.Else)
	default:
		g.error(stmt.Span(), "unsupported statement")
	}
}

// generateWhile generates a while loop as a loop nested in a block: the loop
// branches out of the block as soon as the condition is false.
func (g *Generator) generateWhile(loop *ast.While) {
	brkLabel := fmt.Sprintf("$.brk_%d", g.loopCount)
	loopLabel := fmt.Sprintf("$.loop_%d", g.loopCount)
	g.loopCount++

	g.open("(block " + brkLabel)
	g.open("(loop " + loopLabel)

	g.generateExpr(loop.Cond)
	g.emit("(i32.const 1)")
	g.emit("(i32.xor)")
	g.emit("(br_if " + brkLabel + ")")

	g.generateBlock(loop.Body)
	g.emit("(br " + loopLabel + ")")

	g.close(loop.Span())
	g.close(loop.Span())
}

// generateIfChain generates an if statement whose remaining elif clauses are
// elifs.  Each elif becomes an if nested in the else arm of the previous one
// so the chain closes exactly the groups it opens at every length.
func (g *Generator) generateIfChain(cond ast.Expr, body []ast.Stmt, elifs []*ast.Elif, elseBody []ast.Stmt) {
	g.generateExpr(cond)

	g.open("(if")
	g.open("(then")
	g.generateBlock(body)
	g.close(cond.Span())

	if len(elifs) > 0 {
		g.open("(else")
		g.generateIfChain(elifs[0].Cond, elifs[0].Body, elifs[1:], elseBody)
		g.close(cond.Span())
	} else if len(elseBody) > 0 {
		g.open("(else")
		g.generateBlock(elseBody)
		g.close(cond.Span())
	}

	g.close(cond.Span())
}
