package generate

import (
	"snek/ast"
)

// genBlock generates a list of statements.  Generation stops once the current
// block is terminated: all statements after that point are dead code.
func (g *Generator) genBlock(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		g.genStmt(stmt)

		if g.block.Term != nil {
			return
		}
	}
}

// genStmt generates a statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Pass:
	case *ast.Assign:
		slot := g.lookup(v.Span(), v.Name, v.Scope)
		g.block.NewStore(g.genExpr(v.Value), slot)
	case *ast.ExprStmt:
		val := g.genExpr(v.Expr)

		if g.scratch != nil {
			g.block.NewStore(val, g.scratch)
		}
	case *ast.Return:
		g.block.NewRet(g.genExpr(v.Value))
	case *ast.While:
		g.genWhile(v)
	case *ast.If:
		g.genIf(v)
	default:
		g.error(stmt.Span(), "unsupported statement")
	}
}
