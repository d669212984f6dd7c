package generate

import (
	"github.com/llir/llvm/ir"

	"snek/ast"
)

// genIf generates an if statement: each elif is generated in the else block
// of the branch before it.
func (g *Generator) genIf(ifStmt *ast.If) {
	exitBlock := g.appendBlock()

	// Whether the if statement ever reaches the exit block.
	neverExit := true

	genBranch := func(cond ast.Expr, body []ast.Stmt) {
		thenBlock := g.appendBlock()
		elseBlock := g.appendBlock()
		g.block.NewCondBr(g.genCond(cond), thenBlock, elseBlock)

		g.block = thenBlock
		g.genBlock(body)

		if g.block.Term == nil {
			g.block.NewBr(exitBlock)
			neverExit = false
		}

		// The next branch is generated in the else block.
		g.block = elseBlock
	}

	genBranch(ifStmt.Cond, ifStmt.Body)
	for _, elif := range ifStmt.Elifs {
		genBranch(elif.Cond, elif.Body)
	}

	// We are always positioned in the last else block so the else body is
	// generated in place.
	g.genBlock(ifStmt.Else)

	if g.block.Term == nil {
		g.block.NewBr(exitBlock)
		neverExit = false
	}

	if neverExit {
		g.removeBlock(exitBlock)
	} else {
		g.block = exitBlock
	}
}

// genWhile generates a while loop.  The condition is evaluated in its own
// header block which the body branches back to.
func (g *Generator) genWhile(loop *ast.While) {
	headerBlock := g.appendBlock()
	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()

	g.block.NewBr(headerBlock)

	g.block = headerBlock
	g.block.NewCondBr(g.genCond(loop.Cond), bodyBlock, endBlock)

	g.block = bodyBlock
	g.genBlock(loop.Body)

	if g.block.Term == nil {
		g.block.NewBr(headerBlock)
	}

	g.block = endBlock
}

// removeBlock removes a block which is never branched to from the enclosing
// function.  The current block stays terminated so generation of the
// enclosing statement list stops.
func (g *Generator) removeBlock(block *ir.Block) {
	blocks := g.enclosingFunc.Blocks
	for i, b := range blocks {
		if b == block {
			g.enclosingFunc.Blocks = append(blocks[:i], blocks[i+1:]...)
			return
		}
	}
}
