package codegen

import (
	"fmt"

	"snek/ast"
	"snek/common"
	"snek/report"
	"snek/types"
)

// generateFuncDef generates a function definition.
func (g *Generator) generateFuncDef(fd *ast.FuncDef) *Func {
	fn := &Func{Name: fd.Name, HasResult: true, Locals: []string{scratchSlot}}
	g.beginFunc(fn, make(map[string]struct{}, len(fd.Params)+len(fd.Inits)))

	for _, param := range fd.Params {
		fn.Params = append(fn.Params, param.Name)
		g.locals[param.Name] = struct{}{}
	}

	for _, vi := range fd.Inits {
		fn.Locals = append(fn.Locals, vi.Name)
		g.locals[vi.Name] = struct{}{}
	}

	// Local initializers run before the body in declaration order.
	for _, vi := range fd.Inits {
		g.emitConst(encodeLiteral(vi.Init))
		g.emit(fmt.Sprintf("(local.set $%s)", vi.Name))
	}

	g.generateBlock(fd.Body)

	// Every function yields a value: control which falls off the end of the
	// body yields the default value of the return type.
	if fd.ReturnType == types.None {
		g.emitConst(common.NoneValue)
	} else {
		g.emitConst(0)
	}

	g.endFunc(fd.Span(), fmt.Sprintf("function `%s`", fd.Name))
	return fn
}

// generateStart generates the exported entry routine from the top-level
// statements.  The routine returns the value of the last statement if it is an
// expression statement.
func (g *Generator) generateStart(stmts []ast.Stmt) *Func {
	fn := &Func{Export: common.StartFuncName, Locals: []string{scratchSlot}}
	g.beginFunc(fn, nil)

	g.generateBlock(stmts)

	if len(stmts) > 0 {
		if _, ok := stmts[len(stmts)-1].(*ast.ExprStmt); ok {
			fn.HasResult = true
			g.emit(fmt.Sprintf("(local.get $%s)", scratchSlot))
		}
	}

	var span *report.TextSpan
	if len(stmts) > 0 {
		span = report.NewSpanOver(stmts[0].Span(), stmts[len(stmts)-1].Span())
	}

	g.endFunc(span, "the entry routine")
	return fn
}

// beginFunc positions the generator at the start of fn.
func (g *Generator) beginFunc(fn *Func, locals map[string]struct{}) {
	g.fn = fn
	g.locals = locals
	g.depth = 0
	g.loopCount = 0
}

// endFunc checks that every nesting group opened in the current function was
// closed.  The span covers the function and desc names it.
func (g *Generator) endFunc(span *report.TextSpan, desc string) {
	if g.depth != 0 {
		g.error(span, "%d unclosed groups in %s", g.depth, desc)
	}

	g.fn = nil
	g.locals = nil
}
