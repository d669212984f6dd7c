package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"snek/ast"
	"snek/common"
	"snek/types"
)

// declareFunc declares the LLVM function of a function definition.
func (g *Generator) declareFunc(fd *ast.FuncDef) {
	params := make([]*ir.Param, len(fd.Params))
	for i, param := range fd.Params {
		params[i] = ir.NewParam(param.Name, lltypes.I32)
	}

	llFunc := g.mod.NewFunc(funcPrefix+fd.Name, lltypes.I32, params...)
	llFunc.Linkage = enum.LinkageInternal

	g.funcs[fd.Name] = llFunc
}

// genFuncBody generates the body of a declared function.
func (g *Generator) genFuncBody(fd *ast.FuncDef) {
	llFunc := g.funcs[fd.Name]
	g.enclosingFunc = llFunc
	g.blockCount = 0
	g.locals = make(map[string]value.Value, len(fd.Params)+len(fd.Inits))

	entry := llFunc.NewBlock("bb.entry")

	// Parameters are mutable so they are copied into stack slots.
	for i, param := range fd.Params {
		slot := entry.NewAlloca(lltypes.I32)
		entry.NewStore(llFunc.Params[i], slot)
		g.locals[param.Name] = slot
	}

	for _, vi := range fd.Inits {
		slot := entry.NewAlloca(lltypes.I32)
		entry.NewStore(g.literalValue(vi.Init), slot)
		g.locals[vi.Name] = slot
	}

	g.block = entry
	g.genBlock(fd.Body)

	// Control which falls off the end of the body yields the default value of
	// the return type.
	if g.block.Term == nil {
		if fd.ReturnType == types.None {
			g.block.NewRet(constI32(common.NoneValue))
		} else {
			g.block.NewRet(constI32(0))
		}
	}

	g.enclosingFunc = nil
	g.locals = nil
}

// genStart generates the entry routine which runs the top-level statements.
// Like its WebAssembly counterpart, it returns the value of the last statement
// if that statement is an expression statement and returns void otherwise.
func (g *Generator) genStart(stmts []ast.Stmt) {
	hasResult := false
	if len(stmts) > 0 {
		_, hasResult = stmts[len(stmts)-1].(*ast.ExprStmt)
	}

	var retType lltypes.Type = lltypes.Void
	if hasResult {
		retType = lltypes.I32
	}

	// the entry routine keeps the default linkage so the host can find it
	llFunc := g.mod.NewFunc(common.StartFuncName, retType)
	g.enclosingFunc = llFunc
	g.blockCount = 0

	entry := llFunc.NewBlock("bb.entry")
	g.scratch = entry.NewAlloca(lltypes.I32)
	entry.NewStore(constI32(0), g.scratch)

	g.block = entry
	g.genBlock(stmts)

	// The entry routine never returns early so its last block is always open.
	if hasResult {
		g.block.NewRet(g.block.NewLoad(lltypes.I32, g.scratch))
	} else {
		g.block.NewRet(nil)
	}

	g.enclosingFunc = nil
	g.scratch = nil
}
