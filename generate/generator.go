// Package generate lowers a type-checked program tree into an LLVM IR module.
// It mirrors the WebAssembly lowering: every value is an i32 and the host
// functions are external declarations.
package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"snek/ast"
	"snek/codegen"
	"snek/common"
	"snek/report"
)

// Symbol prefixes which keep global variables and user functions from
// colliding with each other and with the host functions.
const (
	globalPrefix = "var."
	funcPrefix   = "fn."
)

// Generator is responsible for converting a typed program into an LLVM module.
type Generator struct {
	opts codegen.Options

	// The LLVM module being generated.
	mod *ir.Module

	// Maps the names of functions (user and host) to their LLVM function.
	funcs map[string]*ir.Func

	// Maps the names of global variables to their LLVM global.
	globals map[string]*ir.Global

	// Maps the names of the variables local to the enclosing function to
	// their stack slots.
	locals map[string]value.Value

	// The function enclosing the block being generated.
	enclosingFunc *ir.Func

	// The block being generated.
	block *ir.Block

	// The number of blocks appended to the enclosing function.  Blocks are
	// numbered by it since unreachable blocks may be removed.  The dot in
	// block names keeps them apart from parameter names.
	blockCount int

	// The slot expression statements store their value in.  It is only set
	// in the entry routine.
	scratch value.Value
}

// Generate generates an LLVM module from a type-checked program.
func Generate(prog *ast.Program, opts codegen.Options) (mod *ir.Module, err error) {
	defer report.CatchErrors(&err)

	g := &Generator{
		opts:    opts,
		mod:     ir.NewModule(),
		funcs:   make(map[string]*ir.Func),
		globals: make(map[string]*ir.Global),
	}

	g.genImports()

	for _, vi := range prog.VarInits {
		g.globals[vi.Name] = g.mod.NewGlobalDef(globalPrefix+vi.Name, g.literalValue(vi.Init))
	}

	// All functions are declared before any body is generated so they may
	// call each other in any order.
	for _, fd := range prog.FuncDefs {
		g.declareFunc(fd)
	}

	for _, fd := range prog.FuncDefs {
		g.genFuncBody(fd)
	}

	g.genStart(prog.Stmts)

	return g.mod, nil
}

// genImports declares the host functions as external functions.
func (g *Generator) genImports() {
	for _, imp := range common.HostImports {
		params := make([]*ir.Param, imp.Arity)
		for i := range params {
			params[i] = ir.NewParam("", lltypes.I32)
		}

		g.funcs[imp.Name] = g.mod.NewFunc(imp.Name, lltypes.I32, params...)
	}
}

// -----------------------------------------------------------------------------

// appendBlock adds a new basic block to the current function.  It does *not*
// set the current block to this new block.
func (g *Generator) appendBlock() *ir.Block {
	g.blockCount++
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb.%d", g.blockCount))
}

// lookup returns the storage of a variable in the scope it resolved to.
func (g *Generator) lookup(span *report.TextSpan, name string, scope int) value.Value {
	switch scope {
	case ast.ScopeLocal:
		if slot, ok := g.locals[name]; ok {
			return slot
		}
	case ast.ScopeGlobal:
		if glob, ok := g.globals[name]; ok {
			return glob
		}
	}

	g.error(span, "no storage for variable `%s`", name)
	return nil
}

// error reports a generator invariant violation.
func (g *Generator) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.KindGenerate, span, msg, args...))
}

// constI32 returns an i32 constant.  Values past the signed range wrap the
// way WebAssembly i32 constants do.
func constI32(v int64) *constant.Int {
	return constant.NewInt(lltypes.I32, int64(int32(uint32(v))))
}
