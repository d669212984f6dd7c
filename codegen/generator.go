// Package codegen lowers a type-checked program tree into a WebAssembly text
// module for a host which supplies the `print` family and the arithmetic
// built-ins as imports.
package codegen

import (
	"strings"

	"snek/ast"
	"snek/common"
	"snek/report"
)

// Enumeration of arithmetic modes.  The mode selects the machine instructions
// used for division, remainder and ordering comparisons.
const (
	ArithSigned = iota
	ArithUnsigned
)

// ParseArithmetic converts the name of an arithmetic mode into the mode.
func ParseArithmetic(name string) (int, bool) {
	switch name {
	case "", "signed":
		return ArithSigned, true
	case "unsigned":
		return ArithUnsigned, true
	}

	return 0, false
}

// Options configures code generation.
type Options struct {
	Arithmetic int
}

// The name of the scratch slot every function and the entry routine declare
// to discard the values of expression statements.  The leading dot keeps it
// from colliding with any source identifier.
const scratchSlot = ".scratch"

// Generator is responsible for lowering a typed program into a module.
type Generator struct {
	opts Options

	// The set of global variable names.
	globals map[string]struct{}

	// The set of local slot names of the function being generated.  It is nil
	// while generating the entry routine.
	locals map[string]struct{}

	// The function being generated.
	fn *Func

	// The number of nesting groups currently open in the function being
	// generated.
	depth int

	// The number of loops generated so far in the function being generated.
	// It is used to give every loop unique labels.
	loopCount int
}

// Generate generates a module from a type-checked program.
func Generate(prog *ast.Program, opts Options) (mod *Module, err error) {
	defer report.CatchErrors(&err)

	g := &Generator{
		opts:    opts,
		globals: make(map[string]struct{}, len(prog.VarInits)),
	}

	mod = &Module{}

	// The set of globals is computed before any function is generated.
	for _, vi := range prog.VarInits {
		g.globals[vi.Name] = struct{}{}
		mod.Globals = append(mod.Globals, &Global{Name: vi.Name, Value: encodeLiteral(vi.Init)})
	}

	for _, fd := range prog.FuncDefs {
		mod.Funcs = append(mod.Funcs, g.generateFuncDef(fd))
	}

	mod.Start = g.generateStart(prog.Stmts)
	return mod, nil
}

// -----------------------------------------------------------------------------

// emit appends an instruction to the body of the current function.
func (g *Generator) emit(instr string) {
	g.fn.Body = append(g.fn.Body, strings.Repeat("  ", g.depth)+instr)
}

// open emits the head of a nesting group and enters it.
func (g *Generator) open(head string) {
	g.emit(head)
	g.depth++
}

// close closes the innermost open nesting group.  The span is the construct
// being generated.
func (g *Generator) close(span *report.TextSpan) {
	if g.depth == 0 {
		g.error(span, "closed more groups than were opened")
	}

	g.depth--
	g.emit(")")
}

// isGlobal determines the storage class of a name in the current function.
// Parameters and locals shadow globals.
func (g *Generator) isGlobal(span *report.TextSpan, name string) bool {
	if _, ok := g.locals[name]; ok {
		return false
	}

	if _, ok := g.globals[name]; ok {
		return true
	}

	g.error(span, "no storage for variable `%s`", name)
	return false
}

// storageFor determines the storage class of a name and checks it against the
// scope the type checker resolved it to.  It returns the instruction prefix
// used to access the name.
func (g *Generator) storageFor(span *report.TextSpan, name string, scope int) string {
	global := g.isGlobal(span, name)

	if global && scope != ast.ScopeGlobal || !global && scope != ast.ScopeLocal {
		g.error(span, "storage class of `%s` disagrees with its resolved scope", name)
	}

	if global {
		return "global"
	}

	return "local"
}

// error reports a generator invariant violation.  It only occurs when the
// program was not produced by the type checker.
func (g *Generator) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.KindGenerate, span, msg, args...))
}

// encodeLiteral returns the machine encoding of a literal.
func encodeLiteral(lit *ast.Literal) int64 {
	switch lit.Kind {
	case ast.LitTrue:
		return 1
	case ast.LitFalse:
		return 0
	case ast.LitNone:
		return common.NoneValue
	}

	return int64(lit.Value)
}
