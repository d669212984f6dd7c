// Package walk implements the type checker: it walks the program tree,
// annotates every expression with its type and every name with its storage
// scope, and rejects ill-typed programs.
package walk

import (
	"snek/ast"
	"snek/common"
	"snek/report"
	"snek/types"
)

// Walker is responsible for walking a program tree and performing semantic
// analysis on it.
type Walker struct {
	// The global type environment.
	global *typeEnv

	// The environment of the definition currently being walked.  This is the
	// global environment outside of function bodies.
	env *typeEnv
}

// Check type checks a program.  It returns a copy of the program in which
// every expression carries its type and every identifier and assignment
// carries the scope it resolved to.  The input program is left untouched.
func Check(prog *ast.Program) (typed *ast.Program, err error) {
	defer report.CatchErrors(&err)

	typed = ast.Clone(prog)

	w := &Walker{global: newGlobalEnv()}
	w.env = w.global
	w.walkProgram(typed)

	return typed, nil
}

// walkProgram walks the whole program.  All function signatures are declared
// before any body is walked so functions may call each other regardless of
// their order in the source.
func (w *Walker) walkProgram(prog *ast.Program) {
	for _, fd := range prog.FuncDefs {
		w.declareFunc(fd)
	}

	for _, vi := range prog.VarInits {
		w.walkVarInit(vi, ast.ScopeGlobal)
	}

	for _, fd := range prog.FuncDefs {
		w.walkFuncDef(fd)
	}

	w.walkBlock(prog.Stmts)
}

// declareFunc registers the signature of a user function in the global
// environment.
func (w *Walker) declareFunc(fd *ast.FuncDef) {
	if common.IsReservedFuncName(fd.Name) {
		w.error(fd.Span(), "cannot define a function named `%s`: the name is reserved", fd.Name)
	}

	if _, ok := w.global.funcs[fd.Name]; ok {
		w.error(fd.Span(), "duplicate function: `%s`", fd.Name)
	}

	sig := funcSig{params: make([]types.Type, len(fd.Params)), ret: fd.ReturnType}
	for i, param := range fd.Params {
		sig.params[i] = param.Type
	}

	w.global.funcs[fd.Name] = sig
}

// walkFuncDef walks a function definition in a fresh function environment.
func (w *Walker) walkFuncDef(fd *ast.FuncDef) {
	w.env = w.global.enterFunc(fd.ReturnType)
	defer func() {
		w.env = w.global
	}()

	for _, param := range fd.Params {
		if w.env.isLocal(param.Name) {
			w.error(param.Span(), "duplicate parameter `%s` in function `%s`", param.Name, fd.Name)
		}

		w.env.define(param.Name, param.Type, ast.ScopeLocal)
	}

	for _, vi := range fd.Inits {
		w.walkVarInit(vi, ast.ScopeLocal)
	}

	// Make sure the function returns.
	if cm := w.walkBlock(fd.Body); fd.ReturnType != types.None && cm != controlReturn {
		w.error(fd.Span(), "not all paths return %s in function `%s`", fd.ReturnType, fd.Name)
	}
}

// walkVarInit walks a variable declaration and defines the variable in the
// current environment.
func (w *Walker) walkVarInit(vi *ast.VarInit, scope int) {
	if scope == ast.ScopeGlobal && w.env.hasVar(vi.Name) || scope == ast.ScopeLocal && w.env.isLocal(vi.Name) {
		w.error(vi.Span(), "variable `%s` is already declared in this scope", vi.Name)
	}

	if initType := w.walkExpr(vi.Init); initType != vi.Type {
		w.error(vi.Init.Span(), "cannot initialize `%s` of type %s with a value of type %s", vi.Name, vi.Type, initType)
	}

	w.env.define(vi.Name, vi.Type, scope)
}

// -----------------------------------------------------------------------------

// error reports an error on the given span that aborts type checking.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.KindType, span, msg, args...))
}
