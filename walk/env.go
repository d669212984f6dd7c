package walk

import (
	"snek/ast"
	"snek/common"
	"snek/types"
)

// funcSig is the signature of a callable function.
type funcSig struct {
	params []types.Type
	ret    types.Type
}

// varInfo is a variable visible in an environment.
type varInfo struct {
	typ   types.Type
	scope int
}

// typeEnv is a type environment: the functions and variables visible at some
// point of the program along with the return type of the enclosing function.
type typeEnv struct {
	funcs map[string]funcSig
	vars  map[string]varInfo

	// The return type of the enclosing function.  It is only meaningful when
	// inFunc is set.
	retType types.Type
	inFunc  bool
}

// newGlobalEnv creates the global environment seeded with the signatures of
// the arithmetic built-ins.  `print` is handled by the walker directly.
func newGlobalEnv() *typeEnv {
	unary := funcSig{params: []types.Type{types.Int}, ret: types.Int}
	binary := funcSig{params: []types.Type{types.Int, types.Int}, ret: types.Int}

	return &typeEnv{
		funcs: map[string]funcSig{
			common.AbsFunc: unary,
			common.MaxFunc: binary,
			common.MinFunc: binary,
			common.PowFunc: binary,
		},
		vars: make(map[string]varInfo),
	}
}

// enterFunc creates the environment of a function body.  Variables are copied
// so that declarations inside the function never leak into env.  Functions are
// shared: they are all declared before any body is walked.
func (env *typeEnv) enterFunc(retType types.Type) *typeEnv {
	vars := make(map[string]varInfo, len(env.vars))
	for name, info := range env.vars {
		vars[name] = info
	}

	return &typeEnv{
		funcs:   env.funcs,
		vars:    vars,
		retType: retType,
		inFunc:  true,
	}
}

// define defines a variable in the environment, shadowing any variable of the
// same name.
func (env *typeEnv) define(name string, typ types.Type, scope int) {
	env.vars[name] = varInfo{typ: typ, scope: scope}
}

// lookup looks up a variable by name.
func (env *typeEnv) lookup(name string) (varInfo, bool) {
	info, ok := env.vars[name]
	return info, ok
}

// hasVar returns whether any variable by the given name is visible.
func (env *typeEnv) hasVar(name string) bool {
	_, ok := env.vars[name]
	return ok
}

// isLocal returns whether a function-local variable by the given name exists.
func (env *typeEnv) isLocal(name string) bool {
	info, ok := env.vars[name]
	return ok && info.scope == ast.ScopeLocal
}
