package host

import (
	"context"
	"fmt"
)

// HostFunc is a function supplied by the host.  It receives the arguments of
// the call and returns its result.
type HostFunc func(args []int32) int32

// Imports maps import module names to the host functions they provide.
type Imports map[string]map[string]HostFunc

// Trap is a runtime error raised while executing a module.
type Trap struct {
	Message string

	// The error which caused the trap, if any.
	Cause error
}

func (t *Trap) Error() string {
	return "trap: " + t.Message
}

func (t *Trap) Unwrap() error {
	return t.Cause
}

// Instance is an instantiated module.
type Instance struct {
	mod *Module

	// The host functions bound to imported functions.
	bound map[*function]HostFunc

	// The current values of the globals.
	globals map[string]*globalCell
}

type globalCell struct {
	value   int32
	mutable bool
}

// Instantiate binds the imports of mod and initializes its globals.
func Instantiate(mod *Module, imports Imports) (*Instance, error) {
	inst := &Instance{
		mod:     mod,
		bound:   make(map[*function]HostFunc),
		globals: make(map[string]*globalCell, len(mod.globals)),
	}

	for _, fn := range mod.funcs {
		if !fn.isImport {
			continue
		}

		hostFn, ok := imports[fn.importModule][fn.importAs]
		if !ok {
			return nil, fmt.Errorf("unresolved import: %s.%s", fn.importModule, fn.importAs)
		}

		inst.bound[fn] = hostFn
	}

	for _, g := range mod.globals {
		if _, ok := inst.globals[g.name]; ok {
			return nil, fmt.Errorf("duplicate global: %s", g.name)
		}

		inst.globals[g.name] = &globalCell{value: g.init, mutable: g.mutable}
	}

	return inst, nil
}

// Global returns the current value of a global.  The name excludes the
// leading `$`.
func (inst *Instance) Global(name string) (int32, bool) {
	cell, ok := inst.globals["$"+name]
	if !ok {
		return 0, false
	}

	return cell.value, true
}

// Invoke calls an exported function.  It returns the result of the function
// and whether the function has one.  Execution stops with an error when ctx
// is cancelled.
func (inst *Instance) Invoke(ctx context.Context, export string, args ...int32) (result int32, hasResult bool, err error) {
	fn, ok := inst.mod.exports[export]
	if !ok {
		return 0, false, fmt.Errorf("no export named `%s`", export)
	}

	if len(args) != len(fn.params) {
		return 0, false, fmt.Errorf("`%s` expects %d arguments, got %d", export, len(fn.params), len(args))
	}

	defer catchTraps(&err)

	m := &machine{ctx: ctx, inst: inst}
	m.stack = append(m.stack, args...)
	result = m.call(fn)

	return result, fn.result, nil
}

// catchTraps converts a trap raised during execution into an error.
//
// NB: This function must ALWAYS be deferred.
func catchTraps(err *error) {
	if x := recover(); x != nil {
		if trap, ok := x.(*Trap); ok {
			*err = trap
		} else {
			panic(x)
		}
	}
}

// trap aborts execution with a trap.
func trap(msg string, args ...interface{}) {
	panic(&Trap{Message: fmt.Sprintf(msg, args...)})
}
