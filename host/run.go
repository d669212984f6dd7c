package host

import (
	"context"
	"io"

	"snek/common"
)

// Result is the outcome of running a module's entry routine.
type Result struct {
	// The value returned by the entry routine.  It is only meaningful when
	// HasValue is set.
	Value    int32
	HasValue bool
}

// Run loads a module, instantiates it with the default imports writing to out
// and runs its entry routine.
func Run(ctx context.Context, text string, out io.Writer) (Result, error) {
	mod, err := Load(text)
	if err != nil {
		return Result{}, err
	}

	inst, err := Instantiate(mod, DefaultImports(out))
	if err != nil {
		return Result{}, err
	}

	value, hasValue, err := inst.Invoke(ctx, common.StartFuncName)
	if err != nil {
		return Result{}, err
	}

	return Result{Value: value, HasValue: hasValue}, nil
}
