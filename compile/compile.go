// Package compile drives the compiler pipeline: source text is parsed, built
// into a program tree, type checked and finally lowered to the selected target.
package compile

import (
	"context"
	"io"

	"snek/ast"
	"snek/build"
	"snek/codegen"
	"snek/common"
	"snek/generate"
	"snek/host"
	"snek/syntax"
	"snek/walk"
)

// Names of the compilation phases in the order they run.
const (
	PhaseParse    = "Parsing"
	PhaseBuild    = "Building"
	PhaseCheck    = "Checking"
	PhaseGenerate = "Generating"
)

// PhaseReporter is notified when each compilation phase begins and ends.
type PhaseReporter interface {
	BeginPhase(phase string)
	EndPhase(success bool)
}

// Options configures a compilation.
type Options struct {
	// Target should be one of the enumerated compilation targets.
	Target int

	// Arithmetic should be one of the enumerated arithmetic modes.
	Arithmetic int

	// Phases is notified of compilation phases.  It may be nil.
	Phases PhaseReporter
}

// Analyze parses, builds and type checks src and returns the typed program.
func Analyze(src string, opts Options) (*ast.Program, error) {
	var tree *syntax.Tree
	if err := runPhase(opts, PhaseParse, func() (err error) {
		tree, err = syntax.Parse(src)
		return
	}); err != nil {
		return nil, err
	}

	var prog *ast.Program
	if err := runPhase(opts, PhaseBuild, func() (err error) {
		prog, err = build.Build(tree)
		return
	}); err != nil {
		return nil, err
	}

	var typed *ast.Program
	if err := runPhase(opts, PhaseCheck, func() (err error) {
		typed, err = walk.Check(prog)
		return
	}); err != nil {
		return nil, err
	}

	return typed, nil
}

// Compile compiles src and returns the text of the output module in the
// selected target format.
func Compile(src string, opts Options) (string, error) {
	typed, err := Analyze(src, opts)
	if err != nil {
		return "", err
	}

	var output string
	err = runPhase(opts, PhaseGenerate, func() error {
		genOpts := codegen.Options{Arithmetic: opts.Arithmetic}

		if opts.Target == common.TargetLLVM {
			llMod, err := generate.Generate(typed, genOpts)
			if err != nil {
				return err
			}

			output = llMod.String()
			return nil
		}

		mod, err := codegen.Generate(typed, genOpts)
		if err != nil {
			return err
		}

		output = mod.String()
		return nil
	})

	return output, err
}

// Run compiles src to WebAssembly text and executes it on the reference host.
// The output of the program is written to out.
func Run(ctx context.Context, src string, opts Options, out io.Writer) (host.Result, error) {
	opts.Target = common.TargetWAT

	text, err := Compile(src, opts)
	if err != nil {
		return host.Result{}, err
	}

	return host.Run(ctx, text, out)
}

// runPhase runs a single compilation phase and reports it.
func runPhase(opts Options, phase string, f func() error) error {
	if opts.Phases != nil {
		opts.Phases.BeginPhase(phase)
	}

	err := f()

	if opts.Phases != nil {
		opts.Phases.EndPhase(err == nil)
	}

	return err
}
