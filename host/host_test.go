package host

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"

	"snek/build"
	"snek/codegen"
	"snek/syntax"
	"snek/walk"
)

const printImports = `
  (import "imports" "print_num" (func $print_num (param i32) (result i32)))
  (import "imports" "print_bool" (func $print_bool (param i32) (result i32)))
  (import "imports" "print_none" (func $print_none (param i32) (result i32)))
`

func run(t *testing.T, text string) (Result, string) {
	t.Helper()

	out := &bytes.Buffer{}
	result, err := Run(context.Background(), text, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return result, out.String()
}

func TestRunPrint(t *testing.T) {
	text := "(module" + printImports + heredoc.Doc(`
		  (func (export "_start")
		    (local $.scratch i32)
		    (i32.const 6)
		    (call $print_num)
		    (local.set $.scratch)
		    (i32.const 1)
		    (call $print_bool)
		    (drop)
		    (i32.const 0)
		    (call $print_bool)
		    (drop)
		    (i32.const 2147483648)
		    (call $print_none)
		    (drop)
		    (i32.const -7)
		    (call $print_num)
		    (drop)
		  )
		)
	`)

	result, out := run(t, text)
	if result.HasValue {
		t.Errorf("unexpected result %d", result.Value)
	}

	if want := "6\nTrue\nFalse\nNone\n-7\n"; out != want {
		t.Errorf("expected output %q, got %q", want, out)
	}
}

func TestRunLoopAndGlobals(t *testing.T) {
	// sums 1..10 into a global
	text := heredoc.Doc(`
		(module
		  ;; accumulator
		  (global $sum (mut i32) (i32.const 0))
		  (global $i (mut i32) (i32.const 1))
		  (func (export "_start") (result i32)
		    (local $.scratch i32)
		    (block $.brk_0
		      (loop $.loop_0
		        (global.get $i)
		        (i32.const 10)
		        (i32.le_s)
		        (i32.const 1)
		        (i32.xor)
		        (br_if $.brk_0)
		        (global.set $sum (i32.add (global.get $sum) (global.get $i)))
		        (global.get $i)
		        (i32.const 1)
		        (i32.add)
		        (global.set $i)
		        (br $.loop_0)
		      )
		    )
		    (global.get $sum)
		    (local.set $.scratch)
		    (local.get $.scratch)
		  )
		)
	`)

	result, _ := run(t, text)
	if !result.HasValue || result.Value != 55 {
		t.Errorf("expected 55, got %+v", result)
	}
}

func TestRunCallsAndIf(t *testing.T) {
	text := heredoc.Doc(`
		(module
		  (func $fact (param $n i32) (result i32)
		    (local $.scratch i32)
		    (local.get $n)
		    (i32.const 1)
		    (i32.le_s)
		    (if
		      (then
		        (i32.const 1)
		        (return)
		      )
		    )
		    (local.get $n)
		    (local.get $n)
		    (i32.const 1)
		    (i32.sub)
		    (call $fact)
		    (i32.mul)
		    (return)
		    (i32.const 0)
		  )
		  (func $pick (param $c i32) (result i32)
		    (if (local.get $c)
		      (then (i32.const 10) (return))
		      (else (i32.const 20) (return))
		    )
		    (unreachable)
		  )
		  (func (export "_start") (result i32)
		    (call $fact (i32.const 5))
		    (call $pick (i32.const 0))
		    (i32.add)
		  )
		)
	`)

	result, _ := run(t, text)
	if !result.HasValue || result.Value != 140 {
		t.Errorf("expected 140, got %+v", result)
	}
}

func TestRunTraps(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"divide by zero", "(i32.div_s (i32.const 1) (i32.const 0))", "integer divide by zero"},
		{"unsigned divide by zero", "(i32.rem_u (i32.const 1) (i32.const 0))", "integer divide by zero"},
		{"overflow", "(i32.div_s (i32.const -2147483648) (i32.const -1))", "integer overflow"},
		{"unreachable", "(unreachable)", "unreachable executed"},
		{"underflow", "(i32.add (i32.const 1))", "value stack underflow"},
		{"unknown local", "(local.get $nope)", "unknown local $nope"},
		{"unknown function", "(call $nope)", "unknown function $nope"},
		{"unknown label", "(br $nope)", "unknown label $nope"},
		{"recursion", "(call $start)", "call stack exhausted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "(module (func $start (export \"_start\") (result i32) " + tt.body + " (i32.const 0)))"

			_, err := Run(context.Background(), text, &bytes.Buffer{})

			var trap *Trap
			if !errors.As(err, &trap) {
				t.Fatalf("expected a trap, got %v", err)
			}

			if trap.Message != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, trap.Message)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	text := heredoc.Doc(`
		(module
		  (func (export "_start")
		    (loop $forever
		      (br $forever)
		    )
		  )
		)
	`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, text, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"empty", "", "expected a single `module` form"},
		{"not a module", "(func)", "expected a single `module` form"},
		{"unclosed", "(module (func $f)", "unclosed list"},
		{"stray close", "(module))", "unexpected `)`"},
		{"unclosed string", `(module (import "imports`, "unclosed string"},
		{"unclosed comment", "(module (; oops)", "unclosed block comment"},
		{"memory", "(module (memory 1))", "unsupported module field"},
		{"bad constant", "(module (global $g i32 (i32.const 4294967296)))", "invalid i32 constant"},
		{"duplicate function", "(module (func $f) (func $f))", "duplicate function: $f"},
		{"duplicate export", `(module (func (export "a")) (func (export "a")))`, "duplicate export: a"},
		{"multi result", "(module (func (result i32) (result i32)))", "unsupported result"},
		{"unnamed func param", "(module (func $f (param i32)))", "unsupported param"},
		{"bad import param", `(module (import "imports" "f" (func $f (param i64))))`, "unsupported param"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.text)
			if err == nil {
				t.Fatal("expected an error")
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestInstantiate(t *testing.T) {
	mod, err := Load(`(module (import "imports" "missing" (func $missing (param i32) (result i32))))`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Instantiate(mod, DefaultImports(&bytes.Buffer{})); err == nil || !strings.Contains(err.Error(), "unresolved import: imports.missing") {
		t.Errorf("unexpected error: %v", err)
	}

	mod, err = Load(`(module (global $g (mut i32) (i32.const 2147483648)) (func (export "f") (param $a i32) (global.set $g (local.get $a))))`)
	if err != nil {
		t.Fatal(err)
	}

	inst, err := Instantiate(mod, nil)
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := inst.Global("g"); v != -2147483648 {
		t.Errorf("expected the None encoding to wrap, got %d", v)
	}

	if _, _, err := inst.Invoke(context.Background(), "f"); err == nil {
		t.Error("expected an arity error")
	}

	if _, hasResult, err := inst.Invoke(context.Background(), "f", 42); err != nil || hasResult {
		t.Fatalf("unexpected invoke outcome: %v %v", hasResult, err)
	}

	if v, ok := inst.Global("g"); !ok || v != 42 {
		t.Errorf("expected 42, got %d", v)
	}

	if _, _, err := inst.Invoke(context.Background(), "nope"); err == nil {
		t.Error("expected an unknown export error")
	}
}

func TestDefaultImportsArithmetic(t *testing.T) {
	builtins := DefaultImports(&bytes.Buffer{})["imports"]

	tests := []struct {
		name string
		args []int32
		want int32
	}{
		{"abs", []int32{-5}, 5},
		{"abs", []int32{5}, 5},
		{"max", []int32{-1, 3}, 3},
		{"min", []int32{-1, 3}, -1},
		{"pow", []int32{2, 10}, 1024},
		{"pow", []int32{-3, 3}, -27},
		{"pow", []int32{7, 0}, 1},
		{"pow", []int32{2, -1}, 0},
		{"pow", []int32{-1, -3}, -1},
		{"pow", []int32{2, 32}, 0},
	}

	for _, tt := range tests {
		if got := builtins[tt.name](tt.args); got != tt.want {
			t.Errorf("%s%v = %d, want %d", tt.name, tt.args, got, tt.want)
		}
	}
}

// generateText compiles src to WebAssembly text with the code generator.
func generateText(t *testing.T, src string) string {
	t.Helper()

	tree, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	prog, err := build.Build(tree)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	typed, err := walk.Check(prog)
	if err != nil {
		t.Fatalf("type error: %v", err)
	}

	mod, err := codegen.Generate(typed, codegen.Options{})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	return mod.String()
}

func TestRunGeneratedModule(t *testing.T) {
	text := generateText(t, "x : int = 5\nprint(x + 1)\nprint(max(x, 9))\n")

	// every host import is declared with unnamed params
	mod, err := Load(text)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	for _, name := range []string{"$max", "$print_num", "$pow"} {
		fn, ok := mod.funcsByName[name]
		if !ok || !fn.isImport {
			t.Fatalf("missing import %s", name)
		}
	}

	if n := len(mod.funcsByName["$max"].params); n != 2 {
		t.Errorf("expected $max to take 2 params, got %d", n)
	}

	result, out := run(t, text)
	if out != "6\n9\n" {
		t.Errorf("unexpected output: %q", out)
	}

	if !result.HasValue || result.Value != 9 {
		t.Errorf("expected 9, got %+v", result)
	}
}

func TestLoadImportParams(t *testing.T) {
	mod, err := Load(`(module (import "imports" "f" (func $f (param i32 i32) (param $c i32) (result i32))))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := len(mod.funcsByName["$f"].params); n != 3 {
		t.Errorf("expected 3 params, got %d", n)
	}
}
