package compile

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/aymanbagabas/go-udiff"

	"snek/codegen"
	"snek/common"
	"snek/host"
	"snek/report"
)

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		output string

		// The value returned by the entry routine, if any.
		value    int32
		hasValue bool
	}{
		{
			name:     "print global plus one",
			src:      "x : int = 5\nprint(x + 1)\n",
			output:   "6\n",
			value:    6,
			hasValue: true,
		},
		{
			name:   "print bools",
			src:    "print(True)\nprint(False)\npass\n",
			output: "True\nFalse\n",
		},
		{
			name:     "print None",
			src:      "print(None)\n",
			output:   "None\n",
			value:    int32(-2147483648),
			hasValue: true,
		},
		{
			name: "call",
			src: heredoc.Doc(`
				def f(a: int, b: int) -> int:
				    return a + b
				print(f(2, 3))
			`),
			output:   "5\n",
			value:    5,
			hasValue: true,
		},
		{
			name:     "last expression value",
			src:      "x : int = 2\nx = x * 3\nx * 7\n",
			value:    42,
			hasValue: true,
		},
		{
			name: "direct recursion",
			src: heredoc.Doc(`
				def fact(n: int) -> int:
				    if n <= 1:
				        return 1
				    return n * fact(n - 1)
				fact(5)
			`),
			value:    120,
			hasValue: true,
		},
		{
			name: "mutual recursion",
			src: heredoc.Doc(`
				def even(n: int) -> bool:
				    if n == 0:
				        return True
				    else:
				        return odd(n - 1)
				def odd(n: int) -> bool:
				    if n == 0:
				        return False
				    else:
				        return even(n - 1)
				print(even(10))
				print(odd(10))
			`),
			output:   "True\nFalse\n",
			value:    0,
			hasValue: true,
		},
		{
			name: "while loop",
			src: heredoc.Doc(`
				i : int = 0
				total : int = 0
				while i < 10:
				    i = i + 1
				    if i % 2 == 0:
				        pass
				    else:
				        total = total + i
				total
			`),
			value:    25,
			hasValue: true,
		},
		{
			name: "elif chain",
			src: heredoc.Doc(`
				def classify(n: int) -> int:
				    if n < 0:
				        return -1
				    elif n == 0:
				        return 0
				    elif n < 10:
				        return 1
				    elif n < 100:
				        return 2
				    else:
				        return 3
				print(classify(-5))
				print(classify(0))
				print(classify(7))
				print(classify(42))
				print(classify(1000))
			`),
			output:   "-1\n0\n1\n2\n3\n",
			value:    3,
			hasValue: true,
		},
		{
			name: "early return from loop",
			src: heredoc.Doc(`
				def first_square_over(limit: int) -> int:
				    n: int = 0
				    while True:
				        if n * n > limit:
				            return n
				        n = n + 1
				    return -1
				first_square_over(50)
			`),
			value:    8,
			hasValue: true,
		},
		{
			name: "globals mutated by functions",
			src: heredoc.Doc(`
				count : int = 0
				def bump() -> int:
				    count = count + 1
				    return count
				bump()
				bump()
				count
			`),
			value:    2,
			hasValue: true,
		},
		{
			name: "shadowed global",
			src: heredoc.Doc(`
				x : int = 100
				def f(x: int) -> int:
				    x = x + 1
				    return x
				print(f(1))
				x
			`),
			output:   "2\n",
			value:    100,
			hasValue: true,
		},
		{
			name: "None function falls through",
			src: heredoc.Doc(`
				def show(n: int):
				    if n > 0:
				        print(n)
				show(3)
				show(-3) is None
			`),
			output:   "3\n",
			value:    1,
			hasValue: true,
		},
		{
			name:     "builtins",
			src:      "print(abs(-5))\nprint(max(3, 9))\nprint(min(3, 9))\nprint(pow(2, 10))\n",
			output:   "5\n9\n3\n1024\n",
			value:    1024,
			hasValue: true,
		},
		{
			name:     "operators",
			src:      "print(not (1 > 2))\nprint(-(3 - 10))\nprint(17 // 5 * 5 + 17 % 5)\n",
			output:   "True\n7\n17\n",
			value:    17,
			hasValue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}

			result, err := Run(context.Background(), tt.src, Options{}, out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.String() != tt.output {
				t.Errorf("unexpected output:\n%s", udiff.Unified("want", "got", tt.output, out.String()))
			}

			if result.HasValue != tt.hasValue || (tt.hasValue && result.Value != tt.value) {
				t.Errorf("expected result %d (%v), got %d (%v)", tt.value, tt.hasValue, result.Value, result.HasValue)
			}
		})
	}
}

func TestRunArithmeticModes(t *testing.T) {
	src := "x : int = 0\nx = -7\nprint(x // 2)\nprint(x < 0)\n"

	tests := []struct {
		arithmetic int
		output     string
	}{
		{codegen.ArithSigned, "-3\nTrue\n"},
		{codegen.ArithUnsigned, "2147483644\nFalse\n"},
	}

	for _, tt := range tests {
		out := &bytes.Buffer{}
		if _, err := Run(context.Background(), src, Options{Arithmetic: tt.arithmetic}, out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.String() != tt.output {
			t.Errorf("arithmetic mode %d: expected %q, got %q", tt.arithmetic, tt.output, out.String())
		}
	}
}

func TestRunTrap(t *testing.T) {
	_, err := Run(context.Background(), "x : int = 0\nprint(1 // x)\n", Options{}, &bytes.Buffer{})

	var trap *host.Trap
	if !errors.As(err, &trap) || trap.Message != "integer divide by zero" {
		t.Errorf("expected a divide by zero trap, got %v", err)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind int
		msg  string
	}{
		{"syntax", "x : int = \n", report.KindSyntax, ""},
		{"build", "x = 5\ny : int = 1\n", report.KindBuild, "declarations must precede statements"},
		{"assign bool to int", "x : int = 5\nx = True\n", report.KindType, "cannot assign bool to int"},
		{
			"missing else",
			"def f(x: int) -> int:\n    if x > 0:\n        return x\n",
			report.KindType,
			"not all paths return int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src, Options{})

			cerr, ok := report.AsCompileError(err)
			if !ok {
				t.Fatalf("expected a compile error, got %v", err)
			}

			if cerr.Kind != tt.kind {
				t.Errorf("expected error kind %d, got a %s error: %v", tt.kind, cerr.KindName(), err)
			}

			if !strings.Contains(cerr.Message, tt.msg) {
				t.Errorf("message %q does not contain %q", cerr.Message, tt.msg)
			}
		})
	}
}

func TestCompileIdempotent(t *testing.T) {
	src := heredoc.Doc(`
		n : int = 5
		def fib(k: int) -> int:
		    if k < 2:
		        return k
		    elif k == 2:
		        return 1
		    return fib(k - 1) + fib(k - 2)
		while n > 0:
		    print(fib(n))
		    n = n - 1
	`)

	for _, target := range []int{common.TargetWAT, common.TargetLLVM} {
		first, err := Compile(src, Options{Target: target})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := Compile(src, Options{Target: target})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first != second {
			t.Errorf("target %d output differs between compilations:\n%s", target, udiff.Unified("first", "second", first, second))
		}
	}
}

func TestCompileTargets(t *testing.T) {
	src := "print(1)\n"

	wat, err := Compile(src, Options{Target: common.TargetWAT})
	if err != nil || !strings.HasPrefix(wat, "(module\n") {
		t.Errorf("unexpected WAT output: %q, %v", wat, err)
	}

	ll, err := Compile(src, Options{Target: common.TargetLLVM})
	if err != nil || !strings.Contains(ll, "define i32 @_start()") {
		t.Errorf("unexpected LLVM output: %q, %v", ll, err)
	}
}

// phaseRecorder records the compilation phases it is notified of.
type phaseRecorder struct {
	events []string
}

func (pr *phaseRecorder) BeginPhase(phase string) {
	pr.events = append(pr.events, phase)
}

func (pr *phaseRecorder) EndPhase(success bool) {
	if success {
		pr.events = append(pr.events, "ok")
	} else {
		pr.events = append(pr.events, "failed")
	}
}

func TestCompilePhases(t *testing.T) {
	pr := &phaseRecorder{}
	if _, err := Compile("print(1)\n", Options{Phases: pr}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Parsing ok Building ok Checking ok Generating ok"
	if got := strings.Join(pr.events, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	pr = &phaseRecorder{}
	if _, err := Compile("print(y)\n", Options{Phases: pr}); err == nil {
		t.Fatal("expected an error")
	}

	want = "Parsing ok Building ok Checking failed"
	if got := strings.Join(pr.events, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
