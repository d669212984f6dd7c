package generate

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"

	"snek/ast"
	"snek/build"
	"snek/codegen"
	"snek/report"
	"snek/syntax"
	"snek/walk"
)

func checkProgram(t *testing.T, src string) *ast.Program {
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

	return typed
}

func generate(t *testing.T, src string, opts codegen.Options) *ir.Module {
	t.Helper()

	mod, err := Generate(checkProgram(t, src), opts)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	return mod
}

// assertTerminated checks that every block of every defined function ends
// with a terminator.
func assertTerminated(t *testing.T, mod *ir.Module) {
	t.Helper()

	for _, fn := range mod.Funcs {
		for _, block := range fn.Blocks {
			if block.Term == nil {
				t.Errorf("block %s of %s has no terminator", block.Name(), fn.Name())
			}
		}
	}
}

func TestGenerateModule(t *testing.T) {
	src := heredoc.Doc(`
		x : int = 5
		flag : bool = True
		nothing : None = None
		def add(a: int, b: int) -> int:
		    total: int = 0
		    total = a + b
		    return total
		def show(v: int):
		    print(v)
		print(add(x, 1))
		show(x)
	`)

	mod := generate(t, src, codegen.Options{})
	assertTerminated(t, mod)

	text := mod.String()
	for _, want := range []string{
		"@var.x = global i32 5",
		"@var.flag = global i32 1",
		"@var.nothing = global i32 -2147483648",
		"declare i32 @print_num(i32",
		"declare i32 @max(i32",
		"define internal i32 @fn.add(i32 %a, i32 %b)",
		"define internal i32 @fn.show(i32 %v)",
		"call i32 @fn.add(",
		"call i32 @print_num(",
		"ret i32 -2147483648",
		"define i32 @_start()",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("module is missing %q:\n%s", want, text)
		}
	}

	for _, fn := range mod.Funcs {
		switch {
		case fn.Name() == "_start" && fn.Linkage != enum.LinkageNone:
			t.Errorf("expected _start to keep the default linkage, got %s", fn.Linkage)
		case strings.HasPrefix(fn.Name(), "fn.") && fn.Linkage != enum.LinkageInternal:
			t.Errorf("expected %s to be internal, got %s", fn.Name(), fn.Linkage)
		}
	}

	// user functions are declared before any body so order does not matter
	if len(mod.Funcs) != 8+3 {
		t.Errorf("expected 11 functions, got %d", len(mod.Funcs))
	}
}

func TestGenerateStartWithoutResult(t *testing.T) {
	mod := generate(t, "x : int = 1\nx = 2\n", codegen.Options{})
	assertTerminated(t, mod)

	if text := mod.String(); !strings.Contains(text, "define void @_start()") || !strings.Contains(text, "ret void") {
		t.Errorf("unexpected entry routine:\n%s", text)
	}
}

func TestGenerateControlFlow(t *testing.T) {
	src := heredoc.Doc(`
		def sign(v: int) -> int:
		    if v > 0:
		        return 1
		    elif v < 0:
		        return -1
		    else:
		        return 0
		    print(v)
		def count(n: int) -> int:
		    i: int = 0
		    while i < n:
		        if i == 3:
		            return i
		        i = i + 1
		    return n
		def loop():
		    while True:
		        pass
		print(sign(count(5)))
	`)

	mod := generate(t, src, codegen.Options{})
	assertTerminated(t, mod)

	text := mod.String()
	for _, want := range []string{"icmp sgt i32", "icmp slt i32", "icmp eq i32", "br i1"} {
		if !strings.Contains(text, want) {
			t.Errorf("module is missing %q", want)
		}
	}

	// the exit block of an if whose branches all return is removed along
	// with the dead code after it
	for _, fn := range mod.Funcs {
		if fn.Name() != "fn.sign" {
			continue
		}

		for _, block := range fn.Blocks {
			for _, inst := range block.Insts {
				if _, ok := inst.(*ir.InstCall); ok {
					t.Errorf("dead call generated in block %s", block.Name())
				}
			}
		}
	}
}

func TestGenerateArithmetic(t *testing.T) {
	src := "x : int = 7\nprint(x // 2 + x % 2)\nprint(x < 2)\n"

	signed := generate(t, src, codegen.Options{Arithmetic: codegen.ArithSigned}).String()
	for _, want := range []string{"sdiv", "srem", "icmp slt"} {
		if !strings.Contains(signed, want) {
			t.Errorf("signed module is missing %q", want)
		}
	}

	unsigned := generate(t, src, codegen.Options{Arithmetic: codegen.ArithUnsigned}).String()
	for _, want := range []string{"udiv", "urem", "icmp ult"} {
		if !strings.Contains(unsigned, want) {
			t.Errorf("unsigned module is missing %q", want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	src := heredoc.Doc(`
		n : int = 10
		def fib(k: int) -> int:
		    if k < 2:
		        return k
		    return fib(k - 1) + fib(k - 2)
		while n > 0:
		    print(fib(n))
		    n = n - 1
	`)

	first := generate(t, src, codegen.Options{}).String()
	second := generate(t, src, codegen.Options{}).String()

	if first != second {
		t.Error("generation is not deterministic")
	}
}

func TestGenerateInvariantErrors(t *testing.T) {
	prog := checkProgram(t, "def f(a: int) -> int:\n    return a\n")
	prog.FuncDefs[0].Body[0].(*ast.Return).Value.(*ast.Identifier).Scope = ast.ScopeGlobal

	_, err := Generate(prog, codegen.Options{})

	cerr, ok := report.AsCompileError(err)
	if !ok || cerr.Kind != report.KindGenerate {
		t.Fatalf("expected a generate error, got %v", err)
	}

	if cerr.Message != "no storage for variable `a`" {
		t.Errorf("unexpected message: %s", cerr.Message)
	}
}
