package walk

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"

	"snek/ast"
	"snek/build"
	"snek/report"
	"snek/syntax"
	"snek/types"
)

func buildProgram(t *testing.T, src string) *ast.Program {
	t.Helper()

	tree, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	prog, err := build.Build(tree)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	return prog
}

// exprs collects every expression of a program in walk order.
func exprs(prog *ast.Program) []ast.Expr {
	var result []ast.Expr

	var visitExpr func(ast.Expr)
	visitExpr = func(expr ast.Expr) {
		result = append(result, expr)

		switch v := expr.(type) {
		case *ast.Call:
			for _, arg := range v.Args {
				visitExpr(arg)
			}
		case *ast.BinaryOp:
			visitExpr(v.Lhs)
			visitExpr(v.Rhs)
		case *ast.UnaryOp:
			visitExpr(v.Operand)
		}
	}

	var visitStmts func([]ast.Stmt)
	visitStmts = func(stmts []ast.Stmt) {
		for _, stmt := range stmts {
			switch v := stmt.(type) {
			case *ast.Assign:
				visitExpr(v.Value)
			case *ast.ExprStmt:
				visitExpr(v.Expr)
			case *ast.Return:
				visitExpr(v.Value)
			case *ast.While:
				visitExpr(v.Cond)
				visitStmts(v.Body)
			case *ast.If:
				visitExpr(v.Cond)
				visitStmts(v.Body)
				for _, elif := range v.Elifs {
					visitExpr(elif.Cond)
					visitStmts(elif.Body)
				}
				visitStmts(v.Else)
			}
		}
	}

	for _, vi := range prog.VarInits {
		visitExpr(vi.Init)
	}

	for _, fd := range prog.FuncDefs {
		for _, vi := range fd.Inits {
			visitExpr(vi.Init)
		}

		visitStmts(fd.Body)
	}

	visitStmts(prog.Stmts)
	return result
}

func TestCheckAnnotatesEveryExpression(t *testing.T) {
	src := heredoc.Doc(`
		x : int = 5
		flag : bool = False
		nothing : None = None
		def f(a: int, b: int) -> int:
		    total: int = 0
		    while total < a:
		        total = total + b
		    if not flag:
		        return total
		    elif nothing is None:
		        return -total
		    else:
		        return abs(total) % 3
		print(x + 1)
		print(f(2, 3) == max(1, 2))
		print(None)
	`)

	prog := buildProgram(t, src)
	typed, err := Check(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	typedExprs := exprs(typed)
	if len(typedExprs) == 0 {
		t.Fatal("no expressions found")
	}

	for _, expr := range typedExprs {
		if !expr.Type().IsValid() {
			t.Errorf("expression at %s has no type", expr.Span())
		}
	}

	// the input tree is left untouched
	for _, expr := range exprs(prog) {
		if expr.Type() != types.Invalid {
			t.Fatalf("input expression at %s was typed", expr.Span())
		}
	}

	// print keeps the type of its argument
	last := typed.Stmts[len(typed.Stmts)-1].(*ast.ExprStmt).Expr.(*ast.Call)
	if last.Type() != types.None || last.Args[0].Type() != types.None {
		t.Errorf("unexpected print types: %s(%s)", last.Type(), last.Args[0].Type())
	}
}

func TestCheckScopes(t *testing.T) {
	src := heredoc.Doc(`
		x : int = 1
		g : int = 2
		def f(x: int) -> int:
		    y: int = 3
		    x = x + y
		    g = x
		    return x
		x = f(g)
	`)

	typed, err := Check(buildProgram(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := heredoc.Doc(`
		(var x int 1:int)
		(var g int 2:int)
		(def f (x:int) int
		  (var y int 3:int)
		  (assign x@local (+ x@local:int y@local:int):int)
		  (assign g@global x@local:int)
		  (return x@local:int))
		(assign x@global (call f g@global:int):int)
	`)

	if got := ast.Dump(typed); got != want {
		t.Errorf("unexpected typed tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckReturnPaths(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "if else",
			src: heredoc.Doc(`
				def f(x: int) -> int:
				    if x > 0:
				        return x
				    else:
				        return 0
			`),
		},
		{
			name: "elif chain",
			src: heredoc.Doc(`
				def f(x: int) -> bool:
				    if x > 10:
				        return True
				    elif x > 5:
				        return False
				    elif x > 0:
				        return True
				    else:
				        return False
			`),
		},
		{
			name: "nested if in else",
			src: heredoc.Doc(`
				def f(x: int) -> int:
				    if x > 0:
				        return 1
				    else:
				        if x == 0:
				            return 0
				        else:
				            return -1
			`),
		},
		{
			name: "statements after return",
			src: heredoc.Doc(`
				def f() -> int:
				    return 1
				    pass
			`),
		},
		{
			name: "fallthrough then return",
			src: heredoc.Doc(`
				def f(x: int) -> int:
				    if x > 0:
				        return x
				    return 0
			`),
		},
		{
			name: "None function falls through",
			src: heredoc.Doc(`
				def f(x: int):
				    if x > 0:
				        print(x)
			`),
		},
		{
			name: "None function bare return",
			src: heredoc.Doc(`
				def f() -> None:
				    return
			`),
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
			`),
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
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Check(buildProgram(t, tt.src)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"assign mismatch", "x : int = 5\nx = True\n", "cannot assign bool to int"},
		{
			"missing else",
			"def f(x: int) -> int:\n    if x > 0:\n        return x\n",
			"not all paths return int",
		},
		{
			"elif falls through",
			"def f(x: int) -> int:\n    if x > 0:\n        return x\n    elif x < 0:\n        pass\n    else:\n        return 0\n",
			"not all paths return int",
		},
		{
			"while never returns",
			"def f() -> int:\n    while True:\n        return 1\n",
			"not all paths return int",
		},
		{"empty body", "def f() -> bool:\n    x: int = 1\n", "not all paths return bool"},
		{"init mismatch", "x : int = True\n", "cannot initialize `x` of type int with a value of type bool"},
		{"none init mismatch", "x : None = 0\n", "cannot initialize `x` of type None with a value of type int"},
		{"unbound", "print(y)\n", "unbound identifier: `y`"},
		{"unbound in function", "def f():\n    print(z)\n", "unbound identifier: `z`"},
		{"local does not leak", "def f():\n    y: int = 1\n    pass\nprint(y)\n", "unbound identifier: `y`"},
		{"undeclared assign", "y = 1\n", "cannot assign to undeclared variable `y`"},
		{"negate bool", "print(-True)\n", "operator `-` expects int, got bool"},
		{"not int", "print(not 1)\n", "operator `not` expects bool, got int"},
		{"add bool", "print(1 + True)\n", "operator `+` expects int operands, got int and bool"},
		{"compare None", "print(1 < None)\n", "operator `<` expects int operands, got int and None"},
		{"floor div bool", "print(False // 2)\n", "operator `//` expects int operands, got bool and int"},
		{"equality mismatch", "print(1 == True)\n", "operator `==` cannot compare int and bool"},
		{"inequality mismatch", "print(None != False)\n", "operator `!=` cannot compare None and bool"},
		{"is int", "print(1 is 1)\n", "operator `is` expects None operands, got int and int"},
		{"duplicate function", "def f():\n    pass\ndef f():\n    pass\n", "duplicate function: `f`"},
		{"builtin clash", "def abs(x: int) -> int:\n    return x\n", "duplicate function: `abs`"},
		{"reserved print", "def print(x: int):\n    pass\n", "the name is reserved"},
		{"reserved print_num", "def print_num(x: int):\n    pass\n", "the name is reserved"},
		{"duplicate param", "def f(a: int, a: int):\n    pass\n", "duplicate parameter `a` in function `f`"},
		{"local shadows param", "def f(a: int):\n    a: int = 1\n    pass\n", "variable `a` is already declared"},
		{"duplicate global", "x : int = 1\nx : int = 2\n", "variable `x` is already declared"},
		{"arity", "def f(a: int) -> int:\n    return a\nf(1, 2)\n", "function `f` expects 1 argument, got 2"},
		{"argument type", "def f(a: int) -> int:\n    return a\nf(True)\n", "argument 1 of `f` must be int, got bool"},
		{"builtin argument type", "print(max(1, None))\n", "argument 2 of `max` must be int, got None"},
		{"unknown function", "g(1)\n", "unknown function: `g`"},
		{"return type", "def f() -> int:\n    return True\n", "cannot return bool from a function returning int"},
		{"bare return", "def f() -> int:\n    return\n", "cannot return None from a function returning int"},
		{"top-level return", "return 1\n", "cannot return outside of a function"},
		{"while condition", "while 1:\n    pass\n", "while condition must be bool, got int"},
		{"if condition", "if None:\n    pass\n", "if condition must be bool, got None"},
		{"elif condition", "if True:\n    pass\nelif 2:\n    pass\n", "elif condition must be bool, got int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check(buildProgram(t, tt.src))
			if err == nil {
				t.Fatal("expected a type error")
			}

			cerr, ok := report.AsCompileError(err)
			if !ok || cerr.Kind != report.KindType {
				t.Fatalf("expected a type error, got %v", err)
			}

			if !strings.Contains(cerr.Message, tt.msg) {
				t.Errorf("message %q does not contain %q", cerr.Message, tt.msg)
			}
		})
	}
}
