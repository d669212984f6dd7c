package ast

import (
	"fmt"
	"strings"

	"snek/types"
)

// Dump renders a program tree as indented S-expressions.  Once the tree has
// been type checked, every expression is suffixed with `:type` and every
// identifier with its storage scope.  The output is deterministic.
func Dump(prog *Program) string {
	d := &dumper{sb: &strings.Builder{}}

	for _, vi := range prog.VarInits {
		d.line(0, d.varInit(vi))
	}

	for _, fd := range prog.FuncDefs {
		d.funcDef(fd)
	}

	for _, stmt := range prog.Stmts {
		d.stmt(0, stmt)
	}

	return d.sb.String()
}

type dumper struct {
	sb *strings.Builder
}

// line writes a single line at the given indentation level.
func (d *dumper) line(level int, text string) {
	d.sb.WriteString(strings.Repeat("  ", level))
	d.sb.WriteString(text)
	d.sb.WriteByte('\n')
}

// close appends closing parentheses to the last written line.
func (d *dumper) close() {
	s := d.sb.String()
	d.sb.Reset()
	d.sb.WriteString(strings.TrimSuffix(s, "\n"))
	d.sb.WriteString(")\n")
}

func (d *dumper) varInit(vi *VarInit) string {
	return fmt.Sprintf("(var %s %s %s)", vi.Name, vi.Type, d.expr(vi.Init))
}

func (d *dumper) funcDef(fd *FuncDef) {
	params := make([]string, len(fd.Params))
	for i, param := range fd.Params {
		params[i] = param.Name + ":" + param.Type.String()
	}

	d.line(0, fmt.Sprintf("(def %s (%s) %s", fd.Name, strings.Join(params, " "), fd.ReturnType))

	for _, vi := range fd.Inits {
		d.line(1, d.varInit(vi))
	}

	d.block(1, fd.Body)
	d.close()
}

func (d *dumper) block(level int, stmts []Stmt) {
	if len(stmts) == 0 {
		d.line(level, "()")
		return
	}

	for _, stmt := range stmts {
		d.stmt(level, stmt)
	}
}

func (d *dumper) stmt(level int, stmt Stmt) {
	switch v := stmt.(type) {
	case *Pass:
		d.line(level, "(pass)")
	case *Assign:
		d.line(level, fmt.Sprintf("(assign %s%s %s)", v.Name, scopeSuffix(v.Scope), d.expr(v.Value)))
	case *ExprStmt:
		d.line(level, fmt.Sprintf("(expr %s)", d.expr(v.Expr)))
	case *Return:
		d.line(level, fmt.Sprintf("(return %s)", d.expr(v.Value)))
	case *While:
		d.line(level, fmt.Sprintf("(while %s", d.expr(v.Cond)))
		d.block(level+1, v.Body)
		d.close()
	case *If:
		d.line(level, fmt.Sprintf("(if %s", d.expr(v.Cond)))
		d.block(level+1, v.Body)

		for _, elif := range v.Elifs {
			d.line(level+1, fmt.Sprintf("(elif %s", d.expr(elif.Cond)))
			d.block(level+2, elif.Body)
			d.close()
		}

		if len(v.Else) > 0 {
			d.line(level+1, "(else")
			d.block(level+2, v.Else)
			d.close()
		}

		d.close()
	}
}

func (d *dumper) expr(expr Expr) string {
	var s string

	switch v := expr.(type) {
	case *Literal:
		switch v.Kind {
		case LitInt:
			s = fmt.Sprint(v.Value)
		case LitTrue:
			s = "True"
		case LitFalse:
			s = "False"
		case LitNone:
			s = "None"
		}
	case *Identifier:
		s = v.Name + scopeSuffix(v.Scope)
	case *Call:
		parts := []string{"call", v.Name}
		for _, arg := range v.Args {
			parts = append(parts, d.expr(arg))
		}

		s = "(" + strings.Join(parts, " ") + ")"
	case *BinaryOp:
		s = fmt.Sprintf("(%s %s %s)", BinaryOpName(v.Op), d.expr(v.Lhs), d.expr(v.Rhs))
	case *UnaryOp:
		s = fmt.Sprintf("(%s %s)", UnaryOpName(v.Op), d.expr(v.Operand))
	}

	if expr.Type() != types.Invalid {
		s += ":" + expr.Type().String()
	}

	return s
}

func scopeSuffix(scope int) string {
	switch scope {
	case ScopeGlobal:
		return "@global"
	case ScopeLocal:
		return "@local"
	default:
		return ""
	}
}
