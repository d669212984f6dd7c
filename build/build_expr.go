package build

import (
	"math"
	"strconv"
	"strings"

	"snek/ast"
	"snek/common"
	"snek/report"
	"snek/syntax"
	"snek/types"
)

// buildExpr builds an expression.
func (b *Builder) buildExpr(n syntax.Node) ast.Expr {
	switch n.Name() {
	case "Number", "Boolean", "None", "String":
		return b.buildLiteral(n)
	case "VariableName":
		return &ast.Identifier{
			ExprBase: ast.NewExprBase(n.Span()),
			Name:     b.text(n),
		}
	case "ParenthesizedExpression":
		return b.buildExpr(n.(*syntax.Branch).Content[1])
	case "UnaryExpression":
		return b.buildUnaryOp(n.(*syntax.Branch))
	case "BinaryExpression":
		return b.buildBinaryOp(n.(*syntax.Branch))
	case "CallExpression":
		return b.buildCall(n.(*syntax.Branch))
	}

	b.raise(n, "unsupported expression: `%s`", b.text(n))
	return nil
}

// buildLiteral builds one of the four literal forms: an integer, `True`,
// `False` or `None`.
func (b *Builder) buildLiteral(n syntax.Node) *ast.Literal {
	lit := &ast.Literal{ExprBase: ast.NewExprBase(n.Span())}
	text := b.text(n)

	switch n.Name() {
	case "Number":
		if strings.Contains(text, ".") {
			b.raise(n, "unsupported literal: `%s`: only integers are supported", text)
		}

		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil || value > math.MaxInt32 {
			b.raise(n, "integer literal out of range: `%s`", text)
		}

		lit.Kind = ast.LitInt
		lit.Value = int32(value)
	case "Boolean":
		if text == "True" {
			lit.Kind = ast.LitTrue
		} else {
			lit.Kind = ast.LitFalse
		}
	case "None":
		lit.Kind = ast.LitNone
	default:
		b.raise(n, "unsupported literal: `%s`", text)
	}

	return lit
}

// TypeDef = (':' | '->') type
func (b *Builder) buildTypeDef(typeDef *syntax.Branch) types.Type {
	label := typeDef.Content[1]

	if label.Name() == "VariableName" || label.Name() == "None" {
		if typ, ok := types.Parse(b.text(label)); ok {
			return typ
		}
	}

	b.raise(label, "unknown type: `%s`", b.text(label))
	return types.Invalid
}

// -----------------------------------------------------------------------------

// UnaryExpression = ('-' | 'not') expr
func (b *Builder) buildUnaryOp(unop *syntax.Branch) *ast.UnaryOp {
	opText := b.text(unop.Content[0])

	op, ok := ast.ParseUnaryOp(opText)
	if !ok {
		b.raise(unop.Content[0], "unsupported unary operator: `%s`", opText)
	}

	return &ast.UnaryOp{
		ExprBase: ast.NewExprBase(unop.Span()),
		Op:       op,
		Operand:  b.buildExpr(unop.Content[1]),
	}
}

// BinaryExpression = expr op expr
func (b *Builder) buildBinaryOp(binop *syntax.Branch) *ast.BinaryOp {
	opText := b.text(binop.Content[1])

	op, ok := ast.ParseBinaryOp(opText)
	if !ok {
		b.raise(binop.Content[1], "unsupported binary operator: `%s`", opText)
	}

	return &ast.BinaryOp{
		ExprBase: ast.NewExprBase(binop.Span()),
		Op:       op,
		Lhs:      b.buildExpr(binop.Content[0]),
		Rhs:      b.buildExpr(binop.Content[2]),
	}
}

// CallExpression = VariableName ArgList
// ArgList = '(' [expr {',' expr}] ')'
func (b *Builder) buildCall(call *syntax.Branch) *ast.Call {
	callee := call.Content[0]
	if callee.Name() != "VariableName" {
		b.raise(callee, "cannot call `%s`: only named functions can be called", b.text(callee))
	}

	name := b.text(callee)
	argList := call.BranchAt(1)

	args := []ast.Expr{}
	for _, node := range argList.Content[1 : argList.Len()-1] {
		if node.Name() != "," {
			args = append(args, b.buildExpr(node))
		}
	}

	// the built-in names are only valid with their exact arity
	if arity, ok := common.BuiltinArity[name]; ok && len(args) != arity {
		b.raise(call, "built-in `%s` takes %d %s but %d were given", name, arity, common.Pluralize("argument", arity), len(args))
	}

	return &ast.Call{
		ExprBase: ast.NewExprBase(call.Span()),
		Name:     name,
		Args:     args,
	}
}

// -----------------------------------------------------------------------------

// syntaxSpanOver returns the span from the start of one node to the end of
// another.
func syntaxSpanOver(start, end syntax.Node) *report.TextSpan {
	return report.NewSpanOver(start.Span(), end.Span())
}
