package walk

import (
	"snek/ast"
	"snek/common"
	"snek/types"
)

// walkExpr walks an expression, sets its type and returns that type.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	var typ types.Type

	switch v := expr.(type) {
	case *ast.Literal:
		switch v.Kind {
		case ast.LitInt:
			typ = types.Int
		case ast.LitTrue, ast.LitFalse:
			typ = types.Bool
		case ast.LitNone:
			typ = types.None
		}
	case *ast.Identifier:
		info, ok := w.env.lookup(v.Name)
		if !ok {
			w.error(v.Span(), "unbound identifier: `%s`", v.Name)
		}

		v.Scope = info.scope
		typ = info.typ
	case *ast.UnaryOp:
		typ = w.walkUnaryOp(v)
	case *ast.BinaryOp:
		typ = w.walkBinaryOp(v)
	case *ast.Call:
		typ = w.walkCall(v)
	}

	expr.SetType(typ)
	return typ
}

// walkUnaryOp walks a unary operator application.
func (w *Walker) walkUnaryOp(unop *ast.UnaryOp) types.Type {
	operandType := w.walkExpr(unop.Operand)

	var want types.Type
	switch unop.Op {
	case ast.OpNeg:
		want = types.Int
	case ast.OpNot:
		want = types.Bool
	}

	if operandType != want {
		w.error(unop.Span(), "operator `%s` expects %s, got %s", ast.UnaryOpName(unop.Op), want, operandType)
	}

	return want
}

// walkBinaryOp walks a binary operator application.
func (w *Walker) walkBinaryOp(binop *ast.BinaryOp) types.Type {
	lhsType := w.walkExpr(binop.Lhs)
	rhsType := w.walkExpr(binop.Rhs)
	opName := ast.BinaryOpName(binop.Op)

	switch {
	case ast.IsArithOp(binop.Op), ast.IsCompareOp(binop.Op):
		if lhsType != types.Int || rhsType != types.Int {
			w.error(binop.Span(), "operator `%s` expects int operands, got %s and %s", opName, lhsType, rhsType)
		}

		if ast.IsArithOp(binop.Op) {
			return types.Int
		}
	case binop.Op == ast.OpIs:
		// None is the only type with identity
		if lhsType != types.None || rhsType != types.None {
			w.error(binop.Span(), "operator `is` expects None operands, got %s and %s", lhsType, rhsType)
		}
	default:
		if lhsType != rhsType {
			w.error(binop.Span(), "operator `%s` cannot compare %s and %s", opName, lhsType, rhsType)
		}
	}

	return types.Bool
}

// walkCall walks a function call.
func (w *Walker) walkCall(call *ast.Call) types.Type {
	// print accepts a value of any type: the generator picks the host function
	// to print with from the type of the argument
	if call.Name == common.PrintFunc {
		if len(call.Args) != 1 {
			w.error(call.Span(), "`print` expects 1 argument, got %d", len(call.Args))
		}

		w.walkExpr(call.Args[0])
		return types.None
	}

	sig, ok := w.env.funcs[call.Name]
	if !ok {
		w.error(call.Span(), "unknown function: `%s`", call.Name)
	}

	if len(call.Args) != len(sig.params) {
		w.error(call.Span(), "function `%s` expects %d %s, got %d", call.Name, len(sig.params), common.Pluralize("argument", len(sig.params)), len(call.Args))
	}

	for i, arg := range call.Args {
		if argType := w.walkExpr(arg); argType != sig.params[i] {
			w.error(arg.Span(), "argument %d of `%s` must be %s, got %s", i+1, call.Name, sig.params[i], argType)
		}
	}

	return sig.ret
}
