package generate

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"snek/ast"
	"snek/codegen"
	"snek/common"
	"snek/types"
)

// genExpr generates an expression and returns its i32 value.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return g.literalValue(v)
	case *ast.Identifier:
		return g.block.NewLoad(lltypes.I32, g.lookup(v.Span(), v.Name, v.Scope))
	case *ast.UnaryOp:
		operand := g.genExpr(v.Operand)

		switch v.Op {
		case ast.OpNeg:
			return g.block.NewMul(operand, constI32(-1))
		case ast.OpNot:
			return g.block.NewXor(operand, constI32(1))
		}
	case *ast.BinaryOp:
		return g.genBinaryOp(v)
	case *ast.Call:
		args := make([]value.Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = g.genExpr(arg)
		}

		return g.block.NewCall(g.callTarget(v), args...)
	}

	g.error(expr.Span(), "unsupported expression")
	return nil
}

// genCond generates a bool expression as an i1 branch condition.
func (g *Generator) genCond(cond ast.Expr) value.Value {
	return g.block.NewICmp(enum.IPredNE, g.genExpr(cond), constI32(0))
}

// genBinaryOp generates a binary operator application.
func (g *Generator) genBinaryOp(binop *ast.BinaryOp) value.Value {
	lhs := g.genExpr(binop.Lhs)
	rhs := g.genExpr(binop.Rhs)
	unsigned := g.opts.Arithmetic == codegen.ArithUnsigned

	switch binop.Op {
	case ast.OpAdd:
		return g.block.NewAdd(lhs, rhs)
	case ast.OpSub:
		return g.block.NewSub(lhs, rhs)
	case ast.OpMul:
		return g.block.NewMul(lhs, rhs)
	case ast.OpFloorDiv:
		if unsigned {
			return g.block.NewUDiv(lhs, rhs)
		}

		return g.block.NewSDiv(lhs, rhs)
	case ast.OpMod:
		if unsigned {
			return g.block.NewURem(lhs, rhs)
		}

		return g.block.NewSRem(lhs, rhs)
	}

	var pred enum.IPred
	switch binop.Op {
	case ast.OpEq, ast.OpIs:
		pred = enum.IPredEQ
	case ast.OpNe:
		pred = enum.IPredNE
	case ast.OpGt:
		pred = choosePred(unsigned, enum.IPredUGT, enum.IPredSGT)
	case ast.OpGe:
		pred = choosePred(unsigned, enum.IPredUGE, enum.IPredSGE)
	case ast.OpLt:
		pred = choosePred(unsigned, enum.IPredULT, enum.IPredSLT)
	case ast.OpLe:
		pred = choosePred(unsigned, enum.IPredULE, enum.IPredSLE)
	default:
		g.error(binop.Span(), "unknown binary operator")
	}

	// Comparisons yield i1 which is widened to the i32 encoding of bool.
	return g.block.NewZExt(g.block.NewICmp(pred, lhs, rhs), lltypes.I32)
}

// callTarget returns the LLVM function a call invokes.  `print` dispatches on
// the static type of its argument.
func (g *Generator) callTarget(call *ast.Call) value.Value {
	name := call.Name

	if name == common.PrintFunc {
		switch argType := call.Args[0].Type(); argType {
		case types.Int:
			name = common.PrintNumFunc
		case types.Bool:
			name = common.PrintBoolFunc
		case types.None:
			name = common.PrintNoneFunc
		default:
			g.error(call.Span(), "cannot print a value of type %s", argType)
		}
	}

	llFunc, ok := g.funcs[name]
	if !ok {
		g.error(call.Span(), "unknown function: `%s`", name)
	}

	return llFunc
}

// literalValue returns the i32 encoding of a literal.
func (g *Generator) literalValue(lit *ast.Literal) *constant.Int {
	switch lit.Kind {
	case ast.LitTrue:
		return constI32(1)
	case ast.LitFalse:
		return constI32(0)
	case ast.LitNone:
		return constI32(common.NoneValue)
	}

	return constI32(int64(lit.Value))
}

func choosePred(unsigned bool, upred, spred enum.IPred) enum.IPred {
	if unsigned {
		return upred
	}

	return spred
}
