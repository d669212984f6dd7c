package codegen

import (
	"fmt"

	"snek/ast"
	"snek/common"
	"snek/types"
)

// generateExpr generates an expression which leaves its value on the stack.
func (g *Generator) generateExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Literal:
		g.emitConst(encodeLiteral(v))
	case *ast.Identifier:
		storage := g.storageFor(v.Span(), v.Name, v.Scope)
		g.emit(fmt.Sprintf("(%s.get $%s)", storage, v.Name))
	case *ast.UnaryOp:
		g.generateExpr(v.Operand)

		switch v.Op {
		case ast.OpNeg:
			g.emit("(i32.const -1)")
			g.emit("(i32.mul)")
		case ast.OpNot:
			g.emit("(i32.const 1)")
			g.emit("(i32.xor)")
		}
	case *ast.BinaryOp:
		g.generateExpr(v.Lhs)
		g.generateExpr(v.Rhs)
		g.emit(fmt.Sprintf("(i32.%s)", g.binaryInstr(v)))
	case *ast.Call:
		for _, arg := range v.Args {
			g.generateExpr(arg)
		}

		g.emit(fmt.Sprintf("(call $%s)", g.callTarget(v)))
	default:
		g.error(expr.Span(), "unsupported expression")
	}
}

// callTarget returns the name of the function a call invokes.  `print`
// dispatches on the static type of its argument.
func (g *Generator) callTarget(call *ast.Call) string {
	if call.Name != common.PrintFunc {
		return call.Name
	}

	switch argType := call.Args[0].Type(); argType {
	case types.Int:
		return common.PrintNumFunc
	case types.Bool:
		return common.PrintBoolFunc
	case types.None:
		return common.PrintNoneFunc
	default:
		g.error(call.Span(), "cannot print a value of type %s", argType)
		return ""
	}
}

// binaryInstr returns the i32 instruction implementing a binary operator in
// the configured arithmetic mode.
func (g *Generator) binaryInstr(binop *ast.BinaryOp) string {
	switch binop.Op {
	case ast.OpAdd:
		return "add"
	case ast.OpSub:
		return "sub"
	case ast.OpMul:
		return "mul"
	case ast.OpEq, ast.OpIs:
		return "eq"
	case ast.OpNe:
		return "ne"
	}

	var instr string
	switch binop.Op {
	case ast.OpFloorDiv:
		instr = "div"
	case ast.OpMod:
		instr = "rem"
	case ast.OpGt:
		instr = "gt"
	case ast.OpGe:
		instr = "ge"
	case ast.OpLt:
		instr = "lt"
	case ast.OpLe:
		instr = "le"
	default:
		g.error(binop.Span(), "unknown binary operator `%d`", binop.Op)
	}

	if g.opts.Arithmetic == ArithUnsigned {
		return instr + "_u"
	}

	return instr + "_s"
}

// emitConst emits an i32 constant.
func (g *Generator) emitConst(value int64) {
	g.emit(fmt.Sprintf("(i32.const %d)", value))
}
