package host

import (
	"context"
	"math"
)

// The maximum number of nested calls before execution traps.
const maxCallDepth = 4096

// Enumeration of the ways control can leave an instruction sequence.
const (
	ctlNext   = iota // Continue with the next instruction.
	ctlBranch        // Branch to an enclosing label.
	ctlReturn        // Return from the current function.
)

type control struct {
	kind  int
	label string
}

var next = control{kind: ctlNext}

// frame holds the local slots of a function activation.
type frame struct {
	locals map[string]int32
}

// machine executes functions of an instance on a shared value stack.
type machine struct {
	ctx   context.Context
	inst  *Instance
	stack []int32

	// The number of active calls.
	depth int
}

// call pops the arguments of fn, calls it and returns its result (0 if it has
// none).
func (m *machine) call(fn *function) int32 {
	args := m.popN(len(fn.params))

	if hostFn, ok := m.inst.bound[fn]; ok {
		result := hostFn(args)
		if fn.result {
			return result
		}

		return 0
	}

	if m.depth >= maxCallDepth {
		trap("call stack exhausted")
	}

	m.depth++
	defer func() {
		m.depth--
	}()

	fr := &frame{locals: make(map[string]int32, len(fn.params)+len(fn.locals))}
	for i, param := range fn.params {
		fr.locals[param] = args[i]
	}

	for _, local := range fn.locals {
		fr.locals[local] = 0
	}

	height := len(m.stack)
	if ctl := m.execSeq(fr, fn.body); ctl.kind == ctlBranch {
		trap("unknown label %s", ctl.label)
	}

	var result int32
	if fn.result {
		if len(m.stack) <= height {
			trap("function %s returned without a value", fn.name)
		}

		result = m.stack[len(m.stack)-1]
	}

	m.stack = m.stack[:height]
	return result
}

// execSeq executes a sequence of instructions.
func (m *machine) execSeq(fr *frame, instrs []*sexpr) control {
	for _, instr := range instrs {
		if ctl := m.exec(fr, instr); ctl.kind != ctlNext {
			return ctl
		}
	}

	return next
}

// exec executes a single folded instruction.
func (m *machine) exec(fr *frame, instr *sexpr) control {
	op := instr.head()
	if op == "" {
		trap("unsupported instruction: %s", instr)
	}

	switch op {
	case "block", "loop":
		return m.execBlock(fr, instr, op == "loop")
	case "if":
		return m.execIf(fr, instr)
	}

	// Folded operands are evaluated before the instruction itself.
	var imms []string
	for _, item := range instr.list[1:] {
		if item.isList {
			if ctl := m.exec(fr, item); ctl.kind != ctlNext {
				return ctl
			}
		} else {
			imms = append(imms, item.atom)
		}
	}

	switch op {
	case "nop":
	case "unreachable":
		trap("unreachable executed")
	case "drop":
		m.pop()
	case "return":
		return control{kind: ctlReturn}
	case "br":
		return control{kind: ctlBranch, label: m.imm(op, imms)}
	case "br_if":
		label := m.imm(op, imms)
		if m.pop() != 0 {
			return control{kind: ctlBranch, label: label}
		}
	case "call":
		name := m.imm(op, imms)

		fn, ok := m.inst.mod.funcsByName[name]
		if !ok {
			trap("unknown function %s", name)
		}

		result := m.call(fn)
		if fn.result {
			m.push(result)
		}
	case "i32.const":
		value, err := parseI32(m.imm(op, imms))
		if err != nil {
			trap("%s", err)
		}

		m.push(value)
	case "local.get":
		m.push(fr.locals[m.local(fr, m.imm(op, imms))])
	case "local.set":
		fr.locals[m.local(fr, m.imm(op, imms))] = m.pop()
	case "local.tee":
		value := m.pop()
		fr.locals[m.local(fr, m.imm(op, imms))] = value
		m.push(value)
	case "global.get":
		m.push(m.global(m.imm(op, imms)).value)
	case "global.set":
		cell := m.global(m.imm(op, imms))
		if !cell.mutable {
			trap("global %s is immutable", imms[0])
		}

		cell.value = m.pop()
	case "i32.eqz":
		m.push(boolToI32(m.pop() == 0))
	default:
		binop, ok := binaryOps[op]
		if !ok {
			trap("unsupported instruction: %s", op)
		}

		rhs := m.pop()
		lhs := m.pop()
		m.push(binop(lhs, rhs))
	}

	return next
}

// execBlock executes a block or a loop.  A branch to the label of a block
// exits it while a branch to the label of a loop restarts it.
func (m *machine) execBlock(fr *frame, instr *sexpr, isLoop bool) control {
	label, body := splitLabel(instr)
	height := len(m.stack)

	for {
		if err := m.ctx.Err(); err != nil {
			panic(&Trap{Message: "execution cancelled", Cause: err})
		}

		ctl := m.execSeq(fr, body)
		if ctl.kind != ctlBranch || label == "" || ctl.label != label {
			return ctl
		}

		m.stack = m.stack[:height]
		if !isLoop {
			return next
		}
	}
}

// execIf executes an if instruction.  The condition is popped after the folded
// condition operands, if any, are evaluated.
func (m *machine) execIf(fr *frame, instr *sexpr) control {
	label, items := splitLabel(instr)

	var thenArm, elseArm []*sexpr
	for _, item := range items {
		switch item.head() {
		case "then":
			thenArm = item.list[1:]
		case "else":
			elseArm = item.list[1:]
		default:
			if ctl := m.exec(fr, item); ctl.kind != ctlNext {
				return ctl
			}
		}
	}

	arm := elseArm
	if m.pop() != 0 {
		arm = thenArm
	}

	height := len(m.stack)
	ctl := m.execSeq(fr, arm)
	if ctl.kind == ctlBranch && label != "" && ctl.label == label {
		m.stack = m.stack[:height]
		return next
	}

	return ctl
}

// -----------------------------------------------------------------------------

func (m *machine) push(value int32) {
	m.stack = append(m.stack, value)
}

func (m *machine) pop() int32 {
	if len(m.stack) == 0 {
		trap("value stack underflow")
	}

	value := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return value
}

// popN pops n values and returns them in the order they were pushed.
func (m *machine) popN(n int) []int32 {
	if len(m.stack) < n {
		trap("value stack underflow")
	}

	values := make([]int32, n)
	copy(values, m.stack[len(m.stack)-n:])
	m.stack = m.stack[:len(m.stack)-n]
	return values
}

// imm returns the single immediate of an instruction.
func (m *machine) imm(op string, imms []string) string {
	if len(imms) != 1 {
		trap("`%s` expects 1 immediate, got %d", op, len(imms))
	}

	return imms[0]
}

// local checks that a local slot exists and returns its name.
func (m *machine) local(fr *frame, name string) string {
	if _, ok := fr.locals[name]; !ok {
		trap("unknown local %s", name)
	}

	return name
}

func (m *machine) global(name string) *globalCell {
	cell, ok := m.inst.globals[name]
	if !ok {
		trap("unknown global %s", name)
	}

	return cell
}

// splitLabel splits the optional label off the items of a structured
// instruction.
func splitLabel(instr *sexpr) (string, []*sexpr) {
	items := instr.list[1:]
	if len(items) > 0 && items[0].isName() {
		return items[0].atom, items[1:]
	}

	return "", items
}

// -----------------------------------------------------------------------------

// binaryOps maps binary i32 instructions to their implementation.
var binaryOps = map[string]func(lhs, rhs int32) int32{
	"i32.add": func(lhs, rhs int32) int32 { return lhs + rhs },
	"i32.sub": func(lhs, rhs int32) int32 { return lhs - rhs },
	"i32.mul": func(lhs, rhs int32) int32 { return lhs * rhs },
	"i32.and": func(lhs, rhs int32) int32 { return lhs & rhs },
	"i32.or":  func(lhs, rhs int32) int32 { return lhs | rhs },
	"i32.xor": func(lhs, rhs int32) int32 { return lhs ^ rhs },
	"i32.div_s": func(lhs, rhs int32) int32 {
		checkDivisor(rhs)
		if lhs == math.MinInt32 && rhs == -1 {
			trap("integer overflow")
		}

		return lhs / rhs
	},
	"i32.div_u": func(lhs, rhs int32) int32 {
		checkDivisor(rhs)
		return int32(uint32(lhs) / uint32(rhs))
	},
	"i32.rem_s": func(lhs, rhs int32) int32 {
		checkDivisor(rhs)
		if rhs == -1 {
			return 0
		}

		return lhs % rhs
	},
	"i32.rem_u": func(lhs, rhs int32) int32 {
		checkDivisor(rhs)
		return int32(uint32(lhs) % uint32(rhs))
	},
	"i32.eq":   func(lhs, rhs int32) int32 { return boolToI32(lhs == rhs) },
	"i32.ne":   func(lhs, rhs int32) int32 { return boolToI32(lhs != rhs) },
	"i32.lt_s": func(lhs, rhs int32) int32 { return boolToI32(lhs < rhs) },
	"i32.le_s": func(lhs, rhs int32) int32 { return boolToI32(lhs <= rhs) },
	"i32.gt_s": func(lhs, rhs int32) int32 { return boolToI32(lhs > rhs) },
	"i32.ge_s": func(lhs, rhs int32) int32 { return boolToI32(lhs >= rhs) },
	"i32.lt_u": func(lhs, rhs int32) int32 { return boolToI32(uint32(lhs) < uint32(rhs)) },
	"i32.le_u": func(lhs, rhs int32) int32 { return boolToI32(uint32(lhs) <= uint32(rhs)) },
	"i32.gt_u": func(lhs, rhs int32) int32 { return boolToI32(uint32(lhs) > uint32(rhs)) },
	"i32.ge_u": func(lhs, rhs int32) int32 { return boolToI32(uint32(lhs) >= uint32(rhs)) },
}

func checkDivisor(rhs int32) {
	if rhs == 0 {
		trap("integer divide by zero")
	}
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}

	return 0
}
