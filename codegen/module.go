package codegen

import (
	"fmt"
	"strings"

	"snek/common"
)

// Module is a generated WebAssembly text module.
type Module struct {
	// The mutable globals of the module in declaration order.
	Globals []*Global

	// The user functions of the module in definition order.
	Funcs []*Func

	// The exported entry routine which runs the top-level statements.
	Start *Func
}

// Global is a mutable i32 global with its initial encoded value.
type Global struct {
	Name  string
	Value int64
}

// Func is a generated function.
type Func struct {
	// The name of the function.  It is empty for the entry routine.
	Name string

	// The export name of the function if it is exported.
	Export string

	// The names of the parameters in order.
	Params []string

	// Whether the function yields an i32 result.
	HasResult bool

	// The names of the local slots in declaration order.  This includes the
	// scratch slot.
	Locals []string

	// The body instructions, one per line, indented relative to the body.
	Body []string
}

// String renders the module as WebAssembly text.
func (m *Module) String() string {
	sb := &strings.Builder{}
	sb.WriteString("(module\n")

	for _, imp := range common.HostImports {
		fmt.Fprintf(
			sb,
			"  (import \"%s\" \"%s\" (func $%s%s (result i32)))\n",
			common.ImportNamespace,
			imp.Name,
			imp.Name,
			strings.Repeat(" (param i32)", imp.Arity),
		)
	}

	for _, global := range m.Globals {
		fmt.Fprintf(sb, "  (global $%s (mut i32) (i32.const %d))\n", global.Name, global.Value)
	}

	for _, fn := range m.Funcs {
		fn.writeTo(sb)
	}

	if m.Start != nil {
		m.Start.writeTo(sb)
	}

	sb.WriteString(")\n")
	return sb.String()
}

// writeTo writes the function's text to sb.
func (fn *Func) writeTo(sb *strings.Builder) {
	sb.WriteString("  (func")

	if fn.Name != "" {
		sb.WriteString(" $" + fn.Name)
	}

	if fn.Export != "" {
		fmt.Fprintf(sb, " (export \"%s\")", fn.Export)
	}

	for _, param := range fn.Params {
		fmt.Fprintf(sb, " (param $%s i32)", param)
	}

	if fn.HasResult {
		sb.WriteString(" (result i32)")
	}

	sb.WriteRune('\n')

	for _, local := range fn.Locals {
		fmt.Fprintf(sb, "    (local $%s i32)\n", local)
	}

	for _, line := range fn.Body {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteRune('\n')
	}

	sb.WriteString("  )\n")
}
