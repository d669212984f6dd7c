// Package host implements a reference host for generated modules: it loads the
// folded WebAssembly text subset the code generator emits and executes it
// against a set of host imports.
package host

import (
	"fmt"
	"strconv"
	"strings"
)

// Module is a loaded, not yet instantiated WebAssembly text module.
type Module struct {
	funcs   []*function
	globals []*global

	// Maps function names to their function.
	funcsByName map[string]*function

	// Maps export names to their function.
	exports map[string]*function
}

// function is a defined or imported function.
type function struct {
	name   string
	params []string
	result bool

	// The local slot names excluding the parameters.
	locals []string
	body   []*sexpr

	// The import the function resolves to, if it is imported.
	isImport               bool
	importModule, importAs string
}

// global is a global declaration.
type global struct {
	name    string
	mutable bool
	init    int32
}

// Load loads a module from its WebAssembly text.
func Load(text string) (*Module, error) {
	nodes, err := readModule(text)
	if err != nil {
		return nil, fmt.Errorf("malformed module: %w", err)
	}

	if len(nodes) != 1 || nodes[0].head() != "module" {
		return nil, fmt.Errorf("malformed module: expected a single `module` form")
	}

	mod := &Module{
		funcsByName: make(map[string]*function),
		exports:     make(map[string]*function),
	}

	for _, field := range nodes[0].list[1:] {
		if err := mod.loadField(field); err != nil {
			return nil, fmt.Errorf("malformed module: %w", err)
		}
	}

	return mod, nil
}

// loadField loads a single module field.
func (mod *Module) loadField(field *sexpr) error {
	switch field.head() {
	case "import":
		return mod.loadImport(field)
	case "global":
		return mod.loadGlobal(field)
	case "func":
		return mod.loadFunc(field)
	}

	return fmt.Errorf("unsupported module field: %s", field)
}

// (import "module" "name" (func $name (param i32)* (result i32)?))
func (mod *Module) loadImport(field *sexpr) error {
	if len(field.list) != 4 || field.list[3].head() != "func" {
		return fmt.Errorf("unsupported import: %s", field)
	}

	importModule, err := unquote(field.list[1])
	if err != nil {
		return err
	}

	importAs, err := unquote(field.list[2])
	if err != nil {
		return err
	}

	fn := &function{isImport: true, importModule: importModule, importAs: importAs}
	if err := mod.loadSignature(fn, field.list[3].list[1:]); err != nil {
		return err
	}

	return mod.addFunc(fn)
}

// (func $name? (export "name")? (param $p i32)* (result i32)? (local $l i32)* instr*)
func (mod *Module) loadFunc(field *sexpr) error {
	fn := &function{}

	items := field.list[1:]
	for len(items) > 0 {
		switch items[0].head() {
		case "local":
			name, err := slotName(items[0])
			if err != nil {
				return err
			}

			fn.locals = append(fn.locals, name)
		case "param", "result", "export":
			if err := mod.loadSignature(fn, items[:1]); err != nil {
				return err
			}
		default:
			if items[0].isName() && fn.name == "" {
				fn.name = items[0].atom
				break
			}

			fn.body = items
			items = nil
			continue
		}

		items = items[1:]
	}

	return mod.addFunc(fn)
}

// loadSignature loads the name, exports, params and result of a function.
func (mod *Module) loadSignature(fn *function, items []*sexpr) error {
	for _, item := range items {
		switch item.head() {
		case "param":
			// imported functions declare their params without names
			if fn.isImport {
				names, err := anonymousSlots(item)
				if err != nil {
					return err
				}

				fn.params = append(fn.params, names...)
				continue
			}

			name, err := slotName(item)
			if err != nil {
				return err
			}

			fn.params = append(fn.params, name)
		case "result":
			if fn.result || len(item.list) != 2 || item.list[1].atom != "i32" {
				return fmt.Errorf("unsupported result: %s", item)
			}

			fn.result = true
		case "export":
			if len(item.list) != 2 {
				return fmt.Errorf("malformed export: %s", item)
			}

			exportAs, err := unquote(item.list[1])
			if err != nil {
				return err
			}

			if _, ok := mod.exports[exportAs]; ok {
				return fmt.Errorf("duplicate export: %s", exportAs)
			}

			mod.exports[exportAs] = fn
		default:
			if item.isName() && fn.name == "" {
				fn.name = item.atom
				continue
			}

			return fmt.Errorf("unexpected %s in function signature", item)
		}
	}

	return nil
}

// addFunc adds a function to the module.
func (mod *Module) addFunc(fn *function) error {
	if fn.name != "" {
		if _, ok := mod.funcsByName[fn.name]; ok {
			return fmt.Errorf("duplicate function: %s", fn.name)
		}

		mod.funcsByName[fn.name] = fn
	}

	mod.funcs = append(mod.funcs, fn)
	return nil
}

// (global $name (mut i32) (i32.const v))
func (mod *Module) loadGlobal(field *sexpr) error {
	if len(field.list) != 4 || !field.list[1].isName() {
		return fmt.Errorf("unsupported global: %s", field)
	}

	g := &global{name: field.list[1].atom}

	switch typ := field.list[2]; {
	case typ.atom == "i32":
	case typ.head() == "mut" && len(typ.list) == 2 && typ.list[1].atom == "i32":
		g.mutable = true
	default:
		return fmt.Errorf("unsupported global type: %s", typ)
	}

	init := field.list[3]
	if init.head() != "i32.const" || len(init.list) != 2 {
		return fmt.Errorf("unsupported global initializer: %s", init)
	}

	value, err := parseI32(init.list[1].atom)
	if err != nil {
		return err
	}

	g.init = value
	mod.globals = append(mod.globals, g)
	return nil
}

// -----------------------------------------------------------------------------

// slotName returns the name of a `(param $x i32)` or `(local $x i32)` form.
func slotName(item *sexpr) (string, error) {
	if len(item.list) != 3 || !item.list[1].isName() || item.list[2].atom != "i32" {
		return "", fmt.Errorf("unsupported %s: %s", item.head(), item)
	}

	return item.list[1].atom, nil
}

// anonymousSlots returns one unnamed slot for each type of a `(param i32*)`
// form.  A named `(param $x i32)` form is accepted as well.
func anonymousSlots(item *sexpr) ([]string, error) {
	if len(item.list) == 3 && item.list[1].isName() {
		name, err := slotName(item)
		return []string{name}, err
	}

	var names []string
	for _, typ := range item.list[1:] {
		if typ.atom != "i32" {
			return nil, fmt.Errorf("unsupported %s: %s", item.head(), item)
		}

		names = append(names, "")
	}

	return names, nil
}

// unquote returns the contents of a string atom.
func unquote(item *sexpr) (string, error) {
	if item.isList || !strings.HasPrefix(item.atom, "\"") {
		return "", fmt.Errorf("expected a string, got %s", item)
	}

	s, err := strconv.Unquote(item.atom)
	if err != nil {
		return "", fmt.Errorf("malformed string: %s", item)
	}

	return s, nil
}

// parseI32 parses an i32 immediate.  Like WebAssembly text, it accepts the
// full signed and unsigned ranges and wraps unsigned values.
func parseI32(text string) (int32, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 10, 64)
	if err != nil || v < -(1<<31) || v >= 1<<32 {
		return 0, fmt.Errorf("invalid i32 constant: %s", text)
	}

	return int32(uint32(v)), nil
}
