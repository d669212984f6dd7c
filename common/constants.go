package common

const (
	SrcFileExtension = ".py"
	ProfileFileName  = "snek.toml"
	SnekVersion      = "0.1.0"

	// StartFuncName is the export name of the module entry routine.
	StartFuncName = "_start"

	// ImportNamespace is the module name all host imports are declared under.
	ImportNamespace = "imports"
)

// NoneValue is the machine encoding of `None`.  It is 2^31: one past the
// largest integer literal the builder accepts, so it never collides with an
// ordinary integer written in source.
const NoneValue int64 = 2147483648

// Names of the host functions every generated module imports.
const (
	PrintFunc     = "print"
	PrintNumFunc  = "print_num"
	PrintBoolFunc = "print_bool"
	PrintNoneFunc = "print_none"
	AbsFunc       = "abs"
	MaxFunc       = "max"
	MinFunc       = "min"
	PowFunc       = "pow"
)

// HostImport describes a single host function import.
type HostImport struct {
	Name  string
	Arity int
}

// HostImports is the fixed, ordered list of host functions a module imports.
var HostImports = []HostImport{
	{PrintFunc, 1},
	{PrintNumFunc, 1},
	{PrintBoolFunc, 1},
	{PrintNoneFunc, 1},
	{AbsFunc, 1},
	{MaxFunc, 2},
	{MinFunc, 2},
	{PowFunc, 2},
}

// BuiltinArity maps the built-in call names recognized at build time to the
// exact number of arguments they accept.
var BuiltinArity = map[string]int{
	PrintFunc: 1,
	AbsFunc:   1,
	MaxFunc:   2,
	MinFunc:   2,
	PowFunc:   2,
}

// IsReservedFuncName returns whether a user function may not take the given
// name because it is claimed by `print` or one of its host variants.
func IsReservedFuncName(name string) bool {
	switch name {
	case PrintFunc, PrintNumFunc, PrintBoolFunc, PrintNoneFunc:
		return true
	}

	return false
}

// Enumeration of compilation targets.
const (
	TargetWAT = iota
	TargetLLVM
)

// targetNames maps target names to their target.
var targetNames = map[string]int{
	"wat":  TargetWAT,
	"llvm": TargetLLVM,
}

// ParseTarget converts the name of a compilation target into the target.
func ParseTarget(name string) (int, bool) {
	if name == "" {
		return TargetWAT, true
	}

	target, ok := targetNames[name]
	return target, ok
}

// TargetExtension returns the output file extension of a target.
func TargetExtension(target int) string {
	if target == TargetLLVM {
		return ".ll"
	}

	return ".wat"
}
