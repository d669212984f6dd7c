package host

import (
	"fmt"
	"io"

	"snek/common"
)

// DefaultImports returns the host functions generated modules import.  The
// `print` family writes one line per call to out and returns its argument.
func DefaultImports(out io.Writer) Imports {
	printWith := func(format func(int32) string) HostFunc {
		return func(args []int32) int32 {
			fmt.Fprintln(out, format(args[0]))
			return args[0]
		}
	}

	showNum := func(v int32) string {
		return fmt.Sprint(v)
	}

	return Imports{
		common.ImportNamespace: {
			common.PrintFunc:    printWith(showNum),
			common.PrintNumFunc: printWith(showNum),
			common.PrintBoolFunc: printWith(func(v int32) string {
				if v == 0 {
					return "False"
				}

				return "True"
			}),
			common.PrintNoneFunc: printWith(func(int32) string {
				return "None"
			}),
			common.AbsFunc: func(args []int32) int32 {
				if args[0] < 0 {
					return -args[0]
				}

				return args[0]
			},
			common.MaxFunc: func(args []int32) int32 {
				if args[0] > args[1] {
					return args[0]
				}

				return args[1]
			},
			common.MinFunc: func(args []int32) int32 {
				if args[0] < args[1] {
					return args[0]
				}

				return args[1]
			},
			common.PowFunc: func(args []int32) int32 {
				return ipow(args[0], args[1])
			},
		},
	}
}

// ipow raises base to exp with wrapping 32-bit arithmetic.  A negative
// exponent yields the integer part of the fractional result.
func ipow(base, exp int32) int32 {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}

			return -1
		default:
			return 0
		}
	}

	result := int32(1)
	for e := uint32(exp); e > 0; e >>= 1 {
		if e&1 == 1 {
			result *= base
		}

		base *= base
	}

	return result
}
