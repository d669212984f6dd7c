package ast

// Enumeration of binary operators.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpFloorDiv
	OpMod
	OpGt
	OpGe
	OpLt
	OpLe
	OpEq
	OpNe
	OpIs
)

var binOpNames = [...]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpGt:       ">",
	OpGe:       ">=",
	OpLt:       "<",
	OpLe:       "<=",
	OpEq:       "==",
	OpNe:       "!=",
	OpIs:       "is",
}

// ParseBinaryOp converts the surface spelling of a supported binary operator
// into its operator kind.
func ParseBinaryOp(text string) (int, bool) {
	for op, name := range binOpNames {
		if name == text {
			return op, true
		}
	}

	return 0, false
}

// BinaryOpName returns the surface spelling of a binary operator.
func BinaryOpName(op int) string {
	return binOpNames[op]
}

// IsArithOp returns whether op takes two ints and yields an int.
func IsArithOp(op int) bool {
	return OpAdd <= op && op <= OpMod
}

// IsCompareOp returns whether op takes two ints and yields a bool.
func IsCompareOp(op int) bool {
	return OpGt <= op && op <= OpLe
}

// Enumeration of unary operators.
const (
	OpNeg = iota
	OpNot
)

var unOpNames = [...]string{
	OpNeg: "-",
	OpNot: "not",
}

// ParseUnaryOp converts the surface spelling of a supported unary operator
// into its operator kind.
func ParseUnaryOp(text string) (int, bool) {
	for op, name := range unOpNames {
		if name == text {
			return op, true
		}
	}

	return 0, false
}

// UnaryOpName returns the surface spelling of a unary operator.
func UnaryOpName(op int) string {
	return unOpNames[op]
}
