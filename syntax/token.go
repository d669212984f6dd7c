package syntax

import "snek/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  For string literals, this includes the
	// surrounding quotes.
	Value string

	// The byte offsets of the token in the source text: [Offset, End).
	Offset, End int

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_DEF = iota
	TOK_RETURN
	TOK_PASS
	TOK_IF
	TOK_ELIF
	TOK_ELSE
	TOK_WHILE

	TOK_NOT
	TOK_IS
	TOK_AND
	TOK_OR

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_FLOORDIV
	TOK_MOD
	TOK_POW

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_ASSIGN
	TOK_LPAREN
	TOK_RPAREN
	TOK_COMMA
	TOK_COLON
	TOK_ARROW

	TOK_IDENT
	TOK_NUMLIT
	TOK_STRINGLIT
	TOK_BOOLLIT
	TOK_NONE

	TOK_NEWLINE
	TOK_INDENT
	TOK_DEDENT
	TOK_EOF
)

// Leaf names for the token kinds whose leaf is not named by its own text.
// These mirror the node names of the Python grammar the tree builder expects.
var leafNames = map[int]string{
	TOK_IDENT:     "VariableName",
	TOK_NUMLIT:    "Number",
	TOK_STRINGLIT: "String",
	TOK_BOOLLIT:   "Boolean",
	TOK_NONE:      "None",

	TOK_PLUS:     "ArithOp",
	TOK_MINUS:    "ArithOp",
	TOK_STAR:     "ArithOp",
	TOK_DIV:      "ArithOp",
	TOK_FLOORDIV: "ArithOp",
	TOK_MOD:      "ArithOp",
	TOK_POW:      "ArithOp",

	TOK_EQ:   "CompareOp",
	TOK_NEQ:  "CompareOp",
	TOK_LT:   "CompareOp",
	TOK_GT:   "CompareOp",
	TOK_LTEQ: "CompareOp",
	TOK_GTEQ: "CompareOp",
}

// describe returns a user-facing description of the token for use in error
// messages.
func (t *Token) describe() string {
	switch t.Kind {
	case TOK_NEWLINE:
		return "newline"
	case TOK_INDENT:
		return "indent"
	case TOK_DEDENT:
		return "dedent"
	case TOK_EOF:
		return "end of file"
	default:
		return "`" + t.Value + "`"
	}
}
