package ast

import (
	"snek/report"
	"snek/types"
)

// Expr represents an expression.  All expression nodes implement `Expr`.
type Expr interface {
	ASTNode

	// Type is the yielded type of the expression.  It is `types.Invalid` until
	// the expression has been type checked.
	Type() types.Type

	// SetType sets the type of the expression.
	SetType(types.Type)
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	typ types.Type
}

// NewExprBase creates a new untyped expression base on the given span.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

// -----------------------------------------------------------------------------

// Enumeration of literal kinds.
const (
	LitInt = iota
	LitTrue
	LitFalse
	LitNone
)

// Literal represents a literal value.
type Literal struct {
	ExprBase

	Kind int

	// The value of an integer literal.
	Value int32
}

// Enumeration of identifier storage scopes.
const (
	ScopeUnresolved = iota
	ScopeGlobal
	ScopeLocal
)

// Identifier represents a named value.
type Identifier struct {
	ExprBase

	Name string

	// The storage scope the identifier resolved to.  It is set by the type
	// checker.
	Scope int
}

// Call represents a function call.
type Call struct {
	ExprBase

	Name string
	Args []Expr
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ExprBase

	Op       int
	Lhs, Rhs Expr
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ExprBase

	Op      int
	Operand Expr
}
