package ast

import (
	"snek/report"
	"snek/types"
)

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Program is the root of the program tree.  All variable initializers precede
// all function definitions and statements in source order.
type Program struct {
	VarInits []*VarInit
	FuncDefs []*FuncDef
	Stmts    []Stmt
}

// VarInit is a variable declaration with its literal initializer.
type VarInit struct {
	ASTBase

	Name string
	Type types.Type
	Init *Literal
}

// FuncDef is a function definition.
type FuncDef struct {
	ASTBase

	Name       string
	Params     []*Param
	ReturnType types.Type

	// The local variable declarations of the function.
	Inits []*VarInit

	Body []Stmt
}

// Param is a function parameter.
type Param struct {
	ASTBase

	Name string
	Type types.Type
}
