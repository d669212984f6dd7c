package ast

// Stmt represents a statement.  All statement nodes implement `Stmt`.
type Stmt interface {
	ASTNode

	stmt()
}

// Pass is the `pass` statement.
type Pass struct {
	ASTBase
}

// Assign represents an assignment to an existing variable.
type Assign struct {
	ASTBase

	Name  string
	Value Expr

	// The storage scope of the target.  It is set by the type checker.
	Scope int
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

// Return represents a return statement.  A bare `return` returns `None`.
type Return struct {
	ASTBase

	Value Expr
}

// While represents a while loop.
type While struct {
	ASTBase

	Cond Expr
	Body []Stmt
}

// If represents an if statement along with all of its `elif` and `else`
// clauses.  Elifs and Else are empty (never nil) when absent.
type If struct {
	ASTBase

	Cond  Expr
	Body  []Stmt
	Elifs []*Elif
	Else  []Stmt
}

// Elif is a single `elif` clause of an if statement.
type Elif struct {
	ASTBase

	Cond Expr
	Body []Stmt
}

func (*Pass) stmt()     {}
func (*Assign) stmt()   {}
func (*ExprStmt) stmt() {}
func (*Return) stmt()   {}
func (*While) stmt()    {}
func (*If) stmt()       {}
