// Package build converts a concrete syntax tree into an untyped program tree.
package build

import (
	"snek/ast"
	"snek/report"
	"snek/syntax"
	"snek/types"
)

// Builder is responsible for building the program tree of a single source
// file.  Each build function takes the CST node it builds from and returns the
// tree it built: the builder never holds a position in the tree between calls.
// Any unsupported or misordered shape aborts the build with a build error.
type Builder struct {
	tree *syntax.Tree
}

// Build builds the untyped program tree for a parsed source file.
func Build(tree *syntax.Tree) (prog *ast.Program, err error) {
	defer report.CatchErrors(&err)

	b := &Builder{tree: tree}
	return b.buildProgram(), nil
}

// -----------------------------------------------------------------------------

// buildProgram builds the `Script` root.  Variable declarations and function
// definitions come first in any order; everything after the first statement
// must be a statement.
func (b *Builder) buildProgram() *ast.Program {
	prog := &ast.Program{
		VarInits: []*ast.VarInit{},
		FuncDefs: []*ast.FuncDef{},
		Stmts:    []ast.Stmt{},
	}

	c := b.tree.Cursor()
	more := c.FirstChild()

	for ; more; more = c.NextSibling() {
		if isVarDecl(c.Node()) {
			prog.VarInits = append(prog.VarInits, b.buildVarInit(c.Node().(*syntax.Branch)))
		} else if c.Name() == "FunctionDefinition" {
			prog.FuncDefs = append(prog.FuncDefs, b.buildFuncDef(c.Node().(*syntax.Branch)))
		} else {
			break
		}
	}

	for ; more; more = c.NextSibling() {
		if isVarDecl(c.Node()) || c.Name() == "FunctionDefinition" {
			b.raise(c.Node(), "declarations must precede statements")
		}

		prog.Stmts = append(prog.Stmts, b.buildStmt(c.Node()))
	}

	return prog
}

// FunctionDefinition = 'def' VariableName ParamList [TypeDef] Body
func (b *Builder) buildFuncDef(def *syntax.Branch) *ast.FuncDef {
	fd := &ast.FuncDef{
		ASTBase:    ast.NewASTBaseOn(def.Span()),
		Name:       b.text(def.Content[1]),
		Params:     b.buildParams(def.BranchAt(2)),
		ReturnType: types.None,
		Inits:      []*ast.VarInit{},
		Body:       []ast.Stmt{},
	}

	// a function without a return annotation returns None
	if def.Content[3].Name() == "TypeDef" {
		fd.ReturnType = b.buildTypeDef(def.BranchAt(3))
	}

	// the body has the same ordering rule as the top level: local declarations
	// first, then statements
	c := b.tree.CursorAt(def.Last())
	c.FirstChild() // `:`
	more := c.NextSibling()

	for ; more && isVarDecl(c.Node()); more = c.NextSibling() {
		fd.Inits = append(fd.Inits, b.buildVarInit(c.Node().(*syntax.Branch)))
	}

	for ; more; more = c.NextSibling() {
		if isVarDecl(c.Node()) {
			b.raise(c.Node(), "declarations must precede statements")
		}

		fd.Body = append(fd.Body, b.buildStmt(c.Node()))
	}

	return fd
}

// ParamList = '(' [VariableName TypeDef {',' VariableName TypeDef}] ')'
func (b *Builder) buildParams(paramList *syntax.Branch) []*ast.Param {
	params := []*ast.Param{}

	// the first and last nodes are the parentheses
	for i := 1; i < paramList.Len()-1; i++ {
		node := paramList.Content[i]
		if node.Name() != "VariableName" {
			continue
		}

		name := b.text(node)
		if i+1 >= paramList.Len()-1 || paramList.Content[i+1].Name() != "TypeDef" {
			b.raise(node, "missing type annotation for parameter `%s`", name)
		}

		i++
		params = append(params, &ast.Param{
			ASTBase: ast.NewASTBaseOn(report.NewSpanOver(node.Span(), paramList.Content[i].Span())),
			Name:    name,
			Type:    b.buildTypeDef(paramList.BranchAt(i)),
		})
	}

	return params
}

// AssignStatement = VariableName TypeDef '=' literal
func (b *Builder) buildVarInit(decl *syntax.Branch) *ast.VarInit {
	target := decl.Content[0]
	if target.Name() != "VariableName" {
		b.raise(target, "cannot declare `%s`: expected a variable name", b.text(target))
	}

	name := b.text(target)
	typ := b.buildTypeDef(decl.BranchAt(1))

	if decl.Len() < 4 {
		b.raise(decl, "missing initializer for variable `%s`", name)
	}

	return &ast.VarInit{
		ASTBase: ast.NewASTBaseOn(decl.Span()),
		Name:    name,
		Type:    typ,
		Init:    b.buildLiteral(decl.Content[3]),
	}
}

// -----------------------------------------------------------------------------

// isVarDecl returns whether n is a variable declaration: an assignment whose
// target is immediately followed by a `:` type annotation.
func isVarDecl(n syntax.Node) bool {
	br, ok := n.(*syntax.Branch)
	return ok && br.Name() == "AssignStatement" && br.Len() >= 2 && br.Content[1].Name() == "TypeDef"
}

// text returns the source text of n.
func (b *Builder) text(n syntax.Node) string {
	return b.tree.Text(n)
}

// raise aborts the build with an error spanning n.
func (b *Builder) raise(n syntax.Node, msg string, args ...interface{}) {
	panic(report.Raise(report.KindBuild, n.Span(), msg, args...))
}
