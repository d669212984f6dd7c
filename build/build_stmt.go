package build

import (
	"snek/ast"
	"snek/syntax"
)

// buildStmt builds a single statement.  Declarations are handled by the
// callers that allow them and are never statements.
func (b *Builder) buildStmt(n syntax.Node) ast.Stmt {
	br, ok := n.(*syntax.Branch)
	if !ok {
		b.raise(n, "unsupported statement: `%s`", b.text(n))
	}

	switch br.Name() {
	case "PassStatement":
		return &ast.Pass{ASTBase: ast.NewASTBaseOn(br.Span())}
	case "ReturnStatement":
		return b.buildReturn(br)
	case "AssignStatement":
		if isVarDecl(br) {
			b.raise(br, "variable declarations are only allowed at the start of a function or of the program")
		}

		return b.buildAssign(br)
	case "ExpressionStatement":
		return &ast.ExprStmt{
			ASTBase: ast.NewASTBaseOn(br.Span()),
			Expr:    b.buildExpr(br.Content[0]),
		}
	case "IfStatement":
		return b.buildIf(br)
	case "WhileStatement":
		return &ast.While{
			ASTBase: ast.NewASTBaseOn(br.Span()),
			Cond:    b.buildExpr(br.Content[1]),
			Body:    b.buildBlock(br.BranchAt(2)),
		}
	case "FunctionDefinition":
		b.raise(br, "function definitions are only allowed at the top level")
	}

	b.raise(br, "unsupported statement: `%s`", b.text(br))
	return nil
}

// ReturnStatement = 'return' [expr]
func (b *Builder) buildReturn(ret *syntax.Branch) *ast.Return {
	var value ast.Expr
	if ret.Len() > 1 {
		value = b.buildExpr(ret.Content[1])
	} else {
		// a bare `return` returns None
		value = &ast.Literal{
			ExprBase: ast.NewExprBase(ret.Span()),
			Kind:     ast.LitNone,
		}
	}

	return &ast.Return{
		ASTBase: ast.NewASTBaseOn(ret.Span()),
		Value:   value,
	}
}

// AssignStatement = VariableName '=' expr
func (b *Builder) buildAssign(assign *syntax.Branch) *ast.Assign {
	target := assign.Content[0]
	if target.Name() != "VariableName" {
		b.raise(target, "cannot assign to `%s`", b.text(target))
	}

	return &ast.Assign{
		ASTBase: ast.NewASTBaseOn(assign.Span()),
		Name:    b.text(target),
		Value:   b.buildExpr(assign.Content[2]),
	}
}

// IfStatement = 'if' expr Body {'elif' expr Body} ['else' Body]
func (b *Builder) buildIf(ifStmt *syntax.Branch) *ast.If {
	result := &ast.If{
		ASTBase: ast.NewASTBaseOn(ifStmt.Span()),
		Cond:    b.buildExpr(ifStmt.Content[1]),
		Body:    b.buildBlock(ifStmt.BranchAt(2)),
		Elifs:   []*ast.Elif{},
		Else:    []ast.Stmt{},
	}

	for i := 3; i < ifStmt.Len(); {
		switch ifStmt.Content[i].Name() {
		case "elif":
			elifBody := ifStmt.BranchAt(i + 2)
			result.Elifs = append(result.Elifs, &ast.Elif{
				ASTBase: ast.NewASTBaseOn(syntaxSpanOver(ifStmt.Content[i], elifBody)),
				Cond:    b.buildExpr(ifStmt.Content[i+1]),
				Body:    b.buildBlock(elifBody),
			})

			i += 3
		case "else":
			result.Else = b.buildBlock(ifStmt.BranchAt(i + 1))
			i += 2
		default:
			b.raise(ifStmt.Content[i], "unexpected `%s` in if statement", b.text(ifStmt.Content[i]))
		}
	}

	return result
}

// Body = ':' stmt {stmt}
//
// buildBlock builds the body of an `if`, `elif`, `else` or `while`.  Only
// statements are allowed.
func (b *Builder) buildBlock(body *syntax.Branch) []ast.Stmt {
	stmts := make([]ast.Stmt, 0, body.Len()-1)

	for _, node := range body.Content[1:] {
		stmts = append(stmts, b.buildStmt(node))
	}

	return stmts
}
