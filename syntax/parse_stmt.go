package syntax

// file := {stmt} EOF ;
func (p *Parser) parseFile() *Branch {
	script := NewBranch("Script")

	for !p.got(TOK_EOF) {
		script.Content = append(script.Content, p.parseStmt())
	}

	return script
}

// stmt := compound_stmt | simple_stmt NEWLINE ;
// compound_stmt := func_def | if_stmt | while_stmt ;
func (p *Parser) parseStmt() Node {
	switch p.tok.Kind {
	case TOK_DEF:
		return p.parseFuncDef()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	}

	stmt := p.parseSimpleStmt()
	p.skip(TOK_NEWLINE)
	return stmt
}

// simple_stmt := 'pass' | 'return' [expr] | expr_or_assign_stmt ;
func (p *Parser) parseSimpleStmt() Node {
	switch p.tok.Kind {
	case TOK_PASS:
		return NewBranch("PassStatement", p.leaf())
	case TOK_RETURN:
		ret := NewBranch("ReturnStatement", p.leaf())

		if !p.got(TOK_NEWLINE) {
			ret.Content = append(ret.Content, p.parseExpr())
		}

		return ret
	}

	return p.parseExprOrAssignStmt()
}

// expr_or_assign_stmt := expr [type_def] ['=' expr] ;
func (p *Parser) parseExprOrAssignStmt() Node {
	lhs := p.parseExpr()

	var stmt *Branch
	if p.got(TOK_COLON) {
		stmt = NewBranch("AssignStatement", lhs, p.parseTypeDef(TOK_COLON))
	}

	if p.got(TOK_ASSIGN) {
		if stmt == nil {
			stmt = NewBranch("AssignStatement", lhs)
		}

		stmt.Content = append(stmt.Content, p.leaf(), p.parseExpr())
	}

	if stmt == nil {
		return NewBranch("ExpressionStatement", lhs)
	}

	return stmt
}

// type_def := (':' | '->') expr ;
func (p *Parser) parseTypeDef(lead int) *Branch {
	return NewBranch("TypeDef", p.want(lead), p.parseExpr())
}

// -----------------------------------------------------------------------------

// func_def := 'def' IDENT param_list ['->' expr] body ;
func (p *Parser) parseFuncDef() *Branch {
	def := NewBranch("FunctionDefinition", p.leaf(), p.want(TOK_IDENT), p.parseParamList())

	if p.got(TOK_ARROW) {
		def.Content = append(def.Content, p.parseTypeDef(TOK_ARROW))
	}

	def.Content = append(def.Content, p.parseBody())
	return def
}

// param_list := '(' [param {',' param} [',']] ')' ;
// param := IDENT [type_def] ;
func (p *Parser) parseParamList() *Branch {
	params := NewBranch("ParamList", p.want(TOK_LPAREN))

	for !p.got(TOK_RPAREN) {
		params.Content = append(params.Content, p.want(TOK_IDENT))

		if p.got(TOK_COLON) {
			params.Content = append(params.Content, p.parseTypeDef(TOK_COLON))
		}

		if p.got(TOK_COMMA) {
			params.Content = append(params.Content, p.leaf())
		} else {
			break
		}
	}

	params.Content = append(params.Content, p.want(TOK_RPAREN))
	return params
}

// body := ':' (simple_stmt NEWLINE | NEWLINE INDENT stmt {stmt} DEDENT) ;
func (p *Parser) parseBody() *Branch {
	body := NewBranch("Body", p.want(TOK_COLON))

	if !p.got(TOK_NEWLINE) {
		body.Content = append(body.Content, p.parseSimpleStmt())
		p.skip(TOK_NEWLINE)
		return body
	}

	p.next()
	p.skip(TOK_INDENT)

	for {
		body.Content = append(body.Content, p.parseStmt())

		if p.got(TOK_DEDENT) {
			p.next()
			break
		}
	}

	return body
}

// -----------------------------------------------------------------------------

// if_stmt := 'if' expr body {'elif' expr body} ['else' body] ;
func (p *Parser) parseIfStmt() *Branch {
	ifStmt := NewBranch("IfStatement", p.leaf(), p.parseExpr(), p.parseBody())

	for p.got(TOK_ELIF) {
		ifStmt.Content = append(ifStmt.Content, p.leaf(), p.parseExpr(), p.parseBody())
	}

	if p.got(TOK_ELSE) {
		ifStmt.Content = append(ifStmt.Content, p.leaf(), p.parseBody())
	}

	return ifStmt
}

// while_stmt := 'while' expr body ;
func (p *Parser) parseWhileStmt() *Branch {
	return NewBranch("WhileStatement", p.leaf(), p.parseExpr(), p.parseBody())
}
