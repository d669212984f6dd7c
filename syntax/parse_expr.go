package syntax

// expr := or_expr ;
func (p *Parser) parseExpr() Node {
	return p.parseOrExpr()
}

// or_expr := and_expr {'or' and_expr} ;
func (p *Parser) parseOrExpr() Node {
	return p.parseBinaryLevel(p.parseAndExpr, TOK_OR)
}

// and_expr := not_expr {'and' not_expr} ;
func (p *Parser) parseAndExpr() Node {
	return p.parseBinaryLevel(p.parseNotExpr, TOK_AND)
}

// not_expr := 'not' not_expr | comparison ;
func (p *Parser) parseNotExpr() Node {
	if p.got(TOK_NOT) {
		return NewBranch("UnaryExpression", p.leaf(), p.parseNotExpr())
	}

	return p.parseComparison()
}

// comparison := arith_expr {comp_op arith_expr} ;
// comp_op := '<' | '>' | '==' | '>=' | '<=' | '!=' | 'is' ;
func (p *Parser) parseComparison() Node {
	return p.parseBinaryLevel(
		p.parseArithExpr,
		TOK_LT, TOK_GT, TOK_EQ, TOK_GTEQ, TOK_LTEQ, TOK_NEQ, TOK_IS,
	)
}

// arith_expr := term {('+' | '-') term} ;
func (p *Parser) parseArithExpr() Node {
	return p.parseBinaryLevel(p.parseTerm, TOK_PLUS, TOK_MINUS)
}

// term := factor {('*' | '/' | '//' | '%') factor} ;
func (p *Parser) parseTerm() Node {
	return p.parseBinaryLevel(p.parseFactor, TOK_STAR, TOK_DIV, TOK_FLOORDIV, TOK_MOD)
}

// factor := ('+' | '-') factor | power ;
func (p *Parser) parseFactor() Node {
	if p.gotOneOf(TOK_PLUS, TOK_MINUS) {
		return NewBranch("UnaryExpression", p.leaf(), p.parseFactor())
	}

	return p.parsePower()
}

// power := primary ['**' factor] ;
func (p *Parser) parsePower() Node {
	base := p.parsePrimary()

	if p.got(TOK_POW) {
		return NewBranch("BinaryExpression", base, p.leaf(), p.parseFactor())
	}

	return base
}

// parseBinaryLevel parses one left-associative precedence level of binary
// operators: operand {op operand}.
func (p *Parser) parseBinaryLevel(operand func() Node, ops ...int) Node {
	lhs := operand()

	for p.gotOneOf(ops...) {
		op := p.leaf()
		lhs = NewBranch("BinaryExpression", lhs, op, operand())
	}

	return lhs
}

// -----------------------------------------------------------------------------

// primary := atom {arg_list} ;
func (p *Parser) parsePrimary() Node {
	expr := p.parseAtom()

	for p.got(TOK_LPAREN) {
		expr = NewBranch("CallExpression", expr, p.parseArgList())
	}

	return expr
}

// arg_list := '(' [expr {',' expr} [',']] ')' ;
func (p *Parser) parseArgList() *Branch {
	args := NewBranch("ArgList", p.leaf())

	for !p.got(TOK_RPAREN) {
		args.Content = append(args.Content, p.parseExpr())

		if p.got(TOK_COMMA) {
			args.Content = append(args.Content, p.leaf())
		} else {
			break
		}
	}

	args.Content = append(args.Content, p.want(TOK_RPAREN))
	return args
}

// atom := IDENT | NUMBER | STRING | BOOL | 'None' | '(' expr ')' ;
func (p *Parser) parseAtom() Node {
	switch p.tok.Kind {
	case TOK_IDENT, TOK_NUMLIT, TOK_STRINGLIT, TOK_BOOLLIT, TOK_NONE:
		return p.leaf()
	case TOK_LPAREN:
		return NewBranch("ParenthesizedExpression", p.leaf(), p.parseExpr(), p.want(TOK_RPAREN))
	}

	p.reject()
	return nil
}
