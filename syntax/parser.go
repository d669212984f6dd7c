package syntax

import (
	"snek/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a source file.  It acts as a state machine that
// moves over the file token by token, deciding what to parse based on the
// token it is currently positioned over and its context (implicit from the
// callstack of parsing functions): it is a recursive descent parser.  All
// parsing functions assume that they begin with the parser centered on the
// first token of their production and must consume all tokens (including the
// last) of their production, leaving the parser on the next token.  The parser
// only performs syntax analysis: it produces a concrete syntax tree and leaves
// every decision about which shapes are supported to the tree builder.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token
}

// Parse parses the given source text into a concrete syntax tree.
func Parse(src string) (tree *Tree, err error) {
	defer report.CatchErrors(&err)

	p := &Parser{lexer: NewLexer(src)}
	p.next()

	return &Tree{Root: p.parseFile(), Src: src}, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.tok = p.lexer.NextToken()
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// leaf returns a CST leaf for the current token and moves the parser forward.
func (p *Parser) leaf() *Leaf {
	leaf := &Leaf{Token: *p.tok}
	p.next()
	return leaf
}

// want asserts that the parser is on a token of the given kind, and returns a
// leaf for that token moving the parser forward.
func (p *Parser) want(kind int) *Leaf {
	p.assert(kind)
	return p.leaf()
}

// skip asserts that the parser is on a token of the given kind and moves the
// parser forward without producing a leaf.  It is used for layout tokens.
func (p *Parser) skip(kind int) {
	p.assert(kind)
	p.next()
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	panic(report.Raise(report.KindSyntax, p.tok.Span, "unexpected %s", p.tok.describe()))
}
