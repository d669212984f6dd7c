package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"snek/report"
)

// Lexer is responsible for tokenizing a source file.  Python's block structure
// is made explicit by the lexer: it emits NEWLINE at the end of each logical
// line and INDENT/DEDENT whenever the indentation level changes.  Blank lines,
// comment lines and line breaks inside parentheses produce no tokens.
type Lexer struct {
	src     string
	tokBuff *strings.Builder

	// The current byte offset into the source along with the line and column
	// it corresponds to.
	offset    int
	line, col int

	// The start position of the token being built.
	startOffset         int
	startLine, startCol int

	// The stack of enclosing indentation levels.  It always starts with 0.
	indents []int

	// The nesting depth of parentheses.  Newlines and indentation are ignored
	// while this is non-zero.
	parenDepth int

	// Whether the lexer is at the start of a line and still has to measure its
	// indentation.
	atLineStart bool

	// Whether the last emitted token was a NEWLINE (or no token has been
	// emitted yet).  Used to avoid emitting empty logical lines.
	lineEmpty bool

	// Tokens that have been lexed but not yet returned: indentation changes can
	// produce several tokens at once.
	pending []*Token
}

// NewLexer creates a new lexer for the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:         src,
		tokBuff:     &strings.Builder{},
		indents:     []int{0},
		atLineStart: true,
		lineEmpty:   true,
	}
}

// NextToken retrieves the next token from the source.  If the source has
// ended, this will be an EOF token.  Lexical errors are raised as panics
// carrying a compile error.
func (l *Lexer) NextToken() *Token {
	for len(l.pending) == 0 {
		l.lexPending()
	}

	tok := l.pending[0]
	l.pending = l.pending[1:]
	l.lineEmpty = tok.Kind == TOK_NEWLINE
	return tok
}

// lexPending lexes at least one token into the pending queue.
func (l *Lexer) lexPending() {
	if l.atLineStart && l.parenDepth == 0 {
		if !l.lexIndentation() {
			return
		}
	}

	for {
		c := l.peek()
		switch c {
		case -1:
			l.lexEOF()
			return
		case ' ', '\t', '\r', '\f', '\v':
			l.skip()
		case '\\':
			// explicit line continuation
			l.skip()
			if l.peek() == '\r' {
				l.skip()
			}

			if l.peek() != '\n' {
				l.mark()
				panic(report.Raise(report.KindSyntax, l.getSpan(), "unexpected character after line continuation"))
			}

			l.skip()
		case '#':
			l.skipComment()
		case '\n':
			l.mark()
			l.skip()

			if l.parenDepth == 0 {
				l.atLineStart = true

				if !l.lineEmpty {
					l.tokBuff.WriteRune('\n')
					l.emit(TOK_NEWLINE)
				}

				return
			}
		case '\'', '"':
			l.lexStringLit(c)
			return
		default:
			if isDecimalDigit(c) {
				l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				l.lexIdentOrKeyword()
			} else {
				l.lexPunctOrOper()
			}

			return
		}
	}
}

// lexIndentation measures the indentation of the current line and emits any
// INDENT or DEDENT tokens it implies.  It returns false if the line was blank
// (and so has been consumed entirely).
func (l *Lexer) lexIndentation() bool {
	l.mark()

	for {
		c := l.peek()
		if c == ' ' || c == '\t' || c == '\f' {
			l.skip()
			continue
		}

		switch c {
		case '#':
			l.skipComment()
			fallthrough
		case '\r', '\n':
			// blank line: indentation is irrelevant
			for l.peek() == '\r' {
				l.skip()
			}

			if l.peek() == '\n' {
				l.skip()
			}

			return false
		case -1:
			l.atLineStart = false
			return true
		}

		break
	}

	l.atLineStart = false
	level := l.col
	top := l.indents[len(l.indents)-1]

	if level > top {
		l.indents = append(l.indents, level)
		l.emit(TOK_INDENT)
	} else if level < top {
		for level < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(TOK_DEDENT)
		}

		if level != l.indents[len(l.indents)-1] {
			panic(report.Raise(report.KindSyntax, l.getSpan(), "unindent does not match any outer indentation level"))
		}
	}

	return true
}

// lexEOF emits the tokens that terminate the token stream: a final NEWLINE if
// the last line was not terminated, a DEDENT for every open indentation level,
// and the EOF token.
func (l *Lexer) lexEOF() {
	l.mark()

	if !l.lineEmpty {
		l.emit(TOK_NEWLINE)
		l.lineEmpty = true
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TOK_DEDENT)
	}

	l.emit(TOK_EOF)
}

// skipComment skips a `#` comment up to (but not including) the newline.
func (l *Lexer) skipComment() {
	for {
		c := l.peek()
		if c == -1 || c == '\n' {
			return
		}

		l.skip()
	}
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+":  TOK_PLUS,
	"-":  TOK_MINUS,
	"*":  TOK_STAR,
	"/":  TOK_DIV,
	"//": TOK_FLOORDIV,
	"%":  TOK_MOD,
	"**": TOK_POW,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"=":  TOK_ASSIGN,
	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	",":  TOK_COMMA,
	":":  TOK_COLON,
	"->": TOK_ARROW,
}

// lexPunctOrOper lexes a punctuation or operator symbol.  The longest matching
// pattern wins.
func (l *Lexer) lexPunctOrOper() {
	l.mark()
	c := l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	for {
		next := l.peek()
		if next == -1 {
			break
		}

		if _kind, _ok := symbolPatterns[l.tokBuff.String()+string(next)]; _ok {
			l.eat()
			kind, ok = _kind, true
		} else {
			break
		}
	}

	if !ok {
		panic(report.Raise(report.KindSyntax, l.getSpan(), "unknown character: `%c`", c))
	}

	switch kind {
	case TOK_LPAREN:
		l.parenDepth++
	case TOK_RPAREN:
		if l.parenDepth > 0 {
			l.parenDepth--
		}
	}

	l.emit(kind)
}

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"def":    TOK_DEF,
	"return": TOK_RETURN,
	"pass":   TOK_PASS,
	"if":     TOK_IF,
	"elif":   TOK_ELIF,
	"else":   TOK_ELSE,
	"while":  TOK_WHILE,

	"not": TOK_NOT,
	"is":  TOK_IS,
	"and": TOK_AND,
	"or":  TOK_OR,

	"True":  TOK_BOOLLIT,
	"False": TOK_BOOLLIT,
	"None":  TOK_NONE,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() {
	l.mark()
	l.eat()

	for {
		c := l.peek()
		if isFirstIdentChar(c) || isDecimalDigit(c) {
			l.eat()
		} else {
			break
		}
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		l.emit(kind)
	} else {
		l.emit(TOK_IDENT)
	}
}

// lexNumericLit lexes a decimal numeric literal.  A fractional part is lexed
// into the same token: it is up to the consumer to decide what to accept.
func (l *Lexer) lexNumericLit() {
	l.mark()

	for isDecimalDigit(l.peek()) {
		l.eat()
	}

	if l.peek() == '.' {
		l.eat()

		for isDecimalDigit(l.peek()) {
			l.eat()
		}
	}

	if isFirstIdentChar(l.peek()) {
		l.eat()
		panic(report.Raise(report.KindSyntax, l.getSpan(), "invalid numeric literal"))
	}

	l.emit(TOK_NUMLIT)
}

// lexStringLit lexes a single-line string literal delimited by quote.
func (l *Lexer) lexStringLit(quote rune) {
	l.mark()
	l.eat()

	for {
		c := l.peek()
		switch c {
		case -1, '\n':
			panic(report.Raise(report.KindSyntax, l.getSpan(), "unclosed string literal"))
		case '\\':
			l.eat()
			if next := l.peek(); next != -1 && next != '\n' {
				l.eat()
			}
		default:
			l.eat()
			if c == quote {
				l.emit(TOK_STRINGLIT)
				return
			}
		}
	}
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.startOffset = l.offset
	l.startLine = l.line
	l.startCol = l.col
}

// emit produces a new token of the given kind from the lexer's state, queues
// it, and resets the lexer to begin building the next token.
func (l *Lexer) emit(kind int) {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	l.pending = append(l.pending, &Token{
		Kind:   kind,
		Value:  value,
		Offset: l.startOffset,
		End:    l.offset,
		Span:   l.getSpan(),
	})
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters the end of the source, -1 is returned.
func (l *Lexer) eat() rune {
	c := l.skip()
	if c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters the end of the source, -1 is
// returned.
func (l *Lexer) skip() rune {
	if l.offset >= len(l.src) {
		return -1
	}

	c, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.offset += size
	l.updatePos(c)
	return c
}

// peek returns the next rune in the source without moving the lexer forward.
// If the lexer is at the end of the source, -1 is returned.
func (l *Lexer) peek() rune {
	if l.offset >= len(l.src) {
		return -1
	}

	c, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return c
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return c != -1 && (unicode.IsLetter(c) || c == '_')
}
