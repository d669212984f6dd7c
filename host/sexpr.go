package host

import (
	"fmt"
	"strings"
)

// sexpr is a node of WebAssembly text: either an atom (keyword, identifier,
// number or string) or a parenthesized list of nodes.
type sexpr struct {
	atom   string
	list   []*sexpr
	isList bool

	// The byte offset of the node in the source text.
	offset int
}

// head returns the leading keyword of a list or the empty string.
func (s *sexpr) head() string {
	if !s.isList || len(s.list) == 0 || s.list[0].isList {
		return ""
	}

	return s.list[0].atom
}

// isName returns whether the node is a `$`-prefixed identifier.
func (s *sexpr) isName() bool {
	return !s.isList && strings.HasPrefix(s.atom, "$")
}

func (s *sexpr) String() string {
	if !s.isList {
		return s.atom
	}

	parts := make([]string, len(s.list))
	for i, item := range s.list {
		parts[i] = item.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}

// reader reads S-expressions from WebAssembly text.
type reader struct {
	src string
	pos int
}

// readModule reads all the top-level S-expressions of src.
func readModule(src string) ([]*sexpr, error) {
	r := &reader{src: src}

	var nodes []*sexpr
	for {
		if err := r.skipSpace(); err != nil {
			return nil, err
		}

		if r.pos >= len(r.src) {
			return nodes, nil
		}

		node, err := r.read()
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}
}

// read reads a single S-expression at the current position.
func (r *reader) read() (*sexpr, error) {
	start := r.pos

	switch r.src[r.pos] {
	case '(':
		r.pos++
		node := &sexpr{isList: true, offset: start}

		for {
			if err := r.skipSpace(); err != nil {
				return nil, err
			}

			if r.pos >= len(r.src) {
				return nil, fmt.Errorf("unclosed list opened at offset %d", start)
			}

			if r.src[r.pos] == ')' {
				r.pos++
				return node, nil
			}

			item, err := r.read()
			if err != nil {
				return nil, err
			}

			node.list = append(node.list, item)
		}
	case ')':
		return nil, fmt.Errorf("unexpected `)` at offset %d", start)
	case '"':
		r.pos++
		for r.pos < len(r.src) && r.src[r.pos] != '"' {
			if r.src[r.pos] == '\\' {
				r.pos++
			}

			r.pos++
		}

		if r.pos >= len(r.src) {
			return nil, fmt.Errorf("unclosed string at offset %d", start)
		}

		r.pos++
		return &sexpr{atom: r.src[start:r.pos], offset: start}, nil
	default:
		for r.pos < len(r.src) && !strings.ContainsRune(" \t\r\n()\";", rune(r.src[r.pos])) {
			r.pos++
		}

		if r.pos == start {
			return nil, fmt.Errorf("unexpected `%c` at offset %d", r.src[start], start)
		}

		return &sexpr{atom: r.src[start:r.pos], offset: start}, nil
	}
}

// skipSpace skips whitespace along with line and block comments.
func (r *reader) skipSpace() error {
	for r.pos < len(r.src) {
		switch {
		case strings.ContainsRune(" \t\r\n", rune(r.src[r.pos])):
			r.pos++
		case strings.HasPrefix(r.src[r.pos:], ";;"):
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
		case strings.HasPrefix(r.src[r.pos:], "(;"):
			end := strings.Index(r.src[r.pos:], ";)")
			if end == -1 {
				return fmt.Errorf("unclosed block comment at offset %d", r.pos)
			}

			r.pos += end + 2
		default:
			return nil
		}
	}

	return nil
}
