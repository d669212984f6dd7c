package syntax

import "snek/report"

// Node represents a piece of the concrete syntax tree (CST).
type Node interface {
	// Name is the grammar name of the node: eg. `IfStatement` for a branch or
	// `VariableName` for a leaf.  Keyword and punctuation leaves are named by
	// their text (`if`, `:`).
	Name() string

	// Span should span the entire node (meaningfully).
	Span() *report.TextSpan

	// From and To are the byte offsets of the node in the source text.
	From() int
	To() int
}

// Leaf is simply a token in the CST (at the end of a branch).
type Leaf struct {
	Token
}

func (l *Leaf) Name() string {
	if name, ok := leafNames[l.Kind]; ok {
		return name
	}

	return l.Value
}

func (l *Leaf) Span() *report.TextSpan {
	return l.Token.Span
}

func (l *Leaf) From() int {
	return l.Offset
}

func (l *Leaf) To() int {
	return l.End
}

// Branch is a named sequence of leaves and branches.  Branches are never
// empty.
type Branch struct {
	name    string
	Content []Node
}

// NewBranch creates a new branch with the given name and content.
func NewBranch(name string, content ...Node) *Branch {
	return &Branch{name: name, Content: content}
}

func (b *Branch) Name() string {
	return b.name
}

// Span of a branch is the span from the start of its first node to the end of
// its last node.
func (b *Branch) Span() *report.TextSpan {
	return report.NewSpanOver(b.Content[0].Span(), b.Last().Span())
}

func (b *Branch) From() int {
	return b.Content[0].From()
}

func (b *Branch) To() int {
	return b.Last().To()
}

// BranchAt gets and casts the specified element to a branch.  It returns nil if
// the element is not a branch.
func (b *Branch) BranchAt(ndx int) *Branch {
	br, _ := b.Content[ndx].(*Branch)
	return br
}

// LeafAt gets and casts the specified element to a leaf.  It returns nil if
// the element is not a leaf.
func (b *Branch) LeafAt(ndx int) *Leaf {
	leaf, _ := b.Content[ndx].(*Leaf)
	return leaf
}

// Len returns the length of the branch's content.
func (b *Branch) Len() int {
	return len(b.Content)
}

// Last returns the last element of the branch.
func (b *Branch) Last() Node {
	return b.Content[len(b.Content)-1]
}

// -----------------------------------------------------------------------------

// Tree is a parsed source file: the root `Script` branch along with the source
// text it was parsed from.
type Tree struct {
	Root *Branch
	Src  string
}

// Text returns the source text covered by n.
func (t *Tree) Text(n Node) string {
	return t.Src[n.From():n.To()]
}

// Cursor returns a new cursor positioned on the root of the tree.
func (t *Tree) Cursor() *Cursor {
	return t.CursorAt(t.Root)
}

// CursorAt returns a new cursor positioned on n.  The cursor is confined to the
// subtree rooted at n: it cannot move to the parent or siblings of n.
func (t *Tree) CursorAt(n Node) *Cursor {
	return &Cursor{tree: t, node: n}
}

// Cursor navigates a tree one node at a time in the manner of a tree cursor:
// it can move to the first child of its node, to the next sibling of its node,
// or back up to the parent.  The path to the current node is kept explicitly,
// so nodes never need to store their parents.
type Cursor struct {
	tree *Tree

	// The current node.
	node Node

	// The chain of ancestors of the current node, innermost last, along with
	// the index of the current node (or the ancestor below) in each.
	parents []*Branch
	indices []int
}

// Node returns the node the cursor is positioned on.
func (c *Cursor) Node() Node {
	return c.node
}

// Name returns the name of the node the cursor is positioned on.
func (c *Cursor) Name() string {
	return c.node.Name()
}

// Text returns the source text of the node the cursor is positioned on.
func (c *Cursor) Text() string {
	return c.tree.Text(c.node)
}

// FirstChild moves the cursor onto the first child of its node.  It returns
// false and does not move if the node has no children.
func (c *Cursor) FirstChild() bool {
	br, ok := c.node.(*Branch)
	if !ok || br.Len() == 0 {
		return false
	}

	c.parents = append(c.parents, br)
	c.indices = append(c.indices, 0)
	c.node = br.Content[0]
	return true
}

// NextSibling moves the cursor onto the next sibling of its node.  It returns
// false and does not move if there is no next sibling.
func (c *Cursor) NextSibling() bool {
	if len(c.parents) == 0 {
		return false
	}

	top := len(c.parents) - 1
	parent, ndx := c.parents[top], c.indices[top]+1
	if ndx >= parent.Len() {
		return false
	}

	c.indices[top] = ndx
	c.node = parent.Content[ndx]
	return true
}

// Parent moves the cursor back up to the parent of its node.  It returns false
// and does not move if the cursor is on the root.
func (c *Cursor) Parent() bool {
	if len(c.parents) == 0 {
		return false
	}

	top := len(c.parents) - 1
	c.node = c.parents[top]
	c.parents = c.parents[:top]
	c.indices = c.indices[:top]
	return true
}
