package commands

import "github.com/iw2rmb/inkwell/model"

// Context is the structural situation of a position.
type Context uint8

const (
	ContextPlain Context = iota
	ContextList
	ContextTable
)

func (c Context) String() string {
	switch c {
	case ContextList:
		return "list"
	case ContextTable:
		return "table"
	default:
		return "plain"
	}
}

// ContextAt classifies pos. Any enclosing list wins over any enclosing table
// cell, regardless of nesting order.
func ContextAt(doc *model.Node, pos int) Context {
	r, err := doc.Resolve(pos)
	if err != nil {
		return ContextPlain
	}
	if _, ok := r.FindAncestor(func(n *model.Node) bool { return n.Type.IsList() }); ok {
		return ContextList
	}
	if _, ok := r.FindAncestor(func(n *model.Node) bool { return n.Type.IsCell() }); ok {
		return ContextTable
	}
	return ContextPlain
}

func resolveFrom(t Target) (model.ResolvedPos, bool) {
	r, err := t.Doc().Resolve(t.Selection().From())
	return r, err == nil
}

// childPos is the position before child i of parent, whose content starts
// at start.
func childPos(parent *model.Node, start, i int) int {
	pos := start
	for j := 0; j < i && j < parent.ChildCount(); j++ {
		pos += parent.Child(j).NodeSize()
	}
	return pos
}

// firstTextPos is the first cursor position inside n, which sits at before.
func firstTextPos(n *model.Node, before int) int {
	pos := before + 1
	for !n.IsTextblock() {
		c := n.FirstChild()
		if c == nil || c.IsLeaf() {
			return pos
		}
		n = c
		pos++
	}
	return pos
}
