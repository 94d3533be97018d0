package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Node is one node of a document tree. Text nodes carry Text and Marks; all
// other nodes carry Content. Nodes are immutable once built.
type Node struct {
	Type    NodeType
	Attrs   Attrs
	Content []*Node
	Text    string
	Marks   MarkSet
}

// NewNode builds a node of type t. Nil attrs are replaced by the type's
// defaults and inline content is normalized.
func NewNode(t NodeType, attrs Attrs, content ...*Node) *Node {
	if attrs == nil {
		attrs = DefaultAttrs(t)
	}
	kids := make([]*Node, 0, len(content))
	for _, c := range content {
		if c != nil {
			kids = append(kids, c)
		}
	}
	if t.IsTextblock() {
		kids = normalizeInline(kids)
	}
	if len(kids) == 0 {
		kids = nil
	}
	return &Node{Type: t, Attrs: attrs, Content: kids}
}

// NewText builds a text node. It returns nil for empty text.
func NewText(text string, marks ...Mark) *Node {
	if text == "" {
		return nil
	}
	return &Node{Type: NodeText, Text: text, Marks: NewMarkSet(marks...)}
}

func (n *Node) IsText() bool      { return n.Type == NodeText }
func (n *Node) IsLeaf() bool      { return n.Type.IsLeaf() }
func (n *Node) IsTextblock() bool { return n.Type.IsTextblock() }

// NodeSize is the number of positions the node occupies in its parent.
func (n *Node) NodeSize() int {
	switch {
	case n.IsText():
		return utf8.RuneCountInString(n.Text)
	case n.IsLeaf():
		return 1
	default:
		return n.ContentSize() + 2
	}
}

// ContentSize is the number of positions inside the node.
func (n *Node) ContentSize() int {
	size := 0
	for _, c := range n.Content {
		size += c.NodeSize()
	}
	return size
}

func (n *Node) ChildCount() int { return len(n.Content) }

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Content) {
		return nil
	}
	return n.Content[i]
}

func (n *Node) FirstChild() *Node { return n.Child(0) }

func (n *Node) LastChild() *Node { return n.Child(len(n.Content) - 1) }

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	n.Descendants(func(c *Node, _ int, _ *Node, _ int) bool {
		if c.IsText() {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// Copy returns a node with n's type and attributes and the given content.
func (n *Node) Copy(content []*Node) *Node {
	if n.IsTextblock() {
		content = normalizeInline(content)
	}
	if len(content) == 0 {
		content = nil
	}
	return &Node{Type: n.Type, Attrs: n.Attrs, Content: content, Text: n.Text, Marks: n.Marks}
}

// WithAttrs returns a copy of n carrying attrs.
func (n *Node) WithAttrs(attrs Attrs) *Node {
	out := *n
	out.Attrs = attrs
	return &out
}

// WithType returns a copy of n with a new type and attributes. Marks on
// inline content are dropped when t is a code block.
func (n *Node) WithType(t NodeType, attrs Attrs) *Node {
	if attrs == nil {
		attrs = DefaultAttrs(t)
	}
	content := n.Content
	if t == NodeCodeBlock {
		content = make([]*Node, 0, len(n.Content))
		for _, c := range n.Content {
			if c.IsText() && len(c.Marks) > 0 {
				c = &Node{Type: NodeText, Text: c.Text}
			}
			content = append(content, c)
		}
		content = normalizeInline(content)
	}
	return &Node{Type: t, Attrs: attrs, Content: content}
}

// WithMarks returns a copy of text node n with the given marks.
func (n *Node) WithMarks(marks MarkSet) *Node {
	out := *n
	out.Marks = marks
	return &out
}

// Descendants calls fn for every descendant in document order. pos is the
// position directly before the descendant. Returning false skips the
// descendant's children.
func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.descend(0, fn)
}

func (n *Node) descend(start int, fn func(*Node, int, *Node, int) bool) {
	pos := start
	for i, c := range n.Content {
		if fn(c, pos, n, i) && len(c.Content) > 0 {
			c.descend(pos+1, fn)
		}
		pos += c.NodeSize()
	}
}

// NodeAt returns the node that starts directly after pos, or nil.
func (n *Node) NodeAt(pos int) *Node {
	cur := n
	for {
		idx, offset, ok := cur.findIndex(pos)
		if !ok || idx >= len(cur.Content) {
			return nil
		}
		child := cur.Content[idx]
		if offset == pos {
			return child
		}
		if child.IsLeaf() {
			return nil
		}
		pos -= offset + 1
		cur = child
	}
}

// TextBetween returns the text in [from, to), separating textblocks with sep.
func (n *Node) TextBetween(from, to int, sep string) string {
	var sb strings.Builder
	first := true
	n.Descendants(func(c *Node, pos int, _ *Node, _ int) bool {
		end := pos + c.NodeSize()
		if end <= from || pos >= to {
			return false
		}
		if c.IsTextblock() && !first && sep != "" {
			sb.WriteString(sep)
		}
		if c.IsTextblock() {
			first = false
		}
		if c.IsText() {
			start := max(from, pos) - pos
			stop := min(to, end) - pos
			sb.WriteString(sliceRunes(c.Text, start, stop))
		}
		return true
	})
	return sb.String()
}

// Eq reports deep structural equality.
func (n *Node) Eq(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	if n.Type != o.Type || n.Text != o.Text || !n.Marks.Eq(o.Marks) || !AttrsEqual(n.Attrs, o.Attrs) {
		return false
	}
	if len(n.Content) != len(o.Content) {
		return false
	}
	for i := range n.Content {
		if !n.Content[i].Eq(o.Content[i]) {
			return false
		}
	}
	return true
}

// String renders a compact debug form, e.g. doc(paragraph("hi")).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		s := fmt.Sprintf("%q", n.Text)
		for i := len(n.Marks) - 1; i >= 0; i-- {
			s = n.Marks[i].Type.String() + "(" + s + ")"
		}
		return s
	}
	parts := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		parts = append(parts, c.String())
	}
	return n.Type.String() + "(" + strings.Join(parts, ", ") + ")"
}

// findIndex locates the child containing offset. At a boundary between two
// children it returns the index of the later child.
func (n *Node) findIndex(offset int) (index, childStart int, ok bool) {
	if offset < 0 {
		return 0, 0, false
	}
	if offset == 0 {
		return 0, 0, true
	}
	cur := 0
	for i, c := range n.Content {
		end := cur + c.NodeSize()
		if end == offset {
			return i + 1, end, true
		}
		if end > offset {
			return i, cur, true
		}
		cur = end
	}
	return 0, 0, false
}

// Cut returns the part of text node n in [from, to) runes.
func (n *Node) Cut(from, to int) *Node { return n.cut(from, to) }

func (n *Node) cut(from, to int) *Node {
	if from == 0 && to >= n.NodeSize() {
		return n
	}
	return &Node{Type: NodeText, Text: sliceRunes(n.Text, from, to), Marks: n.Marks}
}

// ReplaceChildren returns a copy of n whose content between offsets from and
// to is replaced by content. Text children straddling either offset are
// split. Content rules are not checked here.
func (n *Node) ReplaceChildren(from, to int, content []*Node) (*Node, error) {
	size := n.ContentSize()
	if from < 0 || to < from || to > size {
		return nil, fmt.Errorf("%w: [%d,%d) in %s of size %d", ErrOutOfRange, from, to, n.Type, size)
	}
	out := make([]*Node, 0, len(n.Content)+len(content)+1)
	var after []*Node
	pos := 0
	for _, c := range n.Content {
		end := pos + c.NodeSize()
		straddlesFrom := pos < from && end > from
		straddlesTo := pos < to && end > to
		if (straddlesFrom || straddlesTo) && !c.IsText() {
			return nil, fmt.Errorf("%w: range boundary inside %s", ErrOutOfRange, c.Type)
		}
		switch {
		case end <= from:
			out = append(out, c)
		case straddlesFrom:
			out = append(out, c.cut(0, from-pos))
		}
		switch {
		case pos >= to:
			after = append(after, c)
		case straddlesTo:
			after = append(after, c.cut(to-pos, end-pos))
		}
		pos = end
	}
	for _, c := range content {
		if c != nil {
			out = append(out, c)
		}
	}
	out = append(out, after...)
	return n.Copy(out), nil
}

// normalizeInline drops empty text nodes and merges adjacent text nodes that
// carry equal marks.
func normalizeInline(in []*Node) []*Node {
	out := make([]*Node, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		if c.IsText() && c.Text == "" {
			continue
		}
		if c.IsText() && len(out) > 0 {
			last := out[len(out)-1]
			if last.IsText() && last.Marks.Eq(c.Marks) {
				out[len(out)-1] = &Node{Type: NodeText, Text: last.Text + c.Text, Marks: last.Marks}
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func sliceRunes(s string, from, to int) string {
	if from <= 0 && to >= utf8.RuneCountInString(s) {
		return s
	}
	rs := []rune(s)
	from = clampInt(from, 0, len(rs))
	to = clampInt(to, from, len(rs))
	return string(rs[from:to])
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
