package model

import "fmt"

type pathEntry struct {
	node  *Node
	index int
	start int // position of the start of node's content
}

// ResolvedPos is a position together with the chain of nodes that contain it.
// Depth 0 is the document root; Depth() is the innermost node whose content
// holds the position.
type ResolvedPos struct {
	Pos  int
	path []pathEntry
}

// Resolve resolves pos against n.
func (n *Node) Resolve(pos int) (ResolvedPos, error) {
	if pos < 0 || pos > n.ContentSize() {
		return ResolvedPos{}, fmt.Errorf("%w: %d not in [0,%d]", ErrOutOfRange, pos, n.ContentSize())
	}
	var path []pathEntry
	node := n
	start := 0
	offset := pos
	for {
		idx, childStart, ok := node.findIndex(offset)
		if !ok {
			return ResolvedPos{}, fmt.Errorf("%w: %d", ErrOutOfRange, pos)
		}
		path = append(path, pathEntry{node: node, index: idx, start: start})
		rem := offset - childStart
		if rem == 0 {
			break
		}
		child := node.Content[idx]
		if child.IsLeaf() {
			break
		}
		node = child
		start += childStart + 1
		offset = rem - 1
	}
	return ResolvedPos{Pos: pos, path: path}, nil
}

func (r ResolvedPos) Depth() int { return len(r.path) - 1 }

func (r ResolvedPos) entry(d int) pathEntry {
	if d < 0 {
		d += len(r.path)
	}
	return r.path[d]
}

// Node returns the ancestor at depth d. Negative depths count from the
// innermost node.
func (r ResolvedPos) Node(d int) *Node { return r.entry(d).node }

// Index returns the index into the ancestor at depth d.
func (r ResolvedPos) Index(d int) int { return r.entry(d).index }

// Start returns the position at the start of the content of the ancestor at
// depth d.
func (r ResolvedPos) Start(d int) int { return r.entry(d).start }

// End returns the position at the end of the content of the ancestor at
// depth d.
func (r ResolvedPos) End(d int) int {
	e := r.entry(d)
	return e.start + e.node.ContentSize()
}

// Before returns the position directly before the ancestor at depth d >= 1.
func (r ResolvedPos) Before(d int) int { return r.Start(d) - 1 }

// After returns the position directly after the ancestor at depth d >= 1.
func (r ResolvedPos) After(d int) int { return r.End(d) + 1 }

func (r ResolvedPos) Parent() *Node { return r.Node(r.Depth()) }

func (r ResolvedPos) ParentOffset() int { return r.Pos - r.Start(r.Depth()) }

// TextOffset returns the offset into the text child the position points into,
// or 0 when the position sits between children.
func (r ResolvedPos) TextOffset() int {
	p := r.Parent()
	off := r.ParentOffset()
	cur := 0
	for i := 0; i < r.Index(-1) && i < len(p.Content); i++ {
		cur += p.Content[i].NodeSize()
	}
	return off - cur
}

// NodeAfter returns the node directly after the position, or nil.
func (r ResolvedPos) NodeAfter() *Node {
	p := r.Parent()
	idx := r.Index(-1)
	if idx >= len(p.Content) {
		return nil
	}
	child := p.Content[idx]
	if off := r.TextOffset(); off > 0 {
		return child.cut(off, child.NodeSize())
	}
	return child
}

// NodeBefore returns the node directly before the position, or nil.
func (r ResolvedPos) NodeBefore() *Node {
	p := r.Parent()
	idx := r.Index(-1)
	if off := r.TextOffset(); off > 0 {
		return p.Content[idx].cut(0, off)
	}
	if idx == 0 {
		return nil
	}
	return p.Content[idx-1]
}

// Marks returns the marks active at the position: those of the text before
// it, or of the text after it at the start of a textblock.
func (r ResolvedPos) Marks() MarkSet {
	if !r.Parent().IsTextblock() {
		return nil
	}
	if before := r.NodeBefore(); before != nil && before.IsText() {
		return before.Marks
	}
	if after := r.NodeAfter(); after != nil && after.IsText() {
		return after.Marks
	}
	return nil
}

// FindAncestor returns the depth of the innermost ancestor matching pred.
func (r ResolvedPos) FindAncestor(pred func(*Node) bool) (int, bool) {
	for d := r.Depth(); d >= 0; d-- {
		if pred(r.Node(d)) {
			return d, true
		}
	}
	return 0, false
}

// SameParent reports whether o resolves into the same parent node.
func (r ResolvedPos) SameParent(o ResolvedPos) bool {
	return r.Depth() == o.Depth() && r.Start(-1) == o.Start(-1) && r.Parent() == o.Parent()
}

// ReplaceNode returns a new root in which the ancestor at depth d is replaced
// by repl. Depth 0 replaces the root itself.
func (r ResolvedPos) ReplaceNode(d int, repl *Node) *Node {
	cur := repl
	for i := d - 1; i >= 0; i-- {
		e := r.path[i]
		kids := make([]*Node, len(e.node.Content))
		copy(kids, e.node.Content)
		kids[e.index] = cur
		cur = e.node.Copy(kids)
	}
	return cur
}
