package main

import (
	"github.com/iw2rmb/inkwell/commands"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// textblock is the content range of one textblock.
type textblock struct {
	start, end int
}

func textblocks(doc *model.Node) []textblock {
	var out []textblock
	doc.Descendants(func(n *model.Node, pos int, _ *model.Node, _ int) bool {
		if n.IsTextblock() {
			out = append(out, textblock{start: pos + 1, end: pos + 1 + n.ContentSize()})
			return false
		}
		return true
	})
	return out
}

func blockIndex(blocks []textblock, pos int) int {
	for i, b := range blocks {
		if pos >= b.start && pos <= b.end {
			return i
		}
	}
	return -1
}

// moveHorizontal steps one position left or right, skipping positions that
// are not inside a textblock.
func moveHorizontal(doc *model.Node, pos, dir int) int {
	blocks := textblocks(doc)
	for p := pos + dir; p >= 0 && p <= doc.ContentSize(); p += dir {
		if blockIndex(blocks, p) >= 0 {
			return p
		}
	}
	return pos
}

// moveVertical jumps to the neighbouring textblock, keeping the column when
// the target is long enough.
func moveVertical(doc *model.Node, pos, dir int) int {
	blocks := textblocks(doc)
	i := blockIndex(blocks, pos)
	j := i + dir
	if i < 0 || j < 0 || j >= len(blocks) {
		return pos
	}
	col := pos - blocks[i].start
	return min(blocks[j].start+col, blocks[j].end)
}

// firstCursor is the start of the first textblock.
func firstCursor(doc *model.Node) int {
	if blocks := textblocks(doc); len(blocks) > 0 {
		return blocks[0].start
	}
	return 0
}

func typeText(t commands.Target, text string) {
	sel := t.Selection()
	tr := transform.NewTransaction()
	if !sel.Empty() {
		tr.Delete(sel.From(), sel.To())
	}
	_ = t.Dispatch(tr.InsertText(sel.From(), text))
}

// backspace deletes the selection or the character before the cursor. At
// the start of a textblock it joins the block into a textblock sibling
// directly before it.
func backspace(t commands.Target) {
	sel := t.Selection()
	if !sel.Empty() {
		_ = t.Dispatch(transform.NewTransaction().Delete(sel.From(), sel.To()))
		return
	}
	r, err := t.Doc().Resolve(sel.Head)
	if err != nil || !r.Parent().IsTextblock() {
		return
	}
	if r.ParentOffset() > 0 {
		_ = t.Dispatch(transform.NewTransaction().Delete(sel.Head-1, sel.Head))
		return
	}
	d := r.Depth()
	idx := r.Index(d - 1)
	if idx == 0 {
		return
	}
	container := r.Node(d - 1)
	prev := container.Child(idx - 1)
	if !prev.IsTextblock() {
		return
	}
	cur := r.Parent()
	joined := prev.Copy(append(append([]*model.Node(nil), prev.Content...), cur.Content...))
	from := r.Before(d) - prev.NodeSize()
	tr := transform.NewTransaction().
		Replace(from, r.After(d), joined).
		SetSelection(model.Cursor(from + 1 + prev.ContentSize()))
	_ = t.Dispatch(tr)
}

// splitBlock breaks the textblock at the cursor in two. A paragraph that
// opens a list item splits the item instead; code blocks get a newline.
func splitBlock(t commands.Target) {
	sel := t.Selection()
	r, err := t.Doc().Resolve(sel.From())
	if err != nil || !r.Parent().IsTextblock() {
		return
	}
	p := r.Parent()
	if p.Type == model.NodeCodeBlock {
		typeText(t, "\n")
		return
	}
	off := r.ParentOffset()
	left, err := p.ReplaceChildren(off, p.ContentSize(), nil)
	if err != nil {
		return
	}
	right, err := p.ReplaceChildren(0, off, nil)
	if err != nil {
		return
	}
	if p.Type == model.NodeHeading && off == p.ContentSize() {
		right = model.Paragraph()
	}

	d := r.Depth()
	if d >= 2 && r.Node(d-1).Type.IsListItem() && r.Index(d-1) == 0 {
		item := r.Node(d - 1)
		first := item.Copy([]*model.Node{left})
		rest := append([]*model.Node{right}, item.Content[1:]...)
		second := model.NewNode(item.Type, nil, rest...)
		tr := transform.NewTransaction().
			Replace(r.Before(d-1), r.After(d-1), first, second).
			SetSelection(model.Cursor(r.Before(d-1) + first.NodeSize() + 2))
		_ = t.Dispatch(tr)
		return
	}
	tr := transform.NewTransaction().
		Replace(r.Before(d), r.After(d), left, right).
		SetSelection(model.Cursor(r.Before(d) + left.NodeSize() + 1))
	_ = t.Dispatch(tr)
}
