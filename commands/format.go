package commands

import (
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

func inHeading(doc *model.Node, pos int) bool {
	r, err := doc.Resolve(pos)
	if err != nil {
		return false
	}
	_, ok := r.FindAncestor(func(n *model.Node) bool { return n.Type == model.NodeHeading })
	return ok
}

// exemptInHeading consumes the key without effect when either end of the
// selection is inside a heading.
func exemptInHeading(cmd Command) Command {
	return func(t Target) bool {
		sel := t.Selection()
		if inHeading(t.Doc(), sel.From()) || inHeading(t.Doc(), sel.To()) {
			return true
		}
		return cmd(t)
	}
}

// ToggleMark removes mark type mt from the selection if all selected text
// carries it, and adds it otherwise. An empty selection is not handled.
func ToggleMark(mt model.MarkType) Command {
	return exemptInHeading(func(t Target) bool {
		sel := t.Selection()
		if sel.Empty() {
			return false
		}
		from, to := sel.From(), sel.To()
		tr := transform.NewTransaction()
		if rangeHasMark(t.Schema(), t.Doc(), from, to, mt) {
			tr.RemoveMark(from, to, mt)
		} else {
			tr.AddMark(from, to, model.Mark{Type: mt})
		}
		return dispatch(t, tr)
	})
}

// rangeHasMark reports whether [from, to) holds text that s lets carry marks
// and all of it carries mt.
func rangeHasMark(s *model.Schema, doc *model.Node, from, to int, mt model.MarkType) bool {
	found, all := false, true
	doc.Descendants(func(n *model.Node, pos int, parent *model.Node, _ int) bool {
		if !all || pos >= to || pos+n.NodeSize() <= from {
			return false
		}
		if n.IsText() && s.AllowsMarks(parent.Type) {
			found = true
			all = n.Marks.Has(mt)
		}
		return true
	})
	return found && all
}

// ToggleBlockquote unwraps the innermost enclosing blockquote, or wraps the
// current block in one. A block inside a list is wrapped together with its
// outermost list.
func ToggleBlockquote(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok {
		return false
	}
	if d, ok := r.FindAncestor(func(n *model.Node) bool { return n.Type == model.NodeBlockquote }); ok && d > 0 {
		bq := r.Node(d)
		return dispatch(t, transform.NewTransaction().Replace(r.Before(d), r.After(d), bq.Content...))
	}
	if !r.Parent().IsTextblock() {
		return false
	}
	d := r.Depth()
	for d > 1 && (r.Node(d-1).Type.IsListItem() || r.Node(d-1).Type.IsList()) {
		d--
	}
	wrapped := model.Blockquote(r.Node(d))
	return dispatch(t, transform.NewTransaction().Replace(r.Before(d), r.After(d), wrapped))
}

// ToggleCodeBlock switches the current textblock between paragraph and code
// block. Marks are dropped on the way into a code block.
func ToggleCodeBlock(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok {
		return false
	}
	p := r.Parent()
	pos := r.Before(r.Depth())
	switch p.Type {
	case model.NodeCodeBlock:
		return dispatch(t, transform.NewTransaction().SetNodeType(pos, model.NodeParagraph, nil))
	case model.NodeParagraph:
		return dispatch(t, transform.NewTransaction().SetNodeType(pos, model.NodeCodeBlock, nil))
	}
	return false
}
