package commands

import (
	"slices"

	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

func listItemDepth(r model.ResolvedPos) (int, bool) {
	return r.FindAncestor(func(n *model.Node) bool { return n.Type.IsListItem() })
}

// SinkListItem nests the list item at the selection under its previous
// sibling. It reports false when nothing changed.
func SinkListItem(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok {
		return false
	}
	d, ok := listItemDepth(r)
	if !ok {
		return false
	}
	list := r.Node(d - 1)
	idx := r.Index(d - 1)
	if idx == 0 {
		return false
	}
	prev, item := list.Child(idx-1), list.Child(idx)

	var nested *model.Node
	if last := prev.LastChild(); last != nil && last.Type == list.Type {
		sub := last.Copy(append(slices.Clone(last.Content), item))
		nested = prev.Copy(append(slices.Clone(prev.Content[:len(prev.Content)-1]), sub))
	} else {
		nested = prev.Copy(append(slices.Clone(prev.Content), model.NewNode(list.Type, nil, item)))
	}
	from := childPos(list, r.Start(d-1), idx-1)
	to := from + prev.NodeSize() + item.NodeSize()
	return dispatch(t, transform.NewTransaction().Replace(from, to, nested))
}

// LiftListItem moves the list item at the selection one level out. A nested
// item becomes the next sibling of its parent item and adopts the siblings
// that followed it. A top-level item is unwrapped out of its list, splitting
// the list around it. It reports false when nothing changed.
func LiftListItem(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok {
		return false
	}
	d, ok := listItemDepth(r)
	if !ok {
		return false
	}
	list := r.Node(d - 1)
	idx := r.Index(d - 1)
	item := list.Child(idx)
	before := slices.Clone(list.Content[:idx])
	after := slices.Clone(list.Content[idx+1:])

	if d >= 3 && r.Node(d-2).Type.IsListItem() {
		outer := r.Node(d - 2)
		outerList := r.Node(d - 3)
		subIdx := r.Index(d - 2)

		moved := item
		if len(after) > 0 {
			moved = appendSublist(moved, list.Type, after)
		}
		if rest := outer.Content[subIdx+1:]; len(rest) > 0 {
			moved = moved.Copy(append(slices.Clone(moved.Content), rest...))
		}
		moved = convertItem(moved, outerList.Type.ItemType())

		kids := slices.Clone(outer.Content[:subIdx])
		if len(before) > 0 {
			kids = append(kids, list.Copy(before))
		}
		tr := transform.NewTransaction().Replace(r.Before(d-2), r.After(d-2), outer.Copy(kids), moved)
		return dispatch(t, tr)
	}

	var content []*model.Node
	if len(before) > 0 {
		content = append(content, list.Copy(before))
	}
	content = append(content, item.Content...)
	if len(after) > 0 {
		content = append(content, list.Copy(after))
	}
	return dispatch(t, transform.NewTransaction().Replace(r.Before(d-1), r.After(d-1), content...))
}

// appendSublist adds items to item's trailing list of type listType,
// creating the list if item does not end with one.
func appendSublist(item *model.Node, listType model.NodeType, items []*model.Node) *model.Node {
	if last := item.LastChild(); last != nil && last.Type == listType {
		sub := last.Copy(append(slices.Clone(last.Content), items...))
		return item.Copy(append(slices.Clone(item.Content[:len(item.Content)-1]), sub))
	}
	return item.Copy(append(slices.Clone(item.Content), model.NewNode(listType, nil, items...)))
}

// convertItem retypes a list item, keeping its content. Task state is lost
// when leaving a task list.
func convertItem(item *model.Node, t model.NodeType) *model.Node {
	if item.Type == t {
		return item
	}
	return model.NewNode(t, nil, item.Content...)
}

// ToggleList wraps the selected paragraphs in a list of listType, converts
// the enclosing list to listType, or lifts the current item out when the
// enclosing list already has that type.
func ToggleList(listType model.NodeType) Command {
	return exemptInHeading(func(t Target) bool {
		r, ok := resolveFrom(t)
		if !ok {
			return false
		}
		if d, ok := listItemDepth(r); ok {
			list := r.Node(d - 1)
			if list.Type == listType {
				LiftListItem(t)
				return true
			}
			items := make([]*model.Node, 0, list.ChildCount())
			for _, it := range list.Content {
				items = append(items, convertItem(it, listType.ItemType()))
			}
			attrs := model.DefaultAttrs(listType)
			dispatch(t, transform.NewTransaction().Replace(r.Before(d-1), r.After(d-1), model.NewNode(listType, attrs, items...)))
			return true
		}
		return wrapInList(t, r, listType)
	})
}

func wrapInList(t Target, r model.ResolvedPos, listType model.NodeType) bool {
	if !r.Parent().IsTextblock() {
		return false
	}
	d := r.Depth()
	container := r.Node(d - 1)
	start := r.Start(d - 1)
	first, last := r.Index(d-1), r.Index(d-1)
	if rt, err := t.Doc().Resolve(t.Selection().To()); err == nil &&
		rt.Depth() == d && rt.Node(d-1) == container && rt.Start(d-1) == start {
		last = rt.Index(d - 1)
	}
	items := make([]*model.Node, 0, last-first+1)
	for i := first; i <= last; i++ {
		b := container.Child(i)
		if b.Type != model.NodeParagraph {
			return false
		}
		items = append(items, model.NewNode(listType.ItemType(), nil, b))
	}
	from := childPos(container, start, first)
	to := childPos(container, start, last+1)
	return dispatch(t, transform.NewTransaction().Replace(from, to, model.NewNode(listType, nil, items...)))
}
