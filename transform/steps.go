package transform

import (
	"fmt"

	"github.com/iw2rmb/inkwell/model"
)

// Step is one atomic edit. Apply never mutates doc.
type Step interface {
	Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error)
	// ChangesContent reports whether the step can alter text or structure.
	// Attribute and mark steps do not.
	ChangesContent() bool
	Name() string
}

// Replace replaces [From, To) with Content. Both ends must lie in the same
// parent node.
//
// Textblocks and leaf blocks that appear, by identity and in the same order,
// both inside the replaced range and inside Content keep their interior
// positions in the step map. Restructuring commands rely on this to keep
// selections and decorations stable.
type Replace struct {
	From    int
	To      int
	Content []*model.Node
}

func (Replace) Name() string         { return "replace" }
func (Replace) ChangesContent() bool { return true }

func (st Replace) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	return replace(doc, s, st.From, st.To, st.Content)
}

// Insert inserts Content at Pos.
type Insert struct {
	Pos     int
	Content []*model.Node
}

func (Insert) Name() string         { return "insert" }
func (Insert) ChangesContent() bool { return true }

func (st Insert) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	return replace(doc, s, st.Pos, st.Pos, st.Content)
}

// InsertText inserts Text at Pos inside a textblock. A nil Marks inherits the
// marks active at Pos.
type InsertText struct {
	Pos   int
	Text  string
	Marks *model.MarkSet
}

func (InsertText) Name() string         { return "insertText" }
func (InsertText) ChangesContent() bool { return true }

func (st InsertText) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	if st.Text == "" {
		return doc, StepMap{}, nil
	}
	r, err := doc.Resolve(st.Pos)
	if err != nil {
		return nil, StepMap{}, err
	}
	if !r.Parent().IsTextblock() {
		return nil, StepMap{}, fmt.Errorf("%w: text outside textblock at %d", model.ErrInvalidContent, st.Pos)
	}
	var marks model.MarkSet
	switch {
	case st.Marks != nil:
		marks = *st.Marks
	case s.AllowsMarks(r.Parent().Type):
		marks = r.Marks()
	}
	text := &model.Node{Type: model.NodeText, Text: st.Text, Marks: marks}
	return replace(doc, s, st.Pos, st.Pos, []*model.Node{text})
}

// Delete removes [From, To).
type Delete struct {
	From int
	To   int
}

func (Delete) Name() string         { return "delete" }
func (Delete) ChangesContent() bool { return true }

func (st Delete) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	return replace(doc, s, st.From, st.To, nil)
}

// SetNodeAttrs replaces the attributes of the node starting at Pos.
type SetNodeAttrs struct {
	Pos   int
	Attrs model.Attrs
}

func (SetNodeAttrs) Name() string         { return "setNodeAttrs" }
func (SetNodeAttrs) ChangesContent() bool { return false }

func (st SetNodeAttrs) Apply(doc *model.Node, _ *model.Schema) (*model.Node, StepMap, error) {
	r, node, err := nodeStartingAt(doc, st.Pos)
	if err != nil {
		return nil, StepMap{}, err
	}
	if err := model.CheckAttrs(node.Type, st.Attrs); err != nil {
		return nil, StepMap{}, err
	}
	return replaceChild(r, node.WithAttrs(st.Attrs)), StepMap{}, nil
}

// SetNodeType converts the textblock starting at Pos to another textblock
// type. Converting to a code block drops inline marks.
type SetNodeType struct {
	Pos   int
	Type  model.NodeType
	Attrs model.Attrs
}

func (SetNodeType) Name() string         { return "setNodeType" }
func (SetNodeType) ChangesContent() bool { return true }

func (st SetNodeType) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	r, node, err := nodeStartingAt(doc, st.Pos)
	if err != nil {
		return nil, StepMap{}, err
	}
	if !node.IsTextblock() || !st.Type.IsTextblock() {
		return nil, StepMap{}, fmt.Errorf("%w: cannot convert %s to %s", model.ErrInvalidContent, node.Type, st.Type)
	}
	repl := node.WithType(st.Type, st.Attrs)
	if err := s.Check(repl); err != nil {
		return nil, StepMap{}, err
	}
	kids := withChild(r.Parent().Content, r.Index(-1), repl)
	if err := s.ValidContent(r.Parent().Type, kids); err != nil {
		return nil, StepMap{}, err
	}
	return replaceChild(r, repl), StepMap{}, nil
}

// AddMark adds Mark to all text in [From, To) whose textblock allows marks.
// A mark of the same type already present is replaced.
type AddMark struct {
	From int
	To   int
	Mark model.Mark
}

func (AddMark) Name() string         { return "addMark" }
func (AddMark) ChangesContent() bool { return false }

func (st AddMark) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	if err := model.CheckMark(st.Mark); err != nil {
		return nil, StepMap{}, err
	}
	if !s.HasMark(st.Mark.Type) {
		return nil, StepMap{}, fmt.Errorf("%w: %s not in schema", model.ErrInvalidMark, st.Mark.Type)
	}
	if err := checkRange(doc, st.From, st.To); err != nil {
		return nil, StepMap{}, err
	}
	out := updateMarks(doc, 0, st.From, st.To, s, func(ms model.MarkSet) model.MarkSet { return ms.Add(st.Mark) })
	return out, StepMap{}, nil
}

// RemoveMark removes marks of Type from all text in [From, To).
type RemoveMark struct {
	From int
	To   int
	Type model.MarkType
}

func (RemoveMark) Name() string         { return "removeMark" }
func (RemoveMark) ChangesContent() bool { return false }

func (st RemoveMark) Apply(doc *model.Node, s *model.Schema) (*model.Node, StepMap, error) {
	if err := checkRange(doc, st.From, st.To); err != nil {
		return nil, StepMap{}, err
	}
	out := updateMarks(doc, 0, st.From, st.To, s, func(ms model.MarkSet) model.MarkSet { return ms.Remove(st.Type) })
	return out, StepMap{}, nil
}

func checkRange(doc *model.Node, from, to int) error {
	if from < 0 || to < from || to > doc.ContentSize() {
		return fmt.Errorf("%w: [%d,%d) in document of size %d", ErrBadRange, from, to, doc.ContentSize())
	}
	return nil
}

func replace(doc *model.Node, s *model.Schema, from, to int, content []*model.Node) (*model.Node, StepMap, error) {
	if err := checkRange(doc, from, to); err != nil {
		return nil, StepMap{}, err
	}
	rf, err := doc.Resolve(from)
	if err != nil {
		return nil, StepMap{}, err
	}
	rt, err := doc.Resolve(to)
	if err != nil {
		return nil, StepMap{}, err
	}
	if !rf.SameParent(rt) {
		return nil, StepMap{}, fmt.Errorf("%w: [%d,%d) crosses a node boundary", ErrBadRange, from, to)
	}
	for _, c := range content {
		if err := s.Check(c); err != nil {
			return nil, StepMap{}, err
		}
	}
	parent := rf.Parent()
	next, err := parent.ReplaceChildren(rf.ParentOffset(), rt.ParentOffset(), content)
	if err != nil {
		return nil, StepMap{}, err
	}
	if err := s.ValidContent(next.Type, next.Content); err != nil {
		return nil, StepMap{}, err
	}
	return rf.ReplaceNode(rf.Depth(), next), replaceMap(rf, rt, content), nil
}

type unit struct {
	node *model.Node
	pos  int
	size int
}

// collectUnits lists the textblocks and leaf blocks in nodes, which start at
// pos, in document order.
func collectUnits(nodes []*model.Node, pos int, out []unit) []unit {
	for _, n := range nodes {
		size := n.NodeSize()
		switch {
		case n.IsText():
		case n.IsTextblock() || n.IsLeaf():
			out = append(out, unit{node: n, pos: pos, size: size})
		default:
			out = collectUnits(n.Content, pos+1, out)
		}
		pos += size
	}
	return out
}

func replaceMap(rf, rt model.ResolvedPos, content []*model.Node) StepMap {
	from, to := rf.Pos, rt.Pos
	parent := rf.Parent()
	base := rf.Start(-1)

	var whole []*model.Node
	wholeStart := -1
	off := 0
	for _, c := range parent.Content {
		end := off + c.NodeSize()
		if base+off >= from && base+end <= to {
			if wholeStart < 0 {
				wholeStart = base + off
			}
			whole = append(whole, c)
		}
		off = end
	}
	var olds []unit
	if wholeStart >= 0 {
		olds = collectUnits(whole, wholeStart, nil)
	}
	news := collectUnits(content, from, nil)

	newEnd := from
	for _, c := range content {
		newEnd += c.NodeSize()
	}

	var spans []Span
	oPrev, nPrev := from, from
	j := 0
	for _, nu := range news {
		for k := j; k < len(olds); k++ {
			ou := olds[k]
			if ou.node != nu.node {
				continue
			}
			spans = append(spans, Span{Start: oPrev, OldSize: ou.pos - oPrev, NewSize: nu.pos - nPrev})
			oPrev, nPrev = ou.pos+ou.size, nu.pos+nu.size
			j = k + 1
			break
		}
	}
	spans = append(spans, Span{Start: oPrev, OldSize: to - oPrev, NewSize: newEnd - nPrev})
	return NewStepMap(spans...)
}

func nodeStartingAt(doc *model.Node, pos int) (model.ResolvedPos, *model.Node, error) {
	r, err := doc.Resolve(pos)
	if err != nil {
		return model.ResolvedPos{}, nil, err
	}
	node := r.NodeAfter()
	if node == nil || node.IsText() || r.TextOffset() != 0 {
		return model.ResolvedPos{}, nil, fmt.Errorf("%w: %d", ErrNoNode, pos)
	}
	return r, node, nil
}

func withChild(kids []*model.Node, i int, n *model.Node) []*model.Node {
	out := make([]*model.Node, len(kids))
	copy(out, kids)
	out[i] = n
	return out
}

// replaceChild swaps the node directly after r for n.
func replaceChild(r model.ResolvedPos, n *model.Node) *model.Node {
	p := r.Parent()
	return r.ReplaceNode(r.Depth(), p.Copy(withChild(p.Content, r.Index(-1), n)))
}

// updateMarks rewrites the marks of text in [from, to). n's content starts
// at start. Untouched subtrees are shared.
func updateMarks(n *model.Node, start, from, to int, s *model.Schema, fn func(model.MarkSet) model.MarkSet) *model.Node {
	if n.IsTextblock() && !s.AllowsMarks(n.Type) {
		return n
	}
	kids := make([]*model.Node, 0, len(n.Content))
	changed := false
	pos := start
	for _, c := range n.Content {
		size := c.NodeSize()
		end := pos + size
		if end <= from || pos >= to {
			kids = append(kids, c)
			pos = end
			continue
		}
		switch {
		case c.IsText():
			a, b := max(from, pos)-pos, min(to, end)-pos
			marks := fn(c.Marks)
			if marks.Eq(c.Marks) {
				kids = append(kids, c)
				break
			}
			changed = true
			if a > 0 {
				kids = append(kids, c.Cut(0, a))
			}
			kids = append(kids, c.Cut(a, b).WithMarks(marks))
			if b < size {
				kids = append(kids, c.Cut(b, size))
			}
		case c.IsLeaf():
			kids = append(kids, c)
		default:
			nc := updateMarks(c, pos+1, from, to, s, fn)
			changed = changed || nc != c
			kids = append(kids, nc)
		}
		pos = end
	}
	if !changed {
		return n
	}
	return n.Copy(kids)
}
