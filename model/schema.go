package model

import (
	"errors"
	"fmt"
)

// Group is a bit set of content groups a node type belongs to.
type Group uint16

const (
	GroupBlock Group = 1 << iota
	GroupInline
	GroupListItem
	GroupTaskItem
	GroupRow
	GroupCell
)

// ContentExpr is the content rule of a node type.
type ContentExpr struct {
	// Allow is the set of groups children may belong to.
	Allow Group
	// First, when set, is the required type of the first child.
	First NodeType
	// Min is the minimum number of children.
	Min int
}

// NodeSpec declares one node type of a schema.
type NodeSpec struct {
	Type    NodeType
	Group   Group
	Content ContentExpr
	// Marks reports whether inline children may carry marks.
	Marks bool
}

// MarkSpec declares one mark type of a schema.
type MarkSpec struct {
	Type MarkType
}

// Schema is the set of node and mark types a document may use, with their
// nesting rules. Registration order is preserved.
type Schema struct {
	specs [nodeTypeCount]NodeSpec
	known [nodeTypeCount]bool
	order []NodeType
	marks []MarkType
}

// NewSchema builds a schema from ordered node and mark declarations.
func NewSchema(nodes []NodeSpec, marks []MarkSpec) (*Schema, error) {
	s := &Schema{}
	for _, spec := range nodes {
		if spec.Type == NodeUnknown || spec.Type >= nodeTypeCount {
			return nil, fmt.Errorf("schema: invalid node type %d", spec.Type)
		}
		if s.known[spec.Type] {
			return nil, fmt.Errorf("schema: duplicate node type %s", spec.Type)
		}
		s.specs[spec.Type] = spec
		s.known[spec.Type] = true
		s.order = append(s.order, spec.Type)
	}
	if !s.known[NodeDoc] || !s.known[NodeText] {
		return nil, errors.New("schema: doc and text node types are required")
	}
	for _, m := range marks {
		for _, seen := range s.marks {
			if seen == m.Type {
				return nil, fmt.Errorf("schema: duplicate mark type %s", m.Type)
			}
		}
		s.marks = append(s.marks, m.Type)
	}
	return s, nil
}

// DefaultNodeSpecs declares every built-in node type.
func DefaultNodeSpecs() []NodeSpec {
	return []NodeSpec{
		{Type: NodeDoc, Content: ContentExpr{Allow: GroupBlock, Min: 1}},
		{Type: NodeParagraph, Group: GroupBlock, Content: ContentExpr{Allow: GroupInline}, Marks: true},
		{Type: NodeHeading, Group: GroupBlock, Content: ContentExpr{Allow: GroupInline}, Marks: true},
		{Type: NodeBlockquote, Group: GroupBlock, Content: ContentExpr{Allow: GroupBlock, Min: 1}},
		{Type: NodeBulletList, Group: GroupBlock, Content: ContentExpr{Allow: GroupListItem, Min: 1}},
		{Type: NodeOrderedList, Group: GroupBlock, Content: ContentExpr{Allow: GroupListItem, Min: 1}},
		{Type: NodeTaskList, Group: GroupBlock, Content: ContentExpr{Allow: GroupTaskItem, Min: 1}},
		{Type: NodeListItem, Group: GroupListItem, Content: ContentExpr{Allow: GroupBlock, First: NodeParagraph, Min: 1}},
		{Type: NodeTaskItem, Group: GroupTaskItem, Content: ContentExpr{Allow: GroupBlock, First: NodeParagraph, Min: 1}},
		{Type: NodeTable, Group: GroupBlock, Content: ContentExpr{Allow: GroupRow, Min: 1}},
		{Type: NodeTableRow, Group: GroupRow, Content: ContentExpr{Allow: GroupCell, Min: 1}},
		{Type: NodeTableCell, Group: GroupCell, Content: ContentExpr{Allow: GroupBlock, Min: 1}},
		{Type: NodeTableHeader, Group: GroupCell, Content: ContentExpr{Allow: GroupBlock, Min: 1}},
		{Type: NodeCodeBlock, Group: GroupBlock, Content: ContentExpr{Allow: GroupInline}},
		{Type: NodeImage, Group: GroupBlock},
		{Type: NodeText, Group: GroupInline},
	}
}

// DefaultMarkSpecs declares every built-in mark type.
func DefaultMarkSpecs() []MarkSpec {
	return []MarkSpec{{Type: MarkLink}, {Type: MarkBold}, {Type: MarkItalic}, {Type: MarkStrike}, {Type: MarkCode}}
}

var defaultSchema = func() *Schema {
	s, err := NewSchema(DefaultNodeSpecs(), DefaultMarkSpecs())
	if err != nil {
		panic(err)
	}
	return s
}()

// DefaultSchema returns the schema holding every built-in type.
func DefaultSchema() *Schema { return defaultSchema }

// Spec returns the declaration of t.
func (s *Schema) Spec(t NodeType) (NodeSpec, bool) {
	if t >= nodeTypeCount || !s.known[t] {
		return NodeSpec{}, false
	}
	return s.specs[t], true
}

// NodeTypes returns the declared node types in registration order.
func (s *Schema) NodeTypes() []NodeType { return append([]NodeType(nil), s.order...) }

// HasMark reports whether the schema declares mark type t.
func (s *Schema) HasMark(t MarkType) bool {
	for _, m := range s.marks {
		if m == t {
			return true
		}
	}
	return false
}

// AllowsMarks reports whether inline children of t may carry marks.
func (s *Schema) AllowsMarks(t NodeType) bool {
	spec, ok := s.Spec(t)
	return ok && spec.Marks
}

// ValidContent checks children against the content rule of t.
func (s *Schema) ValidContent(t NodeType, children []*Node) error {
	spec, ok := s.Spec(t)
	if !ok {
		return fmt.Errorf("%w: unknown node type %s", ErrInvalidContent, t)
	}
	if t.IsLeaf() {
		if len(children) > 0 {
			return fmt.Errorf("%w: %s cannot have children", ErrInvalidContent, t)
		}
		return nil
	}
	if len(children) < spec.Content.Min {
		return fmt.Errorf("%w: %s needs at least %d children, has %d", ErrInvalidContent, t, spec.Content.Min, len(children))
	}
	for i, c := range children {
		if c == nil {
			return fmt.Errorf("%w: nil child %d in %s", ErrInvalidContent, i, t)
		}
		cs, ok := s.Spec(c.Type)
		if !ok {
			return fmt.Errorf("%w: unknown node type %s", ErrInvalidContent, c.Type)
		}
		if cs.Group&spec.Content.Allow == 0 {
			return fmt.Errorf("%w: %s not allowed in %s", ErrInvalidContent, c.Type, t)
		}
		if i == 0 && spec.Content.First != NodeUnknown && c.Type != spec.Content.First {
			return fmt.Errorf("%w: %s must start with %s, not %s", ErrInvalidContent, t, spec.Content.First, c.Type)
		}
		if c.IsText() {
			if c.Text == "" {
				return fmt.Errorf("%w: empty text node in %s", ErrInvalidContent, t)
			}
			if len(c.Marks) > 0 && !spec.Marks {
				return fmt.Errorf("%w: %s does not allow marks", ErrInvalidMark, t)
			}
			for _, m := range c.Marks {
				if !s.HasMark(m.Type) {
					return fmt.Errorf("%w: unknown mark %s", ErrInvalidMark, m.Type)
				}
			}
		}
	}
	return nil
}

// Check validates n and all of its descendants.
func (s *Schema) Check(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidContent)
	}
	if err := CheckAttrs(n.Type, n.Attrs); err != nil {
		return err
	}
	if n.IsText() {
		for _, m := range n.Marks {
			if err := CheckMark(m); err != nil {
				return err
			}
		}
		for i := 1; i < len(n.Marks); i++ {
			if n.Marks[i-1].Type >= n.Marks[i].Type {
				return fmt.Errorf("%w: unsorted or duplicate marks", ErrInvalidMark)
			}
		}
		return nil
	}
	if err := s.ValidContent(n.Type, n.Content); err != nil {
		return err
	}
	for _, c := range n.Content {
		if err := s.Check(c); err != nil {
			return err
		}
	}
	return nil
}
