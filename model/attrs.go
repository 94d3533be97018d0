package model

import "fmt"

// Attrs is the attribute record attached to a node. The set of records is
// closed: every node type accepts exactly one record kind, or none.
type Attrs interface {
	isAttrs()
}

// HeadingAttrs belongs to heading nodes. ID is derived from the heading text
// and kept in sync by the heading-id plugin.
type HeadingAttrs struct {
	Level int
	ID    string
}

// ImageAttrs belongs to image nodes.
//
// Size is a presentation attribute of the image container, not of the image
// element. AssetPath identifies the backing asset relative to the notes root
// and is the only stable identity of the asset; Src may go stale after moves.
type ImageAttrs struct {
	Src       *string
	Alt       *string
	Title     *string
	Size      SizeClass
	AssetPath *string
}

// CellAttrs belongs to table cells and headers.
type CellAttrs struct {
	TextAlign Align
	Colspan   int
	Rowspan   int
}

// TaskItemAttrs belongs to task list items.
type TaskItemAttrs struct {
	Checked bool
}

// OrderedListAttrs belongs to ordered lists.
type OrderedListAttrs struct {
	Start int
}

// CodeBlockAttrs belongs to code blocks.
type CodeBlockAttrs struct {
	Language string
}

func (HeadingAttrs) isAttrs()     {}
func (ImageAttrs) isAttrs()       {}
func (CellAttrs) isAttrs()        {}
func (TaskItemAttrs) isAttrs()    {}
func (OrderedListAttrs) isAttrs() {}
func (CodeBlockAttrs) isAttrs()   {}

// SizeClass is the size variant of an image container.
type SizeClass string

const (
	SizeOriginal SizeClass = "original"
	SizeSmall    SizeClass = "small"
	SizeMedium   SizeClass = "medium"
	SizeLarge    SizeClass = "large"
)

// SizeClasses lists the known size variants.
var SizeClasses = []SizeClass{SizeOriginal, SizeSmall, SizeMedium, SizeLarge}

// ParseSizeClass returns the size variant named s.
func ParseSizeClass(s string) (SizeClass, bool) {
	for _, sc := range SizeClasses {
		if string(sc) == s {
			return sc, true
		}
	}
	return SizeOriginal, false
}

// Align is the text alignment of a table cell.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// ParseAlign returns the alignment named s.
func ParseAlign(s string) (Align, bool) {
	switch Align(s) {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return Align(s), true
	}
	return AlignLeft, false
}

// DefaultAttrs returns the default record for t, or nil if t takes none.
func DefaultAttrs(t NodeType) Attrs {
	switch t {
	case NodeHeading:
		return HeadingAttrs{Level: 1}
	case NodeImage:
		return ImageAttrs{Size: SizeOriginal}
	case NodeTableCell, NodeTableHeader:
		return CellAttrs{TextAlign: AlignLeft, Colspan: 1, Rowspan: 1}
	case NodeTaskItem:
		return TaskItemAttrs{}
	case NodeOrderedList:
		return OrderedListAttrs{Start: 1}
	case NodeCodeBlock:
		return CodeBlockAttrs{}
	default:
		return nil
	}
}

// CheckAttrs validates that a is the record kind t accepts and that its
// values are in range.
func CheckAttrs(t NodeType, a Attrs) error {
	switch t {
	case NodeHeading:
		h, ok := a.(HeadingAttrs)
		if !ok {
			return attrKindError(t, a)
		}
		if h.Level < 1 || h.Level > 6 {
			return fmt.Errorf("%w: heading level %d", ErrInvalidAttrs, h.Level)
		}
	case NodeImage:
		img, ok := a.(ImageAttrs)
		if !ok {
			return attrKindError(t, a)
		}
		if _, ok := ParseSizeClass(string(img.Size)); !ok {
			return fmt.Errorf("%w: image size %q", ErrInvalidAttrs, img.Size)
		}
	case NodeTableCell, NodeTableHeader:
		c, ok := a.(CellAttrs)
		if !ok {
			return attrKindError(t, a)
		}
		if _, ok := ParseAlign(string(c.TextAlign)); !ok {
			return fmt.Errorf("%w: text align %q", ErrInvalidAttrs, c.TextAlign)
		}
		if c.Colspan < 1 || c.Rowspan < 1 {
			return fmt.Errorf("%w: span %dx%d", ErrInvalidAttrs, c.Colspan, c.Rowspan)
		}
	case NodeTaskItem:
		if _, ok := a.(TaskItemAttrs); !ok {
			return attrKindError(t, a)
		}
	case NodeOrderedList:
		o, ok := a.(OrderedListAttrs)
		if !ok {
			return attrKindError(t, a)
		}
		if o.Start < 0 {
			return fmt.Errorf("%w: list start %d", ErrInvalidAttrs, o.Start)
		}
	case NodeCodeBlock:
		if _, ok := a.(CodeBlockAttrs); !ok {
			return attrKindError(t, a)
		}
	default:
		if a != nil {
			return attrKindError(t, a)
		}
	}
	return nil
}

func attrKindError(t NodeType, a Attrs) error {
	return fmt.Errorf("%w: %s does not accept %T", ErrInvalidAttrs, t, a)
}

// AttrsEqual reports whether two records hold the same values.
func AttrsEqual(a, b Attrs) bool {
	ia, aok := a.(ImageAttrs)
	ib, bok := b.(ImageAttrs)
	if aok || bok {
		if aok != bok {
			return false
		}
		return ia.Size == ib.Size &&
			strPtrEqual(ia.Src, ib.Src) &&
			strPtrEqual(ia.Alt, ib.Alt) &&
			strPtrEqual(ia.Title, ib.Title) &&
			strPtrEqual(ia.AssetPath, ib.AssetPath)
	}
	return a == b
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// StringPtr returns a pointer to s. It is a convenience for nullable image
// attributes.
func StringPtr(s string) *string { return &s }
