package model

import (
	"fmt"
	"sort"
)

// MarkType is the closed set of inline marks.
type MarkType uint8

const (
	MarkUnknown MarkType = iota
	MarkLink
	MarkBold
	MarkItalic
	MarkStrike
	MarkCode
)

var markTypeNames = [...]string{
	MarkUnknown: "unknown",
	MarkLink:    "link",
	MarkBold:    "bold",
	MarkItalic:  "italic",
	MarkStrike:  "strike",
	MarkCode:    "code",
}

func (t MarkType) String() string {
	if int(t) >= len(markTypeNames) {
		return "unknown"
	}
	return markTypeNames[t]
}

// ParseMarkType returns the mark type with the given name.
func ParseMarkType(name string) (MarkType, bool) {
	for i, n := range markTypeNames {
		if MarkType(i) != MarkUnknown && n == name {
			return MarkType(i), true
		}
	}
	return MarkUnknown, false
}

// Mark is a piece of inline formatting. Only links carry attributes.
type Mark struct {
	Type  MarkType
	Href  string
	Title string
}

func Bold() Mark   { return Mark{Type: MarkBold} }
func Italic() Mark { return Mark{Type: MarkItalic} }
func Code() Mark   { return Mark{Type: MarkCode} }
func Strike() Mark { return Mark{Type: MarkStrike} }

func Link(href, title string) Mark {
	return Mark{Type: MarkLink, Href: href, Title: title}
}

// CheckMark validates the mark's type and attributes.
func CheckMark(m Mark) error {
	switch m.Type {
	case MarkLink:
		if m.Href == "" {
			return fmt.Errorf("%w: link without href", ErrInvalidMark)
		}
	case MarkBold, MarkItalic, MarkStrike, MarkCode:
		if m.Href != "" || m.Title != "" {
			return fmt.Errorf("%w: %s takes no attributes", ErrInvalidMark, m.Type)
		}
	default:
		return fmt.Errorf("%w: type %d", ErrInvalidMark, m.Type)
	}
	return nil
}

// MarkSet is a set of marks sorted by type. It never holds two marks of the
// same type: overlapping same-type marks are merged, not duplicated.
type MarkSet []Mark

// NewMarkSet builds a set from marks. Later marks replace earlier ones of the
// same type.
func NewMarkSet(marks ...Mark) MarkSet {
	var s MarkSet
	for _, m := range marks {
		s = s.Add(m)
	}
	return s
}

// Add returns a set containing m, replacing any mark of the same type.
func (s MarkSet) Add(m Mark) MarkSet {
	out := make(MarkSet, 0, len(s)+1)
	for _, cur := range s {
		if cur.Type != m.Type {
			out = append(out, cur)
		}
	}
	out = append(out, m)
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Remove returns a set without marks of type t.
func (s MarkSet) Remove(t MarkType) MarkSet {
	if !s.Has(t) {
		return s
	}
	out := make(MarkSet, 0, len(s))
	for _, cur := range s {
		if cur.Type != t {
			out = append(out, cur)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Has reports whether the set contains a mark of type t.
func (s MarkSet) Has(t MarkType) bool {
	_, ok := s.Get(t)
	return ok
}

// Get returns the mark of type t.
func (s MarkSet) Get(t MarkType) (Mark, bool) {
	for _, m := range s {
		if m.Type == t {
			return m, true
		}
	}
	return Mark{}, false
}

func (s MarkSet) Eq(o MarkSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}
