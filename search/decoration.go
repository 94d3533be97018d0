package search

import (
	"sort"

	"github.com/iw2rmb/inkwell/transform"
)

// Tag names how a decoration is rendered.
type Tag string

const (
	TagMatch        Tag = "match"
	TagCurrentMatch Tag = "current-match"
)

// Decoration highlights [From, To) of the current document. It is never
// part of document content.
type Decoration struct {
	From int
	To   int
	Tag  Tag
}

// DecorationSet is sorted by From, then To.
type DecorationSet []Decoration

func newDecorationSet(ds []Decoration) DecorationSet {
	out := DecorationSet(ds)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Map moves every decoration through m. Decorations whose range collapses
// or inverts are dropped.
func (s DecorationSet) Map(m *transform.Mapping) DecorationSet {
	if len(s) == 0 || m.Identity() {
		return s
	}
	out := make([]Decoration, 0, len(s))
	for _, d := range s {
		from, to, ok := m.MapRange(d.From, d.To)
		if !ok {
			continue
		}
		out = append(out, Decoration{From: from, To: to, Tag: d.Tag})
	}
	return newDecorationSet(out)
}

// Find returns the decorations overlapping [from, to).
func (s DecorationSet) Find(from, to int) DecorationSet {
	var out DecorationSet
	for _, d := range s {
		if d.From >= to {
			break
		}
		if d.To > from {
			out = append(out, d)
		}
	}
	return out
}

// Current returns the decoration tagged current-match.
func (s DecorationSet) Current() (Decoration, bool) {
	for _, d := range s {
		if d.Tag == TagCurrentMatch {
			return d, true
		}
	}
	return Decoration{}, false
}
