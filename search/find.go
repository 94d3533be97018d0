package search

import (
	"unicode"

	"github.com/iw2rmb/inkwell/model"
)

// FindAll returns the non-overlapping, case-insensitive matches of query
// inside each textblock of doc. Matches never span two textblocks.
func FindAll(doc *model.Node, query string) []Range {
	q := foldRunes(query)
	if len(q) == 0 {
		return nil
	}
	var out []Range
	doc.Descendants(func(n *model.Node, pos int, _ *model.Node, _ int) bool {
		if !n.IsTextblock() {
			return true
		}
		text := foldRunes(n.TextContent())
		start := pos + 1
		for i := 0; i+len(q) <= len(text); {
			if runesEqual(text[i:i+len(q)], q) {
				out = append(out, Range{From: start + i, To: start + i + len(q)})
				i += len(q)
				continue
			}
			i++
		}
		return false
	})
	return out
}

func foldRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
