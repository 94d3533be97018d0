// Package search holds search-result highlights as decorations that follow
// document edits.
package search

import (
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/transform"
)

const (
	// Key is the plugin key of the search overlay.
	Key = "search"
	// MetaResults carries a Results value that replaces the overlay.
	MetaResults = "search/results"
)

// Range is a half-open document range.
type Range struct {
	From int
	To   int
}

// Results is the payload of MetaResults. Current is 1-based; values
// outside [1, len(Ranges)] mark no current match.
type Results struct {
	Ranges  []Range
	Current int
}

// Dispatcher accepts transactions. *engine.Engine implements it.
type Dispatcher interface {
	Dispatch(tr *transform.Transaction) error
}

// Plugin keeps the decoration set in sync with the document.
type Plugin struct {
	set DecorationSet
}

var _ engine.StateApplier = (*Plugin)(nil)

func New() *Plugin { return &Plugin{} }

func (*Plugin) Key() string { return Key }

// Decorations returns the current set.
func (p *Plugin) Decorations() DecorationSet { return p.set }

func (p *Plugin) ApplyCommit(c *engine.Commit) {
	if v, ok := c.Meta(MetaResults); ok {
		if res, ok := v.(Results); ok {
			p.set = build(res, c.Before.ContentSize()).Map(c.Mapping)
			return
		}
	}
	if c.ChangesContent() {
		p.set = p.set.Map(c.Mapping)
	}
}

// build turns results into decorations, skipping ranges that are empty or
// outside a document of the given size.
func build(res Results, size int) DecorationSet {
	out := make([]Decoration, 0, len(res.Ranges))
	for i, r := range res.Ranges {
		if r.From < 0 || r.To > size || r.To <= r.From {
			continue
		}
		tag := TagMatch
		if i == res.Current-1 {
			tag = TagCurrentMatch
		}
		out = append(out, Decoration{From: r.From, To: r.To, Tag: tag})
	}
	return newDecorationSet(out)
}

// SetSearchResults replaces the overlay with results through a
// metadata-only transaction kept out of undo history.
func SetSearchResults(d Dispatcher, results []Range, currentIndex int) error {
	tr := transform.NewTransaction().
		SetMeta(MetaResults, Results{Ranges: append([]Range(nil), results...), Current: currentIndex}).
		SetMeta(transform.MetaAddToHistory, false)
	return d.Dispatch(tr)
}

// ClearSearchResults removes all decorations.
func ClearSearchResults(d Dispatcher) error {
	return SetSearchResults(d, nil, 0)
}
