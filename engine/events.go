package engine

import (
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// ChangeEvent is passed to Config.OnChange after every effective change.
type ChangeEvent struct {
	VersionBefore uint64
	VersionAfter  uint64
	Doc           *model.Node
	Selection     model.Selection
	// Mapping is nil for selection-only changes.
	Mapping    *transform.Mapping
	DocChanged bool
	Meta       map[string]any
}

func buildChangeEvent(e *Engine, before uint64, c *Commit) ChangeEvent {
	ev := ChangeEvent{
		VersionBefore: before,
		VersionAfter:  e.version,
		Doc:           e.doc,
		Selection:     e.sel,
	}
	if c == nil {
		return ev
	}
	ev.Mapping = c.Mapping
	ev.DocChanged = c.DocChanged()
	ev.Meta = map[string]any{}
	for _, tr := range c.Transactions {
		for k, v := range tr.MetaMap() {
			ev.Meta[k] = v
		}
	}
	return ev
}
