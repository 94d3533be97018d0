package engine

import (
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

type snapshot struct {
	doc *model.Node
	sel model.Selection
}

type historyState struct {
	undo []snapshot
	redo []snapshot
}

func (e *Engine) snapshot() snapshot {
	return snapshot{doc: e.doc, sel: e.sel}
}

func (e *Engine) pushUndo(s snapshot) {
	if e.limit <= 0 {
		return
	}
	e.hist.undo = append(e.hist.undo, s)
	if len(e.hist.undo) > e.limit {
		e.hist.undo = e.hist.undo[len(e.hist.undo)-e.limit:]
	}
}

func (e *Engine) recordUndo(prev snapshot) {
	e.pushUndo(prev)
	e.hist.redo = nil
}

func (e *Engine) CanUndo() bool { return len(e.hist.undo) > 0 }

func (e *Engine) CanRedo() bool { return len(e.hist.redo) > 0 }

// Undo restores the document and selection from before the last recorded
// commit. It runs as a whole-document replace that is not itself recorded.
func (e *Engine) Undo() bool {
	if len(e.hist.undo) == 0 {
		return false
	}
	i := len(e.hist.undo) - 1
	prev := e.hist.undo[i]
	cur := e.snapshot()
	if err := e.restore(prev, "undo"); err != nil {
		e.log.Warn("undo failed", "err", err)
		return false
	}
	e.hist.undo = e.hist.undo[:i]
	e.hist.redo = append(e.hist.redo, cur)
	return true
}

func (e *Engine) Redo() bool {
	if len(e.hist.redo) == 0 {
		return false
	}
	i := len(e.hist.redo) - 1
	next := e.hist.redo[i]
	cur := e.snapshot()
	if err := e.restore(next, "redo"); err != nil {
		e.log.Warn("redo failed", "err", err)
		return false
	}
	e.hist.redo = e.hist.redo[:i]
	e.pushUndo(cur)
	return true
}

func (e *Engine) restore(s snapshot, kind string) error {
	tr := transform.NewTransaction().
		Replace(0, e.doc.ContentSize(), s.doc.Content...).
		SetSelection(s.sel.Clamp(s.doc.ContentSize())).
		SetMeta(transform.MetaAddToHistory, false).
		SetMeta(transform.MetaHistory, kind)
	return e.Dispatch(tr)
}
