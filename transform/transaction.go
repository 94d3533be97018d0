package transform

import (
	"maps"

	"github.com/iw2rmb/inkwell/model"
)

// Well-known metadata keys.
const (
	// MetaAddToHistory set to false keeps a transaction out of undo history.
	MetaAddToHistory = "addToHistory"
	// MetaHistory marks transactions produced by undo or redo.
	MetaHistory = "history"
	// MetaAppendedBy names the plugin that produced a follow-up transaction.
	MetaAppendedBy = "appendedBy"
)

// Transaction collects steps, an optional selection and metadata. Builder
// methods return the transaction so calls can be chained.
type Transaction struct {
	steps     []Step
	meta      map[string]any
	selection *model.Selection
}

func NewTransaction() *Transaction {
	return &Transaction{meta: map[string]any{}}
}

// Steps returns the steps in order.
func (tr *Transaction) Steps() []Step { return append([]Step(nil), tr.steps...) }

// Empty reports whether the transaction has no steps.
func (tr *Transaction) Empty() bool { return len(tr.steps) == 0 }

// ChangesContent reports whether any step alters text or structure.
func (tr *Transaction) ChangesContent() bool {
	for _, s := range tr.steps {
		if s.ChangesContent() {
			return true
		}
	}
	return false
}

// AddStep appends a step.
func (tr *Transaction) AddStep(s Step) *Transaction {
	tr.steps = append(tr.steps, s)
	return tr
}

func (tr *Transaction) Insert(pos int, content ...*model.Node) *Transaction {
	return tr.AddStep(Insert{Pos: pos, Content: content})
}

// InsertText inserts text at pos with the marks active there.
func (tr *Transaction) InsertText(pos int, text string) *Transaction {
	return tr.AddStep(InsertText{Pos: pos, Text: text})
}

// InsertTextMarked inserts text at pos with exactly marks.
func (tr *Transaction) InsertTextMarked(pos int, text string, marks ...model.Mark) *Transaction {
	ms := model.NewMarkSet(marks...)
	return tr.AddStep(InsertText{Pos: pos, Text: text, Marks: &ms})
}

func (tr *Transaction) Delete(from, to int) *Transaction {
	return tr.AddStep(Delete{From: from, To: to})
}

func (tr *Transaction) Replace(from, to int, content ...*model.Node) *Transaction {
	return tr.AddStep(Replace{From: from, To: to, Content: content})
}

func (tr *Transaction) SetNodeAttrs(pos int, attrs model.Attrs) *Transaction {
	return tr.AddStep(SetNodeAttrs{Pos: pos, Attrs: attrs})
}

func (tr *Transaction) SetNodeType(pos int, t model.NodeType, attrs model.Attrs) *Transaction {
	return tr.AddStep(SetNodeType{Pos: pos, Type: t, Attrs: attrs})
}

func (tr *Transaction) AddMark(from, to int, m model.Mark) *Transaction {
	return tr.AddStep(AddMark{From: from, To: to, Mark: m})
}

func (tr *Transaction) RemoveMark(from, to int, t model.MarkType) *Transaction {
	return tr.AddStep(RemoveMark{From: from, To: to, Type: t})
}

// SetSelection records the selection to use after the transaction, in
// post-transaction positions.
func (tr *Transaction) SetSelection(sel model.Selection) *Transaction {
	tr.selection = &sel
	return tr
}

// Selection returns the explicit selection, if one was set.
func (tr *Transaction) Selection() (model.Selection, bool) {
	if tr.selection == nil {
		return model.Selection{}, false
	}
	return *tr.selection, true
}

func (tr *Transaction) SetMeta(key string, v any) *Transaction {
	if tr.meta == nil {
		tr.meta = map[string]any{}
	}
	tr.meta[key] = v
	return tr
}

func (tr *Transaction) Meta(key string) (any, bool) {
	v, ok := tr.meta[key]
	return v, ok
}

// MetaMap returns a copy of all metadata.
func (tr *Transaction) MetaMap() map[string]any { return maps.Clone(tr.meta) }

// AddToHistory reports whether the transaction should be undoable. It is
// true unless MetaAddToHistory is set to false.
func (tr *Transaction) AddToHistory() bool {
	v, ok := tr.meta[MetaAddToHistory].(bool)
	return !ok || v
}
