package transform

import (
	"github.com/iw2rmb/inkwell/model"
)

// Result is the outcome of applying a transaction.
type Result struct {
	Doc     *model.Node
	Mapping *Mapping
}

// Apply applies tr to doc under the default schema.
func Apply(doc *model.Node, tr *Transaction) (Result, error) {
	return ApplySchema(model.DefaultSchema(), doc, tr)
}

// ApplySchema applies every step of tr in order. If any step fails the
// whole transaction is rejected with a *SchemaViolation and doc is untouched.
func ApplySchema(s *model.Schema, doc *model.Node, tr *Transaction) (Result, error) {
	m := &Mapping{}
	cur := doc
	for i, st := range tr.steps {
		next, sm, err := st.Apply(cur, s)
		if err != nil {
			return Result{}, &SchemaViolation{Step: i, Op: st.Name(), Err: err}
		}
		cur = next
		m.AppendMap(sm)
	}
	return Result{Doc: cur, Mapping: m}, nil
}

// MapSelection maps sel through m. The head follows content inserted at it.
func MapSelection(m *Mapping, sel model.Selection) model.Selection {
	if sel.Empty() {
		return model.Cursor(m.Map(sel.Head, 1))
	}
	return model.Selection{Anchor: m.Map(sel.Anchor, -1), Head: m.Map(sel.Head, 1)}
}
