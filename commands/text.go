package commands

import (
	"strings"

	"github.com/iw2rmb/inkwell/transform"
)

const maxDedentSpaces = 4

// InsertTab replaces the selection with a tab character.
func InsertTab(t Target) bool {
	sel := t.Selection()
	tr := transform.NewTransaction()
	if !sel.Empty() {
		tr.Delete(sel.From(), sel.To())
	}
	tr.InsertText(sel.From(), "\t")
	_ = t.Dispatch(tr)
	return true
}

// Dedent deletes one tab, or up to four spaces, directly before the cursor.
// It always reports handled so focus never leaves the editor.
func Dedent(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok || !r.Parent().IsTextblock() {
		return true
	}
	before := r.Parent().TextBetween(0, r.ParentOffset(), "")
	n := 0
	if strings.HasSuffix(before, "\t") {
		n = 1
	} else {
		for n < maxDedentSpaces && n < len(before) && before[len(before)-1-n] == ' ' {
			n++
		}
	}
	if n > 0 {
		_ = t.Dispatch(transform.NewTransaction().Delete(r.Pos-n, r.Pos))
	}
	return true
}
