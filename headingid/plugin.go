package headingid

import (
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// Key is the plugin key of the heading-id maintainer.
const Key = "headingId"

// Plugin keeps every heading's id equal to the slug of its text. Headings
// whose slug is empty keep their previous id.
//
// Nothing runs while an input method is composing, nor for commits that
// change no content. Headings edited during composition converge on the next
// content change, which rescans every heading.
type Plugin struct{}

var _ engine.Appender = (*Plugin)(nil)

func New() *Plugin { return &Plugin{} }

func (*Plugin) Key() string { return Key }

func (*Plugin) AppendTransaction(c *engine.Commit) *transform.Transaction {
	if c.Composing || !c.ChangesContent() {
		return nil
	}
	tr := Sync(c.Doc)
	if tr.Empty() {
		return nil
	}
	return tr
}

// Sync returns a transaction setting the id of every heading in doc whose
// slug differs from its id. The transaction is empty when all ids match.
func Sync(doc *model.Node) *transform.Transaction {
	tr := transform.NewTransaction()
	doc.Descendants(func(n *model.Node, pos int, _ *model.Node, _ int) bool {
		if n.Type != model.NodeHeading {
			return !n.IsTextblock()
		}
		a, _ := n.Attrs.(model.HeadingAttrs)
		slug := Slug(n.TextContent())
		if slug != "" && slug != a.ID {
			tr.SetNodeAttrs(pos, model.HeadingAttrs{Level: a.Level, ID: slug})
		}
		return false
	})
	return tr
}
