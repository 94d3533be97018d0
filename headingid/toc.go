package headingid

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/iw2rmb/inkwell/model"
)

// Heading is the plain-text summary of one heading node.
type Heading struct {
	Level int
	ID    string
	Text  string
	Pos   int
}

// Collect lists the headings of doc in document order.
func Collect(doc *model.Node) []Heading {
	var out []Heading
	doc.Descendants(func(n *model.Node, pos int, _ *model.Node, _ int) bool {
		if n.Type != model.NodeHeading {
			return !n.IsTextblock()
		}
		a, _ := n.Attrs.(model.HeadingAttrs)
		out = append(out, Heading{Level: a.Level, ID: a.ID, Text: n.TextContent(), Pos: pos})
		return false
	})
	return out
}

// WriteTOC writes a markdown table of contents linking to each heading's id.
// Items are indented relative to the shallowest heading.
func WriteTOC(w io.Writer, title string, headings []Heading) error {
	doc := md.NewMarkdown(w)
	if title != "" {
		doc.H2(title)
	}
	if len(headings) == 0 {
		return doc.Build()
	}
	top := headings[0].Level
	for _, h := range headings {
		top = min(top, h.Level)
	}
	lines := make([]string, 0, len(headings))
	for _, h := range headings {
		item := h.Text
		if h.ID != "" {
			item = md.Link(h.Text, "#"+h.ID)
		}
		lines = append(lines, strings.Repeat("  ", h.Level-top)+"- "+item)
	}
	return doc.PlainText(strings.Join(lines, "\n")).Build()
}
