package markup

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/inkwell/model"
)

// Serialize writes doc as HTML. The document is checked against the schema
// first; nothing is written when the check fails.
func Serialize(w io.Writer, doc *model.Node, opts Options) error {
	if err := opts.schema().Check(doc); err != nil {
		return fmt.Errorf("markup: %w", err)
	}
	var buf bytes.Buffer
	for _, b := range doc.Content {
		if err := html.Render(&buf, blockElement(b)); err != nil {
			return fmt.Errorf("markup: render %s: %w", b.Type, err)
		}
	}
	out := buf.Bytes()
	if opts.Minify {
		var err error
		out, err = htmlMinifier().Bytes(mimeHTML, out)
		if err != nil {
			return fmt.Errorf("markup: minify: %w", err)
		}
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("markup: write: %w", err)
	}
	return nil
}

// SerializeString is Serialize into a string.
func SerializeString(doc *model.Node, opts Options) (string, error) {
	var b strings.Builder
	if err := Serialize(&b, doc, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute { return html.Attribute{Key: key, Val: val} }

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func blockElement(n *model.Node) *html.Node {
	switch n.Type {
	case model.NodeParagraph:
		el := element(atom.P)
		appendInline(el, n.Content)
		return el
	case model.NodeHeading:
		h := n.Attrs.(model.HeadingAttrs)
		el := element(headingAtoms[h.Level-1])
		if h.ID != "" {
			el.Attr = append(el.Attr, attr("id", h.ID))
		}
		appendInline(el, n.Content)
		return el
	case model.NodeBlockquote:
		return withBlocks(element(atom.Blockquote), n.Content)
	case model.NodeBulletList:
		return withBlocks(element(atom.Ul), n.Content)
	case model.NodeOrderedList:
		el := element(atom.Ol)
		if start := n.Attrs.(model.OrderedListAttrs).Start; start != 1 {
			el.Attr = append(el.Attr, attr("start", strconv.Itoa(start)))
		}
		return withBlocks(el, n.Content)
	case model.NodeTaskList:
		return withBlocks(element(atom.Ul, attr("data-type", "taskList")), n.Content)
	case model.NodeListItem:
		return withBlocks(element(atom.Li), n.Content)
	case model.NodeTaskItem:
		checked := n.Attrs.(model.TaskItemAttrs).Checked
		return withBlocks(element(atom.Li,
			attr("data-type", "taskItem"),
			attr("data-checked", strconv.FormatBool(checked)),
		), n.Content)
	case model.NodeTable:
		body := withBlocks(element(atom.Tbody), n.Content)
		t := element(atom.Table)
		t.AppendChild(body)
		return t
	case model.NodeTableRow:
		return withBlocks(element(atom.Tr), n.Content)
	case model.NodeTableCell:
		return withBlocks(cellElement(atom.Td, n.Attrs.(model.CellAttrs)), n.Content)
	case model.NodeTableHeader:
		return withBlocks(cellElement(atom.Th, n.Attrs.(model.CellAttrs)), n.Content)
	case model.NodeCodeBlock:
		code := element(atom.Code)
		if lang := n.Attrs.(model.CodeBlockAttrs).Language; lang != "" {
			code.Attr = append(code.Attr, attr("class", "language-"+lang))
		}
		if text := n.TextContent(); text != "" {
			code.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		}
		pre := element(atom.Pre)
		pre.AppendChild(code)
		return pre
	case model.NodeImage:
		return imageElement(n.Attrs.(model.ImageAttrs))
	}
	return element(atom.Div)
}

func withBlocks(el *html.Node, blocks []*model.Node) *html.Node {
	for _, b := range blocks {
		el.AppendChild(blockElement(b))
	}
	return el
}

// cellElement emits text-align only when it differs from left.
func cellElement(a atom.Atom, c model.CellAttrs) *html.Node {
	el := element(a)
	if c.Colspan > 1 {
		el.Attr = append(el.Attr, attr("colspan", strconv.Itoa(c.Colspan)))
	}
	if c.Rowspan > 1 {
		el.Attr = append(el.Attr, attr("rowspan", strconv.Itoa(c.Rowspan)))
	}
	if c.TextAlign != "" && c.TextAlign != model.AlignLeft {
		el.Attr = append(el.Attr, attr("style", "text-align: "+string(c.TextAlign)))
	}
	return el
}

// imageElement wraps the image in its sized container. Nil attributes are
// left out.
func imageElement(a model.ImageAttrs) *html.Node {
	size := a.Size
	if size == "" {
		size = model.SizeOriginal
	}
	div := element(atom.Div,
		attr("class", "image-container size-"+string(size)),
		attr("data-size", string(size)),
	)
	img := element(atom.Img)
	for _, kv := range []struct {
		key string
		val *string
	}{
		{"src", a.Src},
		{"alt", a.Alt},
		{"title", a.Title},
		{"data-asset-path", a.AssetPath},
	} {
		if kv.val != nil {
			img.Attr = append(img.Attr, attr(kv.key, *kv.val))
		}
	}
	div.AppendChild(img)
	return div
}

func markElement(m model.Mark) *html.Node {
	switch m.Type {
	case model.MarkLink:
		el := element(atom.A, attr("href", m.Href))
		if m.Title != "" {
			el.Attr = append(el.Attr, attr("title", m.Title))
		}
		return el
	case model.MarkBold:
		return element(atom.Strong)
	case model.MarkItalic:
		return element(atom.Em)
	case model.MarkStrike:
		return element(atom.S)
	case model.MarkCode:
		return element(atom.Code)
	}
	return element(atom.Span)
}

// appendInline writes text runs under parent, sharing mark elements between
// neighbouring runs whose mark sets start the same way.
func appendInline(parent *html.Node, content []*model.Node) {
	type open struct {
		mark model.Mark
		el   *html.Node
	}
	var stack []open
	top := func() *html.Node {
		if len(stack) == 0 {
			return parent
		}
		return stack[len(stack)-1].el
	}
	for _, t := range content {
		keep := 0
		for keep < len(stack) && keep < len(t.Marks) && stack[keep].mark == t.Marks[keep] {
			keep++
		}
		stack = stack[:keep]
		for _, m := range t.Marks[keep:] {
			el := markElement(m)
			top().AppendChild(el)
			stack = append(stack, open{mark: m, el: el})
		}
		top().AppendChild(&html.Node{Type: html.TextNode, Data: t.Text})
	}
}
