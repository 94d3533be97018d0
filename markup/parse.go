package markup

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/inkwell/model"
)

// Parse reads an HTML document or fragment and returns the document it
// describes. Elements the schema has no place for are unwrapped; missing
// attributes take their defaults. The result is checked against the schema.
func Parse(r io.Reader, opts Options) (*model.Node, error) {
	if opts.Sanitize {
		r = Policy().SanitizeReader(r)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse html: %w", err)
	}
	p := &parser{log: opts.logger()}
	blocks := p.blocks(getBody(root))
	if len(blocks) == 0 {
		blocks = []*model.Node{model.Paragraph()}
	}
	doc := model.Doc(blocks...)
	if err := opts.schema().Check(doc); err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts Options) (*model.Node, error) {
	return Parse(strings.NewReader(s), opts)
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte, opts Options) (*model.Node, error) {
	return Parse(bytes.NewReader(b), opts)
}

type parser struct {
	log *slog.Logger
}

func getBody(root *html.Node) *html.Node {
	var body *html.Node
	iterNodes(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return true
		}
		return false
	})
	if body == nil {
		return root
	}
	return body
}

// iterNodes visits n's descendants depth first until fn returns true.
func iterNodes(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if fn(c) || iterNodes(c, fn) {
			return true
		}
	}
	return false
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func optionalAttr(key string, attrs []html.Attribute) *string {
	for _, a := range attrs {
		if a.Key == key {
			return model.StringPtr(a.Val)
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for c := range strings.FieldsSeq(getAttrValue("class", n.Attr)) {
		if c == class {
			return true
		}
	}
	return false
}

// styleValue returns the value of one declaration of an inline style.
func styleValue(n *html.Node, prop string) string {
	for decl := range strings.SplitSeq(getAttrValue("style", n.Attr), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), prop) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// blocks converts the children of n to block nodes. Runs of inline content
// between blocks become paragraphs.
func (p *parser) blocks(n *html.Node) []*model.Node {
	var (
		out    []*model.Node
		inline []*model.Node
	)
	flush := func() {
		if len(inline) > 0 && !blankInline(inline) {
			out = append(out, model.Paragraph(trimInline(inline)...))
		}
		inline = nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlockElement(c) {
			flush()
			out = append(out, p.block(c)...)
			continue
		}
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			flush()
			out = append(out, p.image(c))
			continue
		}
		inline = append(inline, p.inline(c, nil)...)
	}
	flush()
	return out
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Table: true, atom.Pre: true,
	atom.Div: true, atom.Section: true, atom.Article: true, atom.Figure: true, atom.Hr: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true, atom.Aside: true,
}

func isBlockElement(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

func (p *parser) block(n *html.Node) []*model.Node {
	switch n.DataAtom {
	case atom.P:
		return p.paragraph(n)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		id := getAttrValue("id", n.Attr)
		return []*model.Node{model.HeadingWithID(level, id, trimInline(p.inlineChildren(n, nil))...)}
	case atom.Blockquote:
		return []*model.Node{model.Blockquote(nonEmpty(p.blocks(n))...)}
	case atom.Ul:
		if getAttrValue("data-type", n.Attr) == "taskList" {
			return p.list(n, model.NodeTaskList, nil)
		}
		return p.list(n, model.NodeBulletList, nil)
	case atom.Ol:
		start := 1
		if v, err := strconv.Atoi(getAttrValue("start", n.Attr)); err == nil && v >= 0 {
			start = v
		}
		return p.list(n, model.NodeOrderedList, model.OrderedListAttrs{Start: start})
	case atom.Li:
		// A stray item outside any list.
		return p.blocks(n)
	case atom.Table:
		if t := p.table(n); t != nil {
			return []*model.Node{t}
		}
		return nil
	case atom.Pre:
		return []*model.Node{p.codeBlock(n)}
	case atom.Div:
		if hasClass(n, "image-container") {
			if img := findImg(n); img != nil {
				return []*model.Node{p.image(img)}
			}
		}
		return p.blocks(n)
	case atom.Hr:
		return nil
	}
	p.log.Debug("markup: unwrapping element", "element", n.Data)
	return p.blocks(n)
}

// paragraph splits a <p> around images, which are block nodes.
func (p *parser) paragraph(n *html.Node) []*model.Node {
	var (
		out    []*model.Node
		inline []*model.Node
	)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			if !blankInline(inline) {
				out = append(out, model.Paragraph(trimInline(inline)...))
			}
			inline = nil
			out = append(out, p.image(c))
			continue
		}
		inline = append(inline, p.inline(c, nil)...)
	}
	if len(out) == 0 || !blankInline(inline) {
		out = append(out, model.Paragraph(trimInline(inline)...))
	}
	return out
}

func (p *parser) list(n *html.Node, t model.NodeType, attrs model.Attrs) []*model.Node {
	var items []*model.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom != atom.Li {
			p.log.Debug("markup: dropping list child", "element", c.Data)
			continue
		}
		content := p.blocks(c)
		if len(content) == 0 || content[0].Type != model.NodeParagraph {
			content = append([]*model.Node{model.Paragraph()}, content...)
		}
		if t == model.NodeTaskList {
			checked := getAttrValue("data-checked", c.Attr) == "true"
			items = append(items, model.NewNode(model.NodeTaskItem, model.TaskItemAttrs{Checked: checked}, content...))
		} else {
			items = append(items, model.NewNode(model.NodeListItem, nil, content...))
		}
	}
	if len(items) == 0 {
		return nil
	}
	return []*model.Node{model.NewNode(t, attrs, items...)}
}

func (p *parser) table(n *html.Node) *model.Node {
	var rows []*model.Node
	iterNodes(n, func(c *html.Node) bool {
		if c.Type != html.ElementNode || c.DataAtom != atom.Tr {
			return false
		}
		var cells []*model.Node
		for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type != html.ElementNode {
				continue
			}
			switch cell.DataAtom {
			case atom.Td:
				cells = append(cells, p.cell(cell, model.NodeTableCell))
			case atom.Th:
				cells = append(cells, p.cell(cell, model.NodeTableHeader))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, model.TableRow(cells...))
		}
		return false
	})
	if len(rows) == 0 {
		return nil
	}
	return model.Table(rows...)
}

func (p *parser) cell(n *html.Node, t model.NodeType) *model.Node {
	attrs := model.CellAttrs{TextAlign: parseAlign(n), Colspan: 1, Rowspan: 1}
	if v, err := strconv.Atoi(getAttrValue("colspan", n.Attr)); err == nil && v > 0 {
		attrs.Colspan = v
	}
	if v, err := strconv.Atoi(getAttrValue("rowspan", n.Attr)); err == nil && v > 0 {
		attrs.Rowspan = v
	}
	return model.NewNode(t, attrs, nonEmpty(p.blocks(n))...)
}

// parseAlign reads text-align from the cell's inline style and falls back to
// left.
func parseAlign(n *html.Node) model.Align {
	a, _ := model.ParseAlign(strings.ToLower(styleValue(n, "text-align")))
	return a
}

func (p *parser) codeBlock(n *html.Node) *model.Node {
	code := n
	iterNodes(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			code = c
			return true
		}
		return false
	})
	var lang string
	for c := range strings.FieldsSeq(getAttrValue("class", code.Attr)) {
		if l, ok := strings.CutPrefix(c, "language-"); ok {
			lang = l
			break
		}
	}
	// The parser drops one leading newline after <pre> already.
	return model.CodeBlock(lang, textContent(code))
}

func findImg(n *html.Node) *html.Node {
	var img *html.Node
	iterNodes(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			img = c
			return true
		}
		return false
	})
	return img
}

// image reads an <img>. The size comes from the nearest ancestor carrying a
// known size- class, never from the image element.
func (p *parser) image(n *html.Node) *model.Node {
	return model.Image(model.ImageAttrs{
		Src:       optionalAttr("src", n.Attr),
		Alt:       optionalAttr("alt", n.Attr),
		Title:     optionalAttr("title", n.Attr),
		AssetPath: optionalAttr("data-asset-path", n.Attr),
		Size:      containerSize(n),
	})
}

func containerSize(n *html.Node) model.SizeClass {
	for a := n.Parent; a != nil; a = a.Parent {
		if a.Type != html.ElementNode {
			continue
		}
		for c := range strings.FieldsSeq(getAttrValue("class", a.Attr)) {
			v, ok := strings.CutPrefix(c, "size-")
			if !ok {
				continue
			}
			if sc, ok := model.ParseSizeClass(v); ok {
				return sc
			}
		}
	}
	return model.SizeOriginal
}

func (p *parser) inlineChildren(n *html.Node, marks model.MarkSet) []*model.Node {
	var out []*model.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, p.inline(c, marks)...)
	}
	return out
}

// inline converts one node in inline context. Images and nested blocks
// inside inline content are reduced to their text.
func (p *parser) inline(n *html.Node, marks model.MarkSet) []*model.Node {
	switch n.Type {
	case html.TextNode:
		t := model.NewText(collapseSpace(n.Data))
		if t == nil {
			return nil
		}
		return []*model.Node{t.WithMarks(marks)}
	case html.ElementNode:
	default:
		return nil
	}
	switch n.DataAtom {
	case atom.Strong, atom.B:
		marks = marks.Add(model.Bold())
	case atom.Em, atom.I:
		marks = marks.Add(model.Italic())
	case atom.Code:
		marks = marks.Add(model.Code())
	case atom.S, atom.Del, atom.Strike:
		marks = marks.Add(model.Strike())
	case atom.A:
		if href := getAttrValue("href", n.Attr); href != "" {
			marks = marks.Add(model.Link(href, getAttrValue("title", n.Attr)))
		}
	case atom.Br:
		return []*model.Node{model.NewText(" ").WithMarks(marks)}
	case atom.Img, atom.Script, atom.Style:
		p.log.Debug("markup: dropping inline element", "element", n.Data)
		return nil
	case atom.Span, atom.U, atom.Mark, atom.Sub, atom.Sup, atom.Small:
	default:
		p.log.Debug("markup: unwrapping element", "element", n.Data)
	}
	return p.inlineChildren(n, marks)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseSpace folds each run of HTML whitespace into one space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

func blankInline(inline []*model.Node) bool {
	for _, n := range inline {
		if strings.TrimSpace(n.Text) != "" {
			return false
		}
	}
	return true
}

// trimInline drops whitespace at the edges of a block's inline content.
func trimInline(inline []*model.Node) []*model.Node {
	out := make([]*model.Node, 0, len(inline))
	for _, n := range inline {
		if n != nil {
			out = append(out, n)
		}
	}
	for len(out) > 0 {
		first := out[0]
		t := strings.TrimLeft(first.Text, " ")
		if t != "" {
			out[0] = model.NewText(t).WithMarks(first.Marks)
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		last := out[len(out)-1]
		t := strings.TrimRight(last.Text, " ")
		if t != "" {
			out[len(out)-1] = model.NewText(t).WithMarks(last.Marks)
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

// nonEmpty gives containers that need a child one empty paragraph.
func nonEmpty(blocks []*model.Node) []*model.Node {
	if len(blocks) == 0 {
		return []*model.Node{model.Paragraph()}
	}
	return blocks
}
