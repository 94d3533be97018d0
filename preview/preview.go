// Package preview draws documents for the terminal.
//
// The output is read-only: headings keep their # prefix, list items get
// bullets, numbers or check boxes, tables are boxed with columns aligned
// by each cell's text alignment, and search decorations are highlighted.
package preview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/search"
)

const tabSpaces = "    "

// maxAltWidth caps the alt text shown in image labels, in cells.
const maxAltWidth = 32

// Options controls RenderWith.
type Options struct {
	Style       Style
	Decorations search.DecorationSet
	// Cursor is drawn at this position when ShowCursor is set.
	Cursor     int
	ShowCursor bool
}

// Render draws doc with decorations highlighted.
func Render(doc *model.Node, decorations search.DecorationSet, st Style) string {
	return RenderWith(doc, Options{Style: st, Decorations: decorations})
}

// RenderWith draws doc as configured by opts.
func RenderWith(doc *model.Node, opts Options) string {
	r := &renderer{opts: opts, st: opts.Style}
	lines := r.blocks(doc, 0)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return strings.Join(out, "\n")
}

// line is one output line and its visible width in cells.
type line struct {
	text  string
	width int
}

func (l line) prefixed(p line) line {
	return line{text: p.text + l.text, width: p.width + l.width}
}

type renderer struct {
	opts Options
	st   Style
}

func (r *renderer) styled(st lipgloss.Style, text string) line {
	return line{text: st.Render(text), width: grapheme.Width(text)}
}

// blocks draws the children of n. contentStart is the position of n's first
// child.
func (r *renderer) blocks(n *model.Node, contentStart int) []line {
	var out []line
	pos := contentStart
	for _, c := range n.Content {
		out = append(out, r.block(c, pos)...)
		pos += c.NodeSize()
	}
	return out
}

func (r *renderer) block(n *model.Node, pos int) []line {
	switch n.Type {
	case model.NodeParagraph:
		return []line{r.inline(n, pos+1, nil)}
	case model.NodeHeading:
		level := n.Attrs.(model.HeadingAttrs).Level
		prefix := r.styled(r.st.Heading, strings.Repeat("#", level)+" ")
		return []line{r.inline(n, pos+1, &r.st.Heading).prefixed(prefix)}
	case model.NodeBlockquote:
		bar := r.styled(r.st.Quote, "│ ")
		lines := r.blocks(n, pos+1)
		for i := range lines {
			lines[i] = lines[i].prefixed(bar)
		}
		return lines
	case model.NodeBulletList, model.NodeOrderedList, model.NodeTaskList:
		return r.list(n, pos)
	case model.NodeTable:
		return r.table(n, pos)
	case model.NodeCodeBlock:
		return r.codeBlock(n, pos)
	case model.NodeImage:
		return []line{r.styled(r.st.Image, imageLabel(n.Attrs.(model.ImageAttrs)))}
	}
	return r.blocks(n, pos+1)
}

func imageLabel(a model.ImageAttrs) string {
	if a.Alt != nil && *a.Alt != "" {
		return fmt.Sprintf("[image %s (%s)]", grapheme.Truncate(*a.Alt, maxAltWidth), a.Size)
	}
	return fmt.Sprintf("[image (%s)]", a.Size)
}

func (r *renderer) list(n *model.Node, pos int) []line {
	start := 1
	if a, ok := n.Attrs.(model.OrderedListAttrs); ok {
		start = a.Start
	}
	var out []line
	itemPos := pos + 1
	for i, item := range n.Content {
		var marker string
		switch n.Type {
		case model.NodeOrderedList:
			marker = fmt.Sprintf("%d. ", start+i)
		case model.NodeTaskList:
			marker = "[ ] "
			if a, ok := item.Attrs.(model.TaskItemAttrs); ok && a.Checked {
				marker = "[x] "
			}
		default:
			marker = "• "
		}
		first := r.styled(r.st.Bullet, marker)
		indent := line{text: strings.Repeat(" ", first.width), width: first.width}
		for j, l := range r.blocks(item, itemPos+1) {
			if j == 0 {
				out = append(out, l.prefixed(first))
			} else {
				out = append(out, l.prefixed(indent))
			}
		}
		itemPos += item.NodeSize()
	}
	return out
}

func (r *renderer) codeBlock(n *model.Node, pos int) []line {
	lang := n.Attrs.(model.CodeBlockAttrs).Language
	out := []line{r.styled(r.st.Code, "```"+lang)}
	text := n.TextContent()
	lineStart := pos + 1
	for l := range strings.SplitSeq(text, "\n") {
		out = append(out, r.runs([]run{{text: l}}, lineStart, &r.st.Code))
		lineStart += utf8.RuneCountInString(l) + 1
	}
	return append(out, r.styled(r.st.Code, "```"))
}

// run is a piece of text sharing one mark set.
type run struct {
	text  string
	marks model.MarkSet
}

// inline draws the inline content of textblock n starting at contentStart.
func (r *renderer) inline(n *model.Node, contentStart int, base *lipgloss.Style) line {
	runs := make([]run, 0, len(n.Content))
	for _, c := range n.Content {
		if c.IsText() {
			runs = append(runs, run{text: c.Text, marks: c.Marks})
		}
	}
	return r.runs(runs, contentStart, base)
}

// cellState is what decides the styling of one rune.
type cellState struct {
	run    int
	tag    search.Tag
	cursor bool
}

func (r *renderer) runs(runs []run, start int, base *lipgloss.Style) line {
	size := 0
	for _, rn := range runs {
		size += utf8.RuneCountInString(rn.text)
	}
	end := start + size
	decos := r.opts.Decorations.Find(start, end+1)

	var (
		out     line
		seg     strings.Builder
		segRaw  strings.Builder
		marks   model.MarkSet
		current cellState
		open    bool
	)
	flush := func() {
		if !open {
			return
		}
		st, styled := r.compose(base, marks, current.tag, current.cursor)
		text := seg.String()
		if styled {
			text = st.Render(text)
		}
		out.text += text
		out.width += grapheme.Width(segRaw.String())
		seg.Reset()
		segRaw.Reset()
		open = false
	}

	pos := start
	for i, rn := range runs {
		for _, ch := range rn.text {
			state := cellState{run: i, tag: tagAt(decos, pos), cursor: r.opts.ShowCursor && r.opts.Cursor == pos}
			if open && state != current {
				flush()
			}
			if !open {
				current, marks = state, rn.marks
				open = true
			}
			if ch == '\t' {
				seg.WriteString(tabSpaces)
				segRaw.WriteString(tabSpaces)
			} else {
				seg.WriteRune(ch)
				segRaw.WriteRune(ch)
			}
			pos++
		}
	}
	flush()
	if r.opts.ShowCursor && r.opts.Cursor == end {
		out.text += r.st.Cursor.Render(" ")
		out.width++
	}
	return out
}

// tagAt returns the tag of the decoration covering pos. The current match
// wins over a plain match.
func tagAt(decos search.DecorationSet, pos int) search.Tag {
	var tag search.Tag
	for _, d := range decos {
		if d.From > pos {
			break
		}
		if pos < d.To {
			if d.Tag == search.TagCurrentMatch {
				return d.Tag
			}
			tag = d.Tag
		}
	}
	return tag
}

// compose layers mark, decoration and cursor styles over base. It reports
// false when nothing applies, so plain text skips rendering.
func (r *renderer) compose(base *lipgloss.Style, marks model.MarkSet, tag search.Tag, cursor bool) (lipgloss.Style, bool) {
	var st lipgloss.Style
	styled := false
	if base != nil {
		st, styled = *base, true
	}
	for _, m := range marks {
		st, styled = r.markStyle(m.Type).Inherit(st), true
	}
	switch tag {
	case search.TagMatch:
		st, styled = r.st.Match.Inherit(st), true
	case search.TagCurrentMatch:
		st, styled = r.st.CurrentMatch.Inherit(st), true
	}
	if cursor {
		st, styled = r.st.Cursor.Inherit(st), true
	}
	return st, styled
}

func (r *renderer) markStyle(t model.MarkType) lipgloss.Style {
	switch t {
	case model.MarkBold:
		return r.st.Bold
	case model.MarkItalic:
		return r.st.Italic
	case model.MarkStrike:
		return r.st.Strike
	case model.MarkCode:
		return r.st.InlineCode
	case model.MarkLink:
		return r.st.Link
	}
	return lipgloss.NewStyle()
}
