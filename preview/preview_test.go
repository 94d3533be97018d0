package preview

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/search"
)

func wrap(open, close string) lipgloss.Style {
	return lipgloss.NewStyle().Transform(func(s string) string { return open + s + close })
}

func TestRender_Blocks(t *testing.T) {
	doc := model.Doc(
		model.Heading(2, model.Text("Title")),
		model.Paragraph(model.Text("Hello "), model.Text("world", model.Bold())),
		model.BulletList(
			model.ListItem(model.Paragraph(model.Text("a"))),
			model.ListItem(
				model.Paragraph(model.Text("b")),
				model.BulletList(model.ListItem(model.Paragraph(model.Text("c")))),
			),
		),
		model.OrderedList(3, model.ListItem(model.Paragraph(model.Text("x")))),
		model.TaskList(
			model.TaskItem(true, model.Paragraph(model.Text("done"))),
			model.TaskItem(false, model.Paragraph(model.Text("todo"))),
		),
		model.Blockquote(model.Paragraph(model.Text("q"))),
		model.Image(model.ImageAttrs{Alt: model.StringPtr("cat"), Size: model.SizeSmall}),
		model.Image(model.ImageAttrs{Src: model.StringPtr("x.png")}),
		model.CodeBlock("go", "a\nb"),
	)

	want := strings.Join([]string{
		"## Title",
		"Hello world",
		"• a",
		"• b",
		"  • c",
		"3. x",
		"[x] done",
		"[ ] todo",
		"│ q",
		"[image cat (small)]",
		"[image (original)]",
		"```go",
		"a",
		"b",
		"```",
	}, "\n")
	assert.Equal(t, want, Render(doc, nil, PlainStyle()))
}

func TestRender_Table(t *testing.T) {
	doc := model.Doc(model.Table(
		model.TableRow(
			model.TableHeader(model.Paragraph(model.Text("Name"))),
			model.AlignedCell(true, model.AlignRight, model.Paragraph(model.Text("Qty"))),
		),
		model.TableRow(
			model.TableCell(model.Paragraph(model.Text("apple"))),
			model.AlignedCell(false, model.AlignRight, model.Paragraph(model.Text("10"))),
		),
		model.TableRow(
			model.TableCell(model.Paragraph(model.Text("가"))),
			model.AlignedCell(false, model.AlignRight, model.Paragraph(model.Text("7"))),
		),
	))

	want := strings.Join([]string{
		"┌───────┬─────┐",
		"│ Name  │ Qty │",
		"├───────┼─────┤",
		"│ apple │  10 │",
		"│ 가    │   7 │",
		"└───────┴─────┘",
	}, "\n")
	assert.Equal(t, want, Render(doc, nil, PlainStyle()))
}

func TestRender_CenteredCell(t *testing.T) {
	doc := model.Doc(model.Table(
		model.TableRow(model.AlignedCell(false, model.AlignCenter, model.Paragraph(model.Text("wide text")))),
		model.TableRow(model.AlignedCell(false, model.AlignCenter, model.Paragraph(model.Text("ab")))),
	))

	got := strings.Split(Render(doc, nil, PlainStyle()), "\n")
	assert.Equal(t, "│    ab     │", got[2])
}

func TestRender_Decorations(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("foo bar foo")))
	decos := search.DecorationSet{
		{From: 1, To: 4, Tag: search.TagMatch},
		{From: 9, To: 12, Tag: search.TagCurrentMatch},
	}
	st := PlainStyle()
	st.Match = wrap("<", ">")
	st.CurrentMatch = wrap("{", "}")

	assert.Equal(t, "<foo> bar {foo}", Render(doc, decos, st))
}

func TestRender_DecorationAcrossMarks(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("ab"), model.Text("cd", model.Italic())))
	st := PlainStyle()
	st.Match = wrap("<", ">")

	got := Render(doc, search.DecorationSet{{From: 2, To: 4, Tag: search.TagMatch}}, st)
	assert.Equal(t, "a<b><c>d", got)
}

func TestRender_CodeBlockDecorations(t *testing.T) {
	doc := model.Doc(model.CodeBlock("", "one\ntwo"))
	st := PlainStyle()
	st.Match = wrap("<", ">")

	// "two" starts after "one" and the newline.
	got := Render(doc, search.DecorationSet{{From: 5, To: 8, Tag: search.TagMatch}}, st)
	assert.Equal(t, "```\none\n<two>\n```", got)
}

func TestRenderWith_Cursor(t *testing.T) {
	st := PlainStyle()
	st.Cursor = wrap("[", "]")
	doc := model.Doc(model.Paragraph(model.Text("ab")), model.Paragraph())

	tests := []struct {
		name   string
		cursor int
		want   string
	}{
		{"inside", 2, "a[b]\n"},
		{"end of text", 3, "ab[ ]\n"},
		{"empty block", 5, "ab\n[ ]"},
		{"between blocks", 4, "ab\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderWith(doc, Options{Style: st, Cursor: tt.cursor, ShowCursor: true})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Tabs(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("\tx")))
	assert.Equal(t, "    x", Render(doc, nil, PlainStyle()))
}

func TestStyleFor_ColorProfile(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("plain "), model.Text("bold", model.Bold())))

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	got := Render(doc, nil, StyleFor(r))
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "bold")

	r.SetColorProfile(termenv.Ascii)
	assert.Equal(t, "plain bold", Render(doc, nil, StyleFor(r)))
}

func TestRender_LongImageAlt(t *testing.T) {
	alt := strings.Repeat("ab", 20) + "👍"
	doc := model.Doc(model.Image(model.ImageAttrs{Alt: model.StringPtr(alt), Size: model.SizeLarge}))

	want := "[image " + strings.Repeat("ab", 15) + "a… (large)]"
	assert.Equal(t, want, Render(doc, nil, PlainStyle()))
}
