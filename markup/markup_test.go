package markup

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/model"
)

func quiet() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func requireDocEq(t *testing.T, want, got *model.Node) {
	t.Helper()
	require.True(t, want.Eq(got), "want %s\n got %s", want, got)
}

func TestImage_Serialize(t *testing.T) {
	doc := model.Doc(model.Image(model.ImageAttrs{
		Src:       model.StringPtr("a.png"),
		Alt:       model.StringPtr("desc"),
		Size:      model.SizeMedium,
		AssetPath: model.StringPtr("assets/a.png"),
	}))

	got, err := SerializeString(doc, quiet())
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="image-container size-medium" data-size="medium">`+
			`<img src="a.png" alt="desc" data-asset-path="assets/a.png"/></div>`,
		got)

	back, err := ParseString(got, quiet())
	require.NoError(t, err)
	requireDocEq(t, doc, back)

	img := back.FirstChild().Attrs.(model.ImageAttrs)
	assert.Nil(t, img.Title)
}

func TestImage_SizeFromAncestor(t *testing.T) {
	in := `<div class="wrapper size-large"><p><img src="b.png" class="size-small"></p></div>`
	doc, err := ParseString(in, quiet())
	require.NoError(t, err)

	requireDocEq(t, model.Doc(model.Image(model.ImageAttrs{
		Src:  model.StringPtr("b.png"),
		Size: model.SizeLarge,
	})), doc)
}

func TestImage_DefaultSize(t *testing.T) {
	doc, err := ParseString(`<div class="size-huge"><img src="c.png"></div>`, quiet())
	require.NoError(t, err)

	img := doc.FirstChild().Attrs.(model.ImageAttrs)
	assert.Equal(t, model.SizeOriginal, img.Size)
	assert.Nil(t, img.Alt)
	assert.Nil(t, img.AssetPath)
}

func TestImage_SplitsParagraph(t *testing.T) {
	doc, err := ParseString(`<p>before<img src="x.png">after</p>`, quiet())
	require.NoError(t, err)

	requireDocEq(t, model.Doc(
		model.Paragraph(model.Text("before")),
		model.Image(model.ImageAttrs{Src: model.StringPtr("x.png")}),
		model.Paragraph(model.Text("after")),
	), doc)
}

func TestCellAlign(t *testing.T) {
	doc := model.Doc(model.Table(model.TableRow(
		model.AlignedCell(true, model.AlignLeft, model.Paragraph(model.Text("h"))),
		model.AlignedCell(false, model.AlignCenter, model.Paragraph(model.Text("c"))),
	)))

	got, err := SerializeString(doc, quiet())
	require.NoError(t, err)
	assert.Equal(t,
		`<table><tbody><tr><th><p>h</p></th>`+
			`<td style="text-align: center"><p>c</p></td></tr></tbody></table>`,
		got)

	back, err := ParseString(got, quiet())
	require.NoError(t, err)
	requireDocEq(t, doc, back)
}

func TestCellAlign_Parse(t *testing.T) {
	in := `<table><tr><td style="color: red; TEXT-ALIGN: Right">r</td>` +
		`<td style="text-align: sideways">x</td><td colspan="2">w</td></tr></table>`
	doc, err := ParseString(in, quiet())
	require.NoError(t, err)

	row := doc.FirstChild().FirstChild()
	require.Equal(t, 3, row.ChildCount())
	assert.Equal(t, model.AlignRight, row.Child(0).Attrs.(model.CellAttrs).TextAlign)
	assert.Equal(t, model.AlignLeft, row.Child(1).Attrs.(model.CellAttrs).TextAlign)
	assert.Equal(t, 2, row.Child(2).Attrs.(model.CellAttrs).Colspan)
}

func TestRoundTrip(t *testing.T) {
	doc := model.Doc(
		model.HeadingWithID(2, "intro", model.Text("Intro")),
		model.Paragraph(
			model.Text("a "),
			model.Text("b", model.Bold()),
			model.Text("c", model.Bold(), model.Italic()),
			model.Text(" "),
			model.Text("link", model.Link("https://example.com", "t")),
			model.Text(" "),
			model.Text("x", model.Code()),
			model.Text("gone", model.Strike()),
		),
		model.Blockquote(model.Paragraph(model.Text("quoted"))),
		model.TaskList(
			model.TaskItem(true, model.Paragraph(model.Text("done"))),
			model.TaskItem(false, model.Paragraph(model.Text("todo"))),
		),
		model.OrderedList(3,
			model.ListItem(model.Paragraph(model.Text("one"))),
			model.ListItem(
				model.Paragraph(model.Text("two")),
				model.BulletList(model.ListItem(model.Paragraph(model.Text("nested")))),
			),
		),
		model.CodeBlock("go", "x := 1\n\tif  x {}\n"),
	)

	got, err := SerializeString(doc, quiet())
	require.NoError(t, err)
	assert.Contains(t, got, `<h2 id="intro">Intro</h2>`)
	assert.Contains(t, got, `<p>a <strong>b<em>c</em></strong> `)
	assert.Contains(t, got, `<a href="https://example.com" title="t">link</a>`)
	assert.Contains(t, got, `<ul data-type="taskList"><li data-type="taskItem" data-checked="true"><p>done</p></li>`)
	assert.Contains(t, got, `<ol start="3">`)
	assert.Contains(t, got, `<pre><code class="language-go">`)

	back, err := ParseString(got, quiet())
	require.NoError(t, err)
	requireDocEq(t, doc, back)
}

func TestParse_Loose(t *testing.T) {
	in := `
<h3>Plain   heading</h3>
text at <b>top</b> level
<ul>
  <li>item</li>
  <li><ul><li>deep</li></ul></li>
</ul>
<ol><li>x</li></ol>
<ul></ul>`
	doc, err := ParseString(in, quiet())
	require.NoError(t, err)

	requireDocEq(t, model.Doc(
		model.Heading(3, model.Text("Plain heading")),
		model.Paragraph(model.Text("text at "), model.Text("top", model.Bold()), model.Text(" level")),
		model.BulletList(
			model.ListItem(model.Paragraph(model.Text("item"))),
			model.ListItem(model.Paragraph(), model.BulletList(model.ListItem(model.Paragraph(model.Text("deep"))))),
		),
		model.OrderedList(1, model.ListItem(model.Paragraph(model.Text("x")))),
	), doc)
}

func TestParse_Empty(t *testing.T) {
	doc, err := ParseString("", quiet())
	require.NoError(t, err)
	requireDocEq(t, model.Doc(model.Paragraph()), doc)
}

func TestParse_LogsUnknownElements(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	doc, err := ParseString(`<p><custom-tag>hello</custom-tag></p>`, opts)
	require.NoError(t, err)
	requireDocEq(t, model.Doc(model.Paragraph(model.Text("hello"))), doc)
	assert.Contains(t, buf.String(), "custom-tag")
}

func TestParse_Sanitize(t *testing.T) {
	in := `<p onclick="evil()"><a href="javascript:alert(1)">x</a></p>`

	raw, err := ParseString(in, quiet())
	require.NoError(t, err)
	m, ok := raw.FirstChild().FirstChild().Marks.Get(model.MarkLink)
	require.True(t, ok)
	assert.Equal(t, "javascript:alert(1)", m.Href)

	opts := quiet()
	opts.Sanitize = true
	clean, err := ParseString(in, opts)
	require.NoError(t, err)
	requireDocEq(t, model.Doc(model.Paragraph(model.Text("x"))), clean)
}

func TestParse_SanitizeKeepsNoteAttributes(t *testing.T) {
	in := `<div class="image-container size-small" data-size="small">` +
		`<img src="a.png" alt="d" data-asset-path="assets/a.png"></div>` +
		`<h1 id="title">Title</h1>` +
		`<ul data-type="taskList"><li data-checked="true"><p>t</p></li></ul>` +
		`<table><tr><td style="text-align: center">c</td></tr></table>` +
		`<pre><code class="language-go">x</code></pre>`
	opts := quiet()
	opts.Sanitize = true

	doc, err := ParseString(in, opts)
	require.NoError(t, err)
	requireDocEq(t, model.Doc(
		model.Image(model.ImageAttrs{
			Src:       model.StringPtr("a.png"),
			Alt:       model.StringPtr("d"),
			Size:      model.SizeSmall,
			AssetPath: model.StringPtr("assets/a.png"),
		}),
		model.HeadingWithID(1, "title", model.Text("Title")),
		model.TaskList(model.TaskItem(true, model.Paragraph(model.Text("t")))),
		model.Table(model.TableRow(model.AlignedCell(false, model.AlignCenter, model.Paragraph(model.Text("c"))))),
		model.CodeBlock("go", "x"),
	), doc)
}

func TestSerialize_Minify(t *testing.T) {
	doc := model.Doc(
		model.HeadingWithID(1, "a", model.Text("A")),
		model.Paragraph(model.Text("Hello world")),
	)
	plain, err := SerializeString(doc, quiet())
	require.NoError(t, err)

	opts := quiet()
	opts.Minify = true
	small, err := SerializeString(doc, opts)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(small), len(plain))

	back, err := ParseString(small, quiet())
	require.NoError(t, err)
	requireDocEq(t, doc, back)
}

func TestSerialize_RejectsInvalid(t *testing.T) {
	var buf strings.Builder
	err := Serialize(&buf, model.Doc(), quiet())
	require.ErrorIs(t, err, model.ErrInvalidContent)
	assert.Empty(t, buf.String())
}
