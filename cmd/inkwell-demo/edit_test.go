package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/model"
)

func newEditor(t *testing.T, doc *model.Node, cursor int) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Config{Doc: doc, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	e.SetSelection(model.Cursor(cursor))
	return e
}

func requireDoc(t *testing.T, want, got *model.Node) {
	t.Helper()
	require.True(t, want.Eq(got), "want %s\n got %s", want, got)
}

func TestMoveHorizontal_SkipsStructure(t *testing.T) {
	doc := model.Doc(
		model.Paragraph(model.Text("ab")),
		model.BulletList(model.ListItem(model.Paragraph(model.Text("c")))),
	)
	assert.Equal(t, 7, moveHorizontal(doc, 3, 1))
	assert.Equal(t, 3, moveHorizontal(doc, 7, -1))
	assert.Equal(t, 1, moveHorizontal(doc, 1, -1))
	assert.Equal(t, 8, moveHorizontal(doc, 8, 1))
}

func TestMoveVertical_KeepsColumn(t *testing.T) {
	doc := model.Doc(
		model.Paragraph(model.Text("ab")),
		model.BulletList(model.ListItem(model.Paragraph(model.Text("c")))),
	)
	assert.Equal(t, 8, moveVertical(doc, 3, 1))
	assert.Equal(t, 2, moveVertical(doc, 8, -1))
	assert.Equal(t, 2, moveVertical(doc, 2, -1))
}

func TestSplitBlock_Paragraph(t *testing.T) {
	e := newEditor(t, model.Doc(model.Paragraph(model.Text("hello"))), 3)
	splitBlock(e)

	requireDoc(t, model.Doc(model.Paragraph(model.Text("he")), model.Paragraph(model.Text("llo"))), e.Doc())
	assert.Equal(t, model.Cursor(5), e.Selection())
}

func TestSplitBlock_ListItem(t *testing.T) {
	e := newEditor(t, model.Doc(model.BulletList(model.ListItem(model.Paragraph(model.Text("ab"))))), 4)
	splitBlock(e)

	requireDoc(t, model.Doc(model.BulletList(
		model.ListItem(model.Paragraph(model.Text("a"))),
		model.ListItem(model.Paragraph(model.Text("b"))),
	)), e.Doc())
	assert.Equal(t, model.Cursor(8), e.Selection())
}

func TestSplitBlock_HeadingEnd(t *testing.T) {
	e := newEditor(t, model.Doc(model.Heading(1, model.Text("T"))), 2)
	splitBlock(e)

	requireDoc(t, model.Doc(model.Heading(1, model.Text("T")), model.Paragraph()), e.Doc())
	assert.Equal(t, model.Cursor(4), e.Selection())
}

func TestSplitBlock_CodeBlock(t *testing.T) {
	e := newEditor(t, model.Doc(model.CodeBlock("", "ab")), 2)
	splitBlock(e)

	requireDoc(t, model.Doc(model.CodeBlock("", "a\nb")), e.Doc())
}

func TestBackspace(t *testing.T) {
	e := newEditor(t, model.Doc(model.Paragraph(model.Text("ab")), model.Paragraph(model.Text("cd"))), 3)
	backspace(e)
	requireDoc(t, model.Doc(model.Paragraph(model.Text("a")), model.Paragraph(model.Text("cd"))), e.Doc())

	e.SetSelection(model.Cursor(4))
	backspace(e)
	requireDoc(t, model.Doc(model.Paragraph(model.Text("acd"))), e.Doc())
	assert.Equal(t, model.Cursor(2), e.Selection())

	e.SetSelection(model.Cursor(1))
	backspace(e)
	requireDoc(t, model.Doc(model.Paragraph(model.Text("acd"))), e.Doc())
}

func TestTypeText_ReplacesSelection(t *testing.T) {
	e := newEditor(t, model.Doc(model.Paragraph(model.Text("abc"))), 1)
	e.SetSelection(model.Selection{Anchor: 1, Head: 3})
	typeText(e, "X")

	requireDoc(t, model.Doc(model.Paragraph(model.Text("Xc"))), e.Doc())
}

func TestNewModel_SampleNote(t *testing.T) {
	m, err := newModel(config.Default(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.Equal(t, firstCursor(m.ed.Doc()), m.ed.Selection().Head)
	assert.NotEmpty(t, m.View())

	m.runSearch("tab")
	assert.Len(t, m.matches, 3)
	d, ok := m.overlay.Decorations().Current()
	require.True(t, ok)
	assert.Equal(t, model.Cursor(d.From), m.ed.Selection())
}
