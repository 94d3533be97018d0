package transform

import (
	"errors"
	"testing"

	"github.com/iw2rmb/inkwell/model"
)

func TestStepMap_InsertShiftsRange(t *testing.T) {
	m := NewMapping(NewStepMap(Span{Start: 0, OldSize: 0, NewSize: 5}))
	from, to, ok := m.MapRange(10, 20)
	if !ok || from != 15 || to != 25 {
		t.Fatalf("MapRange=%d,%d,%v, want 15,25,true", from, to, ok)
	}
}

func TestStepMap_DeleteCollapsesRange(t *testing.T) {
	m := NewMapping(NewStepMap(Span{Start: 5, OldSize: 20, NewSize: 0}))
	if _, _, ok := m.MapRange(10, 20); ok {
		t.Fatalf("expected range inside deletion to collapse")
	}
	r := m.MapResult(12, 1)
	if !r.Deleted || r.Pos != 5 {
		t.Fatalf("MapResult=%+v, want deleted at 5", r)
	}
}

func TestStepMap_AssocAtInsertionPoint(t *testing.T) {
	sm := NewStepMap(Span{Start: 3, OldSize: 0, NewSize: 2})
	if got, want := sm.Map(3, -1), 3; got != want {
		t.Fatalf("assoc -1=%d, want %d", got, want)
	}
	if got, want := sm.Map(3, 1), 5; got != want {
		t.Fatalf("assoc 1=%d, want %d", got, want)
	}
	if got, want := sm.Map(2, 1), 2; got != want {
		t.Fatalf("before=%d, want %d", got, want)
	}
}

func TestApply_InsertTextInheritsMarks(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("ab", model.Bold()), model.Text("c")))
	res, err := Apply(doc, NewTransaction().InsertText(3, "X"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := model.Doc(model.Paragraph(model.Text("abX", model.Bold()), model.Text("c")))
	if !res.Doc.Eq(want) {
		t.Fatalf("doc=%s, want %s", res.Doc, want)
	}
	if got, want := res.Mapping.Map(4, 1), 5; got != want {
		t.Fatalf("map=%d, want %d", got, want)
	}
}

func TestApply_StepsSeeEarlierSteps(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("abc")))
	tr := NewTransaction().InsertText(1, "xy").Delete(3, 4)
	res, err := Apply(doc, tr)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := model.Doc(model.Paragraph(model.Text("xybc")))
	if !res.Doc.Eq(want) {
		t.Fatalf("doc=%s, want %s", res.Doc, want)
	}
	if got, want := len(res.Mapping.Maps()), 2; got != want {
		t.Fatalf("maps=%d, want %d", got, want)
	}
}

func TestApply_RejectsInvalidContent(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("abc")))
	tr := NewTransaction().InsertText(1, "ok").Insert(2, model.Paragraph(model.Text("nested")))
	_, err := Apply(doc, tr)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
	if !errors.Is(err, model.ErrInvalidContent) {
		t.Fatalf("expected cause ErrInvalidContent, got %v", err)
	}
	var sv *SchemaViolation
	if !errors.As(err, &sv) || sv.Step != 1 || sv.Op != "insert" {
		t.Fatalf("violation=%+v", sv)
	}
	if !doc.Eq(model.Doc(model.Paragraph(model.Text("abc")))) {
		t.Fatalf("input document changed: %s", doc)
	}
}

func TestApply_RejectsCrossParentRange(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("ab")), model.Paragraph(model.Text("cd")))
	if _, err := Apply(doc, NewTransaction().Delete(2, 6)); !errors.Is(err, ErrBadRange) {
		t.Fatalf("expected ErrBadRange, got %v", err)
	}
}

func TestApply_EmptyingDocumentFails(t *testing.T) {
	doc := model.Doc(model.Paragraph())
	if _, err := Apply(doc, NewTransaction().Delete(0, 2)); !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected violation for empty doc, got %v", err)
	}
}

func TestReplace_PreservesReusedTextblocks(t *testing.T) {
	// 0 <ul> 1 <li> 2 <p> 3 a 4 </p> 5 </li> 6 <li> 7 <p> 8 b 9 </p> 10 </li> 11 </ul> 12
	pa := model.Paragraph(model.Text("a"))
	pb := model.Paragraph(model.Text("b"))
	doc := model.Doc(model.BulletList(model.ListItem(pa), model.ListItem(pb)))

	nested := model.ListItem(pa, model.BulletList(model.ListItem(pb)))
	res, err := Apply(doc, NewTransaction().Replace(1, 11, nested))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for _, pos := range []int{3, 4, 8, 9} {
		if got := res.Mapping.Map(pos, 1); got != pos {
			t.Fatalf("map(%d)=%d, want unchanged", pos, got)
		}
	}
	if got, want := res.Doc.NodeAt(7), pb; got != want {
		t.Fatalf("moved paragraph not at its old position")
	}
	if got, want := res.Mapping.Map(11, 1), 13; got != want {
		t.Fatalf("map end=%d, want %d", got, want)
	}
}

func TestAddMark_SplitsText(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("hello")), model.CodeBlock("", "code"))
	res, err := Apply(doc, NewTransaction().AddMark(2, 11, model.Bold()))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := model.Doc(
		model.Paragraph(model.Text("h"), model.Text("ello", model.Bold())),
		model.CodeBlock("", "code"),
	)
	if !res.Doc.Eq(want) {
		t.Fatalf("doc=%s, want %s", res.Doc, want)
	}
	if !res.Mapping.Identity() {
		t.Fatalf("mark steps should not move positions")
	}

	res, err = Apply(res.Doc, NewTransaction().RemoveMark(0, 7, model.MarkBold))
	if err != nil {
		t.Fatalf("apply remove: %v", err)
	}
	if !res.Doc.Eq(doc) {
		t.Fatalf("after remove=%s, want %s", res.Doc, doc)
	}
}

func TestAddMark_LinkNeedsHref(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("x")))
	_, err := Apply(doc, NewTransaction().AddMark(1, 2, model.Mark{Type: model.MarkLink}))
	if !errors.Is(err, model.ErrInvalidMark) {
		t.Fatalf("expected ErrInvalidMark, got %v", err)
	}
}

func TestSetNodeType_CodeBlockDropsMarks(t *testing.T) {
	doc := model.Doc(model.Paragraph(model.Text("a", model.Bold()), model.Text("b")))
	res, err := Apply(doc, NewTransaction().SetNodeType(0, model.NodeCodeBlock, nil))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := model.Doc(model.CodeBlock("", "ab"))
	if !res.Doc.Eq(want) {
		t.Fatalf("doc=%s, want %s", res.Doc, want)
	}
}

func TestSetNodeAttrs(t *testing.T) {
	doc := model.Doc(model.Heading(1, model.Text("T")))
	res, err := Apply(doc, NewTransaction().SetNodeAttrs(0, model.HeadingAttrs{Level: 1, ID: "t"}))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	a := res.Doc.Child(0).Attrs.(model.HeadingAttrs)
	if got, want := a.ID, "t"; got != want {
		t.Fatalf("id=%q, want %q", got, want)
	}
	if _, err := Apply(doc, NewTransaction().SetNodeAttrs(1, model.HeadingAttrs{Level: 1})); !errors.Is(err, ErrNoNode) {
		t.Fatalf("expected ErrNoNode inside text, got %v", err)
	}
}

func TestTransaction_Meta(t *testing.T) {
	tr := NewTransaction()
	if !tr.AddToHistory() {
		t.Fatalf("history should default to true")
	}
	tr.SetMeta(MetaAddToHistory, false)
	if tr.AddToHistory() {
		t.Fatalf("expected history disabled")
	}
	if v, ok := tr.Meta(MetaAddToHistory); !ok || v != false {
		t.Fatalf("meta=%v,%v", v, ok)
	}
}

func TestMapSelection(t *testing.T) {
	m := NewMapping(NewStepMap(Span{Start: 2, OldSize: 0, NewSize: 3}))
	got := MapSelection(m, model.Cursor(2))
	if got != model.Cursor(5) {
		t.Fatalf("cursor=%+v, want 5", got)
	}
}
