package model

import (
	"errors"
	"testing"
)

func TestSchema_CheckValidDocument(t *testing.T) {
	d := Doc(
		HeadingWithID(2, "intro", Text("Intro")),
		Paragraph(Text("x", Bold(), Link("https://example.com", ""))),
		TaskList(TaskItem(true, Paragraph(Text("done")))),
		Table(TableRow(TableHeader(Paragraph(Text("h"))), AlignedCell(false, AlignCenter, Paragraph()))),
		Image(ImageAttrs{Src: StringPtr("a.png"), Size: SizeMedium}),
		CodeBlock("go", "fmt.Println()"),
	)
	if err := DefaultSchema().Check(d); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestSchema_CheckRejectsBadNesting(t *testing.T) {
	cases := []struct {
		name string
		doc  *Node
		want error
	}{
		{
			name: "row holds paragraph",
			doc:  Doc(Table(NewNode(NodeTableRow, nil, Paragraph()))),
			want: ErrInvalidContent,
		},
		{
			name: "task list holds list item",
			doc:  Doc(TaskList(ListItem(Paragraph()))),
			want: ErrInvalidContent,
		},
		{
			name: "empty document",
			doc:  Doc(),
			want: ErrInvalidContent,
		},
		{
			name: "list item starts with list",
			doc:  Doc(BulletList(ListItem(BulletList(ListItem(Paragraph()))))),
			want: ErrInvalidContent,
		},
		{
			name: "marks in code block",
			doc:  Doc(NewNode(NodeCodeBlock, nil, Text("x", Bold()))),
			want: ErrInvalidMark,
		},
		{
			name: "heading level out of range",
			doc:  Doc(Heading(9, Text("x"))),
			want: ErrInvalidAttrs,
		},
		{
			name: "wrong attribute record",
			doc:  Doc(NewNode(NodeParagraph, HeadingAttrs{Level: 1})),
			want: ErrInvalidAttrs,
		},
		{
			name: "link without href",
			doc:  Doc(Paragraph(Text("x", Mark{Type: MarkLink}))),
			want: ErrInvalidMark,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := DefaultSchema().Check(tc.doc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("check=%v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewSchema_RequiresDocAndText(t *testing.T) {
	if _, err := NewSchema([]NodeSpec{{Type: NodeParagraph}}, nil); err == nil {
		t.Fatalf("expected error for schema without doc/text")
	}
	if _, err := NewSchema([]NodeSpec{{Type: NodeDoc}, {Type: NodeText}, {Type: NodeDoc}}, nil); err == nil {
		t.Fatalf("expected error for duplicate type")
	}
}

func TestSchema_SubsetRejectsUndeclaredType(t *testing.T) {
	s, err := NewSchema([]NodeSpec{
		{Type: NodeDoc, Content: ContentExpr{Allow: GroupBlock, Min: 1}},
		{Type: NodeParagraph, Group: GroupBlock, Content: ContentExpr{Allow: GroupInline}},
		{Type: NodeText, Group: GroupInline},
	}, nil)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	if err := s.Check(Doc(Paragraph(Text("x")))); err != nil {
		t.Fatalf("check: %v", err)
	}
	if err := s.Check(Doc(Heading(1))); !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("expected undeclared heading rejected, got %v", err)
	}
	if err := s.Check(Doc(Paragraph(Text("x", Bold())))); !errors.Is(err, ErrInvalidMark) {
		t.Fatalf("expected marks rejected, got %v", err)
	}
}

func TestParseNames(t *testing.T) {
	if got, ok := ParseNodeType("taskItem"); !ok || got != NodeTaskItem {
		t.Fatalf("ParseNodeType=%v,%v", got, ok)
	}
	if got, ok := ParseMarkType("strike"); !ok || got != MarkStrike {
		t.Fatalf("ParseMarkType=%v,%v", got, ok)
	}
	if _, ok := ParseSizeClass("huge"); ok {
		t.Fatalf("unexpected size class huge")
	}
	if got, ok := ParseAlign("center"); !ok || got != AlignCenter {
		t.Fatalf("ParseAlign=%v,%v", got, ok)
	}
}
