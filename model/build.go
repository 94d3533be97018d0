package model

// Constructors for building documents in code and tests.

func Doc(blocks ...*Node) *Node { return NewNode(NodeDoc, nil, blocks...) }

func Paragraph(inline ...*Node) *Node { return NewNode(NodeParagraph, nil, inline...) }

// Heading builds a heading with an empty id.
func Heading(level int, inline ...*Node) *Node {
	return NewNode(NodeHeading, HeadingAttrs{Level: level}, inline...)
}

// HeadingWithID builds a heading carrying a stored id.
func HeadingWithID(level int, id string, inline ...*Node) *Node {
	return NewNode(NodeHeading, HeadingAttrs{Level: level, ID: id}, inline...)
}

func Blockquote(blocks ...*Node) *Node { return NewNode(NodeBlockquote, nil, blocks...) }

func BulletList(items ...*Node) *Node { return NewNode(NodeBulletList, nil, items...) }

func OrderedList(start int, items ...*Node) *Node {
	return NewNode(NodeOrderedList, OrderedListAttrs{Start: start}, items...)
}

func TaskList(items ...*Node) *Node { return NewNode(NodeTaskList, nil, items...) }

func ListItem(blocks ...*Node) *Node { return NewNode(NodeListItem, nil, blocks...) }

func TaskItem(checked bool, blocks ...*Node) *Node {
	return NewNode(NodeTaskItem, TaskItemAttrs{Checked: checked}, blocks...)
}

func Table(rows ...*Node) *Node { return NewNode(NodeTable, nil, rows...) }

func TableRow(cells ...*Node) *Node { return NewNode(NodeTableRow, nil, cells...) }

func TableCell(blocks ...*Node) *Node { return NewNode(NodeTableCell, nil, blocks...) }

func TableHeader(blocks ...*Node) *Node { return NewNode(NodeTableHeader, nil, blocks...) }

// AlignedCell builds a table cell (or header, when header is true) with the
// given alignment.
func AlignedCell(header bool, align Align, blocks ...*Node) *Node {
	t := NodeTableCell
	if header {
		t = NodeTableHeader
	}
	return NewNode(t, CellAttrs{TextAlign: align, Colspan: 1, Rowspan: 1}, blocks...)
}

func CodeBlock(language, text string) *Node {
	return NewNode(NodeCodeBlock, CodeBlockAttrs{Language: language}, NewText(text))
}

func Image(attrs ImageAttrs) *Node {
	if attrs.Size == "" {
		attrs.Size = SizeOriginal
	}
	return NewNode(NodeImage, attrs)
}

// Text is NewText under the name used by the other constructors.
func Text(text string, marks ...Mark) *Node { return NewText(text, marks...) }

// EmptyCell builds a cell of type t holding one empty paragraph.
func EmptyCell(t NodeType) *Node {
	return NewNode(t, nil, Paragraph())
}
