package model

// NodeType is the closed set of node kinds known to the engine.
type NodeType uint8

const (
	NodeUnknown NodeType = iota
	NodeDoc
	NodeParagraph
	NodeHeading
	NodeBlockquote
	NodeBulletList
	NodeOrderedList
	NodeTaskList
	NodeListItem
	NodeTaskItem
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeTableHeader
	NodeCodeBlock
	NodeImage
	NodeText

	nodeTypeCount
)

var nodeTypeNames = [nodeTypeCount]string{
	NodeUnknown:     "unknown",
	NodeDoc:         "doc",
	NodeParagraph:   "paragraph",
	NodeHeading:     "heading",
	NodeBlockquote:  "blockquote",
	NodeBulletList:  "bulletList",
	NodeOrderedList: "orderedList",
	NodeTaskList:    "taskList",
	NodeListItem:    "listItem",
	NodeTaskItem:    "taskItem",
	NodeTable:       "table",
	NodeTableRow:    "tableRow",
	NodeTableCell:   "tableCell",
	NodeTableHeader: "tableHeader",
	NodeCodeBlock:   "codeBlock",
	NodeImage:       "image",
	NodeText:        "text",
}

func (t NodeType) String() string {
	if t >= nodeTypeCount {
		return "unknown"
	}
	return nodeTypeNames[t]
}

// ParseNodeType returns the node type with the given name.
func ParseNodeType(name string) (NodeType, bool) {
	for i, n := range nodeTypeNames {
		if NodeType(i) != NodeUnknown && n == name {
			return NodeType(i), true
		}
	}
	return NodeUnknown, false
}

// IsList reports whether t is one of the list containers.
func (t NodeType) IsList() bool {
	return t == NodeBulletList || t == NodeOrderedList || t == NodeTaskList
}

// IsListItem reports whether t is an item of a list container.
func (t NodeType) IsListItem() bool {
	return t == NodeListItem || t == NodeTaskItem
}

// IsCell reports whether t is a table cell or header.
func (t NodeType) IsCell() bool {
	return t == NodeTableCell || t == NodeTableHeader
}

// IsTextblock reports whether nodes of type t hold inline content directly.
func (t NodeType) IsTextblock() bool {
	return t == NodeParagraph || t == NodeHeading || t == NodeCodeBlock
}

// IsLeaf reports whether nodes of type t never have children.
func (t NodeType) IsLeaf() bool {
	return t == NodeImage || t == NodeText
}

// ItemType returns the item type accepted by list type t.
func (t NodeType) ItemType() NodeType {
	switch t {
	case NodeBulletList, NodeOrderedList:
		return NodeListItem
	case NodeTaskList:
		return NodeTaskItem
	default:
		return NodeUnknown
	}
}
