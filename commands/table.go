package commands

import (
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

type cellAt struct {
	table      *model.Node
	tableStart int
	row, cell  int
	tableEnd   int
}

func findCell(r model.ResolvedPos) (cellAt, bool) {
	d, ok := r.FindAncestor(func(n *model.Node) bool { return n.Type.IsCell() })
	if !ok || d < 2 {
		return cellAt{}, false
	}
	return cellAt{
		table:      r.Node(d - 2),
		tableStart: r.Start(d - 2),
		row:        r.Index(d - 2),
		cell:       r.Index(d - 1),
		tableEnd:   r.End(d - 2),
	}, true
}

// GoToNextCell moves the cursor to the start of the next cell. From the last
// cell of the last row it appends a row with the same number of cells and
// moves into its first cell.
func GoToNextCell(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok {
		return false
	}
	c, ok := findCell(r)
	if !ok {
		return false
	}
	row := c.table.Child(c.row)
	switch {
	case c.cell+1 < row.ChildCount():
		return moveToCell(t, c, c.row, c.cell+1)
	case c.row+1 < c.table.ChildCount():
		return moveToCell(t, c, c.row+1, 0)
	}

	cells := make([]*model.Node, 0, row.ChildCount())
	for _, cell := range row.Content {
		cells = append(cells, model.NewNode(model.NodeTableCell, cell.Attrs, model.Paragraph()))
	}
	// <tr> <td> <p> puts the cursor three positions past the insertion point.
	tr := transform.NewTransaction().
		Insert(c.tableEnd, model.TableRow(cells...)).
		SetSelection(model.Cursor(c.tableEnd + 3))
	return dispatch(t, tr)
}

// GoToPreviousCell moves the cursor to the start of the previous cell. In
// the first cell it reports not handled.
func GoToPreviousCell(t Target) bool {
	r, ok := resolveFrom(t)
	if !ok {
		return false
	}
	c, ok := findCell(r)
	if !ok {
		return false
	}
	switch {
	case c.cell > 0:
		return moveToCell(t, c, c.row, c.cell-1)
	case c.row > 0:
		prev := c.table.Child(c.row - 1)
		return moveToCell(t, c, c.row-1, prev.ChildCount()-1)
	}
	return false
}

func moveToCell(t Target, c cellAt, row, cell int) bool {
	rowNode := c.table.Child(row)
	rowPos := childPos(c.table, c.tableStart, row)
	cellPos := childPos(rowNode, rowPos+1, cell)
	pos := firstTextPos(rowNode.Child(cell), cellPos)
	return dispatch(t, transform.NewTransaction().SetSelection(model.Cursor(pos)))
}
