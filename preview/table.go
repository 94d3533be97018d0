package preview

import (
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"github.com/iw2rmb/inkwell/model"
)

type tableCell struct {
	content line
	align   grapheme.Align
	header  bool
}

// table draws n boxed, one line per row. Multi-block cells are joined with
// spaces; spans are not merged.
func (r *renderer) table(n *model.Node, pos int) []line {
	var (
		rows   [][]tableCell
		widths []int
	)
	rowPos := pos + 1
	for _, row := range n.Content {
		cellPos := rowPos + 1
		cells := make([]tableCell, 0, row.ChildCount())
		for i, cell := range row.Content {
			c := tableCell{
				content: joinLines(r.blocks(cell, cellPos+1)),
				align:   cellAlign(cell),
				header:  cell.Type == model.NodeTableHeader,
			}
			cells = append(cells, c)
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], c.content.width)
			cellPos += cell.NodeSize()
		}
		rows = append(rows, cells)
		rowPos += row.NodeSize()
	}

	out := []line{r.rule("┌", "┬", "┐", widths)}
	for i, cells := range rows {
		out = append(out, r.row(cells, widths))
		if i == 0 && len(rows) > 1 && allHeaders(cells) {
			out = append(out, r.rule("├", "┼", "┤", widths))
		}
	}
	return append(out, r.rule("└", "┴", "┘", widths))
}

func (r *renderer) rule(left, mid, right string, widths []int) line {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return r.styled(r.st.Border, left+strings.Join(parts, mid)+right)
}

func (r *renderer) row(cells []tableCell, widths []int) line {
	bar := r.styled(r.st.Border, "│")
	out := bar
	for i, w := range widths {
		var c tableCell
		if i < len(cells) {
			c = cells[i]
		}
		text := grapheme.Pad(c.content.text, c.content.width, w, c.align)
		out.text += " " + text + " " + bar.text
		out.width += max(w, c.content.width) + 2 + bar.width
	}
	return out
}

func joinLines(lines []line) line {
	var out line
	for i, l := range lines {
		if i > 0 {
			out.text += " "
			out.width++
		}
		out.text += l.text
		out.width += l.width
	}
	return out
}

func cellAlign(n *model.Node) grapheme.Align {
	a, _ := n.Attrs.(model.CellAttrs)
	switch a.TextAlign {
	case model.AlignCenter:
		return grapheme.AlignCenter
	case model.AlignRight:
		return grapheme.AlignRight
	}
	return grapheme.AlignLeft
}

func allHeaders(cells []tableCell) bool {
	for _, c := range cells {
		if !c.header {
			return false
		}
	}
	return len(cells) > 0
}
