package snapshot

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/iw2rmb/inkwell/model"
)

// wireNode is the stored form of a node. Attribute fields are flattened and
// left empty for types that do not use them.
type wireNode struct {
	Type    string      `msgpack:"t"`
	Text    string      `msgpack:"x,omitempty"`
	Marks   []wireMark  `msgpack:"m,omitempty"`
	Attrs   *wireAttrs  `msgpack:"a,omitempty"`
	Content []*wireNode `msgpack:"c,omitempty"`
}

type wireMark struct {
	Type  string `msgpack:"t"`
	Href  string `msgpack:"href,omitempty"`
	Title string `msgpack:"title,omitempty"`
}

type wireAttrs struct {
	Level     uint8   `msgpack:"level,omitempty"`
	ID        string  `msgpack:"id,omitempty"`
	Src       *string `msgpack:"src,omitempty"`
	Alt       *string `msgpack:"alt,omitempty"`
	Title     *string `msgpack:"title,omitempty"`
	Size      string  `msgpack:"size,omitempty"`
	AssetPath *string `msgpack:"assetPath,omitempty"`
	Align     string  `msgpack:"align,omitempty"`
	Colspan   uint16  `msgpack:"colspan,omitempty"`
	Rowspan   uint16  `msgpack:"rowspan,omitempty"`
	Checked   bool    `msgpack:"checked,omitempty"`
	Start     uint32  `msgpack:"start,omitempty"`
	Language  string  `msgpack:"lang,omitempty"`
}

func toWire(n *model.Node) (*wireNode, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil node", model.ErrInvalidContent)
	}
	w := &wireNode{Type: n.Type.String(), Text: n.Text}
	for _, m := range n.Marks {
		w.Marks = append(w.Marks, wireMark{Type: m.Type.String(), Href: m.Href, Title: m.Title})
	}
	attrs, err := attrsToWire(n.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%s attrs: %w", n.Type, err)
	}
	w.Attrs = attrs
	for _, c := range n.Content {
		cw, err := toWire(c)
		if err != nil {
			return nil, err
		}
		w.Content = append(w.Content, cw)
	}
	return w, nil
}

func attrsToWire(a model.Attrs) (*wireAttrs, error) {
	switch a := a.(type) {
	case nil:
		return nil, nil
	case model.HeadingAttrs:
		level, err := safecast.Conv[uint8](a.Level)
		if err != nil {
			return nil, err
		}
		return &wireAttrs{Level: level, ID: a.ID}, nil
	case model.ImageAttrs:
		return &wireAttrs{Src: a.Src, Alt: a.Alt, Title: a.Title, Size: string(a.Size), AssetPath: a.AssetPath}, nil
	case model.CellAttrs:
		colspan, err := safecast.Conv[uint16](a.Colspan)
		if err != nil {
			return nil, err
		}
		rowspan, err := safecast.Conv[uint16](a.Rowspan)
		if err != nil {
			return nil, err
		}
		return &wireAttrs{Align: string(a.TextAlign), Colspan: colspan, Rowspan: rowspan}, nil
	case model.TaskItemAttrs:
		return &wireAttrs{Checked: a.Checked}, nil
	case model.OrderedListAttrs:
		start, err := safecast.Conv[uint32](a.Start)
		if err != nil {
			return nil, err
		}
		return &wireAttrs{Start: start}, nil
	case model.CodeBlockAttrs:
		return &wireAttrs{Language: a.Language}, nil
	}
	return nil, fmt.Errorf("%w: %T", model.ErrInvalidAttrs, a)
}

func fromWire(w *wireNode) (*model.Node, error) {
	t, ok := model.ParseNodeType(w.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown node type %q", model.ErrInvalidContent, w.Type)
	}
	if t == model.NodeText {
		marks := make([]model.Mark, 0, len(w.Marks))
		for _, m := range w.Marks {
			mt, ok := model.ParseMarkType(m.Type)
			if !ok {
				return nil, fmt.Errorf("%w: unknown mark %q", model.ErrInvalidMark, m.Type)
			}
			marks = append(marks, model.Mark{Type: mt, Href: m.Href, Title: m.Title})
		}
		if w.Text == "" {
			return nil, fmt.Errorf("%w: empty text node", model.ErrInvalidContent)
		}
		return model.NewText(w.Text, marks...), nil
	}
	attrs, err := attrsFromWire(t, w.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%s attrs: %w", t, err)
	}
	content := make([]*model.Node, 0, len(w.Content))
	for _, cw := range w.Content {
		c, err := fromWire(cw)
		if err != nil {
			return nil, err
		}
		content = append(content, c)
	}
	return model.NewNode(t, attrs, content...), nil
}

func attrsFromWire(t model.NodeType, w *wireAttrs) (model.Attrs, error) {
	if w == nil {
		return model.DefaultAttrs(t), nil
	}
	switch t {
	case model.NodeHeading:
		return model.HeadingAttrs{Level: int(w.Level), ID: w.ID}, nil
	case model.NodeImage:
		size := model.SizeClass(w.Size)
		if size == "" {
			size = model.SizeOriginal
		}
		return model.ImageAttrs{Src: w.Src, Alt: w.Alt, Title: w.Title, Size: size, AssetPath: w.AssetPath}, nil
	case model.NodeTableCell, model.NodeTableHeader:
		align := model.Align(w.Align)
		if align == "" {
			align = model.AlignLeft
		}
		return model.CellAttrs{TextAlign: align, Colspan: max(int(w.Colspan), 1), Rowspan: max(int(w.Rowspan), 1)}, nil
	case model.NodeTaskItem:
		return model.TaskItemAttrs{Checked: w.Checked}, nil
	case model.NodeOrderedList:
		start, err := safecast.Conv[int](w.Start)
		if err != nil {
			return nil, err
		}
		return model.OrderedListAttrs{Start: start}, nil
	case model.NodeCodeBlock:
		return model.CodeBlockAttrs{Language: w.Language}, nil
	}
	return nil, nil
}
