package model

// Selection is a text selection. Anchor stays put when the selection is
// extended; Head moves. They may be in either order.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns an empty selection at pos.
func Cursor(pos int) Selection { return Selection{Anchor: pos, Head: pos} }

func (s Selection) From() int { return min(s.Anchor, s.Head) }

func (s Selection) To() int { return max(s.Anchor, s.Head) }

func (s Selection) Empty() bool { return s.Anchor == s.Head }

// Clamp keeps both ends inside [0, size].
func (s Selection) Clamp(size int) Selection {
	return Selection{Anchor: clampInt(s.Anchor, 0, size), Head: clampInt(s.Head, 0, size)}
}
