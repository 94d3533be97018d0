// Package grapheme measures and fits text in terminal cells.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Split returns the grapheme clusters of text.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// ClusterWidth is the number of terminal cells one cluster occupies.
func ClusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}

// Width is the number of terminal cells text occupies.
func Width(text string) int {
	n := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		n += ClusterWidth(g.Str())
	}
	return n
}

// Truncate cuts text to at most width cells, ending with an ellipsis when
// anything was cut. Clusters are never split.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	limit := width - ClusterWidth(ellipsis)
	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		w := ClusterWidth(c)
		if used+w > limit {
			break
		}
		sb.WriteString(c)
		used += w
	}
	sb.WriteString(ellipsis)
	return sb.String()
}

// Align is where Pad places text inside its field.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Pad fills text with spaces to width cells. textWidth is the visible width
// of text, which may carry escape sequences Width cannot see through. Text
// wider than width is returned as is.
func Pad(text string, textWidth, width int, a Align) string {
	gap := width - textWidth
	if gap <= 0 {
		return text
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", gap) + text
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	}
	return text + strings.Repeat(" ", gap)
}
