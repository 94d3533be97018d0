package preview

import "github.com/charmbracelet/lipgloss"

// Style controls how Render draws a document.
type Style struct {
	Heading lipgloss.Style
	Quote   lipgloss.Style
	Bullet  lipgloss.Style
	Code    lipgloss.Style
	Image   lipgloss.Style
	Border  lipgloss.Style

	Bold       lipgloss.Style
	Italic     lipgloss.Style
	Strike     lipgloss.Style
	InlineCode lipgloss.Style
	Link       lipgloss.Style

	Match        lipgloss.Style
	CurrentMatch lipgloss.Style
	Cursor       lipgloss.Style
}

// DefaultStyle is StyleFor on the default renderer.
func DefaultStyle() Style { return StyleFor(lipgloss.DefaultRenderer()) }

// StyleFor builds the default palette on r, so the color profile of r
// decides what escape sequences come out.
func StyleFor(r *lipgloss.Renderer) Style {
	muted := r.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Quote:   muted,
		Bullet:  r.NewStyle().Foreground(lipgloss.Color("244")),
		Code:    r.NewStyle().Foreground(lipgloss.Color("180")),
		Image:   r.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
		Border:  muted,

		Bold:       r.NewStyle().Bold(true),
		Italic:     r.NewStyle().Italic(true),
		Strike:     r.NewStyle().Strikethrough(true),
		InlineCode: r.NewStyle().Foreground(lipgloss.Color("180")).Background(lipgloss.Color("236")),
		Link:       r.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),

		Match:        r.NewStyle().Background(lipgloss.Color("58")),
		CurrentMatch: r.NewStyle().Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0")),
		Cursor:       r.NewStyle().Reverse(true),
	}
}

// PlainStyle draws no styling at all.
func PlainStyle() Style { return Style{} }
