// Command inkwell-demo is an interactive terminal editor for one note.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/commands"
	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/headingid"
	"github.com/iw2rmb/inkwell/markup"
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/preview"
	"github.com/iw2rmb/inkwell/search"
)

const sampleNote = `<h1>Welcome to inkwell</h1>
<p>Type to edit. <strong>Bold</strong>, <em>italic</em> and <code>code</code> toggle from the keyboard.</p>
<ul data-type="taskList">
<li data-checked="true"><p>Tab nests a task</p></li>
<li data-checked="false"><p>Shift+Tab lifts it back</p></li>
</ul>
<table><tr><th>Key</th><th style="text-align: right">Action</th></tr>
<tr><td>tab</td><td style="text-align: right">next cell</td></tr></table>
<div class="image-container size-small" data-size="small"><img src="cat.png" alt="a cat"></div>`

type demoKeys struct {
	Quit, Save, Undo, Redo, Compose, Search, NextMatch key.Binding
}

func defaultDemoKeys() demoKeys {
	return demoKeys{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Undo:      key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		Compose:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "toggle composition")),
		Search:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "search")),
		NextMatch: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next match")),
	}
}

type app struct {
	ed      *engine.Engine
	overlay *search.Plugin
	router  *commands.Router
	keys    demoKeys
	help    help.Model
	query   textinput.Model

	path      string
	opts      markup.Options
	searching bool
	matches   []search.Range
	current   int
	status    string
	width     int
}

func newModel(cfg config.Config, path string, log *slog.Logger) (app, error) {
	opts := cfg.MarkupOptions(log)
	src := sampleNote
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return app{}, err
		}
		if err == nil {
			src = string(data)
		}
	}
	doc, err := markup.ParseString(src, opts)
	if err != nil {
		return app{}, err
	}
	km, err := cfg.KeyMap()
	if err != nil {
		return app{}, err
	}

	overlay := search.New()
	plugins := []engine.Plugin{overlay}
	if cfg.Editor.HeadingIDs {
		plugins = append([]engine.Plugin{headingid.New()}, plugins...)
	}
	ed, err := engine.New(engine.Config{
		Doc:          doc,
		Plugins:      plugins,
		HistoryLimit: cfg.Editor.HistoryLimit,
		Logger:       log,
	})
	if err != nil {
		return app{}, err
	}
	ed.SetSelection(model.Cursor(firstCursor(doc)))

	q := textinput.New()
	q.Placeholder = "search"
	q.Prompt = "/ "

	return app{
		ed:      ed,
		overlay: overlay,
		router:  commands.NewDefaultRouter(km),
		keys:    defaultDemoKeys(),
		help:    help.New(),
		query:   q,
		path:    path,
		opts:    opts,
	}, nil
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		m.status = ""
		m.handleKey(msg)
	}
	return m, nil
}

func (m *app) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.query.Blur()
		m.runSearch(m.query.Value())
		return *m, nil
	case tea.KeyEsc:
		m.searching = false
		m.query.Blur()
		_ = search.ClearSearchResults(m.ed)
		m.matches = nil
		return *m, nil
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return *m, cmd
}

func (m *app) runSearch(q string) {
	m.matches = search.FindAll(m.ed.Doc(), q)
	m.current = 1
	if err := search.SetSearchResults(m.ed, m.matches, m.current); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%d match(es)", len(m.matches))
	m.jumpToCurrent()
}

func (m *app) jumpToCurrent() {
	if d, ok := m.overlay.Decorations().Current(); ok {
		m.ed.SetSelection(model.Cursor(d.From))
	}
}

func (m *app) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.save()
		return
	case key.Matches(msg, m.keys.Undo):
		m.ed.Undo()
		return
	case key.Matches(msg, m.keys.Redo):
		m.ed.Redo()
		return
	case key.Matches(msg, m.keys.Compose):
		if m.ed.Composing() {
			m.ed.EndComposition()
		} else {
			m.ed.StartComposition()
		}
		return
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.query.Focus()
		return
	case key.Matches(msg, m.keys.NextMatch):
		if n := len(m.overlay.Decorations()); n > 0 {
			m.current = m.current%n + 1
			m.matches = m.matchesFromOverlay()
			_ = search.SetSearchResults(m.ed, m.matches, m.current)
			m.jumpToCurrent()
		}
		return
	}
	if m.router.Handle(m.ed, msg) {
		return
	}

	doc, pos := m.ed.Doc(), m.ed.Selection().Head
	switch msg.Type {
	case tea.KeyLeft:
		m.ed.SetSelection(model.Cursor(moveHorizontal(doc, pos, -1)))
	case tea.KeyRight:
		m.ed.SetSelection(model.Cursor(moveHorizontal(doc, pos, 1)))
	case tea.KeyUp:
		m.ed.SetSelection(model.Cursor(moveVertical(doc, pos, -1)))
	case tea.KeyDown:
		m.ed.SetSelection(model.Cursor(moveVertical(doc, pos, 1)))
	case tea.KeyBackspace:
		backspace(m.ed)
	case tea.KeyEnter:
		splitBlock(m.ed)
	case tea.KeySpace:
		typeText(m.ed, " ")
	case tea.KeyRunes:
		typeText(m.ed, string(msg.Runes))
	}
}

// matchesFromOverlay reads the live, remapped ranges back from the overlay.
func (m *app) matchesFromOverlay() []search.Range {
	decos := m.overlay.Decorations()
	out := make([]search.Range, len(decos))
	for i, d := range decos {
		out[i] = search.Range{From: d.From, To: d.To}
	}
	return out
}

func (m *app) save() {
	if m.path == "" {
		m.status = "no file to save to"
		return
	}
	var b strings.Builder
	if err := markup.Serialize(&b, m.ed.Doc(), m.opts); err != nil {
		m.status = err.Error()
		return
	}
	if err := os.WriteFile(m.path, []byte(b.String()), 0o644); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + m.path
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

func (m app) View() string {
	var b strings.Builder
	b.WriteString(preview.RenderWith(m.ed.Doc(), preview.Options{
		Style:       preview.DefaultStyle(),
		Decorations: m.overlay.Decorations(),
		Cursor:      m.ed.Selection().Head,
		ShowCursor:  true,
	}))
	b.WriteString("\n\n")

	sel := m.ed.Selection()
	info := fmt.Sprintf("%s  v%d  pos %d  %s  %s",
		inkwell.VersionTag(), m.ed.Version(), sel.Head,
		commands.ContextAt(m.ed.Doc(), sel.From()), m.ed.Composition())
	if m.status != "" {
		info += "  " + m.status
	}
	b.WriteString(statusStyle.Render(info))
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.query.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(append(m.router.ShortHelp(),
		m.keys.Undo, m.keys.Redo, m.keys.Search, m.keys.Save, m.keys.Quit)))
	return b.String()
}

func main() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, _, err := config.Resolve(wd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	m, err := newModel(cfg, path, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
