// Package commands maps key chords to structural editing commands.
//
// Keymaps are tried from the most recently registered to the first, and the
// first command that reports handled stops the search. Commands never
// return errors: a command that cannot apply either reports not handled or
// consumes the key without effect.
package commands

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// Target is what commands operate on. *engine.Engine implements it.
type Target interface {
	Doc() *model.Node
	Schema() *model.Schema
	Selection() model.Selection
	Dispatch(tr *transform.Transaction) error
}

// Command reports whether it handled the key.
type Command func(t Target) bool

type Binding struct {
	Key     key.Binding
	Command Command
}

// Keymap is an ordered list of bindings. Earlier bindings in one keymap win
// over later ones for the same chord.
type Keymap struct {
	Name     string
	Bindings []Binding
}

type Router struct {
	keymaps []Keymap
}

func NewRouter(keymaps ...Keymap) *Router {
	r := &Router{}
	for _, km := range keymaps {
		r.Register(km)
	}
	return r
}

// Register adds km with higher priority than every keymap registered before.
func (r *Router) Register(km Keymap) {
	r.keymaps = append(r.keymaps, km)
}

func (r *Router) Keymaps() []Keymap { return append([]Keymap(nil), r.keymaps...) }

// Handle runs the first matching command that reports handled.
func (r *Router) Handle(t Target, msg tea.KeyMsg) bool {
	for i := len(r.keymaps) - 1; i >= 0; i-- {
		for _, b := range r.keymaps[i].Bindings {
			if !key.Matches(msg, b.Key) {
				continue
			}
			if b.Command(t) {
				return true
			}
		}
	}
	return false
}

// ShortHelp returns the enabled bindings of all keymaps, highest priority
// first, without repeating a chord.
func (r *Router) ShortHelp() []key.Binding {
	seen := map[string]bool{}
	var out []key.Binding
	for i := len(r.keymaps) - 1; i >= 0; i-- {
		for _, b := range r.keymaps[i].Bindings {
			if !b.Key.Enabled() {
				continue
			}
			h := b.Key.Help().Key
			if seen[h] {
				continue
			}
			seen[h] = true
			out = append(out, b.Key)
		}
	}
	return out
}

func dispatch(t Target, tr *transform.Transaction) bool {
	return t.Dispatch(tr) == nil
}
