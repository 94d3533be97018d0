package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/inkwell/model"
)

var ErrUnknownAction = errors.New("unknown key action")

// KeyMap defines the chords of every command.
//
// Chords must be portable across terminals, so formatting uses alt where
// common ctrl chords are taken by the terminal.
type KeyMap struct {
	Indent, Outdent key.Binding

	Bold, Italic, Code, Strike key.Binding

	Blockquote                        key.Binding
	BulletList, OrderedList, TaskList key.Binding
	CodeBlock                         key.Binding
}

func DefaultBindings() KeyMap {
	return KeyMap{
		Indent:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent / next cell")),
		Outdent: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "outdent / previous cell")),

		Bold:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic: key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Code:   key.NewBinding(key.WithKeys("alt+e"), key.WithHelp("alt+e", "inline code")),
		Strike: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strikethrough")),

		Blockquote:  key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "blockquote")),
		BulletList:  key.NewBinding(key.WithKeys("alt+8"), key.WithHelp("alt+8", "bullet list")),
		OrderedList: key.NewBinding(key.WithKeys("alt+7"), key.WithHelp("alt+7", "ordered list")),
		TaskList:    key.NewBinding(key.WithKeys("alt+9"), key.WithHelp("alt+9", "task list")),
		CodeBlock:   key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "code block")),
	}
}

// actions maps config action names to KeyMap fields.
func (km *KeyMap) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"indent":       &km.Indent,
		"outdent":      &km.Outdent,
		"bold":         &km.Bold,
		"italic":       &km.Italic,
		"code":         &km.Code,
		"strike":       &km.Strike,
		"blockquote":   &km.Blockquote,
		"bullet_list":  &km.BulletList,
		"ordered_list": &km.OrderedList,
		"task_list":    &km.TaskList,
		"code_block":   &km.CodeBlock,
	}
}

// Actions lists the action names accepted by BindingsFromConfig.
func Actions() []string {
	var km KeyMap
	names := make([]string, 0, 11)
	for name := range km.actions() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BindingsFromConfig starts from DefaultBindings and replaces the chords of
// each named action. An empty chord list disables the action.
func BindingsFromConfig(overrides map[string][]string) (KeyMap, error) {
	km := DefaultBindings()
	fields := km.actions()
	for name, keys := range overrides {
		b, ok := fields[name]
		if !ok {
			return KeyMap{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
		}
		desc := b.Help().Desc
		if len(keys) == 0 {
			b.SetEnabled(false)
			continue
		}
		*b = key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
	}
	return km, nil
}

// IndentKeymap handles Tab and Shift-Tab in lists and plain text. It
// declines in tables so a lower table keymap can navigate cells.
func IndentKeymap(km KeyMap) Keymap {
	return Keymap{Name: "indent", Bindings: []Binding{
		{Key: km.Indent, Command: func(t Target) bool {
			switch ContextAt(t.Doc(), t.Selection().From()) {
			case ContextList:
				SinkListItem(t)
				return true
			case ContextTable:
				return false
			}
			return InsertTab(t)
		}},
		{Key: km.Outdent, Command: func(t Target) bool {
			switch ContextAt(t.Doc(), t.Selection().From()) {
			case ContextList:
				LiftListItem(t)
				return true
			case ContextTable:
				return false
			}
			return Dedent(t)
		}},
	}}
}

// TableKeymap navigates cells with Tab and Shift-Tab.
func TableKeymap(km KeyMap) Keymap {
	inTable := func(cmd Command) Command {
		return func(t Target) bool {
			if ContextAt(t.Doc(), t.Selection().From()) != ContextTable {
				return false
			}
			return cmd(t)
		}
	}
	return Keymap{Name: "table", Bindings: []Binding{
		{Key: km.Indent, Command: inTable(GoToNextCell)},
		{Key: km.Outdent, Command: inTable(GoToPreviousCell)},
	}}
}

// FormattingKeymap binds mark and block toggles. None of them apply inside
// headings.
func FormattingKeymap(km KeyMap) Keymap {
	return Keymap{Name: "formatting", Bindings: []Binding{
		{Key: km.Bold, Command: ToggleMark(model.MarkBold)},
		{Key: km.Italic, Command: ToggleMark(model.MarkItalic)},
		{Key: km.Code, Command: ToggleMark(model.MarkCode)},
		{Key: km.Strike, Command: ToggleMark(model.MarkStrike)},
		{Key: km.Blockquote, Command: exemptInHeading(ToggleBlockquote)},
		{Key: km.BulletList, Command: ToggleList(model.NodeBulletList)},
		{Key: km.OrderedList, Command: ToggleList(model.NodeOrderedList)},
		{Key: km.TaskList, Command: ToggleList(model.NodeTaskList)},
		{Key: km.CodeBlock, Command: exemptInHeading(ToggleCodeBlock)},
	}}
}

// NewDefaultRouter registers the table, formatting and indent keymaps in
// that order, so indent rules are tried first.
func NewDefaultRouter(km KeyMap) *Router {
	return NewRouter(TableKeymap(km), FormattingKeymap(km), IndentKeymap(km))
}

// DefaultRouter is NewDefaultRouter with DefaultBindings.
func DefaultRouter() *Router { return NewDefaultRouter(DefaultBindings()) }
