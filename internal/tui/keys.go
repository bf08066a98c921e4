package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Makepad-fr/forget/internal/app"
	"github.com/Makepad-fr/forget/internal/config"
)

// keyMap only feeds the help footer; dispatch happens in the app package.
type keyMap struct {
	mode     app.Mode
	bindings config.Keys

	Move       key.Binding
	Tabs       key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Run        key.Binding
	NewSticky  key.Binding
	NewTodo    key.Binding
	Edit       key.Binding
	FreeNote   key.Binding
	RemoveNote key.Binding
	Save       key.Binding
	Copy       key.Binding
	Quit       key.Binding
	Commit     key.Binding
	Field      key.Binding
	Scroll     key.Binding
}

func ctrl(r rune) string { return "ctrl+" + string(r) }

func bind(help, desc string, keys ...string) key.Binding {
	if len(keys) == 0 {
		keys = []string{help}
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func newKeyMap(k config.Keys) keyMap {
	return keyMap{
		mode:       app.Browsing{},
		bindings:   k,
		Move:       bind("↑/↓", "move", "up", "down"),
		Tabs:       bind("←/→", "tabs", "left", "right"),
		Toggle:     bind("⌫", "done", "backspace"),
		Delete:     bind("del", "delete", "delete"),
		Run:        bind("enter", "run cmd"),
		NewSticky:  bind(ctrl(k.NewStickyNote), "new sticky"),
		NewTodo:    bind(ctrl(k.NewTodo), "new todo"),
		Edit:       bind(ctrl(k.EditTodo), "edit"),
		FreeNote:   bind(ctrl(k.NewNote), "write note"),
		RemoveNote: bind(ctrl(k.RemoveStickyNote), "remove sticky"),
		Save:       bind(ctrl(k.Save), "save"),
		Copy:       bind(ctrl(k.Copy), "copy"),
		Quit:       bind(ctrl(k.Exit), "quit", ctrl(k.Exit), "esc"),
		Commit:     bind("enter", "commit"),
		Field:      bind("↑/↓", "task/cmd", "up", "down"),
		Scroll:     bind("pgup/pgdn", "scroll note", "pgup", "pgdown"),
	}
}

// bound reports whether ctrl+r is taken by a configured action.
func (k keyMap) bound(r rune) bool {
	b := k.bindings
	for _, c := range []rune{b.NewStickyNote, b.NewNote, b.NewTodo, b.EditTodo, b.RemoveStickyNote, b.Save, b.Exit, b.Copy} {
		if c == r {
			return true
		}
	}
	return false
}

func (k keyMap) ShortHelp() []key.Binding {
	switch k.mode.(type) {
	case app.AddingTodo:
		return []key.Binding{k.Commit, k.Field, bind(ctrl(k.bindings.NewTodo), "cancel"), k.Quit}
	case app.EditingTodo:
		return []key.Binding{k.Commit, k.Field, bind(ctrl(k.bindings.EditTodo), "cancel"), k.Quit}
	case app.AddingNote:
		return []key.Binding{k.Commit, bind(ctrl(k.bindings.NewStickyNote), "cancel"), k.Quit}
	case app.AddingFreeNote:
		return []key.Binding{k.Tabs, k.Scroll, bind(ctrl(k.bindings.NewNote), "done"), k.Save, k.Quit}
	}
	return []key.Binding{k.Move, k.Tabs, k.Toggle, k.Delete, k.Run, k.NewTodo, k.Edit, k.NewSticky, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.FreeNote, k.RemoveNote, k.Copy, k.Scroll},
	}
}
