package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/forget/internal/model"
	"github.com/Makepad-fr/forget/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item
type todoItem struct {
	model.Todo
}

func (i todoItem) FilterValue() string { return i.Task }

// todoDelegate renders one todo per line: marker, checkbox, task and the
// command, if any, in a muted suffix.
type todoDelegate struct {
	theme ui.Theme
}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}

	marker := d.theme.Highlight + " "
	pad := ansi.StringWidth(marker)
	prefix := fmt.Sprintf("%*s", pad, "")
	style := d.theme.Normal
	if index == m.Index() {
		prefix = d.theme.Selected.Render(marker)
		style = d.theme.Selected
	}

	box := ui.BoxUnchecked
	if it.Completed {
		box = ui.BoxChecked
		style = style.Strikethrough(true).Faint(true)
	} else {
		style = style.Italic(true)
	}

	room := m.Width() - pad
	if room < 1 {
		room = 1
	}
	text := box + " " + it.Task
	suffix := ""
	if it.HasCmd() {
		suffix = "  $ " + it.Cmd
	}
	line := ansi.Truncate(text+suffix, room, "…")
	if tw := ansi.StringWidth(text); tw < ansi.StringWidth(line) {
		text, suffix = ansi.Cut(line, 0, tw), ansi.Cut(line, tw, room)
	} else {
		text, suffix = line, ""
	}

	fmt.Fprint(w, prefix+style.Render(text)+d.theme.Muted.Render(suffix))
}
