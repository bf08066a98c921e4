package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/forget/internal/app"
	"github.com/Makepad-fr/forget/internal/ui"
)

const (
	headerHeight = 3 // boxed tab bar
	footerHeight = 2 // status + help
	paneChrome   = 3 // border + pane title
)

type layout struct {
	bodyH, leftW, rightW int
}

func (m *Model) layout() layout {
	bodyH := m.height - headerHeight - footerHeight - m.entryHeight()
	if bodyH < paneChrome+1 {
		bodyH = paneChrome + 1
	}
	leftW := m.width * 3 / 5
	if leftW < 20 {
		leftW = min(20, m.width)
	}
	return layout{bodyH: bodyH, leftW: leftW, rightW: max(m.width-leftW, 4)}
}

func (m *Model) entryHeight() int {
	switch m.app.Mode().(type) {
	case app.AddingNote:
		return 4
	case app.AddingTodo, app.EditingTodo:
		return 5
	}
	return 0
}

// refresh copies app state into the bubbles components. It runs after
// every event so View stays a pure render.
func (m *Model) refresh() {
	lay := m.layout()
	mode := m.app.Mode()
	m.keys.mode = mode
	m.help.Width = m.width

	var items []list.Item
	selected := 0
	noteText := ""
	if n := m.app.Notes().Active(); n != nil {
		for _, t := range n.List.Items() {
			items = append(items, todoItem{t})
		}
		selected = n.List.SelectedIndex()
		noteText = n.Note
	}
	m.todos.SetSize(max(lay.leftW-2, 1), max(lay.bodyH-paneChrome, 1))
	m.todos.SetItems(items)
	m.todos.Select(selected)

	m.note.Width = max(lay.rightW-2, 1)
	m.note.Height = max(lay.bodyH-paneChrome, 1)
	_, writing := mode.(app.AddingFreeNote)
	src := "md:" + noteText
	if writing {
		src = "raw:" + noteText
	}
	if src != m.noteSrc || m.note.Width != m.noteWidth {
		if writing {
			wrapped := lipgloss.NewStyle().Width(m.note.Width).Render(noteText + "▏")
			m.note.SetContent(m.theme.Text.Render(wrapped))
			m.note.GotoBottom()
		} else if noteText == "" {
			m.note.SetContent(m.theme.Muted.Render(fmt.Sprintf("empty, ctrl+%c to write", m.app.Keys().NewNote)))
		} else {
			m.note.SetContent(renderMarkdown(noteText, m.note.Width))
		}
		m.noteSrc, m.noteWidth = src, m.note.Width
	}

	inputW := max(m.width-4-len(m.task.Prompt), 1)
	for _, ti := range []*textinput.Model{&m.title, &m.task, &m.cmd} {
		ti.Width = inputW
		ti.Blur()
	}
	switch md := mode.(type) {
	case app.AddingNote:
		setInput(&m.title, md.Title, true)
	case app.AddingTodo:
		m.setEntry(md.Entry)
	case app.EditingTodo:
		m.setEntry(md.Entry)
	}
}

func (m *Model) setEntry(e app.Entry) {
	setInput(&m.task, e.Task, e.Field == app.TaskField)
	setInput(&m.cmd, e.Cmd, e.Field == app.CmdField)
}

func setInput(ti *textinput.Model, v string, focus bool) {
	ti.SetValue(v)
	ti.CursorEnd()
	if focus {
		ti.Focus()
	}
}

func (m Model) View() string {
	lay := m.layout()
	parts := []string{m.viewHeader(), m.viewBody(lay)}
	if e := m.viewEntry(); e != "" {
		parts = append(parts, e)
	}
	parts = append(parts, m.viewStatus(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	tabs := m.app.Notes().Tabs()
	title := m.theme.Titles.Render(m.theme.Title)
	var b strings.Builder
	b.WriteString(title)
	for i, t := range tabs.Titles {
		b.WriteString(m.theme.Tabs.Render(" │ "))
		if i == tabs.Index {
			b.WriteString(m.theme.ActiveTab.Render(t))
		} else {
			b.WriteString(m.theme.Tabs.Render(t))
		}
	}
	if m.app.Dirty() {
		b.WriteString(m.theme.Muted.Render("  ● unsaved"))
	}
	inner := max(m.width-2, 1)
	return m.theme.Border.Width(inner).Render(ansi.Truncate(b.String(), inner, "…"))
}

func (m Model) viewBody(lay layout) string {
	_, writing := m.app.Mode().(app.AddingFreeNote)
	leftFrame, rightFrame := m.theme.FocusFrame, m.theme.Border
	if writing {
		leftFrame, rightFrame = m.theme.Border, m.theme.FocusFrame
	}

	heading := m.theme.Muted.Render("no sticky notes")
	if n := m.app.Notes().Active(); n != nil {
		done, pending := n.Stats()
		heading = fmt.Sprintf("%s  %s %d  %s %d",
			m.theme.Titles.Render(n.Title),
			ui.Success("✔"), done,
			ui.Pending("•"), pending,
		)
	}
	left := leftFrame.Width(max(lay.leftW-2, 1)).Height(lay.bodyH - 2).
		Render(ansi.Truncate(heading, max(lay.leftW-2, 1), "…") + "\n" + m.todos.View())

	noteHeading := m.theme.Titles.Render("Note")
	if writing {
		noteHeading += m.theme.Muted.Render("  (writing)")
	}
	right := rightFrame.Width(max(lay.rightW-2, 1)).Height(lay.bodyH - 2).
		Render(noteHeading + "\n" + m.note.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) viewEntry() string {
	var lines []string
	switch m.app.Mode().(type) {
	case app.AddingNote:
		lines = []string{m.theme.Titles.Render("New sticky note"), m.title.View()}
	case app.AddingTodo:
		lines = []string{m.theme.Titles.Render("New todo"), m.task.View(), m.cmd.View()}
	case app.EditingTodo:
		lines = []string{m.theme.Titles.Render("Edit todo"), m.task.View(), m.cmd.View()}
	default:
		return ""
	}
	return m.theme.FocusFrame.Width(max(m.width-2, 1)).Render(strings.Join(lines, "\n"))
}

func (m Model) viewStatus() string {
	var line string
	switch st := m.app.Status(); {
	case st.Text == "":
		line = m.theme.Muted.Render(m.app.Mode().Name())
	case st.Err:
		line = m.theme.Error.Render("✖ " + st.Text)
	default:
		line = m.theme.Success.Render("✔ " + st.Text)
	}
	if n := m.app.Running(); n > 0 {
		frames := spinner.MiniDot.Frames
		line += m.theme.Muted.Render(fmt.Sprintf("  %s %d running", frames[m.frame%len(frames)], n))
	}
	return line
}
