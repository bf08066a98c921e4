// Package tui runs the interactive sticky-note view on Bubble Tea.
//
// Bubble Tea reads the keyboard; a self-rescheduling tick supplies the
// periodic event. Every message is handed to the app state machine
// synchronously inside Update, so the notes are only ever touched from
// the program's event loop.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/forget/internal/app"
	"github.com/Makepad-fr/forget/internal/ui"
)

// DefaultTick is the tick interval when none is given on the command line.
const DefaultTick = 250 * time.Millisecond

type tickMsg time.Time

type Model struct {
	app   *app.App
	theme ui.Theme
	tick  time.Duration

	keys  keyMap
	help  help.Model
	todos list.Model
	note  viewport.Model
	title textinput.Model
	task  textinput.Model
	cmd   textinput.Model

	noteSrc   string
	noteWidth int
	frame     int

	width, height int
}

func New(a *app.App, theme ui.Theme, tick time.Duration) Model {
	if tick <= 0 {
		tick = DefaultTick
	}

	l := list.New(nil, todoDelegate{theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.NoItems = theme.Muted.PaddingLeft(2)

	m := Model{
		app:    a,
		theme:  theme,
		tick:   tick,
		keys:   newKeyMap(a.Keys()),
		help:   help.New(),
		todos:  l,
		note:   viewport.New(0, 0),
		title:  newInput("title ", "Name the sticky note"),
		task:   newInput("task  ", "What needs doing?"),
		cmd:    newInput("cmd   ", "optional shell command"),
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Run starts the program and blocks until the user quits.
func Run(a *app.App, theme ui.Theme, tick time.Duration) error {
	ui.ApplyColorProfile()
	p := tea.NewProgram(New(a, theme, tick), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.nextTick() }

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case tickMsg:
		m.frame++
		m.app.OnTick()
		m.refresh()
		if m.app.ShouldQuit() {
			return m, tea.Quit
		}
		return m, m.nextTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			m.note.SetYOffset(m.note.YOffset - max(1, m.note.Height/2))
			return m, nil
		case "pgdown":
			m.note.SetYOffset(m.note.YOffset + max(1, m.note.Height/2))
			return m, nil
		case "ctrl+c":
			if !m.keys.bound('c') {
				m.app.Quit()
				return m, tea.Quit
			}
		}
		for _, k := range translate(msg) {
			m.app.Handle(k)
		}
		m.refresh()
		if m.app.ShouldQuit() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// translate maps a Bubble Tea key onto state machine events. Pasted text
// arrives as a single message carrying many runes.
func translate(msg tea.KeyMsg) []app.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]app.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\r' {
				r = '\n'
			}
			out = append(out, app.Char(r))
		}
		return out
	case tea.KeySpace:
		return []app.Key{app.Char(' ')}
	case tea.KeyEnter:
		return []app.Key{{Type: app.KeyEnter}}
	case tea.KeyBackspace:
		return []app.Key{{Type: app.KeyBackspace}}
	case tea.KeyDelete:
		return []app.Key{{Type: app.KeyDelete}}
	case tea.KeyUp:
		return []app.Key{{Type: app.KeyUp}}
	case tea.KeyDown:
		return []app.Key{{Type: app.KeyDown}}
	case tea.KeyLeft:
		return []app.Key{{Type: app.KeyLeft}}
	case tea.KeyRight:
		return []app.Key{{Type: app.KeyRight}}
	case tea.KeyEsc:
		return []app.Key{{Type: app.KeyEsc}}
	}
	if s := msg.String(); strings.HasPrefix(s, "ctrl+") {
		if rest := strings.TrimPrefix(s, "ctrl+"); len(rest) == 1 {
			return []app.Key{app.Ctrl(rune(rest[0]))}
		}
	}
	return nil
}
