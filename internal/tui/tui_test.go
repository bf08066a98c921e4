package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/forget/internal/app"
	"github.com/Makepad-fr/forget/internal/config"
	"github.com/Makepad-fr/forget/internal/model"
	"github.com/Makepad-fr/forget/internal/ui"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *app.App) {
	t.Helper()
	a := app.New(model.DefaultCollection(epoch), app.Options{Now: func() time.Time { return epoch }})
	m := New(a, ui.NewTheme(config.Default()), 0)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), a
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []app.Key
	}{
		{"rune", runes("a"), []app.Key{app.Char('a')}},
		{"paste", runes("hi"), []app.Key{app.Char('h'), app.Char('i')}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []app.Key{app.Char(' ')}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []app.Key{{Type: app.KeyEnter}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []app.Key{{Type: app.KeyBackspace}}},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, []app.Key{{Type: app.KeyDelete}}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []app.Key{{Type: app.KeyLeft}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []app.Key{{Type: app.KeyEsc}}},
		{"ctrl+n", tea.KeyMsg{Type: tea.KeyCtrlN}, []app.Key{app.Ctrl('n')}},
		{"ctrl+h", tea.KeyMsg{Type: tea.KeyCtrlH}, []app.Key{app.Ctrl('h')}},
		{"alt rune ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, nil},
		{"tab ignored", tea.KeyMsg{Type: tea.KeyTab}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.msg)
			if len(got) != len(tt.want) {
				t.Fatalf("translate(%v) = %v, want %v", tt.msg, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("translate(%v)[%d] = %v, want %v", tt.msg, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUpdate_AddTodo(t *testing.T) {
	m, a := newTestModel(t)

	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeyCtrlN},
		runes("buy milk"),
		tea.KeyMsg{Type: tea.KeyDown},
		runes("echo hi"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if _, ok := a.Mode().(app.Browsing); !ok {
		t.Fatalf("mode = %s, want browsing", a.Mode().Name())
	}
	n := a.Notes().Active()
	got, _ := n.List.Selected()
	if got.Task != "buy milk" || got.Cmd != "echo hi" {
		t.Fatalf("selected todo = %+v", got)
	}
	if m.todos.Index() != n.List.SelectedIndex() {
		t.Fatalf("list index %d, want %d", m.todos.Index(), n.List.SelectedIndex())
	}
	if !strings.Contains(ansi.Strip(m.View()), "buy milk") {
		t.Fatal("view does not show the new todo")
	}
}

func TestUpdate_EntryInputsFollowMode(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("abc"))
	if m.task.Value() != "abc" || !m.task.Focused() || m.cmd.Focused() {
		t.Fatalf("task=%q focused=%v cmd focused=%v", m.task.Value(), m.task.Focused(), m.cmd.Focused())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.task.Focused() || !m.cmd.Focused() {
		t.Fatal("arrow did not move focus to the command field")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.task.Value() != "You can add a Sticky Note by hitting ctrl-h" {
		t.Fatalf("edit buffer = %q", m.task.Value())
	}
}

func TestUpdate_EscQuits(t *testing.T) {
	m, a := newTestModel(t)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !a.ShouldQuit() {
		t.Fatal("esc did not quit the app")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestUpdate_CtrlCQuitsWhenUnbound(t *testing.T) {
	m, a := newTestModel(t)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !a.ShouldQuit() || cmd == nil {
		t.Fatal("ctrl+c should quit when no action uses it")
	}
}

func TestUpdate_TickReschedules(t *testing.T) {
	m, a := newTestModel(t)

	_, cmd := m.Update(tickMsg(epoch))
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	if a.ShouldQuit() {
		t.Fatal("tick quit the app")
	}
}

func TestUpdate_TabsSwitchNotes(t *testing.T) {
	m, a := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := a.Notes().Active().Title; got != "Note Two" {
		t.Fatalf("active = %q, want Note Two", got)
	}
	if m.todos.Index() != 0 || len(m.todos.Items()) != 3 {
		t.Fatalf("list shows %d items at %d", len(m.todos.Items()), m.todos.Index())
	}
}

func TestView_Header(t *testing.T) {
	m, _ := newTestModel(t)

	out := ansi.Strip(m.View())
	for _, want := range []string{"Forget It", "Note One", "Note Two", "browsing"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestKeyMap_Bound(t *testing.T) {
	k := newKeyMap(config.DefaultKeys())
	if !k.bound('q') || !k.bound('y') {
		t.Fatal("default bindings not reported as bound")
	}
	if k.bound('c') {
		t.Fatal("ctrl+c is not bound by default")
	}
}

func TestTodoDelegate_Render(t *testing.T) {
	d := todoDelegate{theme: ui.NewTheme(config.Default())}
	items := []list.Item{
		todoItem{model.NewTodo(epoch, "open docs", "xdg-open https://example.com")},
		todoItem{model.Todo{Task: "shipped", Completed: true}},
	}
	l := list.New(items, d, 30, 5)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, items[0])
	got := ansi.Strip(buf.String())
	if !strings.HasPrefix(got, "✔ "+ui.BoxUnchecked+" open docs") {
		t.Fatalf("selected row = %q", got)
	}
	if w := ansi.StringWidth(got); w > 30 {
		t.Fatalf("row width %d exceeds list width", w)
	}

	buf.Reset()
	d.Render(&buf, l, 1, items[1])
	got = ansi.Strip(buf.String())
	if !strings.Contains(got, ui.BoxChecked+" shipped") {
		t.Fatalf("completed row = %q", got)
	}
}

type stubRunner struct{ live int }

func (r *stubRunner) Spawn(string) error { r.live++; return nil }
func (r *stubRunner) Running() int       { return r.live }
func (r *stubRunner) Reap() int          { return 0 }
func (r *stubRunner) Shutdown() int      { n := r.live; r.live = 0; return n }

func TestView_ShowsRunningCommands(t *testing.T) {
	r := &stubRunner{}
	a := app.New(model.DefaultCollection(epoch), app.Options{Runner: r, Now: func() time.Time { return epoch }})
	var tm tea.Model = New(a, ui.NewTheme(config.Default()), 0)
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m := tm.(Model)

	for i := 0; i < 8; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if r.live != 1 {
		t.Fatalf("spawned %d commands, want 1", r.live)
	}
	if out := ansi.Strip(m.View()); !strings.Contains(out, "1 running") {
		t.Fatal("status line does not show the running command")
	}
}
