// Package app is the sticky-note state machine. It owns the notes and the
// input mode and turns discrete key and tick events into mutations. It
// knows nothing about terminals; the tui package feeds it events.
//
// Every method runs to completion on the caller's goroutine. The only state
// shared with other goroutines lives behind the Runner.
package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Makepad-fr/forget/internal/config"
	"github.com/Makepad-fr/forget/internal/model"
)

// StatusTTL is how long a status message stays visible.
const StatusTTL = 4 * time.Second

// Saver persists the notes on the save command.
type Saver interface {
	Save(c *model.Collection) error
}

// Runner launches todo commands and cleans them up on quit.
type Runner interface {
	Spawn(command string) error
	Running() int
	Reap() int
	Shutdown() int
}

type Options struct {
	Keys   config.Keys
	Saver  Saver
	Runner Runner
	// Copy writes text to the system clipboard. Nil disables the copy key.
	Copy func(string) error
	Now  func() time.Time
}

// Status is the one-line feedback shown under the notes.
type Status struct {
	Text    string
	Err     bool
	expires time.Time
}

type App struct {
	notes model.Collection
	mode  Mode
	opt   Options

	status Status
	dirty  bool
	quit   bool
}

func New(notes model.Collection, opt Options) *App {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Keys == (config.Keys{}) {
		opt.Keys = config.DefaultKeys()
	}
	return &App{notes: notes, mode: Browsing{}, opt: opt}
}

func (a *App) Notes() *model.Collection { return &a.notes }
func (a *App) Mode() Mode                { return a.mode }
func (a *App) Keys() config.Keys         { return a.opt.Keys }
func (a *App) Status() Status            { return a.status }
func (a *App) ShouldQuit() bool          { return a.quit }

// Dirty reports unsaved changes.
func (a *App) Dirty() bool { return a.dirty }

// Running is the number of launched commands still alive.
func (a *App) Running() int {
	if a.opt.Runner == nil {
		return 0
	}
	return a.opt.Runner.Running()
}

// Handle dispatches one key event.
func (a *App) Handle(k Key) {
	switch k.Type {
	case KeyRune:
		a.OnChar(k.Rune)
	case KeyEnter:
		a.OnChar('\n')
	case KeyBackspace:
		a.OnBackspace()
	case KeyDelete:
		a.OnDelete()
	case KeyUp:
		a.OnUp()
	case KeyDown:
		a.OnDown()
	case KeyLeft:
		a.OnLeft()
	case KeyRight:
		a.OnRight()
	case KeyEsc:
		a.Quit()
	case KeyCtrl:
		a.OnCtrl(k.Rune)
	}
}

// OnChar feeds a typed character to the active mode. '\n' commits in the
// entry modes and launches the selected todo's command while browsing.
func (a *App) OnChar(r rune) {
	switch m := a.mode.(type) {
	case Browsing:
		if r == '\n' {
			a.activate()
		}
	case AddingNote:
		if r == '\n' {
			a.commitNote(m)
			return
		}
		m.Title += string(r)
		a.mode = m
	case AddingTodo:
		if r == '\n' {
			a.commitTodo(m)
			return
		}
		m.Entry.Push(r)
		a.mode = m
	case EditingTodo:
		if r == '\n' {
			a.commitEdit(m)
			return
		}
		m.Entry.Push(r)
		a.mode = m
	case AddingFreeNote:
		if n := a.notes.Active(); n != nil {
			n.Note += string(r)
			a.dirty = true
		}
	}
}

// OnBackspace toggles completion while browsing and deletes the last
// character of the active buffer otherwise.
func (a *App) OnBackspace() {
	switch m := a.mode.(type) {
	case Browsing:
		if n := a.notes.Active(); n != nil {
			if t := n.List.Current(); t != nil {
				t.Completed = !t.Completed
				a.dirty = true
			}
		}
	case AddingNote:
		m.Title = popRune(m.Title)
		a.mode = m
	case AddingTodo:
		m.Entry.Pop()
		a.mode = m
	case EditingTodo:
		m.Entry.Pop()
		a.mode = m
	case AddingFreeNote:
		if n := a.notes.Active(); n != nil && n.Note != "" {
			n.Note = popRune(n.Note)
			a.dirty = true
		}
	}
}

// OnDelete removes the selected todo. Browsing only.
func (a *App) OnDelete() {
	if _, ok := a.mode.(Browsing); !ok {
		return
	}
	n := a.notes.Active()
	if n == nil || n.List.Len() == 0 {
		return
	}
	n.List.RemoveSelected()
	a.dirty = true
}

func (a *App) OnUp()   { a.vertical(func(l *model.List[model.Todo]) { l.SelectPrevious() }) }
func (a *App) OnDown() { a.vertical(func(l *model.List[model.Todo]) { l.SelectNext() }) }

// vertical moves the todo cursor, or flips between task and command while
// a todo is being written.
func (a *App) vertical(move func(*model.List[model.Todo])) {
	switch m := a.mode.(type) {
	case AddingTodo:
		m.Entry.ToggleField()
		a.mode = m
	case EditingTodo:
		m.Entry.ToggleField()
		a.mode = m
	case AddingNote:
	default:
		if n := a.notes.Active(); n != nil {
			move(&n.List)
		}
	}
}

func (a *App) OnLeft() {
	if a.tabsUnlocked() {
		a.notes.PreviousTab()
	}
}

func (a *App) OnRight() {
	if a.tabsUnlocked() {
		a.notes.NextTab()
	}
}

// Tabs stay put while an entry is pending so a commit lands where it started.
func (a *App) tabsUnlocked() bool {
	switch a.mode.(type) {
	case Browsing, AddingFreeNote:
		return true
	}
	return false
}

// OnCtrl handles ctrl+<c> through the configured bindings.
func (a *App) OnCtrl(c rune) {
	k := a.opt.Keys
	switch c {
	case k.Exit:
		a.Quit()
	case k.NewStickyNote:
		a.enter(AddingNote{})
	case k.NewNote:
		if a.notes.Active() == nil {
			a.setError("no sticky note to write in")
			return
		}
		a.enter(AddingFreeNote{})
	case k.NewTodo:
		a.enter(AddingTodo{})
	case k.EditTodo:
		a.startEdit()
	case k.RemoveStickyNote:
		a.removeNote()
	case k.Save:
		a.Save()
	case k.Copy:
		a.copySelected()
	}
}

// enter switches to m, discarding whatever the current mode held. Asking
// for the mode that is already active returns to Browsing.
func (a *App) enter(m Mode) {
	if a.mode.Name() == m.Name() {
		a.mode = Browsing{}
		return
	}
	a.mode = m
}

func (a *App) startEdit() {
	if _, editing := a.mode.(EditingTodo); editing {
		a.mode = Browsing{}
		return
	}
	n := a.notes.Active()
	if n == nil {
		return
	}
	t, ok := n.List.Selected()
	if !ok {
		return
	}
	a.mode = EditingTodo{
		Entry: Entry{Task: t.Task, Cmd: t.Cmd},
		Index: n.List.SelectedIndex(),
	}
}

func (a *App) commitNote(m AddingNote) {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		a.setError("title cannot be empty")
		return
	}
	a.notes.AddNote(title)
	a.dirty = true
	a.mode = Browsing{}
}

func (a *App) commitTodo(m AddingTodo) {
	n := a.notes.Active()
	if n == nil {
		a.mode = Browsing{}
		return
	}
	t, ok := a.buildTodo(m.Entry)
	if !ok {
		return
	}
	n.List.Append(t)
	n.List.Select(n.List.Len() - 1)
	a.dirty = true
	a.mode = Browsing{}
}

func (a *App) commitEdit(m EditingTodo) {
	n := a.notes.Active()
	if n == nil {
		a.mode = Browsing{}
		return
	}
	t, ok := a.buildTodo(m.Entry)
	if !ok {
		return
	}
	if n.List.Set(m.Index, t) {
		a.dirty = true
	}
	a.mode = Browsing{}
}

func (a *App) buildTodo(e Entry) (model.Todo, bool) {
	task := strings.TrimSpace(e.Task)
	if task == "" {
		a.setError("task cannot be empty")
		return model.Todo{}, false
	}
	return model.NewTodo(a.opt.Now(), task, strings.TrimSpace(e.Cmd)), true
}

func (a *App) removeNote() {
	if _, ok := a.mode.(Browsing); !ok {
		return
	}
	n := a.notes.Active()
	if n == nil {
		return
	}
	title := n.Title
	a.notes.RemoveActive()
	a.dirty = true
	a.setInfo(fmt.Sprintf("removed %q", title))
}

// activate launches the selected todo's command, if it has one.
func (a *App) activate() {
	n := a.notes.Active()
	if n == nil {
		return
	}
	t, ok := n.List.Selected()
	if !ok || !t.HasCmd() || a.opt.Runner == nil {
		return
	}
	if err := a.opt.Runner.Spawn(t.Cmd); err != nil {
		log.Printf("spawn %q: %v", t.Cmd, err)
		a.setError("could not run: " + err.Error())
		return
	}
	log.Printf("spawned %q", t.Cmd)
	a.setInfo("running " + t.Cmd)
}

func (a *App) copySelected() {
	if a.opt.Copy == nil {
		return
	}
	n := a.notes.Active()
	if n == nil {
		return
	}
	t, ok := n.List.Selected()
	if !ok {
		return
	}
	text := t.Task
	if t.HasCmd() {
		text = t.Cmd
	}
	if err := a.opt.Copy(text); err != nil {
		log.Printf("clipboard: %v", err)
		a.setError("copy failed: " + err.Error())
		return
	}
	a.setInfo("copied")
}

// Save writes the notes. A failure leaves the session running so the user
// can retry.
func (a *App) Save() {
	if a.opt.Saver == nil {
		return
	}
	if err := a.opt.Saver.Save(&a.notes); err != nil {
		log.Printf("save: %v", err)
		a.setError("save failed: " + err.Error())
		return
	}
	a.dirty = false
	a.setInfo("saved")
}

// Quit marks the session finished and stops every spawned command.
func (a *App) Quit() {
	a.quit = true
	if a.opt.Runner != nil {
		if n := a.opt.Runner.Shutdown(); n > 0 {
			log.Printf("killed %d command(s) on exit", n)
		}
	}
}

// OnTick expires the status line and forgets finished commands.
func (a *App) OnTick() {
	if a.status.Text != "" && !a.opt.Now().Before(a.status.expires) {
		a.status = Status{}
	}
	if a.opt.Runner != nil {
		a.opt.Runner.Reap()
	}
}

func (a *App) setInfo(s string)  { a.setStatus(s, false) }
func (a *App) setError(s string) { a.setStatus(s, true) }

func (a *App) setStatus(s string, isErr bool) {
	a.status = Status{Text: s, Err: isErr, expires: a.opt.Now().Add(StatusTTL)}
}
