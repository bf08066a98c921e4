package app

import "unicode/utf8"

// Mode is the input mode. Exactly one value is held at a time; each
// variant carries its own pending input, so switching modes drops the
// previous mode's buffers.
type Mode interface {
	Name() string
	mode()
}

// Browsing is the default mode: navigation, completion and removal.
type Browsing struct{}

// AddingNote collects the title of a new sticky note.
type AddingNote struct {
	Title string
}

// AddingTodo collects a new todo for the active note.
type AddingTodo struct {
	Entry Entry
}

// EditingTodo collects the replacement for the todo at Index.
type EditingTodo struct {
	Entry Entry
	Index int
}

// AddingFreeNote types straight into the active note's free text.
type AddingFreeNote struct{}

func (Browsing) Name() string       { return "browsing" }
func (AddingNote) Name() string     { return "new sticky note" }
func (AddingTodo) Name() string     { return "new todo" }
func (EditingTodo) Name() string    { return "edit todo" }
func (AddingFreeNote) Name() string { return "note" }

func (Browsing) mode()       {}
func (AddingNote) mode()     {}
func (AddingTodo) mode()     {}
func (EditingTodo) mode()    {}
func (AddingFreeNote) mode() {}

// Field selects which half of an Entry receives input.
type Field int

const (
	TaskField Field = iota
	CmdField
)

// Entry is the two-field todo buffer.
type Entry struct {
	Task  string
	Cmd   string
	Field Field
}

func (e *Entry) Push(r rune) {
	if e.Field == CmdField {
		e.Cmd += string(r)
	} else {
		e.Task += string(r)
	}
}

func (e *Entry) Pop() {
	if e.Field == CmdField {
		e.Cmd = popRune(e.Cmd)
	} else {
		e.Task = popRune(e.Task)
	}
}

// ToggleField switches between the task and command fields.
func (e *Entry) ToggleField() {
	if e.Field == TaskField {
		e.Field = CmdField
	} else {
		e.Field = TaskField
	}
}

func popRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
