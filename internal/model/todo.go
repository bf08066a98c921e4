package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is how todo timestamps are written: local time, whole seconds.
const DateLayout = "2006-01-02T15:04:05-07:00"

// Todo is one task on a sticky note. Cmd, when set, is a shell command
// the user can launch from the list.
type Todo struct {
	Date      time.Time
	Task      string
	Cmd       string
	Completed bool
}

// NewTodo builds an open todo stamped at now.
func NewTodo(now time.Time, task, cmd string) Todo {
	return Todo{Date: now, Task: task, Cmd: cmd}
}

func (t Todo) HasCmd() bool { return t.Cmd != "" }

type todoJSON struct {
	Date      string `json:"date"`
	Task      string `json:"task"`
	Cmd       string `json:"cmd"`
	Completed bool   `json:"completed"`
}

func (t Todo) MarshalJSON() ([]byte, error) {
	return json.Marshal(todoJSON{
		Date:      t.Date.Local().Format(DateLayout),
		Task:      t.Task,
		Cmd:       t.Cmd,
		Completed: t.Completed,
	})
}

// UnmarshalJSON accepts RFC 3339 dates with or without fractional seconds.
func (t *Todo) UnmarshalJSON(b []byte) error {
	var w todoJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var d time.Time
	if w.Date != "" {
		var err error
		d, err = time.Parse(time.RFC3339, w.Date)
		if err != nil {
			return fmt.Errorf("todo date %q: %w", w.Date, err)
		}
	}
	*t = Todo{Date: d.Local(), Task: w.Task, Cmd: w.Cmd, Completed: w.Completed}
	return nil
}
