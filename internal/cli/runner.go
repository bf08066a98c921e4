package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/forget/internal/model"
	"github.com/Makepad-fr/forget/internal/ui"
)

// -------------- subcommands ----------------

func newListCmd(root *Root) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List every sticky note and its todos",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(root)
			if err != nil {
				return err
			}
			notes, err := st.Load()
			if err != nil {
				return err
			}
			doList(&notes, group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group todos by pending/done")
	return cmd
}

func newAddCmd(root *Root) *cobra.Command {
	var command string
	cmd := &cobra.Command{
		Use:   "add <note#> <task...>",
		Short: "Add a todo to a sticky note",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usageErrorf("usage: forget add <note#> <task...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.TrimSpace(strings.Join(args[1:], " "))
			if task == "" {
				return usageErrorf("add: empty task")
			}
			return update(root, args[0], "", func(n *model.Note, _ int) (string, error) {
				n.List.Append(model.NewTodo(time.Now(), task, strings.TrimSpace(command)))
				return fmt.Sprintf("added to %q", n.Title), nil
			})
		},
	}
	cmd.Flags().StringVar(&command, "cmd", "", "shell command to run when the todo is activated")
	return cmd
}

func newDoneCmd(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "done <note#> <todo#>",
		Short: "Toggle done for a todo",
		Args:  exactArgs(2, "usage: forget done <note#> <todo#>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(root, args[0], args[1], func(n *model.Note, i int) (string, error) {
				t, _ := n.List.At(i)
				t.Completed = !t.Completed
				n.List.Set(i, t)
				if t.Completed {
					return "done: " + t.Task, nil
				}
				return "pending: " + t.Task, nil
			})
		},
	}
}

func newRemoveCmd(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <note#> <todo#>",
		Short: "Remove a todo",
		Args:  exactArgs(2, "usage: forget rm <note#> <todo#>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(root, args[0], args[1], func(n *model.Note, i int) (string, error) {
				t, _ := n.List.At(i)
				n.List.RemoveAt(i)
				return "removed: " + t.Task, nil
			})
		},
	}
}

func newResetCmd(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Back up the notes file and restore the default notes",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(root)
			if err != nil {
				return err
			}
			_, backup, err := st.Reset()
			if err != nil {
				return err
			}
			if backup != "" {
				ui.OK("reset; previous notes saved to " + backup)
			} else {
				ui.OK("reset")
			}
			return nil
		},
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("%s takes no arguments", cmd.Name())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s", usage)
		}
		return nil
	}
}

// update loads the notes, resolves the 1-based note (and todo, when todoArg
// is set) indexes, applies fn and saves.
func update(root *Root, noteArg, todoArg string, fn func(n *model.Note, todo int) (string, error)) error {
	st, err := openStore(root)
	if err != nil {
		return err
	}
	notes, err := st.Load()
	if err != nil {
		return err
	}

	ni, err := index("note", noteArg, notes.Len())
	if err != nil {
		return err
	}
	notes.Select(ni)
	n := notes.Active()

	ti := -1
	if todoArg != "" {
		if ti, err = index("todo", todoArg, n.List.Len()); err != nil {
			return err
		}
	}

	msg, err := fn(n, ti)
	if err != nil {
		return err
	}
	if err := st.Save(&notes); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	ui.OK(msg)
	return nil
}

func index(what, arg string, have int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, usageErrorf("%s: not a number: %s", what, arg)
	}
	if n < 1 || n > have {
		return 0, usageError{fmt.Errorf("%s %w: have %d, got %d", what, errIndex, have, n)}
	}
	return n - 1, nil
}

// -------------- rendering helpers --------------

func doList(notes *model.Collection, group bool) {
	if notes.Len() == 0 {
		fmt.Fprintln(os.Stdout, ui.Muted("no sticky notes"))
		return
	}
	for i, n := range notes.Items() {
		d, p := n.Stats()
		header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			ui.Title(fmt.Sprintf("%d. %s", i+1, n.Title)),
			ui.Success("✔"), d,
			ui.Pending("•"), p,
			ui.Accent("Total"), d+p,
		)

		var lines []string
		lines = append(lines, header)
		lines = append(lines, ui.Muted(ui.ProgressBar(d, d+p, 28)))
		lines = append(lines, "")

		todos := numbered(n.List.Items())
		if group {
			lines = append(lines, groupLines(todos)...)
		} else {
			lines = append(lines, flatLines(todos)...)
		}
		if text := strings.TrimSpace(n.Note); text != "" {
			lines = append(lines, "", ui.Muted(text))
		}
		ui.Panel(lines)
	}
	fmt.Fprintln(os.Stdout, ui.Muted("Tip: add with `forget add 1 \"Buy milk\"`"))
}

type numberedTodo struct {
	n int
	model.Todo
}

func numbered(todos []model.Todo) []numberedTodo {
	out := make([]numberedTodo, len(todos))
	for i, t := range todos {
		out[i] = numberedTodo{n: i + 1, Todo: t}
	}
	return out
}

func flatLines(todos []numberedTodo) []string {
	if len(todos) == 0 {
		return []string{ui.Muted("no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		idx := ui.Muted(fmt.Sprintf("%2d.", t.n))
		box := ui.Muted(ui.BoxUnchecked)
		task := t.Task
		if len([]rune(task)) > 80 {
			task = string([]rune(task)[:77]) + "..."
		}
		if t.Completed {
			box, task = ui.Success(ui.BoxChecked), ui.Done(task)
		}
		line := fmt.Sprintf("%s %s %s", idx, box, task)
		if t.HasCmd() {
			line += ui.Muted("  $ " + t.Cmd)
		}
		out = append(out, line)
	}
	return out
}

func groupLines(todos []numberedTodo) []string {
	var pend, done []numberedTodo
	for _, t := range todos {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.Accent("Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.Muted("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Accent("Done"))
	if len(done) == 0 {
		lines = append(lines, ui.Muted("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
