package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/forget/internal/app"
	"github.com/Makepad-fr/forget/internal/config"
	"github.com/Makepad-fr/forget/internal/proc"
	"github.com/Makepad-fr/forget/internal/store/jsonstore"
	"github.com/Makepad-fr/forget/internal/tui"
	"github.com/Makepad-fr/forget/internal/ui"
)

// Root holds the persistent flags shared by every command.
type Root struct {
	Dir   string
	Debug bool
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		if errors.Is(err, errIndex) {
			ui.Hint("run `forget ls` to see valid indexes")
		}
		return 2
	}
	if errors.Is(err, jsonstore.ErrCorrupt) {
		ui.Hint("run `forget reset` to back up the broken file and start fresh")
	}
	return 1
}

func NewRootCmd() *cobra.Command {
	root := &Root{}

	cmd := &cobra.Command{
		Use:           "forget [tick-ms]",
		Short:         "Sticky notes and todos in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive view, redrawing every 250ms
  forget

  # Slower tick
  forget 1000

  # Scriptable commands
  forget ls --group
  forget add 1 "Water the plants" --cmd "echo done"
  forget done 1 3
`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErrorf("expected at most one argument (tick interval in ms), got %d", len(args))
			}
			if len(args) == 1 {
				if _, err := parseTick(args[0]); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tick := tui.DefaultTick
			if len(args) == 1 {
				tick, _ = parseTick(args[0])
			}
			return runTUI(root, tick)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVar(&root.Dir, "dir", "", "data directory (default $"+config.HomeEnv+" or ~/.forget)")
	cmd.PersistentFlags().BoolVar(&root.Debug, "debug", false, "write a debug log to <dir>/debug.log")

	cmd.AddCommand(newListCmd(root))
	cmd.AddCommand(newAddCmd(root))
	cmd.AddCommand(newDoneCmd(root))
	cmd.AddCommand(newRemoveCmd(root))
	cmd.AddCommand(newResetCmd(root))

	return cmd
}

func parseTick(s string) (time.Duration, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, usageErrorf("tick interval must be a positive number of milliseconds, got %q", s)
	}
	return time.Duration(n) * time.Millisecond, nil
}

func runTUI(root *Root, tick time.Duration) error {
	dir, err := config.Dir(root.Dir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	keys, err := cfg.Keys()
	if err != nil {
		return err
	}
	st := jsonstore.New(dir)
	notes, err := st.Load()
	if err != nil {
		return err
	}

	closeLog, err := setupLog(dir, root.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	pool := proc.NewPool("")
	defer pool.Shutdown()

	a := app.New(notes, app.Options{
		Keys:   keys,
		Saver:  st,
		Runner: pool,
		Copy:   clipboard.WriteAll,
	})
	log.Printf("session start: dir=%s tick=%s notes=%d", dir, tick, notes.Len())
	return tui.Run(a, ui.NewTheme(cfg), tick)
}

// setupLog routes the standard logger away from the terminal, which the
// renderer owns while the view is up.
func setupLog(dir string, debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "forget")
	if err != nil {
		return nil, fmt.Errorf("debug log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func openStore(root *Root) (*jsonstore.Store, error) {
	dir, err := config.Dir(root.Dir)
	if err != nil {
		return nil, err
	}
	return jsonstore.New(dir), nil
}
