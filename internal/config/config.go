package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	fileName = "config.json"
	dirName  = ".forget"
	// HomeEnv overrides the data directory.
	HomeEnv = "FORGET_HOME"
)

// ErrInvalid marks a config file that parsed but cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config is the user's config.json. Every *_char_ctrl field is the letter
// that, pressed with ctrl, triggers the action.
type Config struct {
	Title                    string   `json:"title"`
	NewStickyNoteCharCtrl    string   `json:"new_sticky_note_char_ctrl"`
	NewNoteCharCtrl          string   `json:"new_note_char_ctrl"`
	NewTodoCharCtrl          string   `json:"new_todo_char_ctrl"`
	EditTodoCharCtrl         string   `json:"edit_todo_char_ctrl"`
	RemoveStickyNoteCharCtrl string   `json:"remove_sticky_note_char_ctrl"`
	SaveStateToDBCharCtrl    string   `json:"save_state_to_db_char_ctrl"`
	ExitKeyCharCtrl          string   `json:"exit_key_char_ctrl"`
	CopyCharCtrl             string   `json:"copy_char_ctrl"`
	HighlightString          string   `json:"highlight_string"`
	AppColors                ColorCfg `json:"app_colors"`
}

// Keys is the resolved binding table.
type Keys struct {
	NewStickyNote    rune
	NewNote          rune
	NewTodo          rune
	EditTodo         rune
	RemoveStickyNote rune
	Save             rune
	Exit             rune
	Copy             rune
}

func Default() *Config {
	return &Config{
		Title:                    "Forget It",
		NewStickyNoteCharCtrl:    "h",
		NewNoteCharCtrl:          "k",
		NewTodoCharCtrl:          "n",
		EditTodoCharCtrl:         "e",
		RemoveStickyNoteCharCtrl: "u",
		SaveStateToDBCharCtrl:    "s",
		ExitKeyCharCtrl:          "q",
		CopyCharCtrl:             "y",
		HighlightString:          "✔",
		AppColors:                DefaultColors(),
	}
}

// DefaultKeys is the binding table of Default().
func DefaultKeys() Keys {
	k, _ := Default().Keys()
	return k
}

// Dir resolves the data directory: override, then $FORGET_HOME, then ~/.forget.
func Dir(override string) (string, error) {
	if override = strings.TrimSpace(override); override != "" {
		return override, nil
	}
	if env := strings.TrimSpace(os.Getenv(HomeEnv)); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func Path(dir string) string { return filepath.Join(dir, fileName) }

// Load reads dir/config.json, writing the defaults first when it is missing.
// Keys absent from the file keep their default values.
func Load(dir string) (*Config, error) {
	p := Path(dir)
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := Save(dir, Default()); err != nil {
			return nil, err
		}
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, p, err)
	}
	if _, err := cfg.Keys(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	if err := cfg.AppColors.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(Path(dir), b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Keys validates the ctrl bindings and returns them as runes.
func (c *Config) Keys() (Keys, error) {
	var k Keys
	fields := []struct {
		name string
		val  string
		dst  *rune
	}{
		{"new_sticky_note_char_ctrl", c.NewStickyNoteCharCtrl, &k.NewStickyNote},
		{"new_note_char_ctrl", c.NewNoteCharCtrl, &k.NewNote},
		{"new_todo_char_ctrl", c.NewTodoCharCtrl, &k.NewTodo},
		{"edit_todo_char_ctrl", c.EditTodoCharCtrl, &k.EditTodo},
		{"remove_sticky_note_char_ctrl", c.RemoveStickyNoteCharCtrl, &k.RemoveStickyNote},
		{"save_state_to_db_char_ctrl", c.SaveStateToDBCharCtrl, &k.Save},
		{"exit_key_char_ctrl", c.ExitKeyCharCtrl, &k.Exit},
		{"copy_char_ctrl", c.CopyCharCtrl, &k.Copy},
	}
	seen := map[rune]string{}
	for _, f := range fields {
		r, err := ctrlChar(f.val)
		if err != nil {
			return Keys{}, fmt.Errorf("%w: %s: %v", ErrInvalid, f.name, err)
		}
		if other, dup := seen[r]; dup {
			return Keys{}, fmt.Errorf("%w: %s and %s are both ctrl+%c", ErrInvalid, other, f.name, r)
		}
		seen[r] = f.name
		*f.dst = r
	}
	return k, nil
}

// ctrlChar accepts a single letter. ctrl+i, ctrl+m and ctrl+[ arrive as tab,
// enter and esc, so they cannot be bound.
func ctrlChar(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("want a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return 0, fmt.Errorf("want a letter a-z, got %q", s)
	}
	if r == 'i' || r == 'm' {
		return 0, fmt.Errorf("ctrl+%c is indistinguishable from another key", r)
	}
	return r, nil
}
