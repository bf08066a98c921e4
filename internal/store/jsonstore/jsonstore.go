package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Makepad-fr/forget/internal/model"
)

// JSON-backed snapshot of every sticky note. Single file, human-readable.
// No locking; one interactive session owns the file at a time.

const dataFileName = "note_db.json"

// ErrCorrupt is returned (wrapped in *CorruptError) when the snapshot exists
// but cannot be decoded. Reset recovers from it.
var ErrCorrupt = errors.New("corrupt snapshot")

type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrCorrupt, e.Err)
}

func (e *CorruptError) Unwrap() []error { return []error{ErrCorrupt, e.Err} }

type Store struct {
	dir string
	now func() time.Time
}

func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) Path() string { return filepath.Join(s.dir, dataFileName) }

// Load reads the snapshot, seeding it with the default notes on first run.
func (s *Store) Load() (model.Collection, error) {
	p := s.Path()
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := s.seed(); err != nil {
			return model.Collection{}, err
		}
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return model.Collection{}, fmt.Errorf("read file: %w", err)
	}
	var c model.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return model.Collection{}, &CorruptError{Path: p, Err: err}
	}
	return c, nil
}

// Save overwrites the snapshot with c. The previous file survives a failed write.
func (s *Store) Save(c *model.Collection) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeAtomic(s.Path(), b)
}

// Reset moves an existing snapshot aside as note_db.json.bak-<unix> and
// writes the default notes in its place. It returns the backup path, or ""
// when there was nothing to back up.
func (s *Store) Reset() (model.Collection, string, error) {
	p := s.Path()
	var backup string
	if _, err := os.Stat(p); err == nil {
		backup = fmt.Sprintf("%s.bak-%d", p, s.now().Unix())
		if err := os.Rename(p, backup); err != nil {
			return model.Collection{}, "", fmt.Errorf("backup: %w", err)
		}
	}
	if err := s.seed(); err != nil {
		return model.Collection{}, backup, err
	}
	c, err := s.Load()
	return c, backup, err
}

func (s *Store) seed() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := model.DefaultCollection(s.now())
	return s.Save(&c)
}

func writeAtomic(p string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".*")
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
