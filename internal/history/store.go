package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/rgbridge/internal/config"
	userpath "github.com/Cyclone1070/rgbridge/internal/tool/service/path"
	"github.com/google/uuid"
)

// fileSystem defines the filesystem operations the store needs.
type fileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
	ProbeWritable(dir string) error
	UserHomeDir() (string, error)
}

// Store keeps search history in memory and mirrors it to <dir>/search_history.json.
// Entries are ordered newest first.
//
// Every mutation re-reads the file under an exclusive file lock before
// writing, so concurrent processes sharing a directory do not lose entries.
type Store struct {
	mu      sync.Mutex
	fs      fileSystem
	config  *config.Config
	dir     string
	entries []Entry

	now   func() time.Time
	newID func() string
}

// NewStore creates a Store. The directory comes from history.dir ("~" is
// expanded), falling back to ~/.config/ripgrep-gui when unset.
func NewStore(fs fileSystem, cfg *config.Config) *Store {
	if fs == nil {
		panic("fs is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &Store{
		fs:      fs,
		config:  cfg,
		dir:     strings.TrimSpace(cfg.History.Dir),
		entries: []Entry{},
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Dir returns the directory holding the history file.
func (s *Store) Dir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveDir()
}

// Load replaces the in-memory history with the file contents. A missing file
// yields an empty history, as does a corrupt one (with a logged warning).
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.prepareDir()
	if err != nil {
		return err
	}

	lock := newFileLock(dir)
	if err := lock.rlock(); err != nil {
		return err
	}
	defer func() { _ = lock.unlock() }()

	entries, err := s.read(dir)
	if err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// List returns a copy of the in-memory history, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Add records a search unless an identical one (same pattern, path and
// options) is already present. It reports whether an entry was added.
func (s *Store) Add(pattern, path string, opts Options) (Entry, bool, error) {
	if pattern == "" {
		return Entry{}, false, ErrEmptyPattern
	}

	opts.IncludeTypes = slices.Clone(opts.IncludeTypes)
	opts.ExcludeTypes = slices.Clone(opts.ExcludeTypes)

	var added Entry
	var ok bool
	err := s.update(func(entries []Entry) ([]Entry, bool) {
		for _, e := range entries {
			if e.sameSearch(pattern, path, opts) {
				return entries, false
			}
		}
		added = Entry{
			ID:        s.newID(),
			Pattern:   pattern,
			Path:      path,
			Options:   opts,
			Timestamp: s.now().UnixMilli(),
		}
		ok = true
		return s.truncate(append([]Entry{added}, entries...)), true
	})
	if err != nil {
		return Entry{}, false, err
	}
	return added, ok, nil
}

// Clear removes every entry and persists the empty history.
func (s *Store) Clear() error {
	return s.update(func([]Entry) ([]Entry, bool) {
		return []Entry{}, true
	})
}

// Cleanup drops entries at least history.max_age_days old and enforces
// history.max_entries. The file is rewritten only when something was removed.
func (s *Store) Cleanup() (int, error) {
	maxAge := time.Duration(s.config.History.MaxAgeDays) * 24 * time.Hour
	cutoff := s.now().Add(-maxAge).UnixMilli()

	var removed int
	err := s.update(func(entries []Entry) ([]Entry, bool) {
		kept := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if s.config.History.MaxAgeDays <= 0 || e.Timestamp > cutoff {
				kept = append(kept, e)
			}
		}
		kept = s.truncate(kept)
		removed = len(entries) - len(kept)
		return kept, removed > 0
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// SetDir moves the history to dir and writes the current entries there.
// A leading "~" is expanded; an empty dir selects the default location. The directory is created if
// needed and must be writable. It returns the directory now in use.
func (s *Store) SetDir(dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir = strings.TrimSpace(dir)
	if dir == "" {
		def, err := s.defaultDir()
		if err != nil {
			return "", err
		}
		dir = def
	} else {
		abs, err := s.absolute(dir)
		if err != nil {
			return "", err
		}
		dir = abs
	}

	if err := s.fs.EnsureDirs(dir); err != nil {
		return "", &DirError{Dir: dir, Cause: err}
	}
	if err := s.fs.ProbeWritable(dir); err != nil {
		return "", &DirError{Dir: dir, Cause: err}
	}

	lock := newFileLock(dir)
	if err := lock.lock(); err != nil {
		return "", err
	}
	defer func() { _ = lock.unlock() }()

	if err := s.write(dir, s.entries); err != nil {
		return "", err
	}
	s.dir = dir
	slog.Info("history_dir_changed", slog.String("dir", dir))
	return dir, nil
}

// update applies fn to the on-disk history under the exclusive lock and
// persists the result when fn reports a change.
func (s *Store) update(fn func([]Entry) ([]Entry, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.prepareDir()
	if err != nil {
		return err
	}

	lock := newFileLock(dir)
	if err := lock.lock(); err != nil {
		return err
	}
	defer func() { _ = lock.unlock() }()

	entries, err := s.read(dir)
	if err != nil {
		return err
	}

	next, changed := fn(entries)
	if changed {
		if err := s.write(dir, next); err != nil {
			return err
		}
	}
	s.entries = next
	return nil
}

func (s *Store) truncate(entries []Entry) []Entry {
	if limit := s.config.History.MaxEntries; limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func (s *Store) read(dir string) ([]Entry, error) {
	path := filepath.Join(dir, FileName)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("history_corrupt", slog.String("path", path), slog.String("error", err.Error()))
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Store) write(dir string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := s.fs.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	slog.Debug("history_saved", slog.String("path", path), slog.Int("entries", len(entries)))
	return nil
}

// prepareDir resolves the history directory and creates it if missing.
func (s *Store) prepareDir() (string, error) {
	dir, err := s.resolveDir()
	if err != nil {
		return "", err
	}
	if err := s.fs.EnsureDirs(dir); err != nil {
		return "", &DirError{Dir: dir, Cause: err}
	}
	return dir, nil
}

func (s *Store) resolveDir() (string, error) {
	var dir string
	var err error
	if s.dir != "" {
		dir, err = s.absolute(s.dir)
	} else {
		dir, err = s.defaultDir()
	}
	if err != nil {
		return "", err
	}
	s.dir = dir
	return dir, nil
}

// absolute expands a leading "~" in dir and makes it absolute.
func (s *Store) absolute(dir string) (string, error) {
	home, _ := s.fs.UserHomeDir()
	return userpath.Absolute(dir, home)
}

func (s *Store) defaultDir() (string, error) {
	home, err := s.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", config.ConfigDir), nil
}
