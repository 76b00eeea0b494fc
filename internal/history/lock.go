package history

import (
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".history.lock"

// fileLock serializes history writes across processes sharing a directory.
type fileLock struct {
	path  string
	flock *flock.Flock
}

func newFileLock(dir string) *fileLock {
	path := filepath.Join(dir, lockFileName)
	return &fileLock{path: path, flock: flock.New(path)}
}

// lock blocks until the exclusive lock is held. The directory must exist.
func (l *fileLock) lock() error {
	if err := l.flock.Lock(); err != nil {
		return &LockError{Path: l.path, Cause: err}
	}
	return nil
}

// rlock blocks until a shared lock is held.
func (l *fileLock) rlock() error {
	if err := l.flock.RLock(); err != nil {
		return &LockError{Path: l.path, Cause: err}
	}
	return nil
}

func (l *fileLock) unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return &LockError{Path: l.path, Cause: err}
	}
	return nil
}
