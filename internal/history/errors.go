package history

import (
	"errors"
	"fmt"
)

// -- Errors --

type LockError struct {
	Path  string
	Cause error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("failed to lock history at %s: %v", e.Path, e.Cause)
}
func (e *LockError) Unwrap() error { return e.Cause }

type DirError struct {
	Dir   string
	Cause error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("history directory %s is unusable: %v", e.Dir, e.Cause)
}
func (e *DirError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrEmptyPattern = errors.New("pattern cannot be empty")
)
