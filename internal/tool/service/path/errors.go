package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// ResolveError is returned when a user-supplied path cannot be resolved.
type ResolveError struct {
	Path  string
	Cause error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve path %s: %v", e.Path, e.Cause)
}
func (e *ResolveError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrHomeUnknown = errors.New("home directory unknown")
)
