package search

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the caller cancels a search or its deadline
// passes. The child process has been killed by the time it is returned.
var ErrCancelled = errors.New("search cancelled")

// LaunchError is returned when the external search tool cannot be started.
type LaunchError struct {
	Cmd   string
	Cause error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to execute search command: %v", e.Cause)
}

func (e *LaunchError) Unwrap() error { return e.Cause }

// ExecutionError is returned when the tool exits non-zero and writes to stderr.
// Its message is the stderr text, verbatim.
type ExecutionError struct {
	Stderr   string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	return e.Stderr
}

// InvalidRequestError is returned when a request fails validation.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) InvalidInput() bool { return true }
