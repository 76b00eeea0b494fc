package executor

import (
	"fmt"
)

// CommandError is returned when a command cannot be run at all.
// Stage names the step that failed ("start").
type CommandError struct {
	Cmd   string
	Cause error
	Stage string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to %s command %s: %v", e.Stage, e.Cmd, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }
