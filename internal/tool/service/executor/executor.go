package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/rgbridge/internal/config"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// Run executes a command, buffers both output streams and waits for it to exit.
//
// A start failure is returned as *CommandError with Stage "start" and a nil
// Result. A non-zero exit returns the Result together with the *exec.ExitError.
// When ctx is done the child is killed and ctx.Err() is returned with whatever
// output was captured. A child that exits 0 while a descendant keeps its
// pipes open past the kill grace still counts as a success. The child is reaped and its pipes closed on every path.
func (f *OSCommandExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	maxBytes := int(f.config.Search.MaxCommandOutputSize)
	stdout := newCollector(maxBytes)
	stderr := newCollector(maxBytes)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Grandchildren may hold the pipes open after a kill; stop waiting on them.
	cmd.WaitDelay = time.Duration(f.config.Search.KillGraceMs) * time.Millisecond

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	err := cmd.Wait()
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		// The child exited cleanly; only a descendant held the pipes open.
		err = nil
	}

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(err),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	return res, err
}

// exitCode extracts the exit code from an error returned by a process.
// Returns 0 if err is nil, the exit code if it's an ExitError, or -1 for unknown error types.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}
