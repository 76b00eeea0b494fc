package search

import (
	"context"

	"github.com/Cyclone1070/rgbridge/internal/tool/service/executor"
)

// commandRunner defines the interface for executing search commands.
type commandRunner interface {
	Run(ctx context.Context, cmd []string, dir string, env []string) (*executor.Result, error)
}
