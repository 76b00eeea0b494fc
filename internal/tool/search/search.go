package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/Cyclone1070/rgbridge/internal/config"
	"github.com/Cyclone1070/rgbridge/internal/tool/service/executor"
)

// Searcher runs ripgrep for a request and turns its output into results.
type Searcher struct {
	runner    commandRunner
	config    *config.Config
	pathStyle PathStyle
}

// NewSearcher creates a Searcher with injected dependencies. The path style
// comes from search.path_style, with "auto" resolved against the host OS.
func NewSearcher(runner commandRunner, cfg *config.Config) *Searcher {
	if runner == nil {
		panic("runner is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &Searcher{
		runner:    runner,
		config:    cfg,
		pathStyle: ResolvePathStyle(cfg.Search.PathStyle, runtime.GOOS),
	}
}

// PathStyle reports the line-splitting style this Searcher parses with.
func (s *Searcher) PathStyle() PathStyle {
	return s.pathStyle
}

// maxResults is search.max_results, never above DefaultMaxResults.
func (s *Searcher) maxResults() int {
	return min(s.config.Search.MaxResults, DefaultMaxResults)
}

// Search executes ripgrep and classifies the outcome:
//   - the tool could not start: *LaunchError
//   - ctx was cancelled or timed out: an error wrapping ErrCancelled
//   - exit 0: results parsed from stdout
//   - non-zero exit with empty stderr: no matches, an empty slice
//   - non-zero exit with stderr: *ExecutionError carrying stderr verbatim
//
// The request is not validated here; callers at the boundary do that.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	argv := append([]string{s.config.Search.RipgrepPath}, BuildArgs(req)...)

	slog.Debug("search_started",
		slog.String("root", req.RootPath),
		slog.Any("argv", argv),
		slog.String("path_style", s.pathStyle.String()))
	start := time.Now()

	res, err := s.runner.Run(ctx, argv, "", nil)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			slog.Info("search_cancelled", slog.String("reason", err.Error()))
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		var cmdErr *executor.CommandError
		if errors.As(err, &cmdErr) || res == nil {
			slog.Warn("search_launch_failed", slog.String("cmd", argv[0]), slog.String("error", err.Error()))
			return nil, &LaunchError{Cmd: argv[0], Cause: err}
		}
		// Remaining errors are exit statuses; res carries the details.
	}

	if res.ExitCode != 0 {
		if res.Stderr == "" {
			slog.Debug("search_no_matches", slog.Int("exit_code", res.ExitCode))
			return []SearchResult{}, nil
		}
		slog.Debug("search_failed", slog.Int("exit_code", res.ExitCode))
		return nil, &ExecutionError{Stderr: res.Stderr, ExitCode: res.ExitCode}
	}

	if res.Truncated {
		slog.Warn("search_output_truncated", slog.Int64("limit_bytes", s.config.Search.MaxCommandOutputSize))
	}

	results := ParseOutput(res.Stdout, req.Pattern, s.pathStyle, s.maxResults())
	slog.Debug("search_complete",
		slog.Int("results", len(results)),
		slog.Duration("elapsed", time.Since(start)))

	return results, nil
}
