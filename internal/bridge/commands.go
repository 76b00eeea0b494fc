package bridge

import (
	"context"
	"log/slog"

	"github.com/Cyclone1070/rgbridge/internal/history"
	"github.com/Cyclone1070/rgbridge/internal/tool/search"
)

// searcher runs one ripgrep search.
type searcher interface {
	Search(ctx context.Context, req search.SearchRequest) ([]search.SearchResult, error)
}

// historyStore is the subset of history.Store the commands use.
type historyStore interface {
	Add(pattern, path string, opts history.Options) (history.Entry, bool, error)
	List() []history.Entry
	Clear() error
	Cleanup() (int, error)
	SetDir(dir string) (string, error)
}

// EmptyRequest is the request type of commands that take no arguments.
type EmptyRequest struct{}

type HistoryClearResponse struct {
	Cleared bool `json:"cleared"`
}

type HistoryCleanupResponse struct {
	Removed int `json:"removed"`
}

type HistorySetPathRequest struct {
	// Path is the new history directory; empty selects the default.
	Path string `json:"path" mapstructure:"path"`
}

type HistorySetPathResponse struct {
	Path string `json:"path"`
}

// NewCommands returns every command the bridge serves.
func NewCommands(s searcher, h historyStore) []Command {
	return []Command{
		NewSearch(s, h),
		NewHistoryList(h),
		NewHistoryClear(h),
		NewHistoryCleanup(h),
		NewHistorySetPath(h),
	}
}

// NewSearch creates the search command. A successful search is recorded in
// history; failing to record it is logged and does not fail the search.
func NewSearch(s searcher, h historyStore) Command {
	return NewBaseCommand(
		"search",
		"Searches file contents under root_path with ripgrep",
		func(ctx context.Context, req search.SearchRequest) ([]search.SearchResult, error) {
			results, err := s.Search(ctx, req)
			if err != nil {
				return nil, err
			}
			if h != nil {
				if _, _, err := h.Add(req.Pattern, req.RootPath, OptionsFromRequest(req)); err != nil {
					slog.Warn("history_add_failed", slog.String("error", err.Error()))
				}
			}
			return results, nil
		},
	)
}

// NewHistoryList creates the history_list command.
func NewHistoryList(h historyStore) Command {
	return NewBaseCommand(
		"history_list",
		"Lists recorded searches, newest first",
		func(ctx context.Context, _ EmptyRequest) ([]history.Entry, error) {
			return h.List(), nil
		},
	)
}

// NewHistoryClear creates the history_clear command.
func NewHistoryClear(h historyStore) Command {
	return NewBaseCommand(
		"history_clear",
		"Removes every recorded search",
		func(ctx context.Context, _ EmptyRequest) (HistoryClearResponse, error) {
			if err := h.Clear(); err != nil {
				return HistoryClearResponse{}, err
			}
			return HistoryClearResponse{Cleared: true}, nil
		},
	)
}

// NewHistoryCleanup creates the history_cleanup command.
func NewHistoryCleanup(h historyStore) Command {
	return NewBaseCommand(
		"history_cleanup",
		"Drops expired searches and enforces the history size limit",
		func(ctx context.Context, _ EmptyRequest) (HistoryCleanupResponse, error) {
			removed, err := h.Cleanup()
			if err != nil {
				return HistoryCleanupResponse{}, err
			}
			return HistoryCleanupResponse{Removed: removed}, nil
		},
	)
}

// NewHistorySetPath creates the history_set_path command.
func NewHistorySetPath(h historyStore) Command {
	return NewBaseCommand(
		"history_set_path",
		"Moves the history file to another directory",
		func(ctx context.Context, req HistorySetPathRequest) (HistorySetPathResponse, error) {
			dir, err := h.SetDir(req.Path)
			if err != nil {
				return HistorySetPathResponse{}, err
			}
			return HistorySetPathResponse{Path: dir}, nil
		},
	)
}

// OptionsFromRequest extracts the toggles of req that history records.
func OptionsFromRequest(req search.SearchRequest) history.Options {
	return history.Options{
		CaseInsensitive: req.CaseInsensitive,
		WholeWord:       req.WholeWord,
		Regex:           req.Regex,
		IgnoreHidden:    req.IgnoreHidden,
		MaxDepth:        req.MaxDepth,
		IncludeTypes:    req.IncludeTypes,
		ExcludeTypes:    req.ExcludeTypes,
	}
}
