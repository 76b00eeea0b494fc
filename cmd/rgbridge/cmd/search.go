package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/rgbridge/internal/bridge"
	"github.com/Cyclone1070/rgbridge/internal/highlight"
	"github.com/Cyclone1070/rgbridge/internal/history"
	"github.com/Cyclone1070/rgbridge/internal/tool/search"
	"github.com/Cyclone1070/rgbridge/internal/tool/service/fs"
	userpath "github.com/Cyclone1070/rgbridge/internal/tool/service/path"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	caseInsensitive bool
	wholeWord       bool
	regex           bool
	hidden          bool
	maxDepth        uint32
	types           []string
	typesNot        []string
	filter          string
	format          string // "text", "json", "yaml"
	color           string // "auto", "always", "never"
	timeout         time.Duration
	noHistory       bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <pattern> [path]",
		Short: "Search file contents with ripgrep",
		Long: `Search file contents under path with ripgrep and print one line per match.

When path is omitted the configured default_search_path is used ("~" is
expanded), or the current directory if none is set. Press Ctrl-C to cancel a running search.`,
		Example: `  rgbridge search TODO
  rgbridge search -i -w handler ./internal
  rgbridge search "fo+" --regex --type go --format json
  rgbridge search config ~/src --filter _test.go --max-depth 3`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return runSearch(cmd, args[0], path, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.caseInsensitive, "ignore-case", "i", false, "Match case-insensitively")
	cmd.Flags().BoolVarP(&opts.wholeWord, "word", "w", false, "Match whole words only")
	cmd.Flags().BoolVar(&opts.regex, "regex", false, "Let ripgrep pick the regex engine for the pattern")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "Search hidden files and directories")
	cmd.Flags().Uint32Var(&opts.maxDepth, "max-depth", 0, "Limit directory depth (0 = unlimited)")
	cmd.Flags().StringSliceVar(&opts.types, "type", nil, "Only search files of this ripgrep type (repeatable)")
	cmd.Flags().StringSliceVar(&opts.typesNot, "type-not", nil, "Skip files of this ripgrep type (repeatable)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Keep results whose path or line contains this text")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, yaml")
	cmd.Flags().StringVar(&opts.color, "color", highlight.ColorAuto, "Colorize output: auto, always, never")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Cancel the search after this duration (overrides search.timeout_seconds)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this search in history")

	return cmd
}

func runSearch(cmd *cobra.Command, pattern, path string, opts searchOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	switch opts.color {
	case highlight.ColorAuto, highlight.ColorAlways, highlight.ColorNever:
	default:
		return fmt.Errorf("invalid --color %q: must be auto, always or never", opts.color)
	}

	cfg := loadConfig()

	if path == "" {
		home, _ := os.UserHomeDir()
		configured, err := userpath.ExpandHome(cfg.DefaultSearchPath, home)
		if err != nil {
			return err
		}
		path = configured
	}
	if path == "" {
		path = "."
	}

	req := search.SearchRequest{
		RootPath:        path,
		Pattern:         pattern,
		CaseInsensitive: opts.caseInsensitive,
		WholeWord:       opts.wholeWord,
		Regex:           opts.regex,
		IgnoreHidden:    opts.hidden,
		MaxDepth:        opts.maxDepth,
		IncludeTypes:    opts.types,
		ExcludeTypes:    opts.typesNot,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeout := opts.timeout
	if timeout == 0 && cfg.Search.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results, err := newSearcher(cfg).Search(ctx, req)
	if err != nil {
		return err
	}
	results = search.Filter(results, opts.filter)

	if !opts.noHistory {
		store := history.NewStore(fs.NewOSFileSystem(), cfg)
		if _, _, err := store.Add(req.Pattern, req.RootPath, bridge.OptionsFromRequest(req)); err != nil {
			slog.Warn("history_add_failed", slog.String("error", err.Error()))
		}
	}

	out := cmd.OutOrStdout()
	theme := highlight.NewTheme(highlight.NewRenderer(out, colorEnabled(opts.color, out), cfg.User.DarkMode))
	return writeResults(out, results, pattern, opts.format, theme)
}
