// Package cmd provides the CLI commands for rgbridge.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/rgbridge/internal/config"
	"github.com/Cyclone1070/rgbridge/internal/history"
	"github.com/Cyclone1070/rgbridge/internal/logging"
	"github.com/Cyclone1070/rgbridge/internal/tool/search"
	"github.com/Cyclone1070/rgbridge/internal/tool/service/executor"
	"github.com/Cyclone1070/rgbridge/internal/tool/service/fs"
)

// Logging flags
var (
	debugMode bool
	logFormat string
)

// NewRootCmd creates the root command for the rgbridge CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rgbridge",
		Short: "Run ripgrep and return structured search results",
		Long: `rgbridge runs ripgrep for a search request and turns its output into
structured results.

Use 'rgbridge search' for one-off searches in the terminal, or
'rgbridge serve' to answer JSON-lines requests from a front end on stdin.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")
	cmd.PersistentPreRunE = setupLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("invalid --log-format %q: must be text or json", logFormat)
	}

	cfg := logging.DefaultConfig()
	if debugMode {
		cfg = logging.DebugConfig()
	}
	cfg.Format = logFormat
	cfg.Output = cmd.ErrOrStderr()
	logging.Setup(cfg)
	return nil
}

// loadConfig reads the user config, falling back to defaults when the file
// is unreadable or invalid.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config_load_failed", slog.String("error", err.Error()))
		return config.DefaultConfig()
	}
	return cfg
}

func newSearcher(cfg *config.Config) *search.Searcher {
	return search.NewSearcher(executor.NewOSCommandExecutor(cfg), cfg)
}

// openHistory creates the history store and loads it from disk.
func openHistory(cfg *config.Config) (*history.Store, error) {
	store := history.NewStore(fs.NewOSFileSystem(), cfg)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return store, nil
}
