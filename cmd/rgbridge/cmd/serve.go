package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/rgbridge/internal/bridge"
	"github.com/Cyclone1070/rgbridge/internal/history"
	"github.com/Cyclone1070/rgbridge/internal/tool/service/fs"
)

func newServeCmd() *cobra.Command {
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON-lines requests on stdin",
		Long: `Serve reads one JSON request per line from stdin and writes one JSON
response per line to stdout:

  request:  {"id": 1, "cmd": "search", "args": {"root_path": "/src", "pattern": "TODO"}}
  response: {"id": 1, "ok": true, "data": [...]}
            {"id": 1, "ok": false, "error": "..."}

Commands: search, history_list, history_clear, history_cleanup,
history_set_path and cancel (args: {"id": <request id>}).
Logs go to stderr; stdout carries responses only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, maxConcurrent)
		},
	}

	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 0, "Requests served at once (default bridge.max_concurrent)")

	return cmd
}

func runServe(cmd *cobra.Command, maxConcurrent int) error {
	cfg := loadConfig()
	if maxConcurrent <= 0 {
		maxConcurrent = cfg.Bridge.MaxConcurrent
	}

	store := history.NewStore(fs.NewOSFileSystem(), cfg)
	if err := store.Load(); err != nil {
		slog.Warn("history_load_failed", slog.String("error", err.Error()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := bridge.NewServer(bridge.NewCommands(newSearcher(cfg), store), maxConcurrent)
	slog.Info("bridge_started", slog.Int("max_concurrent", maxConcurrent))
	err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	slog.Info("bridge_stopped")
	return err
}
