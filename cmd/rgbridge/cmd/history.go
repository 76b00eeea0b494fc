package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/rgbridge/internal/config"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage search history",
		Long: `Manage the search history kept in search_history.json.

The history lives in history.dir from the config file, or
~/.config/ripgrep-gui when unset.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryClearCmd())
	cmd.AddCommand(newHistoryCleanupCmd())
	cmd.AddCommand(newHistorySetPathCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			store, err := openHistory(loadConfig())
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), store.List(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json, yaml")

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openHistory(loadConfig())
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return err
		},
	}
}

func newHistoryCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Drop expired searches and enforce the size limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openHistory(loadConfig())
			if err != nil {
				return err
			}
			removed, err := store.Cleanup()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
			return err
		},
	}
}

func newHistorySetPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-path [dir]",
		Short: "Move the history to another directory",
		Long: `Move the history to dir and record it as history.dir in the config file.
Without dir the default location is restored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}

			// The config is rewritten below, so a broken file must not fall back to defaults.
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}
			newDir, err := store.SetDir(dir)
			if err != nil {
				return err
			}

			// Empty means the default location.
			cfg.History.Dir = ""
			if dir != "" {
				cfg.History.Dir = newDir
			}
			if _, err := config.NewLoader().Save(cfg); err != nil {
				return fmt.Errorf("history moved to %s but config was not updated: %w", newDir, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "History now stored in %s\n", newDir)
			return err
		},
	}
}
