package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/daemon"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/fetch"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/history"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
)

func newDaemonCmd() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the background poller that publishes usage snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			var hist *history.Store
			if !noHistory {
				hist, err = history.New(app.cfg.HistoryPath)
				if err != nil {
					// History is a nicety; the daemon still publishes.
					logger.Warn("history store unavailable", "error", err)
				} else {
					defer func() { _ = hist.Close() }()
				}
			}

			d := daemon.New(
				app.store,
				app.profiles,
				fetch.NewClient(app.cfg.APIBaseURL),
				hist,
				app.cfg.PollInterval,
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return d.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "disable usage history recording")
	return cmd
}
