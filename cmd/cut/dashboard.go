package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/history"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive usage dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			hist, err := history.New(app.cfg.HistoryPath)
			if err != nil {
				logger.Debug("history unavailable, chart disabled", "error", err)
				hist = nil
			} else {
				defer func() { _ = hist.Close() }()
			}

			watcher, err := tui.NewWatcher(app.cfg.SharedDir)
			if err != nil {
				logger.Debug("shared dir watch unavailable, falling back to polling", "error", err)
				watcher = nil
			} else {
				defer func() { _ = watcher.Close() }()
			}

			model := tui.NewModel(app.store, app.profiles, hist, watcher)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
