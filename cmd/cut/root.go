package main

import (
	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/version"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cut",
		Short:   "Track Claude usage quota across daemon, widgets and dashboard",
		Version: version.Info(),
		Long: `cut tracks a Claude account's usage quota (session, weekly,
per-model and pay-as-you-go extra usage) and shares one consistent
snapshot between a background daemon and sandboxed display processes.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newDaemonCmd(),
		newWidgetCmd(),
		newDashboardCmd(),
		newStatusCmd(),
		newProfileCmd(),
		newSettingsCmd(),
	)
	return cmd
}
