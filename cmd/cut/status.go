package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/widget"
)

func newStatusCmd() *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the latest stored usage as plain text",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			id := app.resolveProfileID(profileID)
			model := widget.BuildRenderModel(
				app.store.LoadSnapshot(id),
				app.store.LoadSettings(id),
				widget.KindLarge,
				time.Now(),
			)

			out := cmd.OutOrStdout()
			if !model.HasData() {
				fmt.Fprintln(out, "no usage data (is the daemon running?)")
				return nil
			}

			printMetric := func(m widget.Metric) {
				line := fmt.Sprintf("%-8s %5.1f%% (%s)", widgetName(m), m.Percentage, m.Level)
				if m.ResetText != "" {
					line += fmt.Sprintf("  resets %s", m.ResetText)
				}
				fmt.Fprintln(out, line)
			}

			printMetric(model.Derived.Session)
			printMetric(model.Derived.Weekly)

			names := make([]string, 0, len(model.Derived.PerModel))
			for name := range model.Derived.PerModel {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				printMetric(model.Derived.PerModel[name])
			}

			fmt.Fprintf(out, "extra    %s\n", model.Derived.ExtraText)
			fmt.Fprintf(out, "captured %s\n", model.Snapshot.CapturedAt.Local().Format(time.RFC1123))
			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (defaults to the active profile)")
	return cmd
}

func widgetName(m widget.Metric) string {
	if m.Name == "" {
		return "usage"
	}
	return string(m.Name)
}
