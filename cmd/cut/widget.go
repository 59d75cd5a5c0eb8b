package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/widget"
)

func newWidgetCmd() *cobra.Command {
	var (
		kind      string
		profileID string
	)

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Render one widget tile and report the next refresh deadline",
		Long: `Renders a single point-in-time tile from the latest stored snapshot
and exits. The process never calls the remote service; the host
environment re-invokes it at or after the printed deadline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := widget.Kind(kind)
			switch k {
			case widget.KindSmall, widget.KindMedium, widget.KindLarge:
			default:
				return fmt.Errorf("unknown tile kind %q (small, medium or large)", kind)
			}

			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			scheduler := widget.NewScheduler(app.store)
			model := scheduler.Invoke(app.resolveProfileID(profileID), k)

			fmt.Fprintln(cmd.OutOrStdout(), widget.RenderTile(model))
			fmt.Fprintf(cmd.OutOrStdout(), "next refresh: %s\n",
				model.NextRefresh.Format("2006-01-02 15:04:05"))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(widget.KindSmall), "tile size: small, medium or large")
	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (defaults to the active profile)")
	return cmd
}
