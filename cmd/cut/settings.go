package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change display preferences",
	}

	cmd.AddCommand(newSettingsGetCmd(), newSettingsSetCmd())
	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current settings bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			s := app.store.LoadSettings(app.resolveProfileID(profileID))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "refresh-interval    %s\n", s.RefreshInterval)
			fmt.Fprintf(out, "small-tile          %s\n", s.SmallTileMetric)
			fmt.Fprintf(out, "medium-tiles        %s, %s\n", s.MediumTileMetrics[0], s.MediumTileMetrics[1])
			fmt.Fprintf(out, "color-mode          %s\n", s.ColorMode)
			fmt.Fprintf(out, "custom-color        %s\n", s.CustomColor)
			fmt.Fprintf(out, "notifications       %t\n", s.NotificationsEnabled)
			fmt.Fprintf(out, "show-directory      %t\n", s.ShowDirectory)
			fmt.Fprintf(out, "show-branch         %t\n", s.ShowBranch)
			fmt.Fprintf(out, "show-usage          %t\n", s.ShowUsage)
			fmt.Fprintf(out, "show-progress-bar   %t\n", s.ShowProgressBar)
			fmt.Fprintf(out, "24-hour-clock       %t\n", s.Use24HourClock)
			fmt.Fprintf(out, "extra-usage-format  %s\n", s.ExtraUsageFormat)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (defaults to the active profile)")
	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	var (
		profileID     string
		refresh       time.Duration
		smallTile     string
		mediumTiles   []string
		colorMode     string
		customColor   string
		notifications string
		clock24       string
		extraFormat   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			id := app.resolveProfileID(profileID)
			s := app.store.LoadSettings(id)

			if cmd.Flags().Changed("refresh-interval") {
				s.RefreshInterval = refresh
			}
			if cmd.Flags().Changed("small-tile") {
				s.SmallTileMetric = models.TileMetric(smallTile)
			}
			if cmd.Flags().Changed("medium-tiles") {
				if len(mediumTiles) != 2 {
					return fmt.Errorf("--medium-tiles needs exactly two metrics")
				}
				s.MediumTileMetrics[0] = models.TileMetric(mediumTiles[0])
				s.MediumTileMetrics[1] = models.TileMetric(mediumTiles[1])
			}
			if cmd.Flags().Changed("color-mode") {
				s.ColorMode = models.ColorMode(colorMode)
			}
			if cmd.Flags().Changed("custom-color") {
				s.CustomColor = customColor
			}
			if err := setBoolFlag(cmd, "notifications", notifications, &s.NotificationsEnabled); err != nil {
				return err
			}
			if err := setBoolFlag(cmd, "24-hour-clock", clock24, &s.Use24HourClock); err != nil {
				return err
			}
			if cmd.Flags().Changed("extra-usage-format") {
				s.ExtraUsageFormat = models.ExtraUsageFormat(extraFormat)
			}

			if err := app.store.SaveSettings(id, s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (defaults to the active profile)")
	cmd.Flags().DurationVar(&refresh, "refresh-interval", 5*time.Minute, "poll interval")
	cmd.Flags().StringVar(&smallTile, "small-tile", "", "metric for the small tile")
	cmd.Flags().StringSliceVar(&mediumTiles, "medium-tiles", nil, "two metrics for the medium tile")
	cmd.Flags().StringVar(&colorMode, "color-mode", "", "multiColor, monochrome or singleColor")
	cmd.Flags().StringVar(&customColor, "custom-color", "", "hex color for singleColor mode")
	cmd.Flags().StringVar(&notifications, "notifications", "", "true or false")
	cmd.Flags().StringVar(&clock24, "24-hour-clock", "", "true or false")
	cmd.Flags().StringVar(&extraFormat, "extra-usage-format", "", "percentage, currency or both")
	return cmd
}

func setBoolFlag(cmd *cobra.Command, name, value string, target *bool) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	switch value {
	case "true":
		*target = true
	case "false":
		*target = false
	default:
		return fmt.Errorf("--%s must be true or false", name)
	}
	return nil
}
