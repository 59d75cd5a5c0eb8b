package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage tracked profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(),
		newProfileAddCmd(),
		newProfileUseCmd(),
		newProfileRemoveCmd(),
	)
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			profiles := app.profiles.List()
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no profiles yet; add one with `cut profile add`")
				return nil
			}

			activeID := app.profiles.ActiveID()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREDENTIALS\tACTIVE")
			for _, p := range profiles {
				creds := "-"
				if p.HasCredentials() {
					creds = "yes"
				}
				active := ""
				if p.ID == activeID {
					active = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.DisplayName, creds, active)
			}
			return w.Flush()
		},
	}
}

func newProfileAddCmd() *cobra.Command {
	var (
		id           string
		name         string
		sessionToken string
		orgID        string
		apiToken     string
		apiOrgID     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			p := models.Profile{
				ID:           id,
				DisplayName:  name,
				SessionToken: sessionToken,
				OrgID:        orgID,
				APIToken:     apiToken,
				APIOrgID:     apiOrgID,
				Settings:     models.DefaultSettings(),
			}
			if err := app.profiles.Add(p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "profile added")
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "profile id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&sessionToken, "session-token", "", "remote session token")
	cmd.Flags().StringVar(&orgID, "org", "", "organization id")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "secondary API token")
	cmd.Flags().StringVar(&apiOrgID, "api-org", "", "secondary API organization id")
	return cmd
}

func newProfileUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := app.profiles.SetActive(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active profile: %s\n", args[0])
			return nil
		},
	}
}

func newProfileRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a profile and erase its credentials and cached data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := app.profiles.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "profile removed")
			return nil
		},
	}
}
