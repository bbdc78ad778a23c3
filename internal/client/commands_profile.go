package client

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diary-keeper/internal/tui"
)

func (a *App) usernameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "username <name>",
		Short: "Choose the username of your public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimPrefix(args[0], "@")
			if err := a.services.ProfileService.SetUsername(cmd.Context(), username); err != nil {
				return err
			}
			a.success("Your public profile is @%s", username)
			return nil
		},
	}
}

func (a *App) profileCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "profile <username> [id]",
		Short: "Read someone's public entries",
		Long: `Read someone's public entries.

With an id the whole entry is shown, otherwise one page of titles. No sign-in
is needed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username := strings.TrimPrefix(args[0], "@")

			if len(args) == 2 {
				id, err := parseEntryID(args[1])
				if err != nil {
					return err
				}
				entry, err := a.services.ProfileService.PublicEntry(ctx, username, id)
				if err != nil {
					return err
				}
				a.ui.Println(tui.RenderPublicEntry(username, entry))
				return nil
			}

			if page < 1 {
				return usageError{msg: "--page must be 1 or more"}
			}
			profile, err := a.services.ProfileService.PublicProfile(ctx, username, page)
			if err != nil {
				return err
			}
			a.ui.Println(tui.RenderProfile(profile))
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")

	return cmd
}
