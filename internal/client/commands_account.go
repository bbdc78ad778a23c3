// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diary-keeper/internal/tui"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func (a *App) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			req, err := a.ui.PromptRegister(ctx)
			if err != nil {
				return err
			}

			stop := a.startSpinner("Creating account...")
			session, err := a.services.AuthService.Register(ctx, req)
			stop()
			if err != nil {
				return err
			}

			a.success("Signed in as %s", highlight.Sprint(session.Email))
			a.hint("Run `diary unlock --remember` to choose your diary secret.")
			return nil
		},
	}
}

func (a *App) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			req, err := a.ui.PromptLogin(ctx)
			if err != nil {
				return err
			}

			stop := a.startSpinner("Signing in...")
			session, err := a.services.AuthService.Login(ctx, req)
			stop()
			if err != nil {
				return err
			}

			a.success("Signed in as %s", highlight.Sprint(session.Email))
			return nil
		},
	}
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the remembered key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.services.AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			a.success("Signed out")
			return nil
		},
	}
}

func (a *App) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show client and server information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stop := a.startSpinner("Contacting server...")
			info, err := a.server.Info(cmd.Context())
			stop()
			if err != nil {
				a.logger.Warn().Err(err).Msg("server info unavailable")
				ReportError(a.errOut, tui.Humanize(err))
				info = models.AppInfo{}
			}

			a.ui.Println(tui.RenderBuildInfo(a.build, info))
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the client build",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.build.String())
		},
	}
}
