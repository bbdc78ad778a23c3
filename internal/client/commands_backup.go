// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *App) backupCommand() *cobra.Command {
	var (
		outPath string
		toS3    bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export the diary as a CBOR archive",
		Long: `Export the diary as a CBOR archive.

Private entries stay sealed in the archive, so it is only readable with your
diary secret. Write it to a file with --out or upload it with --s3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (outPath == "") == !toS3 {
				return usageError{msg: "choose exactly one of --out or --s3"}
			}
			ctx := cmd.Context()
			if err := a.unlocked(ctx); err != nil {
				return err
			}

			if toS3 {
				uploader, err := a.newUploader(ctx)
				if err != nil {
					return err
				}
				stop := a.startSpinner("Uploading backup...")
				location, err := a.services.BackupService.Upload(ctx, uploader)
				stop()
				if err != nil {
					return err
				}
				a.success("Backup uploaded to %s", highlight.Sprint(location))
				return nil
			}

			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			archive, err := a.services.BackupService.Export(ctx, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			a.success("%d entries written to %s", len(archive.Entries), highlight.Sprint(outPath))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "archive file to write")
	cmd.Flags().BoolVar(&toS3, "s3", false, "upload to the configured S3 bucket")

	cmd.AddCommand(a.backupInspectCommand())

	return cmd
}

func (a *App) backupInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarise an archive without decrypting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open backup file: %w", err)
			}
			defer f.Close()

			archive, err := a.services.BackupService.ReadArchive(f)
			if err != nil {
				return err
			}

			var sealed int
			for _, e := range archive.Entries {
				if e.IsEncrypted {
					sealed++
				}
			}
			fmt.Fprintf(a.out, "Archive version %d of user %d, created %s\n",
				archive.Version, archive.UserID, archive.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(a.out, "%d entries: %d sealed, %d public\n",
				len(archive.Entries), sealed, len(archive.Entries)-sealed)
			return nil
		},
	}
}
