package client

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/tui"
)

// entryFlags are shared by write and edit. body "-" reads stdin.
type entryFlags struct {
	title  string
	body   string
	public bool
}

func (f *entryFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.title, "title", "t", "", "entry title; opens the editor when empty")
	fs.StringVarP(&f.body, "body", "b", "", `entry body, or "-" to read it from stdin`)
	fs.BoolVar(&f.public, "public", false, "store the entry in plaintext on your public profile")
}

func (f *entryFlags) readBody(in io.Reader) (string, error) {
	if f.body != "-" {
		return f.body, nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError{msg: fmt.Sprintf("%q is not an entry number", arg)}
	}
	return id, nil
}

func (a *App) unlockCommand() *cobra.Command {
	var remember bool

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Derive your diary key from the diary secret",
		Long: `Derive your diary key from the diary secret.

The first unlock of an account enrolls the secret with the server. With
--remember the key is kept on this device until you run lock or logout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			secret, err := a.ui.PromptSecret(ctx)
			if err != nil {
				return err
			}

			stop := a.startSpinner("Unlocking...")
			err = a.services.DiaryService.Unlock(ctx, secret, remember)
			stop()
			if err != nil {
				return err
			}

			if remember {
				a.success("Diary unlocked on this device")
				return nil
			}
			a.success("Diary secret accepted")
			a.hint("Add --remember to stay unlocked between commands.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&remember, "remember", "r", false, "keep the key on this device")

	return cmd
}

func (a *App) lockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Forget the diary key on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.services.DiaryService.Lock(cmd.Context()); err != nil {
				return err
			}
			a.success("Diary locked")
			return nil
		},
	}
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.unlocked(ctx); err != nil {
				return err
			}

			stop := a.startSpinner("Opening entries...")
			views, err := a.services.DiaryService.List(ctx)
			stop()
			if err != nil {
				return err
			}

			a.ui.Println(tui.RenderList(views))
			return nil
		},
	}
}

func (a *App) showCommand() *cobra.Command {
	var copyBody bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err = a.unlocked(ctx); err != nil {
				return err
			}

			view, err := a.services.DiaryService.Show(ctx, id)
			if err != nil {
				return err
			}
			a.ui.Println(tui.RenderEntry(view))

			if copyBody && view.Readable {
				if err = a.ui.Copy(view.Body); err != nil {
					return err
				}
				a.success("Body copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyBody, "copy", false, "copy the body to the clipboard")

	return cmd
}

func (a *App) writeCommand() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a new entry",
		Long: `Write a new entry.

Entries are sealed on this device unless --public is given. Without --title
the editor opens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.unlocked(ctx); err != nil {
				return err
			}

			title, body := flags.title, ""
			var err error
			if title == "" {
				title, body, err = a.ui.EditEntry(ctx, "New entry", "", "", flags.public)
			} else {
				body, err = flags.readBody(a.in)
			}
			if err != nil {
				return err
			}

			view, err := a.services.DiaryService.Write(ctx, title, body, flags.public)
			if err != nil {
				return err
			}
			a.success("Entry #%d saved", view.ID)
			return nil
		},
	}
	flags.bind(cmd.Flags())

	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry",
		Long: `Edit an entry.

The entry is sealed again with a fresh nonce, or stored in plaintext with
--public. Without --title the editor opens with the current text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err = a.unlocked(ctx); err != nil {
				return err
			}

			title, body := flags.title, ""
			if title == "" {
				current, err := a.services.DiaryService.Show(ctx, id)
				if err != nil {
					return err
				}
				if !current.Readable {
					return service.ErrDiaryTokenInvalid
				}
				title, body, err = a.ui.EditEntry(ctx, fmt.Sprintf("Entry #%d", id), current.Title, current.Body, flags.public)
				if err != nil {
					return err
				}
			} else if body, err = flags.readBody(a.in); err != nil {
				return err
			}

			if _, err = a.services.DiaryService.Edit(ctx, id, title, body, flags.public); err != nil {
				return err
			}
			a.success("Entry #%d updated", id)
			return nil
		},
	}
	flags.bind(cmd.Flags())

	return cmd
}

func (a *App) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err = a.unlocked(ctx); err != nil {
				return err
			}

			if !yes {
				ok, err := a.ui.Confirm(ctx, fmt.Sprintf("Delete entry #%d?", id))
				if err != nil {
					return err
				}
				if !ok {
					a.hint("Nothing deleted")
					return nil
				}
			}

			if err = a.services.DiaryService.Delete(ctx, id); err != nil {
				return err
			}
			a.success("Entry #%d deleted", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (a *App) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the diary in a full-screen view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.unlocked(ctx); err != nil {
				return err
			}
			return a.ui.Browse(ctx, a.services.DiaryService)
		},
	}
}
