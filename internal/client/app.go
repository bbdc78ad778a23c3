package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/keylifecycle"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/tui"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// skipSetup marks commands that run without config or storage.
const skipSetup = "skip-setup"

type App struct {
	build models.AppBuildInfo

	configPath string
	plain      bool

	services    *service.ClientServices
	server      adapter.ServerAdapter
	ui          *tui.TUI
	newUploader func(ctx context.Context) (adapter.ArchiveUploader, error)
	closers     []func() error

	// setup wires the fields above; tests replace it.
	setup func(ctx context.Context) error

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *logger.Logger
}

func NewApp(build models.AppBuildInfo, logger *logger.Logger) *App {
	a := &App{
		build:  build,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: logger,
	}
	a.setup = a.wire

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	defer a.close()

	return root.ExecuteContext(ctx)
}

func (a *App) wire(ctx context.Context) error {
	cfg, err := config.GetClientConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.App.LogLevel != "" {
		if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
			a.logger.Warn().Err(err).Msg("unknown log level")
		}
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, a.logger)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, a.logger)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	a.closers = append(a.closers, localStorage.Close)

	keys := keylifecycle.NewManager(crypto.SystemRandom(), localStorage.KeyRepository, keylifecycle.WithLogger(a.logger))

	services, err := service.NewClientServices(localStorage, serverAdapter, keys, a.logger)
	if err != nil {
		return fmt.Errorf("create client services: %w", err)
	}

	a.services = services
	a.server = serverAdapter
	a.ui = tui.New(a.logger, tui.WithIO(a.in, a.out), tui.WithPlainPrompts(a.plain))
	a.newUploader = func(ctx context.Context) (adapter.ArchiveUploader, error) {
		if err := cfg.Backup.Validate(); err != nil {
			return nil, err
		}
		return adapter.NewS3ArchiveUploader(ctx, cfg.Backup, a.logger)
	}

	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Err(err).Msg("closing client resources")
		}
	}
	a.closers = nil
}

// unlocked restores a remembered key or prompts for the secret.
func (a *App) unlocked(ctx context.Context) error {
	return a.services.DiaryService.EnsureUnlocked(ctx, a.ui.PromptSecret)
}

// Command builds the command tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "diary",
		Short:         "An end-to-end encrypted diary",
		Long:          "Keep a diary the server cannot read. Private entries are sealed on this device with a key derived from your diary secret.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return a.setup(cmd.Context())
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a JSON or YAML config file")
	flags.BoolVar(&a.plain, "plain", false, "read the diary secret without the full-screen prompt")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.unlockCommand(),
		a.lockCommand(),
		a.listCommand(),
		a.showCommand(),
		a.writeCommand(),
		a.editCommand(),
		a.deleteCommand(),
		a.browseCommand(),
		a.usernameCommand(),
		a.profileCommand(),
		a.backupCommand(),
		a.infoCommand(),
		a.versionCommand(),
	)

	return root
}

// Message returns the text shown for a failed command.
func Message(err error) string {
	var usage usageError
	if errors.As(err, &usage) {
		return usage.Error()
	}
	return tui.Humanize(err)
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }
