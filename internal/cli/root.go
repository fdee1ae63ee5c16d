package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/config"
	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/logging"
	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/store"
	"github.com/Makepad-fr/safety360/internal/store/jsonstore"
	"github.com/Makepad-fr/safety360/internal/store/sqlitestore"
	"github.com/Makepad-fr/safety360/internal/ui"
)

// Exit codes (0 ok, 1 error, 2 usage).
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// SQLiteFile is the database name inside the data directory.
const SQLiteFile = "safety360.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Theme      string
	Verbose    bool

	cfg   config.Config
	log   *zap.Logger
	clock duedate.Clock
}

// usageError marks mistakes in how a command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var u usageError
	var v *checklist.ValidationError
	switch {
	case errors.As(err, &u), errors.As(err, &v), errors.Is(err, checklist.ErrUnknownCategory):
		return ExitUsage
	}
	return ExitError
}

// NewRootCommand creates the safety360 command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{clock: duedate.SystemClock})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safety360",
		Short: "Safety360 - health and fire compliance tracker",
		Long: "Track recurring health and fire safety checks, log incidents and " +
			"export compliance reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.Stdout = cmd.OutOrStdout()
			ui.Stderr = cmd.ErrOrStderr()
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.safety360/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding the saved state")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (json|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "", "colour theme (classic|neon|mono)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")

	// Add subcommands
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newScheduleCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newDoneCommand(opts))
	cmd.AddCommand(newSnoozeCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newIncidentCommand(opts))
	cmd.AddCommand(newQuickLogCommand(opts))
	cmd.AddCommand(newReportCommand(opts))
	cmd.AddCommand(newTUICommand(opts))
	cmd.AddCommand(newPresetsCommand(opts))

	return cmd
}

// setup loads the config, applies flag overrides and builds the logger.
func (o *RootOptions) setup() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if o.DataDir != "" {
		cfg.Storage.DataDir = o.DataDir
	}
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if o.Theme != "" {
		cfg.UI.Theme = o.Theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{fmt.Errorf("config: %w", err)}
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON, o.Verbose)
	if err != nil {
		return err
	}
	o.cfg, o.log = cfg, log
	ui.SetColorForcing(os.Getenv("FORCE_COLOR") != "", os.Getenv("NO_COLOR") != "")
	ui.SetTheme(cfg.UI.Theme)
	log.Debug("config loaded",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_dir", cfg.Storage.DataDir))
	return nil
}

// openSlot opens the configured storage backend.
func openSlot(cfg config.StorageConfig) (store.Slot, error) {
	if cfg.Backend == config.BackendSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return sqlitestore.Open(filepath.Join(cfg.DataDir, SQLiteFile))
	}
	return jsonstore.New(cfg.DataDir), nil
}

// openTracker loads the saved state. Unless quiet, tracker events are
// printed as terminal notices. The returned close func releases the slot.
func (o *RootOptions) openTracker(quiet bool) (*checklist.Tracker, func(), error) {
	slot, err := openSlot(o.cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	t := checklist.Open(slot,
		checklist.WithClock(o.clock),
		checklist.WithLogger(o.log),
		checklist.WithKey(o.cfg.Storage.Key))
	unsubscribe := func() {}
	if !quiet {
		unsubscribe = t.Subscribe(func(ev checklist.Event, _ model.State) { notify(ev) })
	}
	return t, func() {
		unsubscribe()
		if err := slot.Close(); err != nil {
			o.log.Warn("failed to close store", zap.Error(err))
		}
	}, nil
}

func notify(ev checklist.Event) {
	switch ev.Level {
	case checklist.LevelSuccess:
		ui.OK(ev.Message)
	case checklist.LevelError:
		ui.Fail(ev.Message)
	default:
		ui.Info(ev.Message)
	}
}
