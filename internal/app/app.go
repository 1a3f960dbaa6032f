package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/traceway/traceway-tui/internal/config"
	apperrors "github.com/traceway/traceway-tui/internal/errors"
	"github.com/traceway/traceway-tui/internal/logging"
	"github.com/traceway/traceway-tui/internal/sortstate"
	"github.com/traceway/traceway-tui/internal/storage"
	"github.com/traceway/traceway-tui/internal/theme"
	"github.com/traceway/traceway-tui/internal/timezone"
	"github.com/traceway/traceway-tui/internal/transactions"
	"github.com/traceway/traceway-tui/internal/tui"
	"github.com/traceway/traceway-tui/internal/ui"
)

// Application represents the traceway-tui application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// Registry collects the storage operation counters.
	Registry *prometheus.Registry
	// Now is the clock used for relative timestamps and sample data.
	Now func() time.Time
	// Host overrides host color scheme detection when set.
	Host theme.HostPreference
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithClock sets the clock used for relative timestamps.
func WithClock(now func() time.Time) AppOption {
	return func(a *Application) { a.Now = now }
}

// WithRegistry sets the registry the storage counters are registered on.
func WithRegistry(reg *prometheus.Registry) AppOption {
	return func(a *Application) { a.Registry = reg }
}

// WithHostPreference replaces terminal background detection.
func WithHostPreference(host theme.HostPreference) AppOption {
	return func(a *Application) { a.Host = host }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = prometheus.NewRegistry()
	}
	if app.Now == nil {
		app.Now = time.Now
	}

	programName := "traceway-tui"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	logger, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	defer closeLog()

	store, err := a.openStore(logger)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	defer func() {
		logStorageStats(logger, a.Registry)
		if err := store.Close(); err != nil {
			logger.Warn("closing preference store", logging.Err(err))
		}
	}()

	host, stopHost := a.hostPreference()
	defer stopHost()

	renderer := ui.NewRenderer(a.Config.NoColor)
	ctrl := theme.NewController(store, host, renderer, theme.WithLogger(logger))
	defer ctrl.Init()()

	zoneOpts := []timezone.Option{timezone.WithLogger(logger)}
	if a.Config.Timezone != "" {
		zone := a.Config.Timezone
		zoneOpts = append(zoneOpts, timezone.WithHostZone(func() string { return zone }))
	}
	zone := timezone.New(store, zoneOpts...)
	zone.Init()

	session := tui.Session{
		Theme:    ctrl,
		Zone:     zone,
		Sort:     sortstate.NewStore(store, sortstate.WithLogger(logger)),
		Renderer: renderer,
	}

	txs, err := a.loadTransactions()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	logger.Info("session ready",
		logging.String("storage", a.Config.StorageBackend),
		logging.Bool("dark", ctrl.IsDark()),
		logging.String("zone", zone.Get()),
		logging.Int("transactions", len(txs)),
	)

	if a.Config.NoTUI {
		a.printReport(out, session, txs)
		return apperrors.ExitSuccess
	}
	return a.runTUI(ctx, session, txs)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, session tui.Session, txs []transactions.Transaction) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, session, txs, Version)
}

// newLogger builds the session logger. Logs go to --log-file when set, to
// the error writer in plain mode, and nowhere while the dashboard owns the
// terminal.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	level := logging.ParseLevel(a.Config.LogLevel)

	w, format, closeLog := a.ErrWriter, a.Config.LogFormat, func() {}
	switch {
	case a.Config.LogFile != "":
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("open log file %q: %v", a.Config.LogFile, err)
		}
		w, closeLog = f, func() { _ = f.Close() }
		if format == "" {
			format = config.LogFormatJSON
		}
	case a.Config.NoTUI:
		if format == "" {
			format = config.LogFormatConsole
		}
	default:
		return logging.NopLogger{}, closeLog, nil
	}

	switch format {
	case config.LogFormatJSON:
		return logging.NewLogger(w, "traceway-tui", level), closeLog, nil
	case config.LogFormatText:
		return logging.NewStdLoggerAdapter(log.New(w, "traceway-tui: ", log.LstdFlags), level), closeLog, nil
	default:
		return logging.NewConsoleLogger(w, a.Config.NoColor, level), closeLog, nil
	}
}

// openStore opens the configured backend behind the operation counters.
// When the default location cannot be opened the session continues on an
// in-memory store; an explicitly configured path is an error.
func (a *Application) openStore(logger logging.Logger) (storage.Store, error) {
	inner, err := storage.Open(storage.Options{Backend: a.Config.StorageBackend, Path: a.Config.StoragePath})
	if err != nil {
		var se apperrors.StorageError
		if !errors.As(err, &se) {
			err = apperrors.NewStorageError("open", "", err)
		}
		if a.Config.StoragePath != "" {
			return nil, err
		}
		logger.Warn("preference store unavailable, preferences will not persist",
			logging.String("backend", a.Config.StorageBackend), logging.Err(err))
		inner = storage.NewMemoryStore()
	}

	store, err := storage.NewInstrumented(inner, a.Registry)
	if err != nil {
		_ = inner.Close()
		return nil, apperrors.WrapError(err, "register storage metrics")
	}
	return store, nil
}

// hostPreference picks the color scheme source: a forced --theme, an
// injected preference, or the terminal background with the
// TRACEWAY_COLOR_SCHEME override on top.
func (a *Application) hostPreference() (theme.HostPreference, func()) {
	switch {
	case a.Config.Theme == config.ThemeDark || a.Config.Theme == config.ThemeLight:
		return theme.NewStaticPreference(a.Config.Theme == config.ThemeDark), func() {}
	case a.Host != nil:
		return a.Host, func() {}
	}

	terminal := theme.NewTerminalPreference(a.Config.PollInterval)
	return theme.NewEnvPreference(terminal), func() { _ = terminal.Close() }
}

func (a *Application) loadTransactions() ([]transactions.Transaction, error) {
	if a.Config.DataFile == "" {
		return transactions.Samples(a.Now()), nil
	}
	return transactions.Load(a.Config.DataFile)
}

// logStorageStats reports the storage counters gathered during the session.
func logStorageStats(logger logging.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logger.Debug("gathering storage metrics failed", logging.Err(err))
		return
	}
	for _, mf := range families {
		if mf.GetName() != "traceway_storage_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			fields := make([]logging.Field, 0, len(m.GetLabel())+1)
			for _, lp := range m.GetLabel() {
				fields = append(fields, logging.String(lp.GetName(), lp.GetValue()))
			}
			fields = append(fields, logging.Float64("count", m.GetCounter().GetValue()))
			logger.Debug("storage operations", fields...)
		}
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
