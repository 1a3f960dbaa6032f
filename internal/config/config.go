// Package config parses the console's command-line flags, TRACEWAY_*
// environment variables and optional config file into an AppConfig.
//
// Priority, highest first: CLI flags, environment variables, config file,
// built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/traceway/traceway-tui/internal/errors"
)

// EnvPrefix prefixes every environment variable the console reads.
const EnvPrefix = "TRACEWAY_"

// Theme modes accepted by --theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Log formats accepted by --log-format. An empty format picks JSON for
// --log-file and console output otherwise.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
	LogFormatText    = "text"
)

// AppConfig holds the resolved configuration of one console run.
type AppConfig struct {
	// ConfigFile is an optional YAML/TOML/JSON file read with viper.
	ConfigFile string
	// StorageBackend is memory, file or sqlite.
	StorageBackend string
	// StoragePath overrides the backend's default location.
	StoragePath string
	// Theme forces the host preference ("dark"/"light") or detects it ("auto").
	Theme string
	// Timezone replaces host zone detection. Empty means detect.
	Timezone string
	// PollInterval re-checks the terminal background; zero checks once.
	PollInterval time.Duration
	// LogLevel is a zerolog level name.
	LogLevel string
	// LogFormat is json, console or text. Empty picks by destination.
	LogFormat string
	// LogFile receives logs while the dashboard owns the terminal. Empty discards them.
	LogFile string
	// DataFile is a JSON file of transactions to display instead of the sample set.
	DataFile string
	// NoColor disables color output.
	NoColor bool
	// NoTUI prints the table once instead of starting the dashboard.
	NoTUI bool
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		StorageBackend: "file",
		Theme:          ThemeAuto,
		LogLevel:       "warn",
	}
}

// ParseConfig parses args (without the program name) into an AppConfig and
// validates it. Usage and parse errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to a config file (yaml, toml or json).")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "Preference store backend: memory, file or sqlite.")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Preference store location (default: user config dir).")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Host color scheme: auto, dark or light.")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Host time zone used when none is saved (default: detect).")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Re-check the terminal background this often (0 = once).")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json, console or text (default: json for --log-file, console otherwise).")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file.")
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "JSON file of transactions to display.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable color output.")
	fs.BoolVar(&cfg.NoTUI, "no-tui", cfg.NoTUI, "Print the table once and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		if err := applyFileOverrides(&cfg, fs, cfg.ConfigFile); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c *AppConfig) Validate() error {
	c.StorageBackend = strings.ToLower(c.StorageBackend)
	switch c.StorageBackend {
	case "memory", "file", "sqlite":
	default:
		return apperrors.ValidationError{Field: "storage", Message: fmt.Sprintf("unknown backend %q (want memory, file or sqlite)", c.StorageBackend)}
	}

	c.Theme = strings.ToLower(c.Theme)
	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return apperrors.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown mode %q (want auto, dark or light)", c.Theme)}
	}

	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return apperrors.ValidationError{Field: "log-level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	switch c.LogFormat {
	case "", LogFormatJSON, LogFormatConsole, LogFormatText:
	default:
		return apperrors.ValidationError{Field: "log-format", Message: fmt.Sprintf("unknown format %q (want json, console or text)", c.LogFormat)}
	}

	if c.PollInterval < 0 {
		return apperrors.ValidationError{Field: "poll-interval", Message: "must not be negative"}
	}
	return nil
}
