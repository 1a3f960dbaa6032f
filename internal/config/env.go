// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// override declares one setting that can come from the environment or a
// config file. envKey has no TRACEWAY_ prefix; fileKey is a viper key path.
type override struct {
	envKey  string
	fileKey string
	flag    string
	apply   func(*AppConfig, string)
}

// overrides is the declarative table of every env/file override.
var overrides = []override{
	{"STORAGE", "storage.backend", "storage", func(c *AppConfig, v string) {
		c.StorageBackend = v
	}},
	{"STORAGE_PATH", "storage.path", "storage-path", func(c *AppConfig, v string) {
		c.StoragePath = v
	}},
	{"THEME", "theme", "theme", func(c *AppConfig, v string) {
		c.Theme = v
	}},
	{"TIMEZONE", "timezone", "timezone", func(c *AppConfig, v string) {
		c.Timezone = v
	}},
	{"POLL_INTERVAL", "poll_interval", "poll-interval", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.PollInterval = parsed
		}
	}},
	{"LOG_LEVEL", "log.level", "log-level", func(c *AppConfig, v string) {
		c.LogLevel = v
	}},
	{"LOG_FORMAT", "log.format", "log-format", func(c *AppConfig, v string) {
		c.LogFormat = v
	}},
	{"LOG_FILE", "log.file", "log-file", func(c *AppConfig, v string) {
		c.LogFile = v
	}},
	{"DATA", "data", "data", func(c *AppConfig, v string) {
		c.DataFile = v
	}},
	{"NO_COLOR", "no_color", "no-color", func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"NO_TUI", "no_tui", "no-tui", func(c *AppConfig, v string) {
		c.NoTUI = parseBoolEnv(v, c.NoTUI)
	}},
}

// parseBoolEnv parses a boolean value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range overrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
