// Package config provides configuration types and defaults for taskboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DatabaseConfig holds storage configuration.
type DatabaseConfig struct {
	// Path to the SQLite database file. Empty selects the in-memory backend.
	Path string `mapstructure:"path"`

	// Backup copies the database to {path}.bak before migrations run.
	Backup bool `mapstructure:"backup"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// File receives log output. Empty logs to stderr.
	File string `mapstructure:"file"`
}

// Config holds all configuration options for taskboard.
type Config struct {
	Database            DatabaseConfig `mapstructure:"database"`
	Log                 LogConfig      `mapstructure:"log"`
	CacheTTL            time.Duration  `mapstructure:"cache_ttl"`
	AutoRefresh         bool           `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration  `mapstructure:"auto_refresh_debounce"`
	Trace               bool           `mapstructure:"trace"`
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	if c.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative")
	}
	return nil
}

// DefaultDatabasePath returns ~/.taskboard/taskboard.db, falling back to a
// relative path when the home directory cannot be resolved.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskboard", "taskboard.db")
	}
	return filepath.Join(home, ".taskboard", "taskboard.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Path:   DefaultDatabasePath(),
			Backup: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		CacheTTL:            5 * time.Minute,
		AutoRefresh:         true,
		AutoRefreshDebounce: 1 * time.Second,
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# taskboard Configuration

# Storage settings
database:
  # Path to the SQLite database file.
  # Leave empty to keep tasks in memory for the current process only.
  # path: ~/.taskboard/taskboard.db

  # Copy the database to {path}.bak before running migrations
  backup: true

# Logging settings
log:
  level: info   # debug, info, warn, error
  # file: ~/.taskboard/taskboard.log

# How long lookups and listings may be served from cache
cache_ttl: 5m

# Invalidate the cache when another process writes the database file
auto_refresh: true
auto_refresh_debounce: 1s

# Emit OpenTelemetry spans for every operation (stdout exporter)
trace: false
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
