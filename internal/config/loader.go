package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/taskboard/internal/log"
)

// DefaultConfigPath returns ~/.taskboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskboard", "config.yaml")
	}
	return filepath.Join(home, ".taskboard", "config.yaml")
}

// Load reads the config file at path, layered over Defaults. A missing file
// is not an error; defaults apply. Environment variables prefixed TASKBOARD_
// override file values (e.g. TASKBOARD_LOG_LEVEL), with or without a file.
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("taskboard")
	// Nested keys map dots to underscores: log.level -> TASKBOARD_LOG_LEVEL.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so Unmarshal picks up env-only overrides; viper
	// ignores env values for keys it has never seen.
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.backup", cfg.Database.Backup)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("cache_ttl", cfg.CacheTTL)
	v.SetDefault("auto_refresh", cfg.AutoRefresh)
	v.SetDefault("auto_refresh_debounce", cfg.AutoRefreshDebounce)
	v.SetDefault("trace", cfg.Trace)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			log.Debug(log.CatConfig, "No config file, using defaults", "path", path)
		} else {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return cfg, nil
}
