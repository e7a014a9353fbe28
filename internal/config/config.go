package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// WatchConfig holds configuration for `unitary watch`.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Config holds all runtime configuration for a unitary invocation.
// Values are populated from .unitary.yaml, UNITARY_* env vars, and CLI flags.
type Config struct {
	CatalogPath   string      `mapstructure:"catalog_path"`
	DBPath        string      `mapstructure:"db_path"`
	TelemetryPath string      `mapstructure:"telemetry_path"`
	ShowGenerated bool        `mapstructure:"show_generated"`
	Separator     bool        `mapstructure:"separator"`
	Verbose       bool        `mapstructure:"verbose"`
	Watch         WatchConfig `mapstructure:"watch"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. An empty
// CatalogPath selects the embedded SI catalog.
func Load() (Config, error) {
	viper.SetDefault("catalog_path", "")
	viper.SetDefault("db_path", ".unitary.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("show_generated", false)
	viper.SetDefault("separator", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch.debounce_ms", 100)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Watch.DebounceMS < 0 {
		return Config{}, fmt.Errorf("config: watch.debounce_ms must not be negative, got %d", cfg.Watch.DebounceMS)
	}
	return cfg, nil
}
