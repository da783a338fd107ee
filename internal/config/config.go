// Package config resolves the runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the binary reads from the environment.
type Config struct {
	DBPath   string `env:"KINGDOMS_DB" envDefault:"data/kingdoms.db"`
	Port     int    `env:"KINGDOMS_PORT" envDefault:"8080"`
	AdminKey string `env:"KINGDOMS_ADMIN_KEY"`

	// Seed fixes the event roll sequence. Zero selects crypto entropy.
	Seed int64 `env:"KINGDOMS_SEED"`

	LogLevel string `env:"KINGDOMS_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto a slog level. Unknown
// names fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
