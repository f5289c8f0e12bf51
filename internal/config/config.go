// Package config loads server configuration from the environment
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
)

// Config holds the server configuration
type Config struct {
	// HTTPAddr is the listen address for the API server
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// RedisAddr is the backing store endpoint
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// SoulDice is the level-indexed soul die table in "d6" notation.
	// Empty entries and levels beyond the table fall back per the table
	// rules (largest defined die, then d10).
	SoulDice []string `env:"SOUL_DICE" envSeparator:","`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}

// SoulDiceTable parses the configured soul die notations
func (c *Config) SoulDiceTable() anima.SoulDice {
	return anima.ParseSoulDice(c.SoulDice)
}

// SlogLevel maps the configured level string to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
