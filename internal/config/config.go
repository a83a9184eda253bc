// Package config holds the service configuration.
//
// Values are layered: Default() first, then environment variables via
// FromEnv, then command-line flags (applied by cmd/server).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sakif/acme-ice-cream/internal/repository/sqldb"
)

const (
	// DefaultDatabaseURL points at a local Postgres without TLS.
	// lib/pq requires TLS unless sslmode says otherwise.
	DefaultDatabaseURL = "postgres://localhost/acme-ice-cream-api?sslmode=disable"
	DefaultPort        = 3000
)

// Config is the full runtime configuration.
type Config struct {
	Port        int
	DatabaseURL string
	// IndexPath is an HTML file on disk served at "/". Empty means the page
	// embedded in the binary.
	IndexPath string
	LogLevel  string // debug|info|warn|error
	LogFormat string // text|json
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Port:        DefaultPort,
		DatabaseURL: DefaultDatabaseURL,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// FromEnv overlays environment variables onto cfg.
//
//	PORT, DATABASE_URL, INDEX_HTML, LOG_LEVEL, LOG_FORMAT
//
// Unset or empty variables leave the current value alone. A PORT that is not
// a number is an error rather than a silent fallback.
func FromEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("INDEX_HTML"); v != "" {
		cfg.IndexPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	return nil
}

// Load returns Default() with the environment applied.
func Load() (Config, error) {
	cfg := Default()
	if err := FromEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range 1-65535", c.Port)
	}
	if !sqldb.SupportedURL(c.DatabaseURL) {
		return fmt.Errorf("config: DATABASE_URL must start with postgres://, postgresql:// or sqlite:")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return level, nil
}

// NewLogger builds the process logger described by the config.
// Text output mirrors what a developer reads in a terminal; JSON is for log shippers.
func (c Config) NewLogger() *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
