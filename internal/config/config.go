// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override the Vite dev server default.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	// DatabaseURL is an optional Postgres connection string for the session
	// store. When empty, sessions live in the SQLite file at SQLitePath.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// SQLitePath is the session database file used when DatabaseURL is empty.
	SQLitePath string `envconfig:"SQLITE_PATH" default:"guestdesk.db"`

	// LoginPassphrase is the shared passphrase every team member signs in with. Required.
	LoginPassphrase string `envconfig:"LOGIN_PASSPHRASE" required:"true"`

	// MaxBodyBytes caps the size of request bodies.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	// Timezone is the IANA zone used to group the audit log by day.
	Timezone string `envconfig:"EVENT_TIMEZONE" default:"UTC"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is not set or any value
// that does not parse.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var missing []string
	if strings.TrimSpace(cfg.LoginPassphrase) == "" {
		missing = append(missing, "LOGIN_PASSPHRASE")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.MaxBodyBytes <= 0 {
		return Config{}, errors.New("config.Load: MAX_BODY_BYTES must be positive")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("config.Load: EVENT_TIMEZONE: %w", err)
	}
	return cfg, nil
}

// UsePostgres reports whether sessions should be stored in Postgres.
func (c Config) UsePostgres() bool { return c.DatabaseURL != "" }

// Location returns the audit log's day-grouping zone. Load has already
// validated it, so the UTC fallback is only reached for hand-built Configs.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
