package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config selects and parameterizes a Persistence Adapter.
// Environment variables are prefixed with LISTS_, e.g. LISTS_BACKEND.
type Config struct {
	// Backend picks the adapter: memory, remote, sqlite or postgres.
	Backend string `envconfig:"BACKEND" default:"memory"`

	// Remote adapter
	RemoteURL string `envconfig:"REMOTE_URL" default:""`
	APIKey    string `envconfig:"API_KEY" default:""`

	// Debug turns on HTTP traffic dumps in the remote adapter.
	Debug bool `envconfig:"DEBUG" default:"false"`

	// SQLite adapter
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Postgres adapter
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case "memory":
	case "remote":
		if c.RemoteURL == "" {
			return fmt.Errorf("LISTS_REMOTE_URL is required for the remote backend")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("LISTS_SQLITE_PATH is required for the sqlite backend")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("LISTS_POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unsupported LISTS_BACKEND: %s", c.Backend)
	}
	return nil
}

// New parses LISTS_-prefixed environment variables into a Config.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("LISTS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
