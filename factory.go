package lists

import (
	"context"
	"fmt"

	"github.com/shoppagain/lists/internal/config"
	"github.com/shoppagain/lists/internal/persist"
	"github.com/shoppagain/lists/internal/persist/postgres"
	"github.com/shoppagain/lists/internal/persist/remote"
	"github.com/shoppagain/lists/internal/persist/sqlite"
)

// NewFromEnv builds a Store with the Persistence Adapter selected by
// LISTS_-prefixed environment variables (see internal/config). The memory
// backend accepts everything and persists nothing.
func NewFromEnv(ctx context.Context, opts ...Option) (*Store, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	p, err := newPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(p, opts...)
}

func newPersister(ctx context.Context, cfg *config.Config) (persist.Persister, error) {
	switch cfg.Backend {
	case "memory":
		return persist.Noop{}, nil
	case "remote":
		var ropts []remote.Option
		if cfg.APIKey != "" {
			ropts = append(ropts, remote.WithAPIKey(cfg.APIKey))
		}
		if cfg.Debug {
			ropts = append(ropts, remote.WithDebugLogging(true))
		}
		return remote.New(cfg.RemoteURL, ropts...)
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}
