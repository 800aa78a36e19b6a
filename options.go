package lists

// This file defines functional options that configure the Store during
// construction. Keeping them in a standalone file avoids cluttering lists.go
// and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Store during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Store) error

// WithLogger replaces the default component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) error {
		s.log = l
		return nil
	}
}

// WithClock overrides the time source used for CreatedAt/DateAdded stamps.
// Tests use it to get deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) error {
		if now == nil {
			return fmt.Errorf("clock must be non-nil")
		}
		s.now = now
		return nil
	}
}

// WithQueue sizes the persistence executor. Shards bounds parallelism across
// lists; depth is the per-shard buffer before Submit reports back-pressure.
func WithQueue(shards, depth int) Option {
	return func(s *Store) error {
		if shards <= 0 || depth <= 0 {
			return fmt.Errorf("queue shards and depth must be > 0")
		}
		s.queueShards = shards
		s.queueDepth = depth
		return nil
	}
}

// WithMaxPersistAttempts sets how many times a failed persistence write is
// tried in total. The default is 1: writes are best-effort, fire-and-forget,
// and a failure is logged rather than retried.
func WithMaxPersistAttempts(n int) Option {
	return func(s *Store) error {
		if n <= 0 {
			return fmt.Errorf("max persist attempts must be > 0")
		}
		s.maxAttempts = n
		return nil
	}
}
