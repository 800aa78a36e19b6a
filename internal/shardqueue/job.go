package shardqueue

import "context"

// Job is one unit of work queued on a shard. The executor calls Run up to
// MaxAttempts times; a nil return ends the attempts.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a bare function to Job. Barriers and this package's tests
// use it; the store wraps its persistence closures via the job package.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }
