// Package job wraps the store's persistence closures for the shard executor
// and derives the shard label used in metrics.
package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc reports a nil closure handed to New.
var ErrNilJobFunc = errors.New("nil JobFunc")

// jobFunc satisfies shardqueue.Job for a plain closure.
type jobFunc func(context.Context) error

func (f jobFunc) Run(ctx context.Context) error {
	if f == nil {
		return fmt.Errorf("jobfunc: %w", ErrNilJobFunc)
	}
	return f(ctx)
}

// New wraps a persistence closure so the shard executor can run it.
func New(fn func(context.Context) error) jobFunc {
	return jobFunc(fn)
}
