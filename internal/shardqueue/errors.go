package shardqueue

import (
	"errors"
	"fmt"
)

// ErrExecutorClosed is returned by Submit after Stop.
var ErrExecutorClosed = errors.New("shardqueue: executor closed")

// ErrQueueFull is the sentinel matched by errors.Is for *QueueFullError.
var ErrQueueFull = errors.New("shardqueue: queue full")

// QueueFullError reports back-pressure on a specific shard.
type QueueFullError struct {
	Shard    int
	Length   int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("shardqueue: shard %d full (%d/%d)", e.Shard, e.Length, e.Capacity)
}

// Is lets errors.Is(err, ErrQueueFull) match.
func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }

// Irrecoverable is implemented by errors that must never be retried,
// e.g. HTTP 4xx responses from a persistence adapter.
type Irrecoverable interface {
	Irrecoverable() bool
}

func isIrrecoverableError(err error) bool {
	var irr Irrecoverable
	if errors.As(err, &irr) {
		return irr.Irrecoverable()
	}
	return false
}
