package lists

import (
	"errors"

	"github.com/shoppagain/lists/internal/shardqueue"
)

// ErrBackPressure is returned when the store's internal shard queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// ErrClosed is returned when an operation reaches a store after Close.
var ErrClosed = errors.New("store closed")

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// mapSubmitErr converts internal executor errors to the public sentinels.
func mapSubmitErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shardqueue.ErrQueueFull):
		return ErrBackPressure
	case errors.Is(err, shardqueue.ErrExecutorClosed):
		return ErrClosed
	default:
		return err
	}
}
