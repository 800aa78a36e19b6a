package lists

import (
	"context"

	"github.com/shoppagain/lists/internal/shardqueue"
)

// executor abstracts the internal async job runner that carries persistence
// writes. All stores include one by default.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Stop()
}
