package shardqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config controls a ShardExecutor. Zero values are replaced with defaults
// in NewShardExecutor, so the empty Config is usable.
type Config struct {
	// Shards is the number of worker goroutines / queues.
	Shards int `envconfig:"SHARDS" default:"4"`
	// QueueSize is the buffered capacity of each shard queue.
	QueueSize int `envconfig:"QUEUE_SIZE" default:"128"`
	// EnqueueTimeout bounds how long Submit waits for queue space before
	// reporting back-pressure.
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`
	// MaxAttempts is the total number of tries per job, first run included.
	// 1 disables retries.
	MaxAttempts int `envconfig:"MAX_ATTEMPTS" default:"8"`
	// BaseBackoff is the initial retry interval.
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"100ms"`
	// MaxInterval caps the exponential backoff.
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"20s"`

	// ErrorHandler, when non-nil, receives every terminal job error.
	// Panics inside the handler are recovered.
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads executor settings from SQ_-prefixed environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("SQ", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
