// Package logger provides a configured zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a new zerolog.Logger configured for the library.
func New(component string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("component", component).
		Timestamp().
		Logger()
}
