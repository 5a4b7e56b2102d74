package config

import (
	"io"
	"log/slog"
	"time"
)

const (
	// DefaultInterruptTimeout bounds the wait for an interrupt acknowledgment.
	DefaultInterruptTimeout = 5 * time.Second

	// DefaultSessionID is the session used when a send names none.
	DefaultSessionID = "default"
)

// Options configures the behavior of a session client.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Transport is the duplex channel to the conversational process. Required.
	Transport Transport

	// InterruptTimeout bounds the wait for an interrupt acknowledgment.
	// Zero means DefaultInterruptTimeout.
	InterruptTimeout time.Duration

	// DefaultSessionID is the session used by sends that name none.
	// Empty means DefaultSessionID.
	DefaultSessionID string
}

// WithDefaults returns a copy of o with every unset field defaulted.
// A nil receiver yields the defaults.
func (o *Options) WithDefaults() *Options {
	resolved := Options{}
	if o != nil {
		resolved = *o
	}

	if resolved.Logger == nil {
		resolved.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if resolved.InterruptTimeout <= 0 {
		resolved.InterruptTimeout = DefaultInterruptTimeout
	}

	if resolved.DefaultSessionID == "" {
		resolved.DefaultSessionID = DefaultSessionID
	}

	return &resolved
}
