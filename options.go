package claudesdk

import (
	"log/slog"
	"time"

	"github.com/wagiedev/claude-session-sdk-go/internal/config"
)

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTransport sets the transport to the conversational process. Required.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// WithInterruptTimeout bounds how long Interrupt waits for an acknowledgment.
// Defaults to DefaultInterruptTimeout.
func WithInterruptTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.InterruptTimeout = timeout
	}
}

// WithDefaultSessionID sets the session used when Send is called without one.
// Defaults to DefaultSessionID.
func WithDefaultSessionID(sessionID string) Option {
	return func(o *Options) {
		o.DefaultSessionID = sessionID
	}
}

// WithSettings applies settings read from a YAML file with LoadSettings.
// Options given after it override the file.
func WithSettings(settings *Settings) Option {
	return func(o *Options) {
		if settings != nil {
			settings.Apply(o)
		}
	}
}

// LoadSettings reads client settings from a YAML file:
//
//	interrupt_timeout: 2s
//	default_session_id: main
//	log_level: debug
//
// A log_level installs a text logger on stderr at that level.
func LoadSettings(path string) (*Settings, error) {
	return config.LoadFile(path)
}
