package manager

import (
	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// Option configures optional behavior of a Manager.
type Option func(*options)

// options holds the optional configuration for a Manager instance.
type options struct {
	loadArgs any
	listener plugin.Listener
	logger   log.Logger
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		loadArgs: nil,
		listener: plugin.NopListener{},
		logger:   log.NewNoopLogger(),
	}
}

// WithLoadArgs sets the opaque argument value passed verbatim to every
// plugin's Load call. The same value is used for every plugin in a batch.
func WithLoadArgs(args any) Option {
	return func(o *options) {
		o.loadArgs = args
	}
}

// WithListener sets the lifecycle listener notified of per-plugin
// transitions and failures. If not provided, notifications are discarded.
func WithListener(l plugin.Listener) Option {
	return func(o *options) {
		if l != nil {
			o.listener = l
		}
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
