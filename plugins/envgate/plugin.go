// Package envgate provides a plugin whose loading is gated on an
// environment variable. It demonstrates the ShouldLoad policy skip: when
// the variable is unset or falsy the manager records the plugin as
// skipped without ever calling Load.
package envgate

import (
	"os"
	"strings"
	"sync"

	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// Name is the plugin name envgate registers under.
const Name = "envgate"

// DefaultVar is the environment variable consulted when none is configured.
const DefaultVar = "PLUGREG_ENVGATE"

// Config holds configuration options for the envgate plugin.
type Config struct {
	// Var is the environment variable gating the load.
	// Default: PLUGREG_ENVGATE.
	Var string

	// Logger receives load notifications. Default: no output.
	Logger log.Logger
}

// Plugin implements environment-gated loading.
type Plugin struct {
	envVar string
	logger log.Logger

	mu     sync.Mutex
	loaded bool
}

// New creates a new envgate plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.Var == "" {
		cfg.Var = DefaultVar
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Plugin{envVar: cfg.Var, logger: logger}
}

// ShouldLoad reports whether the gating variable is set to a truthy
// value. Unset, "0", and "false" decline loading.
func (p *Plugin) ShouldLoad() bool {
	v := strings.TrimSpace(os.Getenv(p.envVar))
	switch strings.ToLower(v) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}

// Load marks the plugin as active.
func (p *Plugin) Load(args any) error {
	p.mu.Lock()
	p.loaded = true
	p.mu.Unlock()

	p.logger.Info("envgate active", log.String("var", p.envVar))
	return nil
}

// Loaded reports whether Load has run.
func (p *Plugin) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Ensure Plugin implements plugin.Plugin.
var _ plugin.Plugin = (*Plugin)(nil)
