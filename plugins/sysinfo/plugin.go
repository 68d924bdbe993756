// Package sysinfo provides a plugin that reports host and runtime facts
// when loaded. It is mostly useful as a smoke test that a manager and
// its discovery path are wired correctly.
package sysinfo

import (
	"os"
	"runtime"
	"sync"

	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// Name is the plugin name sysinfo registers under.
const Name = "sysinfo"

// Config holds configuration options for the sysinfo plugin.
type Config struct {
	// Logger receives the collected facts. Default: no output.
	Logger log.Logger
}

// Info is the snapshot of host facts collected at load time.
type Info struct {
	Hostname string
	OS       string
	Arch     string
	NumCPU   int
	GoVer    string
}

// Plugin implements host information reporting.
type Plugin struct {
	mu     sync.Mutex
	logger log.Logger
	info   *Info
}

// New creates a new sysinfo plugin with the given configuration.
func New(cfg Config) *Plugin {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Plugin{logger: logger}
}

// ShouldLoad always reports true; sysinfo has no gating condition.
func (p *Plugin) ShouldLoad() bool {
	return true
}

// Load collects host facts and logs them.
func (p *Plugin) Load(args any) error {
	info := Info{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
		GoVer:  runtime.Version(),
	}
	if h, err := os.Hostname(); err == nil {
		info.Hostname = h
	} else {
		info.Hostname = "unknown"
	}

	p.mu.Lock()
	p.info = &info
	p.mu.Unlock()

	p.logger.Info("system information",
		log.String("hostname", info.Hostname),
		log.String("os", info.OS),
		log.String("arch", info.Arch),
		log.Int("num_cpu", info.NumCPU),
		log.String("go", info.GoVer))
	return nil
}

// Info returns the facts collected by Load, or nil before loading.
func (p *Plugin) Info() *Info {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info
}

// Ensure Plugin implements plugin.Plugin.
var _ plugin.Plugin = (*Plugin)(nil)
