// Package plugreg provides a plugin discovery and lifecycle framework.
//
// A manager discovers deferred-construction plugins through a finder,
// instantiates them on demand, and advances each through a fixed
// lifecycle (resolve → instantiate → gate → load) while isolating
// failures so one plugin's failure never aborts the loading of others.
//
// Example usage:
//
//	reg := plugreg.NewRegistry()
//	reg.MustRegister(plugreg.Spec{
//	    Namespace: "demo",
//	    Name:      "greeter",
//	    Factory:   func() (plugreg.Plugin, error) { return &Greeter{}, nil },
//	})
//
//	m, err := plugreg.New("demo", reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loaded, err := m.LoadAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Sub-packages can also be imported directly for selective use:
// pkg/plugin for the descriptor model, pkg/manager for the orchestrator,
// pkg/finder for discovery adapters, and pkg/log for the logging
// abstraction.
package plugreg

import (
	"fmt"

	"github.com/plugreg/plugreg/pkg/finder"
	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/manager"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// Re-export core types from sub-packages for convenient access.
type (
	// Plugin is a unit of deferred functionality exposing ShouldLoad/Load.
	Plugin = plugin.Plugin

	// Spec binds a namespace+name to a factory.
	Spec = plugin.Spec

	// Factory is a zero-argument plugin constructor.
	Factory = plugin.Factory

	// Finder is the discovery capability consumed by a manager.
	Finder = plugin.Finder

	// Listener observes per-plugin lifecycle transitions and failures.
	Listener = plugin.Listener

	// State is the lifecycle state tracked per plugin name.
	State = plugin.State

	// Manager orchestrates plugin discovery and lifecycle for a namespace.
	Manager = manager.Manager

	// Registry is the static in-process discovery adapter.
	Registry = finder.Registry

	// ManifestFinder is the manifest-directory discovery adapter.
	ManifestFinder = finder.ManifestFinder

	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger
)

// New creates a manager for the given namespace and finder.
// It validates sub-module version compatibility before construction.
func New(namespace string, f Finder, opts ...manager.Option) (*Manager, error) {
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	return manager.New(namespace, f, opts...), nil
}

// NewRegistry creates an empty static spec registry.
func NewRegistry() *Registry {
	return finder.NewRegistry()
}

// WithLoadArgs sets the opaque argument passed to every plugin Load call.
func WithLoadArgs(args any) manager.Option {
	return manager.WithLoadArgs(args)
}

// WithListener sets the lifecycle listener.
func WithListener(l Listener) manager.Option {
	return manager.WithListener(l)
}

// WithLogger sets the structured logger.
func WithLogger(logger Logger) manager.Option {
	return manager.WithLogger(logger)
}

// validateModuleVersions checks that all sub-module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"plugin":  {plugin.Version, plugin.MinCompatibleVersion},
		"manager": {manager.Version, manager.MinCompatibleVersion},
		"finder":  {finder.Version, finder.MinCompatibleVersion},
		"log":     {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
