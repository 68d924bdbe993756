package sysinfo

import (
	"github.com/plugreg/plugreg/pkg/finder"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// FactoryKey identifies the sysinfo factory in manifest factory tables.
const FactoryKey = "sysinfo"

// Factory returns a plugin factory bound to the given configuration.
//
// Usage with a manifest finder:
//
//	factories := map[string]plugin.Factory{
//	    sysinfo.FactoryKey: sysinfo.Factory(sysinfo.Config{Logger: logger}),
//	}
func Factory(cfg Config) plugin.Factory {
	return func() (plugin.Plugin, error) {
		return New(cfg), nil
	}
}

// Register adds the sysinfo plugin to a static registry under the given
// namespace.
//
// Usage:
//
//	reg := finder.NewRegistry()
//	if err := sysinfo.Register(reg, "demo", sysinfo.Config{Logger: logger}); err != nil {
//	    log.Fatal(err)
//	}
func Register(reg *finder.Registry, namespace string, cfg Config) error {
	return reg.Register(plugin.Spec{
		Namespace: namespace,
		Name:      Name,
		Factory:   Factory(cfg),
	})
}
