package envgate

import (
	"github.com/plugreg/plugreg/pkg/finder"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// FactoryKey identifies the envgate factory in manifest factory tables.
const FactoryKey = "envgate"

// Factory returns a plugin factory bound to the given configuration.
func Factory(cfg Config) plugin.Factory {
	return func() (plugin.Plugin, error) {
		return New(cfg), nil
	}
}

// Register adds the envgate plugin to a static registry under the given
// namespace.
func Register(reg *finder.Registry, namespace string, cfg Config) error {
	return reg.Register(plugin.Spec{
		Namespace: namespace,
		Name:      Name,
		Factory:   Factory(cfg),
	})
}
