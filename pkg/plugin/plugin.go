package plugin

import "fmt"

// Plugin is a unit of deferred functionality managed by a Manager.
//
// ShouldLoad gates loading: when it returns false the manager records the
// plugin as skipped and never calls Load. It must be side-effect-free and
// idempotent; the manager may call it but never relies on calling it more
// than once.
//
// Load performs the plugin's side effects. It receives the opaque,
// caller-chosen argument value supplied to the manager at construction;
// every plugin in a batch receives the same value. Load is called at most
// once per plugin over a manager's lifetime.
//
// Plugins carry no lifecycle state of their own. The manager is the single
// source of truth for a plugin's lifecycle stage.
type Plugin interface {
	ShouldLoad() bool
	Load(args any) error
}

// Factory is a zero-argument constructor producing exactly one Plugin
// instance per call. The manager invokes a factory at most once per name
// over the manager's lifetime; the result is memoized.
type Factory func() (Plugin, error)

// Spec is the immutable descriptor for a plugin: a (namespace, name) pair
// bound to a factory. The factory is a constructor reference, never
// pre-invoked. (namespace, name) must be unique within a registry.
type Spec struct {
	Namespace string
	Name      string
	Factory   Factory
}

// Validate checks that the spec is complete.
func (s Spec) Validate() error {
	if s.Namespace == "" {
		return fmt.Errorf("plugreg: spec namespace is required")
	}
	if s.Name == "" {
		return fmt.Errorf("plugreg: spec name is required")
	}
	if s.Factory == nil {
		return fmt.Errorf("plugreg: spec %s/%s has no factory", s.Namespace, s.Name)
	}
	return nil
}

// SpecLoader produces a concrete Spec on demand. Loading may perform
// expensive work (reading a manifest, resolving a factory reference) and
// may fail independently of discovery.
type SpecLoader func() (Spec, error)

// NamedLoader pairs a discovered plugin name with the loader that
// materializes its spec.
type NamedLoader struct {
	Name string
	Load SpecLoader
}

// Finder is the discovery capability consumed by a Manager.
//
// Find enumerates the plugins known for a namespace as (name, spec loader)
// pairs. The sequence is finite and re-enumerable per call, and its order
// is the finder's registration or scan order; managers preserve it. A
// loader failure for one name must not prevent discovery of others.
type Finder interface {
	Find(namespace string) ([]NamedLoader, error)
}
