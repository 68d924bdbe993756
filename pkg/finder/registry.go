package finder

import (
	"fmt"
	"sync"

	"github.com/plugreg/plugreg/pkg/plugin"
)

// Registry is the build-time discovery variant: a static in-process
// registry of specs, populated by the embedding program (typically at
// startup) and enumerated by managers at run time.
//
// Registration order is preserved; Find reports names in the order their
// specs were registered.
type Registry struct {
	mu    sync.RWMutex
	specs []plugin.Spec
	index map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// Register adds a spec to the registry. The (namespace, name) pair must
// be unique; registering a duplicate is an error.
func (r *Registry) Register(spec plugin.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	key := specKey(spec.Namespace, spec.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[key]; exists {
		return fmt.Errorf("plugreg: plugin %s/%s already registered", spec.Namespace, spec.Name)
	}
	r.index[key] = struct{}{}
	r.specs = append(r.specs, spec)
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// registration from program initialization, where a duplicate or invalid
// spec is a programming error.
func (r *Registry) MustRegister(spec plugin.Spec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// Find returns the registered specs of a namespace as (name, loader)
// pairs, in registration order. The loaders are trivial: the spec is
// already materialized.
func (r *Registry) Find(namespace string) ([]plugin.NamedLoader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []plugin.NamedLoader
	for _, spec := range r.specs {
		if spec.Namespace != namespace {
			continue
		}
		spec := spec
		out = append(out, plugin.NamedLoader{
			Name: spec.Name,
			Load: func() (plugin.Spec, error) { return spec, nil },
		})
	}
	return out, nil
}

func specKey(namespace, name string) string {
	return namespace + "/" + name
}
