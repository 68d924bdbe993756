package manager

import (
	"fmt"
	"sync"

	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// Manager drives discovered plugins of a single namespace through their
// lifecycle. It owns the registry entry for every name its finder
// reports, is the sole writer of lifecycle state, and isolates each
// plugin's failure from the rest of the batch.
//
// A Manager is safe for concurrent use. Concurrent loads of different
// names proceed independently; concurrent loads of the same name
// collapse to a single pipeline run, with the second caller observing
// the first caller's outcome.
type Manager struct {
	namespace string
	finder    plugin.Finder
	opts      options

	mu      sync.Mutex
	order   []string
	entries map[string]*entry
}

// entry is the registry record for one discovered name. Its mutex
// serializes the pipeline so factories and Load are invoked at most once.
type entry struct {
	mu       sync.Mutex
	name     string
	loader   plugin.SpecLoader
	spec     *plugin.Spec
	state    plugin.State
	instance plugin.Plugin
	err      error
}

// EntryStatus is a point-in-time snapshot of one registry entry,
// read by status queries and external tooling.
type EntryStatus struct {
	State plugin.State
	Err   error
}

// New creates a manager for the given namespace and finder.
// Discovery is lazy: no finder query happens until Names, Load, or
// LoadAll is called, and no spec is resolved before its first access.
func New(namespace string, finder plugin.Finder, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		namespace: namespace,
		finder:    finder,
		opts:      o,
		entries:   make(map[string]*entry),
	}
}

// Namespace returns the namespace this manager owns.
func (m *Manager) Namespace() string { return m.namespace }

// Names returns every name the finder currently reports for the
// namespace, in the finder's enumeration order, without resolving any
// spec or advancing any state.
func (m *Manager) Names() ([]string, error) {
	return m.refresh()
}

// Load advances the named plugin through the full pipeline:
// resolve spec, invoke factory, gate on ShouldLoad, call Load.
//
// A name absent from discovery fails with *plugin.NotFoundError. A
// failure at any stage moves the entry to the matching terminal state,
// notifies the listener, and is returned as *plugin.StageError. A plugin
// whose ShouldLoad returns false ends Skipped and Load returns
// (nil, nil); this is policy, not failure.
//
// Load is idempotent on terminal states: it returns the cached instance
// if loaded, the cached error if failed, and (nil, nil) if skipped,
// without repeating any side-effecting step.
func (m *Manager) Load(name string) (plugin.Plugin, error) {
	m.mu.Lock()
	e := m.entries[name]
	m.mu.Unlock()

	if e == nil {
		// Unknown name: ask the finder again before giving up.
		if _, err := m.refresh(); err != nil {
			return nil, err
		}
		m.mu.Lock()
		e = m.entries[name]
		m.mu.Unlock()
		if e == nil {
			return nil, &plugin.NotFoundError{Namespace: m.namespace, Name: name}
		}
	}

	return m.loadEntry(e)
}

// LoadAll runs the per-name pipeline for every discoverable name, in the
// finder's enumeration order, and returns the instances that reached the
// loaded state keyed by name.
//
// One name's failure never aborts the batch: each failure is recorded in
// the registry and reported to the listener, then iteration continues.
// LoadAll itself only fails when the finder cannot enumerate the
// namespace at all.
func (m *Manager) LoadAll() (map[string]plugin.Plugin, error) {
	names, err := m.refresh()
	if err != nil {
		return nil, err
	}

	loaded := make(map[string]plugin.Plugin, len(names))
	for _, name := range names {
		m.mu.Lock()
		e := m.entries[name]
		m.mu.Unlock()
		if e == nil {
			continue
		}

		inst, err := m.loadEntry(e)
		if err != nil {
			// Already recorded and reported via the listener.
			continue
		}
		if inst != nil {
			loaded[name] = inst
		}
	}
	return loaded, nil
}

// State returns the lifecycle state of a known name. The second return
// is false when the name has no registry entry.
func (m *Manager) State(name string) (plugin.State, bool) {
	m.mu.Lock()
	e := m.entries[name]
	m.mu.Unlock()
	if e == nil {
		return plugin.StateUnresolved, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, true
}

// Status returns a snapshot of every registry entry's state and recorded
// error, keyed by name.
func (m *Manager) Status() map[string]EntryStatus {
	m.mu.Lock()
	es := make([]*entry, 0, len(m.order))
	for _, name := range m.order {
		es = append(es, m.entries[name])
	}
	m.mu.Unlock()

	out := make(map[string]EntryStatus, len(es))
	for _, e := range es {
		e.mu.Lock()
		out[e.name] = EntryStatus{State: e.state, Err: e.err}
		e.mu.Unlock()
	}
	return out
}

// Reset drops the named entry back to Unresolved, discarding any cached
// spec, instance, or error, so a later Load runs the pipeline again.
// Returns false if the name has no registry entry. This is the only
// sanctioned retry path; states never rewind otherwise.
func (m *Manager) Reset(name string) bool {
	m.mu.Lock()
	e := m.entries[name]
	m.mu.Unlock()
	if e == nil {
		return false
	}
	e.mu.Lock()
	e.state = plugin.StateUnresolved
	e.spec = nil
	e.instance = nil
	e.err = nil
	e.mu.Unlock()
	return true
}

// refresh queries the finder and merges newly discovered names into the
// registry as Unresolved entries. Existing entries are untouched, so
// states stay monotonic across re-enumeration. Returns the names in the
// finder's order.
func (m *Manager) refresh() ([]string, error) {
	found, err := m.finder.Find(m.namespace)
	if err != nil {
		return nil, &plugin.DiscoveryError{Namespace: m.namespace, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(found))
	for _, nl := range found {
		names = append(names, nl.Name)
		if _, ok := m.entries[nl.Name]; ok {
			continue
		}
		m.entries[nl.Name] = &entry{
			name:   nl.Name,
			loader: nl.Load,
			state:  plugin.StateUnresolved,
		}
		m.order = append(m.order, nl.Name)
	}
	return names, nil
}

// loadEntry runs the pipeline for one entry. The entry mutex is held for
// the whole run, so a concurrent load of the same name blocks until the
// first completes and then replays the terminal outcome.
func (m *Manager) loadEntry(e *entry) (plugin.Plugin, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case plugin.StateLoaded:
		return e.instance, nil
	case plugin.StateSkipped:
		return nil, nil
	case plugin.StateResolveFailed, plugin.StateInitFailed, plugin.StateLoadFailed:
		return nil, e.err
	}

	if e.state == plugin.StateUnresolved {
		spec, err := loadSpec(e.loader)
		if err != nil {
			return nil, m.fail(e, plugin.StageResolve, err)
		}
		e.spec = &spec
		e.state = plugin.StateResolved
		m.logger().Debug("plugin resolved",
			log.String("namespace", m.namespace),
			log.String("plugin", e.name))
	}

	if e.state == plugin.StateResolved {
		inst, err := construct(e.spec.Factory)
		if err != nil {
			return nil, m.fail(e, plugin.StageInit, err)
		}
		e.instance = inst
		e.state = plugin.StateInstantiated
		m.logger().Debug("plugin instantiated",
			log.String("namespace", m.namespace),
			log.String("plugin", e.name))
	}

	load, err := shouldLoad(e.instance)
	if err != nil {
		return nil, m.fail(e, plugin.StageLoad, err)
	}
	if !load {
		e.state = plugin.StateSkipped
		m.logger().Info("plugin skipped",
			log.String("namespace", m.namespace),
			log.String("plugin", e.name))
		m.notify(func(l plugin.Listener) { l.OnSkip(m.namespace, e.name) })
		return nil, nil
	}

	if err := loadInstance(e.instance, m.opts.loadArgs); err != nil {
		return nil, m.fail(e, plugin.StageLoad, err)
	}
	e.state = plugin.StateLoaded
	m.logger().Info("plugin loaded",
		log.String("namespace", m.namespace),
		log.String("plugin", e.name))
	m.notify(func(l plugin.Listener) { l.OnLoadSuccess(m.namespace, e.name) })
	return e.instance, nil
}

// fail records a terminal failure on the entry, notifies the listener,
// and returns the wrapped error. Caller holds the entry mutex.
func (m *Manager) fail(e *entry, stage plugin.Stage, cause error) error {
	serr := &plugin.StageError{
		Namespace: m.namespace,
		Name:      e.name,
		Stage:     stage,
		Err:       cause,
	}
	e.state = stage.FailureState()
	e.err = serr

	m.logger().Error("plugin failed",
		log.String("namespace", m.namespace),
		log.String("plugin", e.name),
		log.Stringer("stage", stage),
		log.Err(cause))

	switch stage {
	case plugin.StageResolve:
		m.notify(func(l plugin.Listener) { l.OnResolveFail(m.namespace, e.name, serr) })
	case plugin.StageInit:
		m.notify(func(l plugin.Listener) { l.OnInitFail(m.namespace, e.name, serr) })
	case plugin.StageLoad:
		m.notify(func(l plugin.Listener) { l.OnLoadFail(m.namespace, e.name, serr) })
	}
	return serr
}

// notify invokes one listener callback. A panicking listener must never
// abort an in-progress batch, so panics are recovered and logged.
func (m *Manager) notify(fn func(plugin.Listener)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger().Error("listener panic",
				log.String("namespace", m.namespace),
				log.Any("panic", r))
		}
	}()
	fn(m.opts.listener)
}

func (m *Manager) logger() log.Logger { return m.opts.logger }

// loadSpec invokes a spec loader, converting a panic into an error.
func loadSpec(loader plugin.SpecLoader) (spec plugin.Spec, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("spec loader panic: %v", r)
		}
	}()
	if loader == nil {
		return plugin.Spec{}, fmt.Errorf("no spec loader")
	}
	spec, err = loader()
	if err != nil {
		return plugin.Spec{}, err
	}
	if verr := spec.Validate(); verr != nil {
		return plugin.Spec{}, verr
	}
	return spec, nil
}

// construct invokes a factory, converting a panic into an error.
func construct(factory plugin.Factory) (inst plugin.Plugin, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("factory panic: %v", r)
		}
	}()
	inst, err = factory()
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, fmt.Errorf("factory returned nil plugin")
	}
	return inst, nil
}

// shouldLoad queries the gate, converting a panic into an error.
func shouldLoad(p plugin.Plugin) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("ShouldLoad panic: %v", r)
		}
	}()
	return p.ShouldLoad(), nil
}

// loadInstance calls the plugin's Load, converting a panic into an error.
func loadInstance(p plugin.Plugin, args any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Load panic: %v", r)
		}
	}()
	return p.Load(args)
}
