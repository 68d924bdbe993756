// Package manager implements the plugin lifecycle orchestrator.
//
// A [Manager] owns the registry for one namespace: it asks its finder
// which plugin names exist, marks each Unresolved, and on demand advances
// a name through resolve → instantiate → gate → load. Every step's
// failure is caught locally, recorded against that one name, and reported
// to the configured listener; a batch load degrades gracefully instead of
// failing all-or-nothing.
//
// # Basic Usage
//
//	reg := finder.NewRegistry()
//	reg.MustRegister(plugin.Spec{
//	    Namespace: "demo",
//	    Name:      "greeter",
//	    Factory:   func() (plugin.Plugin, error) { return &Greeter{}, nil },
//	})
//
//	m := manager.New("demo", reg,
//	    manager.WithListener(plugin.NewLogListener(logger)),
//	)
//	loaded, err := m.LoadAll()
//
// # Lifecycle
//
// Per name the manager tracks a [plugin.State]. Transitions are monotonic;
// failure states and Skipped are terminal for the manager's lifetime.
// [Manager.Reset] is the only sanctioned way to retry a name without
// discarding the manager.
//
// # Concurrency
//
// Load is safe to call concurrently. Same-name calls collapse to at most
// one factory invocation and at most one Load invocation; the losing
// caller blocks and then observes the winner's outcome.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package manager
