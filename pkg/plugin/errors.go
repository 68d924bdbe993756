package plugin

import "fmt"

// NotFoundError is returned by Manager.Load when the requested name is
// absent from discovery. No registry entry is created for the name.
type NotFoundError struct {
	Namespace string
	Name      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugreg: plugin %s/%s not found", e.Namespace, e.Name)
}

// DiscoveryError is returned when the finder itself cannot enumerate a
// namespace. It is the only error that fails a LoadAll call as a whole.
type DiscoveryError struct {
	Namespace string
	Err       error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("plugreg: discovery failed for namespace %s: %v", e.Namespace, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// StageError wraps a failure from one step of a single plugin's pipeline:
// spec loading (StageResolve), factory invocation (StageInit), or the
// plugin's Load call (StageLoad). It is scoped to one plugin and never
// propagates past LoadAll.
type StageError struct {
	Namespace string
	Name      string
	Stage     Stage
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("plugreg: plugin %s/%s failed at %s: %v", e.Namespace, e.Name, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
