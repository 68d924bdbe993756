// Package plugin defines the descriptor model and capability interfaces
// of the plugreg framework.
//
// A [Spec] binds a (namespace, name) pair to a [Factory]; a [Plugin] is
// the unit of deferred functionality a factory produces. [Finder] is the
// discovery capability that enumerates the specs of a namespace, and
// [Listener] is the observer capability notified of per-plugin lifecycle
// transitions.
//
// The lifecycle of every discovered name is tracked by a manager (see
// package manager) as a [State]; plugins themselves carry no stage field.
//
// # Errors
//
//   - [NotFoundError]: a requested name is absent from discovery
//   - [DiscoveryError]: the finder cannot enumerate a namespace at all
//   - [StageError]: one plugin failed at one pipeline stage
//
// All error types support errors.As and errors.Unwrap.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package plugin
