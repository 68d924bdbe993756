package plugin

// State represents the lifecycle state of a plugin name within a manager.
//
// Transitions are monotonic and one-directional:
//
//	Unresolved → Resolved → Instantiated → Loaded
//
// with terminal branches ResolveFailed, InitFailed, LoadFailed, and
// Skipped. A name never re-enters an earlier state; a failed or skipped
// name stays that way for the manager's lifetime.
type State int

const (
	StateUnresolved State = iota
	StateResolved
	StateInstantiated
	StateLoaded
	StateSkipped
	StateResolveFailed
	StateInitFailed
	StateLoadFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "Unresolved"
	case StateResolved:
		return "Resolved"
	case StateInstantiated:
		return "Instantiated"
	case StateLoaded:
		return "Loaded"
	case StateSkipped:
		return "Skipped"
	case StateResolveFailed:
		return "ResolveFailed"
	case StateInitFailed:
		return "InitFailed"
	case StateLoadFailed:
		return "LoadFailed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state is final for a manager's lifetime.
func (s State) Terminal() bool {
	switch s {
	case StateLoaded, StateSkipped, StateResolveFailed, StateInitFailed, StateLoadFailed:
		return true
	default:
		return false
	}
}

// Failed reports whether the state is a failure terminal.
func (s State) Failed() bool {
	switch s {
	case StateResolveFailed, StateInitFailed, StateLoadFailed:
		return true
	default:
		return false
	}
}

// Stage identifies the pipeline step at which a plugin failure occurred.
type Stage int

const (
	StageResolve Stage = iota
	StageInit
	StageLoad
)

// String returns a human-readable representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageInit:
		return "init"
	case StageLoad:
		return "load"
	default:
		return "unknown"
	}
}

// FailureState returns the terminal state corresponding to a failure at
// this stage.
func (s Stage) FailureState() State {
	switch s {
	case StageResolve:
		return StateResolveFailed
	case StageInit:
		return StateInitFailed
	case StageLoad:
		return StateLoadFailed
	default:
		return StateResolveFailed
	}
}
