package plugin

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnresolved, "Unresolved"},
		{StateResolved, "Resolved"},
		{StateInstantiated, "Instantiated"},
		{StateLoaded, "Loaded"},
		{StateSkipped, "Skipped"},
		{StateResolveFailed, "ResolveFailed"},
		{StateInitFailed, "InitFailed"},
		{StateLoadFailed, "LoadFailed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.state.String()
		if got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestState_Terminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateUnresolved, false},
		{StateResolved, false},
		{StateInstantiated, false},
		{StateLoaded, true},
		{StateSkipped, true},
		{StateResolveFailed, true},
		{StateInitFailed, true},
		{StateLoadFailed, true},
	}

	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestState_Failed(t *testing.T) {
	failing := map[State]bool{
		StateResolveFailed: true,
		StateInitFailed:    true,
		StateLoadFailed:    true,
	}
	for s := StateUnresolved; s <= StateLoadFailed; s++ {
		if got := s.Failed(); got != failing[s] {
			t.Errorf("%v.Failed() = %v, want %v", s, got, failing[s])
		}
	}
}

func TestStage_FailureState(t *testing.T) {
	tests := []struct {
		stage Stage
		want  State
	}{
		{StageResolve, StateResolveFailed},
		{StageInit, StateInitFailed},
		{StageLoad, StateLoadFailed},
	}

	for _, tt := range tests {
		if got := tt.stage.FailureState(); got != tt.want {
			t.Errorf("%v.FailureState() = %v, want %v", tt.stage, got, tt.want)
		}
	}
}

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageResolve, "resolve"},
		{StageInit, "init"},
		{StageLoad, "load"},
		{Stage(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %s, want %s", tt.stage, got, tt.want)
		}
	}
}
