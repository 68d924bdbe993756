package plugin

import (
	"errors"
	"strings"
	"testing"
)

func TestNotFoundError_Message(t *testing.T) {
	err := &NotFoundError{Namespace: "demo", Name: "ghost"}
	if !strings.Contains(err.Error(), "demo/ghost") {
		t.Errorf("message %q does not identify the plugin", err.Error())
	}
}

func TestDiscoveryError_Unwrap(t *testing.T) {
	cause := errors.New("store unreachable")
	err := &DiscoveryError{Namespace: "demo", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}
	var derr *DiscoveryError
	if !errors.As(error(err), &derr) {
		t.Error("errors.As failed on DiscoveryError")
	}
	if !strings.Contains(err.Error(), "demo") {
		t.Errorf("message %q does not name the namespace", err.Error())
	}
}

func TestStageError_Unwrap(t *testing.T) {
	cause := errors.New("bad constructor")
	err := &StageError{Namespace: "demo", Name: "y", Stage: StageInit, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}
	msg := err.Error()
	for _, want := range []string{"demo/y", "init", "bad constructor"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestSpec_Validate(t *testing.T) {
	factory := func() (Plugin, error) { return nil, nil }

	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"valid", Spec{Namespace: "demo", Name: "x", Factory: factory}, false},
		{"missing namespace", Spec{Name: "x", Factory: factory}, true},
		{"missing name", Spec{Namespace: "demo", Factory: factory}, true},
		{"missing factory", Spec{Namespace: "demo", Name: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
