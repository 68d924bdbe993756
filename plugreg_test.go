package plugreg

import (
	"testing"

	"github.com/plugreg/plugreg/pkg/plugin"
)

type staticPlugin struct{ loaded bool }

func (p *staticPlugin) ShouldLoad() bool    { return true }
func (p *staticPlugin) Load(args any) error { p.loaded = true; return nil }

func TestNew_EndToEnd(t *testing.T) {
	reg := NewRegistry()
	p := &staticPlugin{}
	reg.MustRegister(Spec{
		Namespace: "demo",
		Name:      "static",
		Factory:   func() (Plugin, error) { return p, nil },
	})

	m, err := New("demo", reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	loaded, err := m.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != 1 || loaded["static"] != Plugin(p) {
		t.Errorf("loaded = %v, want {static}", loaded)
	}
	if !p.loaded {
		t.Error("plugin Load never ran")
	}
	if st, _ := m.State("static"); st != plugin.StateLoaded {
		t.Errorf("state = %v, want Loaded", st)
	}
}

func TestIsVersionCompatible(t *testing.T) {
	tests := []struct {
		version    string
		minVersion string
		want       bool
	}{
		{"1.0.0", "1.0.0", true},
		{"1.2.3", "1.0.0", true},
		{"1.0.0", "1.0.1", false},
		{"2.0.0", "1.9.9", true},
		{"1.9.9", "2.0.0", false},
		{"1.1.0", "1.0.9", true},
	}

	for _, tt := range tests {
		got := isVersionCompatible(tt.version, tt.minVersion)
		if got != tt.want {
			t.Errorf("isVersionCompatible(%s, %s) = %v, want %v",
				tt.version, tt.minVersion, got, tt.want)
		}
	}
}

func TestValidateModuleVersions(t *testing.T) {
	if err := validateModuleVersions(); err != nil {
		t.Errorf("validateModuleVersions: %v", err)
	}
}
