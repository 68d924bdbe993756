package finder

import (
	"testing"

	"github.com/plugreg/plugreg/pkg/plugin"
)

type nopPlugin struct{}

func (nopPlugin) ShouldLoad() bool    { return true }
func (nopPlugin) Load(args any) error { return nil }

func nopFactory() (plugin.Plugin, error) { return nopPlugin{}, nil }

func TestRegistry_RegisterAndFind(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(plugin.Spec{Namespace: "demo", Name: name, Factory: nopFactory}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	if err := r.Register(plugin.Spec{Namespace: "other", Name: "a", Factory: nopFactory}); err != nil {
		t.Fatalf("Register(other/a): %v", err)
	}

	found, err := r.Find("demo")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	// Registration order, not alphabetical.
	want := []string{"c", "a", "b"}
	if len(found) != len(want) {
		t.Fatalf("Find returned %d loaders, want %d", len(found), len(want))
	}
	for i, nl := range found {
		if nl.Name != want[i] {
			t.Errorf("found[%d] = %s, want %s", i, nl.Name, want[i])
		}
		spec, err := nl.Load()
		if err != nil {
			t.Fatalf("loader(%s): %v", nl.Name, err)
		}
		if spec.Namespace != "demo" || spec.Name != want[i] {
			t.Errorf("loader(%s) spec = %s/%s", nl.Name, spec.Namespace, spec.Name)
		}
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	spec := plugin.Spec{Namespace: "demo", Name: "x", Factory: nopFactory}

	if err := r.Register(spec); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(spec); err == nil {
		t.Error("duplicate Register succeeded, want error")
	}

	// Same name in a different namespace is fine.
	other := spec
	other.Namespace = "other"
	if err := r.Register(other); err != nil {
		t.Errorf("Register in other namespace: %v", err)
	}
}

func TestRegistry_InvalidSpecRejected(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(plugin.Spec{Namespace: "demo", Name: "x"}); err == nil {
		t.Error("Register accepted a spec without a factory")
	}
	if found, _ := r.Find("demo"); len(found) != 0 {
		t.Errorf("invalid spec became discoverable: %v", found)
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(plugin.Spec{Namespace: "demo", Name: "x", Factory: nopFactory})

	defer func() {
		if recover() == nil {
			t.Error("MustRegister did not panic on duplicate")
		}
	}()
	r.MustRegister(plugin.Spec{Namespace: "demo", Name: "x", Factory: nopFactory})
}

func TestRegistry_FindUnknownNamespace(t *testing.T) {
	r := NewRegistry()
	found, err := r.Find("nothing-here")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("Find returned %d loaders for an empty namespace", len(found))
	}
}
