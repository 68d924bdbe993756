package sysinfo

import (
	"runtime"
	"testing"
)

func TestPlugin_ShouldLoad(t *testing.T) {
	p := New(Config{})
	if !p.ShouldLoad() {
		t.Error("ShouldLoad() = false, want true")
	}
}

func TestPlugin_LoadCollectsInfo(t *testing.T) {
	p := New(Config{})

	if p.Info() != nil {
		t.Error("Info() non-nil before Load")
	}
	if err := p.Load(nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	info := p.Info()
	if info == nil {
		t.Fatal("Info() nil after Load")
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("info = %s/%s, want %s/%s", info.OS, info.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if info.NumCPU < 1 {
		t.Errorf("NumCPU = %d, want >= 1", info.NumCPU)
	}
	if info.Hostname == "" {
		t.Error("Hostname is empty")
	}
}

func TestFactory(t *testing.T) {
	inst, err := Factory(Config{})()
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if _, ok := inst.(*Plugin); !ok {
		t.Errorf("factory produced %T, want *Plugin", inst)
	}
}
