package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
plugin_dir = "/opt/plugreg/manifests"
namespace = "prod"
log_level = "debug"
watch = true
envgate_var = "MY_GATE"
load_timeout = "30s"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	if fc.PluginDir != "/opt/plugreg/manifests" {
		t.Errorf("PluginDir = %s", fc.PluginDir)
	}
	if fc.Namespace != "prod" {
		t.Errorf("Namespace = %s", fc.Namespace)
	}
	if fc.Watch == nil || !*fc.Watch {
		t.Error("Watch not parsed as true")
	}
	if fc.LoadTimeout != "30s" {
		t.Errorf("LoadTimeout = %s", fc.LoadTimeout)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "namespace = [not toml")
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig accepted invalid TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	watch := true
	fc := FileConfig{
		PluginDir:   "/opt/manifests",
		Namespace:   "prod",
		Watch:       &watch,
		LoadTimeout: "45s",
	}

	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.PluginDir != "/opt/manifests" {
		t.Errorf("PluginDir = %s", cfg.PluginDir)
	}
	if cfg.Namespace != "prod" {
		t.Errorf("Namespace = %s", cfg.Namespace)
	}
	if !cfg.Watch {
		t.Error("Watch not applied")
	}
	if cfg.LoadTimeout != 45*time.Second {
		t.Errorf("LoadTimeout = %v", cfg.LoadTimeout)
	}
}

func TestApplyFileConfig_FlagPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Namespace = "from-flag"
	fc := FileConfig{Namespace: "from-file"}

	changed := map[string]bool{"namespace": true}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Namespace != "from-flag" {
		t.Errorf("Namespace = %s, file overrode an explicit flag", cfg.Namespace)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{LoadTimeout: "soon"}

	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Error("ApplyFileConfig accepted an invalid duration")
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfig(t, "")
	if !FileExists(path) {
		t.Error("FileExists(existing) = false")
	}
	if FileExists(filepath.Join(t.TempDir(), "nope.toml")) {
		t.Error("FileExists(missing) = true")
	}
}
