package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	PluginDir   string `toml:"plugin_dir"`
	Namespace   string `toml:"namespace"`
	LogLevel    string `toml:"log_level"`
	Watch       *bool  `toml:"watch"`
	EnvGateVar  string `toml:"envgate_var"`
	LoadTimeout string `toml:"load_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.plugreg/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".plugreg", "config.toml")
	}
	return ""
}

// DefaultPluginDir returns the default manifest directory.
// Returns ~/.plugreg/plugins if user home directory is accessible.
func DefaultPluginDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".plugreg", "plugins")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("plugin-dir", fc.PluginDir, &cfg.PluginDir)
	s.setString("namespace", fc.Namespace, &cfg.Namespace)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("envgate-var", fc.EnvGateVar, &cfg.EnvGateVar)

	s.setBool("watch", fc.Watch, &cfg.Watch)

	if err := s.setDuration("load-timeout", fc.LoadTimeout, &cfg.LoadTimeout); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
