package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultNamespace is the namespace loaded when none is configured.
const DefaultNamespace = "default"

// Config holds CLI configuration for plugreg.
type Config struct {
	// PluginDir is the directory scanned for plugin manifests.
	PluginDir string

	// Namespace selects which namespace to list or load.
	Namespace string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Watch keeps the manifest directory watched while loading.
	Watch bool

	// EnvGateVar overrides the environment variable consulted by the
	// envgate plugin.
	EnvGateVar string

	// LoadTimeout bounds how long a batch load may take before the CLI
	// gives up waiting. Zero means no bound.
	LoadTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Namespace: DefaultNamespace,
		LogLevel:  "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.PluginDir == "" {
		return fmt.Errorf("plugin-dir is required")
	}

	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}

	switch strings.ToLower(c.LogLevel) {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.LoadTimeout < 0 {
		return fmt.Errorf("load timeout must not be negative")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from an optional pointer if flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses and sets a bool value if non-empty and flag not changed.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}

// setDuration parses and sets a duration value if non-empty and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s duration %q: %w", flag, value, err)
	}
	*dst = d
	return nil
}
