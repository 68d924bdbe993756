package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PLUGREG_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("plugin-dir", os.Getenv("PLUGREG_PLUGIN_DIR"), &cfg.PluginDir)
	s.setString("namespace", os.Getenv("PLUGREG_NAMESPACE"), &cfg.Namespace)
	s.setString("log-level", os.Getenv("PLUGREG_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("envgate-var", os.Getenv("PLUGREG_ENVGATE_VAR"), &cfg.EnvGateVar)

	s.setBoolFromString("watch", os.Getenv("PLUGREG_WATCH"), &cfg.Watch)

	if err := s.setDuration("load-timeout", os.Getenv("PLUGREG_LOAD_TIMEOUT"), &cfg.LoadTimeout); err != nil {
		return err
	}

	return nil
}
