package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/plugreg/plugreg/internal/cliconfig"
	"github.com/plugreg/plugreg/pkg/finder"
	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/manager"
	"github.com/plugreg/plugreg/pkg/plugin"
	"github.com/plugreg/plugreg/plugins/envgate"
	"github.com/plugreg/plugreg/plugins/sysinfo"
)

const helpDescription = `
Discover and load plugins declared by TOML manifests.

Each manifest in the plugin directory binds a (namespace, name) pair to a
built-in factory key. Plugins advance through resolve, instantiate, gate,
and load; one plugin's failure never aborts the rest of the batch.

Configure via file ($HOME/.plugreg/config.toml), PLUGREG_* environment
variables, or flags. Flags win over environment, environment over file.
`

var exampleUsage = strings.TrimSpace(`
  plugreg list --plugin-dir ./manifests
  plugreg load --plugin-dir ./manifests --namespace demo
  plugreg load sysinfo --plugin-dir ./manifests
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "plugreg",
		Short:   "Discover and load plugins through their lifecycle",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(cmd, &cfg, cfgPath)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default $HOME/.plugreg/config.toml)")
	pf.StringVar(&cfg.PluginDir, "plugin-dir", cfg.PluginDir, "directory of plugin manifests (default $HOME/.plugreg/plugins)")
	pf.StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "plugin namespace to operate on")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&cfg.EnvGateVar, "envgate-var", cfg.EnvGateVar, "environment variable consulted by the envgate plugin")
	pf.BoolVar(&cfg.Watch, "watch", cfg.Watch, "watch the manifest directory while loading")
	pf.DurationVar(&cfg.LoadTimeout, "load-timeout", cfg.LoadTimeout, "abort the CLI if a batch load exceeds this duration (0 = no limit)")

	root.AddCommand(newListCmd(&cfg))
	root.AddCommand(newLoadCmd(&cfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers file and environment configuration under any
// explicitly set flags, then validates.
func resolveConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	if cfg.PluginDir == "" {
		cfg.PluginDir = cliconfig.DefaultPluginDir()
	}

	return cfg.Validate()
}

// buildManager wires the manifest finder, built-in factory table, and
// manager for the configured namespace.
func buildManager(cfg *cliconfig.Config) (*manager.Manager, *finder.ManifestFinder, error) {
	zl := cliconfig.Logger(cfg.LogLevel)
	logger := log.NewZerologAdapterWithLogger(zl)

	factories := map[string]plugin.Factory{
		sysinfo.FactoryKey: sysinfo.Factory(sysinfo.Config{Logger: logger}),
		envgate.FactoryKey: envgate.Factory(envgate.Config{Var: cfg.EnvGateVar, Logger: logger}),
	}

	mf := finder.NewManifestFinder(cfg.PluginDir, factories, logger)
	if cfg.Watch {
		if err := mf.Watch(); err != nil {
			return nil, nil, err
		}
	}

	m := manager.New(cfg.Namespace, mf,
		manager.WithLogger(logger),
		manager.WithListener(plugin.NewLogListener(logger)),
	)
	return m, mf, nil
}

func newListCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discoverable plugins and their lifecycle states",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, mf, err := buildManager(cfg)
			if err != nil {
				return err
			}
			defer mf.Close()

			names, err := m.Names()
			if err != nil {
				return err
			}

			status := m.Status()
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-16s %s\n", "NAME", "STATE", "ERROR")
			for _, name := range names {
				st := status[name]
				errMsg := ""
				if st.Err != nil {
					errMsg = st.Err.Error()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-16s %s\n", name, st.State, errMsg)
			}
			return nil
		},
	}
}

func newLoadCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "load [name...]",
		Short: "Load all plugins of the namespace, or only the named ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, mf, err := buildManager(cfg)
			if err != nil {
				return err
			}
			defer mf.Close()

			done := make(chan error, 1)
			go func() { done <- runLoad(m, args) }()

			if cfg.LoadTimeout > 0 {
				select {
				case err = <-done:
				case <-time.After(cfg.LoadTimeout):
					return fmt.Errorf("load did not finish within %s", cfg.LoadTimeout)
				}
			} else {
				err = <-done
			}
			if err != nil {
				return err
			}

			printSummary(cmd, m)
			return nil
		},
	}
}

// runLoad performs a batch load, or single loads for each named plugin.
// Per-plugin failures are reported through the listener and summarized
// afterwards; only a named plugin that fails, or a total discovery
// failure, makes the command itself fail.
func runLoad(m *manager.Manager, names []string) error {
	if len(names) == 0 {
		_, err := m.LoadAll()
		return err
	}

	var failed []string
	for _, name := range names {
		if _, err := m.Load(name); err != nil {
			failed = append(failed, fmt.Sprintf("%s (%v)", name, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to load: %s", strings.Join(failed, "; "))
	}
	return nil
}

func printSummary(cmd *cobra.Command, m *manager.Manager) {
	status := m.Status()

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	var loaded, skipped, failed int
	for _, name := range names {
		switch st := status[name]; {
		case st.State == plugin.StateLoaded:
			loaded++
		case st.State == plugin.StateSkipped:
			skipped++
		case st.State.Failed():
			failed++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d, skipped %d, failed %d\n", loaded, skipped, failed)
	for _, name := range names {
		st := status[name]
		if st.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", name, st.Err)
		}
	}
}
