package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/plugreg/plugreg/pkg/log"
	"github.com/plugreg/plugreg/pkg/plugin"
)

// Manifest is the on-disk declaration of one plugin: a TOML file binding
// a (namespace, name) pair to a factory key. Factory keys are resolved
// against the factory table supplied to the finder; no runtime code
// loading is involved.
type Manifest struct {
	Namespace string `toml:"namespace"`
	Name      string `toml:"name"`
	Factory   string `toml:"factory"`
}

// ManifestFinder is the run-time discovery variant: it scans a directory
// of *.toml manifest files and reports the declared plugins. The
// directory scan is cached between Find calls; Watch invalidates the
// cache when manifests change on disk.
//
// Manifests that cannot be parsed at scan time are logged and skipped,
// so one broken file never hides the others. A manifest naming an
// unknown factory key is still discoverable; its spec loader fails when
// the manager first resolves it.
type ManifestFinder struct {
	dir       string
	factories map[string]plugin.Factory
	logger    log.Logger

	mu    sync.Mutex
	cache []manifestEntry
	valid bool

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

type manifestEntry struct {
	namespace string
	name      string
	path      string
}

// NewManifestFinder creates a finder over a manifest directory. The
// factory table maps manifest factory keys to constructors; a nil logger
// disables logging.
func NewManifestFinder(dir string, factories map[string]plugin.Factory, logger log.Logger) *ManifestFinder {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &ManifestFinder{
		dir:       dir,
		factories: factories,
		logger:    logger,
	}
}

// Find enumerates the manifests declaring the given namespace, in
// filename order. Each returned loader re-reads its manifest and
// resolves the factory key on demand.
func (f *ManifestFinder) Find(namespace string) ([]plugin.NamedLoader, error) {
	entries, err := f.scan()
	if err != nil {
		return nil, err
	}

	var out []plugin.NamedLoader
	for _, me := range entries {
		if me.namespace != namespace {
			continue
		}
		me := me
		out = append(out, plugin.NamedLoader{
			Name: me.name,
			Load: func() (plugin.Spec, error) { return f.loadSpec(me) },
		})
	}
	return out, nil
}

// Watch starts monitoring the manifest directory and invalidates the
// cached scan whenever a *.toml file changes. Call Close to stop.
func (f *ManifestFinder) Watch() error {
	f.watchMu.Lock()
	defer f.watchMu.Unlock()

	if f.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", f.dir, err)
	}

	f.watcher = watcher
	f.done = make(chan struct{})
	go f.watchLoop(watcher, f.done)
	return nil
}

// Close stops the directory watcher, if started.
func (f *ManifestFinder) Close() error {
	f.watchMu.Lock()
	defer f.watchMu.Unlock()

	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	<-f.done
	f.watcher = nil
	f.done = nil
	return err
}

func (f *ManifestFinder) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".toml") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			f.invalidate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			f.logger.Error("manifest watcher error", log.Err(err))
		}
	}
}

func (f *ManifestFinder) invalidate() {
	f.mu.Lock()
	f.valid = false
	f.cache = nil
	f.mu.Unlock()
}

// scan lists the manifest directory, parsing each *.toml file for its
// (namespace, name) declaration. Results are cached until invalidated.
func (f *ManifestFinder) scan() ([]manifestEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.valid {
		return f.cache, nil
	}

	dirEntries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read manifest dir %s: %w", f.dir, err)
	}

	seen := make(map[string]struct{})
	var entries []manifestEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".toml") {
			continue
		}
		path := filepath.Join(f.dir, de.Name())

		man, err := readManifest(path)
		if err != nil {
			f.logger.Warn("skipping unreadable manifest",
				log.String("path", path),
				log.Err(err))
			continue
		}

		key := specKey(man.Namespace, man.Name)
		if _, dup := seen[key]; dup {
			f.logger.Warn("skipping duplicate manifest",
				log.String("path", path),
				log.String("namespace", man.Namespace),
				log.String("plugin", man.Name))
			continue
		}
		seen[key] = struct{}{}

		entries = append(entries, manifestEntry{
			namespace: man.Namespace,
			name:      man.Name,
			path:      path,
		})
	}

	f.cache = entries
	f.valid = true
	return entries, nil
}

// loadSpec materializes the spec for one manifest, resolving its factory
// key against the factory table.
func (f *ManifestFinder) loadSpec(me manifestEntry) (plugin.Spec, error) {
	man, err := readManifest(me.path)
	if err != nil {
		return plugin.Spec{}, err
	}

	factory, ok := f.factories[man.Factory]
	if !ok {
		return plugin.Spec{}, fmt.Errorf("manifest %s names unknown factory %q", me.path, man.Factory)
	}

	return plugin.Spec{
		Namespace: man.Namespace,
		Name:      man.Name,
		Factory:   factory,
	}, nil
}

// readManifest reads and parses a TOML manifest file from the given path.
func readManifest(path string) (Manifest, error) {
	var man Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return man, err
	}
	if err := toml.Unmarshal(b, &man); err != nil {
		return man, err
	}
	if man.Namespace == "" || man.Name == "" {
		return man, fmt.Errorf("manifest %s missing namespace or name", path)
	}
	if man.Factory == "" {
		return man, fmt.Errorf("manifest %s missing factory key", path)
	}
	return man, nil
}
