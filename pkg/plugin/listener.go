package plugin

import "github.com/plugreg/plugreg/pkg/log"

// Listener receives notifications of per-plugin lifecycle transitions and
// failures. The manager never raises individual plugin failures to the
// caller of a batch load; they are visible only through the listener and
// per-name status queries.
//
// Listener invocation is fire-and-forget with respect to the manager's
// control flow: a panic inside a listener method is recovered and logged,
// never allowed to abort an in-progress batch.
type Listener interface {
	// OnResolveFail is called when a name's spec loader fails.
	OnResolveFail(namespace, name string, err error)

	// OnInitFail is called when a plugin's factory fails.
	OnInitFail(namespace, name string, err error)

	// OnLoadFail is called when a plugin's Load call fails.
	OnLoadFail(namespace, name string, err error)

	// OnSkip is called when a plugin declines loading via ShouldLoad.
	// This is informational, not a failure.
	OnSkip(namespace, name string)

	// OnLoadSuccess is called when a plugin reaches the loaded state.
	OnLoadSuccess(namespace, name string)
}

// NopListener discards all notifications. It is the default listener, so
// a manager is usable without one.
type NopListener struct{}

func (NopListener) OnResolveFail(namespace, name string, err error) {}
func (NopListener) OnInitFail(namespace, name string, err error)    {}
func (NopListener) OnLoadFail(namespace, name string, err error)    {}
func (NopListener) OnSkip(namespace, name string)                   {}
func (NopListener) OnLoadSuccess(namespace, name string)            {}

// LogListener reports lifecycle notifications through a structured logger.
type LogListener struct {
	Logger log.Logger
}

// NewLogListener creates a listener that logs every notification.
func NewLogListener(logger log.Logger) *LogListener {
	return &LogListener{Logger: logger}
}

func (l *LogListener) OnResolveFail(namespace, name string, err error) {
	l.Logger.Error("plugin resolve failed",
		log.String("namespace", namespace),
		log.String("plugin", name),
		log.Err(err))
}

func (l *LogListener) OnInitFail(namespace, name string, err error) {
	l.Logger.Error("plugin init failed",
		log.String("namespace", namespace),
		log.String("plugin", name),
		log.Err(err))
}

func (l *LogListener) OnLoadFail(namespace, name string, err error) {
	l.Logger.Error("plugin load failed",
		log.String("namespace", namespace),
		log.String("plugin", name),
		log.Err(err))
}

func (l *LogListener) OnSkip(namespace, name string) {
	l.Logger.Info("plugin skipped",
		log.String("namespace", namespace),
		log.String("plugin", name))
}

func (l *LogListener) OnLoadSuccess(namespace, name string) {
	l.Logger.Info("plugin loaded",
		log.String("namespace", namespace),
		log.String("plugin", name))
}
