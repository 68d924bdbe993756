package plugin

import (
	"errors"
	"sync"
	"testing"

	"github.com/plugreg/plugreg/pkg/log"
)

// captureLogger records messages for assertions.
type captureLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *captureLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *captureLogger) Debug(msg string, fields ...log.Field) { l.record(msg) }
func (l *captureLogger) Info(msg string, fields ...log.Field)  { l.record(msg) }
func (l *captureLogger) Warn(msg string, fields ...log.Field)  { l.record(msg) }
func (l *captureLogger) Error(msg string, fields ...log.Field) { l.record(msg) }

func (l *captureLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

func TestLogListener_LogsEveryNotification(t *testing.T) {
	logger := &captureLogger{}
	l := NewLogListener(logger)

	err := errors.New("boom")
	l.OnResolveFail("demo", "a", err)
	l.OnInitFail("demo", "b", err)
	l.OnLoadFail("demo", "c", err)
	l.OnSkip("demo", "d")
	l.OnLoadSuccess("demo", "e")

	if got := logger.count(); got != 5 {
		t.Errorf("logged %d messages, want 5", got)
	}
}

func TestNopListener_IsSilent(t *testing.T) {
	var l Listener = NopListener{}

	// Must not panic; there is nothing else to observe.
	l.OnResolveFail("demo", "a", errors.New("x"))
	l.OnInitFail("demo", "a", nil)
	l.OnLoadFail("demo", "a", nil)
	l.OnSkip("demo", "a")
	l.OnLoadSuccess("demo", "a")
}
