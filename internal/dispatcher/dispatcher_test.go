package dispatcher

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func (l *testLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	called := false
	d.RegisterSync(":HOOK:PLACE:", func(e Event) (any, error) {
		called = true
		return `["pass"]`, nil
	})

	result, err := d.Dispatch(Event{Command: ":HOOK:PLACE:", Args: []string{"ARMCHAIR", "OAK"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler was not called")
	}
	if result != `["pass"]` {
		t.Errorf("expected pass answer, got %v", result)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: ":UNKNOWN:"})

	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestDispatcher_BufferedHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var processed atomic.Int32
	d.RegisterBuffered(":NEW:MINIFIED:", func(e Event) (any, error) {
		processed.Add(1)
		return nil, nil
	}, 16)

	for i := 0; i < 5; i++ {
		result, err := d.Dispatch(Event{Command: ":NEW:MINIFIED:", Timestamp: time.Now()})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if result != "queued" {
			t.Errorf("expected 'queued', got %v", result)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for processed.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := processed.Load(); got != 5 {
		t.Errorf("expected 5 processed events, got %d", got)
	}
}

func TestDispatcher_BufferedHandler_DropsWhenFull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	release := make(chan struct{})
	d.RegisterBuffered(":MOVE:MINIFIED:", func(e Event) (any, error) {
		<-release
		return nil, nil
	}, 1)

	// First fills the buffer (or is in-flight), keep sending until a drop shows.
	var dropErr error
	for i := 0; i < 10 && dropErr == nil; i++ {
		_, dropErr = d.Dispatch(Event{Command: ":MOVE:MINIFIED:"})
	}
	close(release)

	if dropErr == nil {
		t.Error("expected queue full error")
	}
}

func TestDispatcher_HandlerErrorLogged(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.RegisterSync(":HOOK:JOB:", func(e Event) (any, error) {
		return nil, fmt.Errorf("boom")
	})

	_, err := d.Dispatch(Event{Command: ":HOOK:JOB:"})
	if err == nil {
		t.Error("expected handler error to propagate")
	}
	if logger.count() == 0 {
		t.Error("expected log messages from handler")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.RegisterSync(":HOOK:READOUT:", func(e Event) (any, error) { return nil, nil })

	if !d.HasHandler(":HOOK:READOUT:") {
		t.Error("expected handler to be registered")
	}
	if d.HasHandler(":NOPE:") {
		t.Error("did not expect handler")
	}
}
