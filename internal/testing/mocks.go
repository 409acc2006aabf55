package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/acadeploy/internal/provisioning"
)

// RecordingObserver is a provisioning.Observer that keeps every event and
// log line for assertions.
type RecordingObserver struct {
	mu       sync.Mutex
	events   []provisioning.Event
	messages []string
}

var _ provisioning.Observer = (*RecordingObserver)(nil)

// NewRecordingObserver creates an empty RecordingObserver.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (o *RecordingObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, fmt.Sprintf(format, v...))
}

func (o *RecordingObserver) Event(event provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields returns the same observer; context fields are not recorded.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}

// Events returns a copy of the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), o.events...)
}

// Messages returns a copy of the recorded Printf lines.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// EventsOf returns the events of type t in order.
func (o *RecordingObserver) EventsOf(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// HasEvent reports whether an event of type t was emitted for resource.
func (o *RecordingObserver) HasEvent(t provisioning.EventType, resource string) bool {
	for _, e := range o.EventsOf(t) {
		if e.Resource == resource {
			return true
		}
	}
	return false
}

// MockCompiler is a mock implementation of the image Compiler interface.
type MockCompiler struct {
	mock.Mock
}

// Compile records the call and returns the configured error.
func (m *MockCompiler) Compile(ctx context.Context, dir, command string) error {
	args := m.Called(ctx, dir, command)
	return args.Error(0)
}
