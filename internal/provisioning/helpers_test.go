package provisioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/platform/azure"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	events   []Event
	messages []string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{Type: EventProgress, Phase: phase, Message: fmt.Sprintf("%d/%d", current, total)})
}

func (m *MockObserver) WithFields(_ map[string]string) Observer {
	return m
}

func (m *MockObserver) eventTypes() []EventType {
	out := make([]EventType, 0, len(m.events))
	for _, e := range m.events {
		if e.Type != EventProgress {
			out = append(out, e.Type)
		}
	}
	return out
}

func (m *MockObserver) has(t EventType) bool {
	for _, e := range m.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

func testConfig(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()
	env := map[string]string{
		"RESOURCE_GROUP":   "g1",
		"ENVIRONMENT_NAME": "e1",
		"APP_NAME":         "a1",
		"DB_SERVER":        "s1",
		"DB_PASSWORD":      "x",
	}
	for k, v := range overrides {
		env[k] = v
	}
	cfg, err := config.Decode(config.Defaults(), env, nil)
	require.NoError(t, err)
	return cfg
}

func newTestContext(t *testing.T, cfg *config.Config, cloud azure.CloudManager) (*Context, *MockObserver) {
	t.Helper()
	observer := NewMockObserver()
	ctx := NewContext(context.Background(), cfg, cloud)
	ctx.Observer = observer
	ctx.Metrics = NewMetrics()
	return ctx, observer
}

// stubHandler is a scripted Handler.
type stubHandler struct {
	kind      Kind
	name      string
	exists    bool
	existsErr error
	createErr error
	log       *[]string
}

func (h *stubHandler) Kind() Kind                     { return h.kind }
func (h *stubHandler) ResourceName(_ *Context) string { return h.name }

func (h *stubHandler) Exists(_ *Context) (bool, error) {
	h.note("exists")
	return h.exists, h.existsErr
}

func (h *stubHandler) Create(_ *Context) error {
	h.note("create")
	return h.createErr
}

func (h *stubHandler) note(op string) {
	if h.log != nil {
		*h.log = append(*h.log, op+" "+string(h.kind))
	}
}

// stubUpdater adds Updater and OutputResolver to stubHandler.
type stubUpdater struct {
	stubHandler
	updateErr  error
	resolveErr error
}

func (h *stubUpdater) Update(_ *Context) error {
	h.note("update")
	return h.updateErr
}

func (h *stubUpdater) ResolveOutputs(ctx *Context) error {
	h.note("resolve")
	if h.resolveErr == nil {
		ctx.State.AppFQDN = h.name + ".example.net"
	}
	return h.resolveErr
}
