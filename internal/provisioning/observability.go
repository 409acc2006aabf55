package provisioning

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal printf-style logger phases use for free-form lines.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "image", "provision")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists and is reused.
	EventResourceExists EventType = "resource.exists"
	// EventResourceUpdated indicates an existing resource was updated in place.
	EventResourceUpdated EventType = "resource.updated"
	// EventResourceFailed indicates a resource step failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceSkipped indicates a step left a resource untouched.
	EventResourceSkipped EventType = "resource.skipped"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
	// EventValidationError indicates a validation error.
	EventValidationError EventType = "validation.error"

	// EventRollback indicates the rollback handler acted or declined to act.
	EventRollback EventType = "rollback"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// LogObserver implements Observer on top of a logrus logger.
type LogObserver struct {
	logger        *logrus.Logger
	contextFields map[string]string
}

// NewLogger returns a logrus logger with full timestamps writing to w at
// the given level name. Unknown level names fall back to info.
func NewLogger(w io.Writer, level string) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// NewLogObserver creates an observer writing through logger. A nil logger
// uses the logrus standard logger.
func NewLogObserver(logger *logrus.Logger) *LogObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Logger returns the underlying logrus logger.
func (o *LogObserver) Logger() *logrus.Logger {
	return o.logger
}

// Printf implements Logger.
func (o *LogObserver) Printf(format string, v ...interface{}) {
	o.entry(nil).Infof(format, v...)
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := logrus.Fields{"event": string(event.Type)}
	if event.Phase != "" {
		fields["phase"] = event.Phase
	}
	if event.Resource != "" {
		fields["resource"] = event.Resource
	}
	for k, v := range event.Fields {
		fields[k] = v
	}

	entry := o.entry(fields).WithTime(event.Timestamp)
	switch event.Type {
	case EventPhaseFailed, EventResourceFailed, EventValidationError:
		entry.Error(event.Message)
	case EventValidationWarning, EventResourceSkipped, EventRollback:
		entry.Warn(event.Message)
	case EventProgress:
		entry.Debug(event.Message)
	default:
		entry.Info(event.Message)
	}
}

// Progress implements Observer.
func (o *LogObserver) Progress(phase string, current, total int) {
	msg := fmt.Sprintf("progress: %d/%d", current, total)
	if total > 0 {
		msg = fmt.Sprintf("progress: %d/%d (%d%%)", current, total, (current*100)/total)
	}
	o.Event(Event{Type: EventProgress, Phase: phase, Message: msg})
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &LogObserver{logger: o.logger, contextFields: newFields}
}

// entry builds a log entry carrying the context fields. Event fields win
// over context fields of the same name.
func (o *LogObserver) entry(fields logrus.Fields) *logrus.Entry {
	merged := make(logrus.Fields, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return o.logger.WithFields(merged)
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase string, kind Kind, name string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("creating %s", kind),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase string, kind Kind, name string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s created", kind),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceExists logs that an existing resource is reused.
func LogResourceExists(observer Observer, phase string, kind Kind, name string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s already exists, reusing", kind),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceUpdated logs an in-place update.
func LogResourceUpdated(observer Observer, phase string, kind Kind, name string) {
	observer.Event(Event{
		Type:     EventResourceUpdated,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s updated in place", kind),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceFailed logs a failed resource step.
func LogResourceFailed(observer Observer, phase string, kind Kind, name string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s failed: %v", kind, err),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase string, kind Kind, name string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("deleting %s", kind),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase string, kind Kind, name string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s deleted", kind),
		Fields:   map[string]string{"kind": string(kind)},
	})
}

// LogResourceSkipped logs a step that left a resource untouched.
func LogResourceSkipped(observer Observer, phase string, kind Kind, name, reason string) {
	observer.Event(Event{
		Type:     EventResourceSkipped,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("skipping %s: %s", kind, reason),
		Fields:   map[string]string{"kind": string(kind)},
	})
}
