package destroy

import (
	"errors"
	"fmt"

	"github.com/imamik/acadeploy/internal/deployerr"
)

// StepStatus is the result of one teardown step.
type StepStatus string

const (
	StatusDeleted  StepStatus = "deleted"
	StatusAbsent   StepStatus = "absent"
	StatusKept     StepStatus = "kept"
	StatusDeclined StepStatus = "declined"
	StatusFailed   StepStatus = "failed"
)

// Step records what happened to one resource or local artifact.
type Step struct {
	Kind   string
	Name   string
	Status StepStatus
	Detail string
}

// Report collects the steps of a teardown run and the errors of the
// failed ones.
type Report struct {
	Steps  []Step
	Errors []error
}

// Add records a step that did not fail.
func (r *Report) Add(kind, name string, status StepStatus, detail string) {
	r.Steps = append(r.Steps, Step{Kind: kind, Name: name, Status: status, Detail: detail})
}

// Fail records a failed step as a TeardownStepError.
func (r *Report) Fail(kind, name string, err error) {
	r.Steps = append(r.Steps, Step{Kind: kind, Name: name, Status: StatusFailed, Detail: err.Error()})
	r.Errors = append(r.Errors, &deployerr.TeardownStepError{Kind: kind, Name: name, Err: err})
}

// HasErrors reports whether any step failed.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Count returns the number of steps with the given status.
func (r *Report) Count(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Err returns the collected step errors as one error, or nil.
func (r *Report) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return r.Errors[0]
	default:
		return fmt.Errorf("teardown encountered %d errors: %w", len(r.Errors), errors.Join(r.Errors...))
	}
}
