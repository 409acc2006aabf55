package provisioning

import (
	"github.com/imamik/acadeploy/internal/config"
)

// ValidationPhase implements the Phase interface for pre-flight validation.
// Configuration errors already fail Resolve; this phase re-checks the
// config it is handed and surfaces warnings in the run log.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	for _, ve := range ctx.Config.Check() {
		if ve.Severity == config.SeverityWarning {
			ctx.Observer.Event(Event{
				Type:     EventValidationWarning,
				Phase:    vp.Name(),
				Resource: ve.Field,
				Message:  ve.Message,
			})
		}
	}

	if err := ctx.Config.Validate(); err != nil {
		ctx.Observer.Event(Event{
			Type:    EventValidationError,
			Phase:   vp.Name(),
			Message: err.Error(),
		})
		return err
	}

	ctx.Observer.Printf("[Validation] Validation passed")
	return nil
}
