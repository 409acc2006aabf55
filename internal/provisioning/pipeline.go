package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/acadeploy/internal/deployerr"
)

// RunPhases executes all provisioning phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)

		err := phase.Provision(ctx)
		ctx.Metrics.ObservePhase(phase.Name(), err, time.Since(phaseStart))
		if err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("All phases completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Execute runs the phases and turns the result into a run outcome. Only a
// ProvisionError hands over to Rollback; earlier failures happen before
// any cloud resource is touched.
func Execute(ctx *Context, phases []Phase) (Outcome, error) {
	err := RunPhases(ctx, phases)

	outcome := OutcomeSucceeded
	if err != nil {
		outcome = OutcomeFailedWithoutRollback
		if _, ok := deployerr.AsProvision(err); ok {
			outcome = Rollback(ctx, err)
		}
	}

	ctx.Metrics.RecordOutcome(outcome)
	return outcome, err
}
