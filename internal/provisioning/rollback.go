package provisioning

import (
	"fmt"
	"strings"
)

// Outcome is the result of a deploy run.
type Outcome string

const (
	OutcomeSucceeded             Outcome = "succeeded"
	OutcomeFailedWithRollback    Outcome = "failed-with-rollback"
	OutcomeFailedWithoutRollback Outcome = "failed-without-rollback"
)

const rollbackPhase = "rollback"

// Rollback reacts to a failed provisioning step. It deletes the resource
// group with a single fire-and-forget request, and only when rollback is
// enabled and this run created the group. Everything else is left in
// place. A failing delete request is logged, never returned.
func Rollback(ctx *Context, cause error) Outcome {
	rg := ctx.State.Record(KindResourceGroup)

	switch {
	case !ctx.Config.Rollback:
		ctx.Observer.Event(Event{
			Type:    EventRollback,
			Phase:   rollbackPhase,
			Message: "rollback disabled, leaving resources in place",
		})
	case rg == nil || !rg.CreatedByRun:
		ctx.Observer.Event(Event{
			Type:     EventRollback,
			Phase:    rollbackPhase,
			Resource: ctx.Config.ResourceGroup,
			Message:  "resource group was not created by this run, leaving it in place",
		})
	default:
		LogResourceDeleting(ctx.Observer, rollbackPhase, KindResourceGroup, rg.Name)
		if err := ctx.Cloud.BeginDeleteResourceGroup(ctx, rg.Name); err != nil {
			LogResourceFailed(ctx.Observer, rollbackPhase, KindResourceGroup, rg.Name, err)
			break
		}
		ctx.Metrics.RecordAction(KindResourceGroup, "deleted")
		ctx.Observer.Event(Event{
			Type:     EventRollback,
			Phase:    rollbackPhase,
			Resource: rg.Name,
			Message:  fmt.Sprintf("deletion of resource group requested after failure: %v", cause),
		})
		return OutcomeFailedWithRollback
	}

	ctx.Observer.Printf("Manual cleanup may be required. %s", cleanupHint(ctx.State))
	return OutcomeFailedWithoutRollback
}

func cleanupHint(s *State) string {
	created := s.Created()
	if len(created) == 0 {
		return "This run created no resources."
	}
	parts := make([]string, 0, len(created))
	for _, r := range created {
		parts = append(parts, fmt.Sprintf("%s %s", r.Kind, r.Name))
	}
	return "Created by this run: " + strings.Join(parts, ", ") + "."
}
