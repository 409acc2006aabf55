package provisioning

import (
	"time"

	"github.com/imamik/acadeploy/internal/deployerr"
)

const provisionPhase = "provision"

// Sequencer ensures the handlers' resources strictly in order and stops at
// the first failure.
type Sequencer struct {
	handlers []Handler
}

// NewSequencer creates a sequencer over handlers, in the order given.
func NewSequencer(handlers ...Handler) *Sequencer {
	return &Sequencer{handlers: handlers}
}

// Name implements the Phase interface.
func (s *Sequencer) Name() string {
	return provisionPhase
}

// Provision implements the Phase interface.
func (s *Sequencer) Provision(ctx *Context) error {
	for i, h := range s.handlers {
		if err := ensure(ctx, h); err != nil {
			return err
		}
		ctx.Observer.Progress(provisionPhase, i+1, len(s.handlers))
	}
	ctx.State.Stage = StageDone
	return nil
}

// ensure checks, then creates or reuses (and updates, for Updaters) one
// resource. Every failure is a ProvisionError for the handler's kind.
func ensure(ctx *Context, h Handler) (err error) {
	kind := h.Kind()
	name := h.ResourceName(ctx)
	start := time.Now()

	defer func() {
		ctx.Metrics.ObserveStep(kind, err, time.Since(start))
		if err != nil {
			LogResourceFailed(ctx.Observer, provisionPhase, kind, name, err)
			err = &deployerr.ProvisionError{Kind: string(kind), Name: name, Err: err}
		}
	}()

	exists, err := h.Exists(ctx)
	if err != nil {
		return err
	}

	rec := ctx.State.Track(kind, name)
	if exists {
		rec.ExistedBeforeRun = true
		LogResourceExists(ctx.Observer, provisionPhase, kind, name)
		action := "reused"
		if u, ok := h.(Updater); ok {
			if err := u.Update(ctx); err != nil {
				return err
			}
			LogResourceUpdated(ctx.Observer, provisionPhase, kind, name)
			action = "updated"
		}
		ctx.Metrics.RecordAction(kind, action)
	} else {
		LogResourceCreating(ctx.Observer, provisionPhase, kind, name)
		if err := h.Create(ctx); err != nil {
			return err
		}
		rec.CreatedByRun = true
		LogResourceCreated(ctx.Observer, provisionPhase, kind, name)
		ctx.Metrics.RecordAction(kind, "created")
	}

	if r, ok := h.(OutputResolver); ok {
		if err := r.ResolveOutputs(ctx); err != nil {
			return err
		}
	}

	ctx.State.Advance(kind)
	return nil
}
