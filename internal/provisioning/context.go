package provisioning

import (
	"context"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/platform/azure"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    azure.CloudManager
	Observer Observer
	Metrics  *Metrics
}

// NewContext creates a new provisioning context. Observer defaults to the
// logrus standard logger; Metrics stays nil until a caller sets it.
func NewContext(ctx context.Context, cfg *config.Config, cloud azure.CloudManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Cloud:    cloud,
		Observer: NewLogObserver(nil),
	}
}
