package infrastructure

import (
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/util/tags"
)

// Deployment returns the handlers in provisioning order.
func Deployment() []provisioning.Handler {
	return []provisioning.Handler{
		&ResourceGroup{},
		&LogWorkspace{},
		&Environment{},
		&DatabaseServer{},
		&Database{},
		&ContainerApp{},
	}
}

// Teardown returns the handlers teardown deletes, in deletion order. The
// database goes with its server and the resource group is handled
// separately.
func Teardown() []provisioning.Handler {
	return []provisioning.Handler{
		&ContainerApp{},
		&Environment{},
		&DatabaseServer{},
		&LogWorkspace{},
	}
}

func resourceTags(ctx *provisioning.Context, kind provisioning.Kind) map[string]string {
	return tags.NewTagBuilder(ctx.Config.AppName).WithComponent(string(kind)).Build()
}
