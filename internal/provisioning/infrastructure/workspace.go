package infrastructure

import (
	"fmt"

	"github.com/imamik/acadeploy/internal/provisioning"
)

// LogWorkspace ensures the Log Analytics workspace the environment ships
// its logs to. Its customer id and shared key are outputs.
type LogWorkspace struct{}

func (h *LogWorkspace) Kind() provisioning.Kind { return provisioning.KindLogWorkspace }

func (h *LogWorkspace) ResourceName(ctx *provisioning.Context) string {
	return ctx.Config.WorkspaceName
}

func (h *LogWorkspace) Exists(ctx *provisioning.Context) (bool, error) {
	ws, err := ctx.Cloud.GetWorkspace(ctx, ctx.Config.ResourceGroup, ctx.Config.WorkspaceName)
	return ws != nil, err
}

func (h *LogWorkspace) Create(ctx *provisioning.Context) error {
	_, err := ctx.Cloud.CreateWorkspace(ctx, ctx.Config.ResourceGroup, ctx.Config.WorkspaceName, ctx.Config.Location, resourceTags(ctx, h.Kind()))
	return err
}

func (h *LogWorkspace) ResolveOutputs(ctx *provisioning.Context) error {
	rg, name := ctx.Config.ResourceGroup, ctx.Config.WorkspaceName

	ws, err := ctx.Cloud.GetWorkspace(ctx, rg, name)
	if err != nil {
		return err
	}
	if ws == nil || ws.CustomerID == "" {
		return fmt.Errorf("log workspace %q has no customer id", name)
	}

	key, err := ctx.Cloud.GetWorkspaceSharedKey(ctx, rg, name)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("log workspace %q returned an empty shared key", name)
	}

	ctx.State.WorkspaceCustomerID = ws.CustomerID
	ctx.State.WorkspaceSharedKey = key
	return nil
}

func (h *LogWorkspace) Delete(ctx *provisioning.Context) error {
	return ctx.Cloud.DeleteWorkspace(ctx, ctx.Config.ResourceGroup, ctx.Config.WorkspaceName)
}
