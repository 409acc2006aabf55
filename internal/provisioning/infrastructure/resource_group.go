package infrastructure

import "github.com/imamik/acadeploy/internal/provisioning"

// ResourceGroup ensures the resource group everything else lives in.
type ResourceGroup struct{}

func (h *ResourceGroup) Kind() provisioning.Kind { return provisioning.KindResourceGroup }

func (h *ResourceGroup) ResourceName(ctx *provisioning.Context) string {
	return ctx.Config.ResourceGroup
}

func (h *ResourceGroup) Exists(ctx *provisioning.Context) (bool, error) {
	return ctx.Cloud.ResourceGroupExists(ctx, ctx.Config.ResourceGroup)
}

func (h *ResourceGroup) Create(ctx *provisioning.Context) error {
	return ctx.Cloud.CreateResourceGroup(ctx, ctx.Config.ResourceGroup, ctx.Config.Location, resourceTags(ctx, h.Kind()))
}

// Delete requests deletion of the group and everything in it without
// waiting for completion.
func (h *ResourceGroup) Delete(ctx *provisioning.Context) error {
	return ctx.Cloud.BeginDeleteResourceGroup(ctx, ctx.Config.ResourceGroup)
}
