package infrastructure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/provisioning"
)

// Environment ensures the Container Apps managed environment. It consumes
// the workspace outputs and publishes its resource id.
type Environment struct{}

func (h *Environment) Kind() provisioning.Kind { return provisioning.KindEnvironment }

func (h *Environment) ResourceName(ctx *provisioning.Context) string {
	return ctx.Config.EnvironmentName
}

func (h *Environment) Exists(ctx *provisioning.Context) (bool, error) {
	env, err := ctx.Cloud.GetEnvironment(ctx, ctx.Config.ResourceGroup, ctx.Config.EnvironmentName)
	return env != nil, err
}

func (h *Environment) Create(ctx *provisioning.Context) error {
	if ctx.State.WorkspaceCustomerID == "" || ctx.State.WorkspaceSharedKey == "" {
		return errors.New("log workspace outputs are missing")
	}
	_, err := ctx.Cloud.CreateEnvironment(ctx, azure.EnvironmentSpec{
		ResourceGroup:       ctx.Config.ResourceGroup,
		Name:                ctx.Config.EnvironmentName,
		Location:            ctx.Config.Location,
		WorkspaceCustomerID: ctx.State.WorkspaceCustomerID,
		WorkspaceSharedKey:  ctx.State.WorkspaceSharedKey,
		Tags:                resourceTags(ctx, h.Kind()),
	})
	return err
}

func (h *Environment) ResolveOutputs(ctx *provisioning.Context) error {
	env, err := ctx.Cloud.GetEnvironment(ctx, ctx.Config.ResourceGroup, ctx.Config.EnvironmentName)
	if err != nil {
		return err
	}
	if env == nil || env.ID == "" {
		return fmt.Errorf("managed environment %q has no resource id", ctx.Config.EnvironmentName)
	}
	ctx.State.EnvironmentID = env.ID
	return nil
}

// CanDelete refuses while other container apps still run in the
// environment.
func (h *Environment) CanDelete(ctx *provisioning.Context) (bool, string, error) {
	env, err := ctx.Cloud.GetEnvironment(ctx, ctx.Config.ResourceGroup, ctx.Config.EnvironmentName)
	if err != nil || env == nil {
		return false, "", err
	}

	apps, err := ctx.Cloud.ListEnvironmentApps(ctx, ctx.Config.ResourceGroup, env.ID)
	if err != nil {
		return false, "", err
	}

	var others []string
	for _, name := range apps {
		if name != ctx.Config.AppName {
			others = append(others, name)
		}
	}
	if len(others) > 0 {
		return false, fmt.Sprintf("still hosts container apps: %s", strings.Join(others, ", ")), nil
	}
	return true, "", nil
}

func (h *Environment) Delete(ctx *provisioning.Context) error {
	return ctx.Cloud.DeleteEnvironment(ctx, ctx.Config.ResourceGroup, ctx.Config.EnvironmentName)
}
