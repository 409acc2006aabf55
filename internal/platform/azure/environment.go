package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
)

// logDestinationLogAnalytics routes app console logs to the workspace.
const logDestinationLogAnalytics = "log-analytics"

// GetEnvironment returns the managed environment, or nil if it does not exist.
func (c *RealClient) GetEnvironment(ctx context.Context, resourceGroup, name string) (*Environment, error) {
	resp, err := (&GetOperation[armappcontainers.ManagedEnvironmentsClientGetResponse]{
		ResourceType: "managed environment",
		Name:         name,
		Get: func(ctx context.Context) (armappcontainers.ManagedEnvironmentsClientGetResponse, error) {
			return c.environments.Get(ctx, resourceGroup, name, nil)
		},
	}).Execute(ctx, c.timeouts.Read)
	if err != nil || resp == nil {
		return nil, err
	}
	return &Environment{ID: deref(resp.ID), Name: deref(resp.Name)}, nil
}

// CreateEnvironment creates a managed environment that ships app logs to
// the given workspace.
func (c *RealClient) CreateEnvironment(ctx context.Context, spec EnvironmentSpec) (*Environment, error) {
	resp, err := (&LongRunningOperation[armappcontainers.ManagedEnvironmentsClientCreateOrUpdateResponse]{
		ResourceType: "managed environment",
		Name:         spec.Name,
		Action:       "create",
		Begin: func(ctx context.Context) (*runtime.Poller[armappcontainers.ManagedEnvironmentsClientCreateOrUpdateResponse], error) {
			return c.environments.BeginCreateOrUpdate(ctx, spec.ResourceGroup, spec.Name, armappcontainers.ManagedEnvironment{
				Location: to.Ptr(spec.Location),
				Tags:     toTags(spec.Tags),
				Properties: &armappcontainers.ManagedEnvironmentProperties{
					AppLogsConfiguration: &armappcontainers.AppLogsConfiguration{
						Destination: to.Ptr(logDestinationLogAnalytics),
						LogAnalyticsConfiguration: &armappcontainers.LogAnalyticsConfiguration{
							CustomerID: to.Ptr(spec.WorkspaceCustomerID),
							SharedKey:  to.Ptr(spec.WorkspaceSharedKey),
						},
					},
				},
			}, nil)
		},
	}).Execute(ctx, c.timeouts.Create)
	if err != nil {
		return nil, err
	}
	return &Environment{ID: deref(resp.ID), Name: deref(resp.Name)}, nil
}

// DeleteEnvironment deletes the managed environment and waits for it.
func (c *RealClient) DeleteEnvironment(ctx context.Context, resourceGroup, name string) error {
	return awaitDelete(ctx, c.timeouts.Delete, "managed environment", name,
		func(ctx context.Context) (*runtime.Poller[armappcontainers.ManagedEnvironmentsClientDeleteResponse], error) {
			return c.environments.BeginDelete(ctx, resourceGroup, name, nil)
		})
}

// ListEnvironmentApps lists the apps in the resource group hosted by the
// environment.
func (c *RealClient) ListEnvironmentApps(ctx context.Context, resourceGroup, environmentID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Read)
	defer cancel()

	var names []string
	pager := c.apps.NewListByResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to list container apps in %q: %w", resourceGroup, err)
		}
		for _, app := range page.Value {
			if app == nil || app.Properties == nil {
				continue
			}
			if strings.EqualFold(appEnvironmentID(app.Properties), environmentID) {
				names = append(names, deref(app.Name))
			}
		}
	}
	return names, nil
}

func appEnvironmentID(p *armappcontainers.ContainerAppProperties) string {
	if id := deref(p.EnvironmentID); id != "" {
		return id
	}
	return deref(p.ManagedEnvironmentID)
}
