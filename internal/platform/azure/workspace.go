package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/operationalinsights/armoperationalinsights"
)

// workspaceRetentionDays is the minimum retention of the PerGB2018 tier.
const workspaceRetentionDays = 30

// GetWorkspace returns the workspace, or nil if it does not exist.
func (c *RealClient) GetWorkspace(ctx context.Context, resourceGroup, name string) (*Workspace, error) {
	resp, err := (&GetOperation[armoperationalinsights.WorkspacesClientGetResponse]{
		ResourceType: "log workspace",
		Name:         name,
		Get: func(ctx context.Context) (armoperationalinsights.WorkspacesClientGetResponse, error) {
			return c.workspaces.Get(ctx, resourceGroup, name, nil)
		},
	}).Execute(ctx, c.timeouts.Read)
	if err != nil || resp == nil {
		return nil, err
	}
	return workspaceFromSDK(&resp.Workspace), nil
}

// CreateWorkspace creates a pay-as-you-go workspace and waits for it.
func (c *RealClient) CreateWorkspace(ctx context.Context, resourceGroup, name, location string, tags map[string]string) (*Workspace, error) {
	resp, err := (&LongRunningOperation[armoperationalinsights.WorkspacesClientCreateOrUpdateResponse]{
		ResourceType: "log workspace",
		Name:         name,
		Action:       "create",
		Begin: func(ctx context.Context) (*runtime.Poller[armoperationalinsights.WorkspacesClientCreateOrUpdateResponse], error) {
			return c.workspaces.BeginCreateOrUpdate(ctx, resourceGroup, name, armoperationalinsights.Workspace{
				Location: to.Ptr(location),
				Tags:     toTags(tags),
				Properties: &armoperationalinsights.WorkspaceProperties{
					SKU: &armoperationalinsights.WorkspaceSKU{
						Name: to.Ptr(armoperationalinsights.WorkspaceSKUNameEnumPerGB2018),
					},
					RetentionInDays: to.Ptr[int32](workspaceRetentionDays),
				},
			}, nil)
		},
	}).Execute(ctx, c.timeouts.Create)
	if err != nil {
		return nil, err
	}
	return workspaceFromSDK(&resp.Workspace), nil
}

// GetWorkspaceSharedKey returns the primary shared key of the workspace.
func (c *RealClient) GetWorkspaceSharedKey(ctx context.Context, resourceGroup, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Read)
	defer cancel()

	resp, err := c.sharedKeys.GetSharedKeys(ctx, resourceGroup, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get shared keys of log workspace %q: %w", name, err)
	}
	key := deref(resp.PrimarySharedKey)
	if key == "" {
		return "", fmt.Errorf("log workspace %q returned no primary shared key", name)
	}
	return key, nil
}

// DeleteWorkspace force-deletes the workspace, skipping the soft-delete
// period so the name can be reused immediately.
func (c *RealClient) DeleteWorkspace(ctx context.Context, resourceGroup, name string) error {
	return awaitDelete(ctx, c.timeouts.Delete, "log workspace", name,
		func(ctx context.Context) (*runtime.Poller[armoperationalinsights.WorkspacesClientDeleteResponse], error) {
			return c.workspaces.BeginDelete(ctx, resourceGroup, name, &armoperationalinsights.WorkspacesClientBeginDeleteOptions{
				Force: to.Ptr(true),
			})
		})
}

func workspaceFromSDK(w *armoperationalinsights.Workspace) *Workspace {
	out := &Workspace{
		ID:   deref(w.ID),
		Name: deref(w.Name),
	}
	if w.Properties != nil {
		out.CustomerID = deref(w.Properties.CustomerID)
	}
	return out
}
