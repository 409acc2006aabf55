package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// ResourceGroupExists reports whether the resource group exists.
func (c *RealClient) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Read)
	defer cancel()

	resp, err := c.groups.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check resource group %q: %w", name, err)
	}
	return resp.Success, nil
}

// CreateResourceGroup creates the resource group.
func (c *RealClient) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Create)
	defer cancel()

	_, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     toTags(tags),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create resource group %q: %w", name, err)
	}
	return nil
}

// BeginDeleteResourceGroup requests deletion of the resource group and
// everything in it without waiting for completion.
func (c *RealClient) BeginDeleteResourceGroup(ctx context.Context, name string) error {
	return beginDelete(ctx, c.timeouts.Delete, "resource group", name,
		func(ctx context.Context) (*runtime.Poller[armresources.ResourceGroupsClientDeleteResponse], error) {
			return c.groups.BeginDelete(ctx, name, nil)
		})
}
