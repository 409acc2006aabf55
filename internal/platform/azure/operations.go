package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// GetOperation encapsulates an existence-aware read of any ARM resource.
// A 404 is reported as a nil result instead of an error.
//
// Usage example:
//
//	func (c *RealClient) GetWorkspace(ctx context.Context, rg, name string) (*Workspace, error) {
//	    resp, err := (&GetOperation[armoperationalinsights.WorkspacesClientGetResponse]{
//	        ResourceType: "log workspace",
//	        Name:         name,
//	        Get: func(ctx context.Context) (armoperationalinsights.WorkspacesClientGetResponse, error) {
//	            return c.workspaces.Get(ctx, rg, name, nil)
//	        },
//	    }).Execute(ctx, c.timeouts.Read)
//	    ...
//	}
type GetOperation[T any] struct {
	ResourceType string
	Name         string

	// Get reads the resource
	Get func(ctx context.Context) (T, error)
}

// Execute performs the read bounded by timeout.
func (op *GetOperation[T]) Execute(ctx context.Context, timeout time.Duration) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := op.Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s %q: %w", op.ResourceType, op.Name, err)
	}
	return &resp, nil
}

// LongRunningOperation starts an ARM operation and waits for its result.
type LongRunningOperation[T any] struct {
	ResourceType string
	Name         string
	Action       string // create, update or delete, used in error messages

	// Begin starts the operation
	Begin func(ctx context.Context) (*runtime.Poller[T], error)
}

// Execute starts the operation and polls it to completion, bounded by
// timeout.
func (op *LongRunningOperation[T]) Execute(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	poller, err := op.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to %s %s %q: %w", op.Action, op.ResourceType, op.Name, err)
	}

	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to wait for %s %q %s: %w", op.ResourceType, op.Name, op.Action, err)
	}
	return resp, nil
}

// beginDelete starts a delete and discards the poller. Azure keeps
// deleting after the call returns. A missing resource is not an error.
func beginDelete[T any](
	ctx context.Context,
	timeout time.Duration,
	resourceType, name string,
	begin func(ctx context.Context) (*runtime.Poller[T], error),
) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := begin(ctx); err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to request deletion of %s %q: %w", resourceType, name, err)
	}
	return nil
}

// awaitDelete deletes a resource and waits for completion. A missing
// resource is not an error.
func awaitDelete[T any](
	ctx context.Context,
	timeout time.Duration,
	resourceType, name string,
	begin func(ctx context.Context) (*runtime.Poller[T], error),
) error {
	_, err := (&LongRunningOperation[T]{
		ResourceType: resourceType,
		Name:         name,
		Action:       "delete",
		Begin:        begin,
	}).Execute(ctx, timeout)
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// toTags converts plain tags to the pointer map the SDK expects.
func toTags(in map[string]string) map[string]*string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]*string, len(in))
	for k, v := range in {
		out[k] = &v
	}
	return out
}

// deref returns the value of p or "" when p is nil.
func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
