package docker

import (
	"context"

	"github.com/imamik/acadeploy/internal/platform/registry"
)

// MockImageStore is a mock implementation of ImageStore. Unset functions
// succeed; ImageExists defaults to false.
type MockImageStore struct {
	PingFunc        func(ctx context.Context) error
	ImageExistsFunc func(ctx context.Context, ref string) (bool, error)
	BuildImageFunc  func(ctx context.Context, opts BuildOptions) error
	PushImageFunc   func(ctx context.Context, ref string, creds registry.Credentials) error
	RemoveImageFunc func(ctx context.Context, ref string) error
}

var _ ImageStore = (*MockImageStore)(nil)

func (m *MockImageStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockImageStore) ImageExists(ctx context.Context, ref string) (bool, error) {
	if m.ImageExistsFunc != nil {
		return m.ImageExistsFunc(ctx, ref)
	}
	return false, nil
}

func (m *MockImageStore) BuildImage(ctx context.Context, opts BuildOptions) error {
	if m.BuildImageFunc != nil {
		return m.BuildImageFunc(ctx, opts)
	}
	return nil
}

func (m *MockImageStore) PushImage(ctx context.Context, ref string, creds registry.Credentials) error {
	if m.PushImageFunc != nil {
		return m.PushImageFunc(ctx, ref, creds)
	}
	return nil
}

func (m *MockImageStore) RemoveImage(ctx context.Context, ref string) error {
	if m.RemoveImageFunc != nil {
		return m.RemoveImageFunc(ctx, ref)
	}
	return nil
}
