package docker

import (
	"context"

	"github.com/imamik/acadeploy/internal/platform/registry"
)

// BuildOptions describe a single image build.
type BuildOptions struct {
	// ContextDir is sent to the daemon as the build context.
	ContextDir string
	// Dockerfile is relative to ContextDir.
	Dockerfile string
	Tags       []string
}

// ImageStore is the subset of an image daemon the deploy flow needs.
type ImageStore interface {
	Ping(ctx context.Context) error
	ImageExists(ctx context.Context, ref string) (bool, error)
	BuildImage(ctx context.Context, opts BuildOptions) error
	PushImage(ctx context.Context, ref string, creds registry.Credentials) error
	// RemoveImage deletes the local image. A missing image is not an error.
	RemoveImage(ctx context.Context, ref string) error
}
