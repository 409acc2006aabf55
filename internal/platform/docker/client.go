package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	dockerregistry "github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/moby/patternmatcher"
	"github.com/moby/patternmatcher/ignorefile"

	"github.com/imamik/acadeploy/internal/platform/registry"
)

// Client is an ImageStore backed by the Docker Engine API.
type Client struct {
	api     *client.Client
	out     io.Writer
	apiOpts []client.Opt
}

var _ ImageStore = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithOutput sets where build and push progress is written.
func WithOutput(w io.Writer) Option {
	return func(c *Client) {
		c.out = w
	}
}

// WithAPIOptions appends Engine API client options. They are applied after
// the environment defaults and override them.
func WithAPIOptions(opts ...client.Opt) Option {
	return func(c *Client) {
		c.apiOpts = append(c.apiOpts, opts...)
	}
}

// NewClient connects to the daemon configured by the environment
// (DOCKER_HOST and friends).
func NewClient(options ...Option) (*Client, error) {
	c := &Client{out: io.Discard}
	for _, o := range options {
		o(c)
	}

	opts := append([]client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}, c.apiOpts...)
	api, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	c.api = api
	return c, nil
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.api.Close()
}

// Ping checks that the daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon is not reachable: %w", err)
	}
	return nil
}

// ImageExists reports whether ref is present in the local image store.
func (c *Client) ImageExists(ctx context.Context, ref string) (bool, error) {
	_, _, err := c.api.ImageInspectWithRaw(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect image %s: %w", ref, err)
	}
	return true, nil
}

// BuildImage builds an image from opts.ContextDir. Errors reported inside
// the build stream fail the build. Paths listed in the context's
// .dockerignore are left out of the context sent to the daemon.
func (c *Client) BuildImage(ctx context.Context, opts BuildOptions) error {
	excludes, err := contextExcludes(opts.ContextDir, opts.Dockerfile)
	if err != nil {
		return err
	}
	buildContext, err := archive.TarWithOptions(opts.ContextDir, &archive.TarOptions{ExcludePatterns: excludes})
	if err != nil {
		return fmt.Errorf("failed to create build context tar: %w", err)
	}
	defer buildContext.Close()

	resp, err := c.api.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       opts.Tags,
		Dockerfile: opts.Dockerfile,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	if err := jsonmessage.DisplayJSONMessagesStream(resp.Body, c.out, 0, false, nil); err != nil {
		return fmt.Errorf("image build failed: %w", err)
	}
	return nil
}

// contextExcludes reads the .dockerignore of contextDir. The Dockerfile and
// the ignore file itself are always kept so the daemon can read them.
func contextExcludes(contextDir, dockerfile string) ([]string, error) {
	f, err := os.Open(filepath.Join(contextDir, ".dockerignore"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open .dockerignore: %w", err)
	}
	defer f.Close()

	excludes, err := ignorefile.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read .dockerignore: %w", err)
	}
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}
	for _, keep := range []string{".dockerignore", filepath.ToSlash(filepath.Clean(dockerfile))} {
		if matched, _ := patternmatcher.MatchesOrParentMatches(keep, excludes); matched {
			excludes = append(excludes, "!"+keep)
		}
	}
	return excludes, nil
}

// PushImage pushes ref to its registry. Explicit credentials win over the
// local keychain.
func (c *Client) PushImage(ctx context.Context, ref string, creds registry.Credentials) error {
	auth, err := encodeAuth(ref, creds)
	if err != nil {
		return err
	}

	body, err := c.api.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: auth})
	if err != nil {
		return fmt.Errorf("failed to push image %s: %w", ref, err)
	}
	defer body.Close()

	if err := jsonmessage.DisplayJSONMessagesStream(body, c.out, 0, false, nil); err != nil {
		return fmt.Errorf("image push failed: %w", err)
	}
	return nil
}

// RemoveImage force-removes the local image.
func (c *Client) RemoveImage(ctx context.Context, ref string) error {
	_, err := c.api.ImageRemove(ctx, ref, image.RemoveOptions{Force: true, PruneChildren: true})
	if err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("failed to remove image %s: %w", ref, err)
	}
	return nil
}

func encodeAuth(ref string, creds registry.Credentials) (string, error) {
	host, err := registry.Host(ref)
	if err != nil {
		return "", err
	}
	cfg, err := registry.AuthConfig(ref, creds)
	if err != nil {
		return "", err
	}
	encoded, err := dockerregistry.EncodeAuthConfig(dockerregistry.AuthConfig{
		Username:      cfg.Username,
		Password:      cfg.Password,
		Auth:          cfg.Auth,
		IdentityToken: cfg.IdentityToken,
		RegistryToken: cfg.RegistryToken,
		ServerAddress: host,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode registry auth: %w", err)
	}
	return encoded, nil
}
