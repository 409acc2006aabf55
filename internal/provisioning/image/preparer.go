package image

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/imamik/acadeploy/internal/deployerr"
	"github.com/imamik/acadeploy/internal/platform/docker"
	"github.com/imamik/acadeploy/internal/platform/registry"
	"github.com/imamik/acadeploy/internal/provisioning"
)

const phaseName = "image"

// Build phases reported in BuildError.
const (
	PhaseCompile = "compile"
	PhasePackage = "package"
	PhaseVerify  = "verify"
)

// Preparer makes sure the configured image exists locally, building and
// publishing it when needed.
type Preparer struct {
	store    docker.ImageStore
	compiler Compiler
}

// NewPreparer creates a preparer over the given image store and compiler.
func NewPreparer(store docker.ImageStore, compiler Compiler) *Preparer {
	return &Preparer{store: store, compiler: compiler}
}

// Name implements the provisioning.Phase interface.
func (p *Preparer) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Preparer) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	ref := cfg.Image

	if _, err := name.ParseReference(ref, name.WeakValidation); err != nil {
		return &deployerr.ConfigError{Field: "IMAGE", Reason: "not a valid image reference", Err: err}
	}

	exists, err := p.store.ImageExists(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to inspect image %s: %w", ref, err)
	}
	if exists {
		ctx.Observer.Printf("[Image] Using local image %s", ref)
		return nil
	}

	if !cfg.AllowLocalBuild {
		return &deployerr.ConfigError{
			Field:  "IMAGE",
			Reason: fmt.Sprintf("image %s is not available locally and local builds are disabled", ref),
		}
	}

	if err := p.build(ctx, ref); err != nil {
		return err
	}
	return p.publish(ctx, ref)
}

func (p *Preparer) build(ctx *provisioning.Context, ref string) error {
	cfg := ctx.Config

	if cfg.BuildCommand != "" {
		ctx.Observer.Printf("[Image] Compiling in %s: %s", cfg.SourceDir, cfg.BuildCommand)
		if err := p.compiler.Compile(ctx, cfg.SourceDir, cfg.BuildCommand); err != nil {
			if deployerr.IsConfig(err) {
				return err
			}
			return &deployerr.BuildError{Phase: PhaseCompile, Image: ref, Err: err}
		}
	}

	ctx.Observer.Printf("[Image] Building %s from %s", ref, cfg.Dockerfile)
	err := p.store.BuildImage(ctx, docker.BuildOptions{
		ContextDir: cfg.SourceDir,
		Dockerfile: cfg.Dockerfile,
		Tags:       []string{ref},
	})
	if err != nil {
		return &deployerr.BuildError{Phase: PhasePackage, Image: ref, Err: err}
	}

	exists, err := p.store.ImageExists(ctx, ref)
	if err != nil {
		return &deployerr.BuildError{Phase: PhaseVerify, Image: ref, Err: err}
	}
	if !exists {
		return &deployerr.BuildError{Phase: PhaseVerify, Image: ref, Err: fmt.Errorf("image not found after build")}
	}
	ctx.Observer.Printf("[Image] Built %s", ref)
	return nil
}

// publish pushes the image when its registry matches the pattern.
func (p *Preparer) publish(ctx *provisioning.Context, ref string) error {
	cfg := ctx.Config
	if !registry.Matches(cfg.RegistryPattern, ref) {
		ctx.Observer.Printf("[Image] %s is not in a registry matching %q, not pushing", ref, cfg.RegistryPattern)
		return nil
	}

	ctx.Observer.Printf("[Image] Pushing %s", ref)
	creds := registry.Credentials{Username: cfg.RegistryUsername, Password: cfg.RegistryPassword}
	if err := p.store.PushImage(ctx, ref, creds); err != nil {
		return &deployerr.PublishError{Image: ref, Err: err}
	}
	ctx.Observer.Printf("[Image] Pushed %s", ref)
	return nil
}
