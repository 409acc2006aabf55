package image

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/acadeploy/internal/platform/docker"
	"github.com/imamik/acadeploy/internal/platform/registry"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/destroy"
)

// Artifact kinds reported by the Purger.
const (
	ArtifactLocalImage    = "local-image"
	ArtifactBuildOutput   = "build-output"
	ArtifactRegistryImage = "registry-image"
)

// Purger removes the local image, the build output directory and the
// registry copy of the image. Each removal needs its own confirmation;
// artifacts that do not exist are reported absent without a prompt.
type Purger struct {
	store        docker.ImageStore
	confirmer    provisioning.Confirmer
	remoteExists func(ctx context.Context, ref string, creds registry.Credentials) (bool, error)
	deleteRemote func(ctx context.Context, ref string, creds registry.Credentials) error
}

// NewPurger creates a purger. A nil confirmer declines every removal.
func NewPurger(store docker.ImageStore, confirmer provisioning.Confirmer) *Purger {
	return &Purger{
		store:        store,
		confirmer:    confirmer,
		remoteExists: registry.Exists,
		deleteRemote: registry.Delete,
	}
}

// Purge removes the artifacts and records each step in report.
func (p *Purger) Purge(ctx *provisioning.Context, report *destroy.Report) {
	cfg := ctx.Config
	ref := cfg.Image

	p.stepIfPresent(ctx, report, ArtifactLocalImage, ref,
		func() (bool, error) { return p.store.ImageExists(ctx, ref) },
		func() error { return p.store.RemoveImage(ctx, ref) },
	)

	out, err := outputDir(cfg.SourceDir, cfg.BuildOutputDir)
	if err != nil {
		report.Fail(ArtifactBuildOutput, cfg.BuildOutputDir, err)
	} else if _, statErr := os.Stat(out); errors.Is(statErr, os.ErrNotExist) {
		ctx.Observer.Printf("[Purge] Build output %s does not exist, skipping", out)
		report.Add(ArtifactBuildOutput, out, destroy.StatusAbsent, "")
	} else {
		p.step(ctx, report, ArtifactBuildOutput, out, func() error {
			return os.RemoveAll(out)
		})
	}

	if !registry.Matches(cfg.RegistryPattern, ref) {
		report.Add(ArtifactRegistryImage, ref, destroy.StatusKept, fmt.Sprintf("registry does not match %q", cfg.RegistryPattern))
		return
	}
	creds := registry.Credentials{Username: cfg.RegistryUsername, Password: cfg.RegistryPassword}
	p.stepIfPresent(ctx, report, ArtifactRegistryImage, ref,
		func() (bool, error) { return p.remoteExists(ctx, ref, creds) },
		func() error { return p.deleteRemote(ctx, ref, creds) },
	)
}

func (p *Purger) stepIfPresent(ctx *provisioning.Context, report *destroy.Report, kind, target string, exists func() (bool, error), remove func() error) {
	found, err := exists()
	if err != nil {
		ctx.Observer.Printf("[Purge] Failed to look up %s %s: %v", kind, target, err)
		report.Fail(kind, target, err)
		return
	}
	if !found {
		ctx.Observer.Printf("[Purge] %s %s does not exist, skipping", kind, target)
		report.Add(kind, target, destroy.StatusAbsent, "")
		return
	}
	p.step(ctx, report, kind, target, remove)
}

func (p *Purger) step(ctx *provisioning.Context, report *destroy.Report, kind, target string, remove func() error) {
	ok, err := p.confirm(fmt.Sprintf("Remove %s %s?", kind, target))
	if err != nil {
		report.Fail(kind, target, err)
		return
	}
	if !ok {
		ctx.Observer.Printf("[Purge] Keeping %s %s", kind, target)
		report.Add(kind, target, destroy.StatusDeclined, "")
		return
	}

	ctx.Observer.Printf("[Purge] Removing %s %s", kind, target)
	if err := remove(); err != nil {
		ctx.Observer.Printf("[Purge] Failed to remove %s %s: %v", kind, target, err)
		report.Fail(kind, target, err)
		return
	}
	report.Add(kind, target, destroy.StatusDeleted, "")
}

func (p *Purger) confirm(prompt string) (bool, error) {
	if p.confirmer == nil {
		return false, nil
	}
	return p.confirmer.Confirm(prompt)
}

// outputDir resolves the build output directory against the source
// directory and refuses to return the source directory itself.
func outputDir(sourceDir, output string) (string, error) {
	if output == "" {
		return "", errors.New("build output directory is not set")
	}
	out := output
	if !filepath.IsAbs(out) {
		out = filepath.Join(sourceDir, out)
	}
	out = filepath.Clean(out)
	if out == filepath.Clean(sourceDir) || out == string(filepath.Separator) {
		return "", fmt.Errorf("refusing to remove %s", out)
	}
	return out, nil
}
