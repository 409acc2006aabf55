package image

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/platform/docker"
	"github.com/imamik/acadeploy/internal/platform/registry"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/destroy"
	testfx "github.com/imamik/acadeploy/internal/testing"
)

type purgeRun struct {
	removedLocal  []string
	removedRemote []string
	prompts       []string
	report        *destroy.Report
	outputDir     string
}

// purgeState sets which images exist before the purge starts.
type purgeState struct {
	localMissing  bool
	remoteMissing bool
}

func runPurge(t *testing.T, image string, confirmer provisioning.Confirmer) *purgeRun {
	t.Helper()
	return runPurgeWith(t, image, confirmer, purgeState{})
}

func runPurgeWith(t *testing.T, image string, confirmer provisioning.Confirmer, state purgeState) *purgeRun {
	t.Helper()
	src := t.TempDir()
	out := filepath.Join(src, "build")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "app"), []byte("bin"), 0o600))

	run := &purgeRun{report: &destroy.Report{}, outputDir: out}
	store := &docker.MockImageStore{
		ImageExistsFunc: func(context.Context, string) (bool, error) {
			return !state.localMissing, nil
		},
		RemoveImageFunc: func(_ context.Context, ref string) error {
			run.removedLocal = append(run.removedLocal, ref)
			return nil
		},
	}
	var recording provisioning.Confirmer
	if confirmer != nil {
		recording = provisioning.ConfirmFunc(func(prompt string) (bool, error) {
			run.prompts = append(run.prompts, prompt)
			return confirmer.Confirm(prompt)
		})
	}
	p := NewPurger(store, recording)
	p.remoteExists = func(context.Context, string, registry.Credentials) (bool, error) {
		return !state.remoteMissing, nil
	}
	p.deleteRemote = func(_ context.Context, ref string, _ registry.Credentials) error {
		run.removedRemote = append(run.removedRemote, ref)
		return nil
	}

	fx := testfx.NewDeployFixture(t, testfx.NewConfigBuilder().
		With("IMAGE", image).
		With("SOURCE_DIR", src).
		Build(t))
	p.Purge(fx.NewContext(), run.report)
	return run
}

func stepFor(t *testing.T, report *destroy.Report, kind string) destroy.Step {
	t.Helper()
	for _, step := range report.Steps {
		if step.Kind == kind {
			return step
		}
	}
	t.Fatalf("no %s step in report", kind)
	return destroy.Step{}
}

func TestPurger_AllConfirmed(t *testing.T) {
	t.Parallel()
	yes := provisioning.ConfirmFunc(func(string) (bool, error) { return true, nil })

	run := runPurge(t, "myreg.azurecr.io/shop:1", yes)

	assert.Equal(t, []string{"myreg.azurecr.io/shop:1"}, run.removedLocal)
	assert.Equal(t, []string{"myreg.azurecr.io/shop:1"}, run.removedRemote)
	assert.NoDirExists(t, run.outputDir)
	assert.Equal(t, 3, run.report.Count(destroy.StatusDeleted))
	assert.False(t, run.report.HasErrors())
}

func TestPurger_EachStepConfirmedSeparately(t *testing.T) {
	t.Parallel()
	var prompts []string
	onlyOutput := provisioning.ConfirmFunc(func(prompt string) (bool, error) {
		prompts = append(prompts, prompt)
		return len(prompts) == 2, nil
	})

	run := runPurge(t, "myreg.azurecr.io/shop:1", onlyOutput)

	require.Len(t, prompts, 3)
	assert.Contains(t, prompts[0], ArtifactLocalImage)
	assert.Contains(t, prompts[1], ArtifactBuildOutput)
	assert.Contains(t, prompts[2], ArtifactRegistryImage)
	assert.Empty(t, run.removedLocal)
	assert.Empty(t, run.removedRemote)
	assert.NoDirExists(t, run.outputDir)
	assert.Equal(t, 2, run.report.Count(destroy.StatusDeclined))
}

func TestPurger_NilConfirmerKeepsEverything(t *testing.T) {
	t.Parallel()

	run := runPurge(t, "myreg.azurecr.io/shop:1", nil)

	assert.Empty(t, run.removedLocal)
	assert.Empty(t, run.removedRemote)
	assert.DirExists(t, run.outputDir)
	assert.Equal(t, 3, run.report.Count(destroy.StatusDeclined))
}

func TestPurger_UnmatchedRegistryIsKept(t *testing.T) {
	t.Parallel()
	yes := provisioning.ConfirmFunc(func(string) (bool, error) { return true, nil })

	run := runPurge(t, "shop:1", yes)

	assert.Empty(t, run.removedRemote)
	last := run.report.Steps[len(run.report.Steps)-1]
	assert.Equal(t, ArtifactRegistryImage, last.Kind)
	assert.Equal(t, destroy.StatusKept, last.Status)
}

func TestPurger_FailureIsCollected(t *testing.T) {
	t.Parallel()
	cause := errors.New("daemon gone")
	report := &destroy.Report{}
	store := &docker.MockImageStore{
		ImageExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
		RemoveImageFunc: func(context.Context, string) error { return cause },
	}
	p := NewPurger(store, provisioning.ConfirmFunc(func(string) (bool, error) { return true, nil }))

	fx := testfx.NewDeployFixture(t, testfx.NewConfigBuilder().With("SOURCE_DIR", t.TempDir()).Build(t))
	p.Purge(fx.NewContext(), report)

	require.Len(t, report.Errors, 1)
	assert.ErrorIs(t, report.Err(), cause)
	assert.Equal(t, 1, report.Count(destroy.StatusAbsent))
}

func TestPurger_MissingLocalImageIsAbsent(t *testing.T) {
	t.Parallel()
	yes := provisioning.ConfirmFunc(func(string) (bool, error) { return true, nil })

	run := runPurgeWith(t, "myreg.azurecr.io/shop:1", yes, purgeState{localMissing: true})

	assert.Empty(t, run.removedLocal)
	assert.Equal(t, destroy.StatusAbsent, stepFor(t, run.report, ArtifactLocalImage).Status)
	require.Len(t, run.prompts, 2)
	for _, prompt := range run.prompts {
		assert.NotContains(t, prompt, ArtifactLocalImage)
	}
	assert.Equal(t, []string{"myreg.azurecr.io/shop:1"}, run.removedRemote)
}

func TestPurger_MissingRegistryImageIsAbsent(t *testing.T) {
	t.Parallel()
	yes := provisioning.ConfirmFunc(func(string) (bool, error) { return true, nil })

	run := runPurgeWith(t, "myreg.azurecr.io/shop:1", yes, purgeState{remoteMissing: true})

	assert.Empty(t, run.removedRemote)
	assert.Equal(t, destroy.StatusAbsent, stepFor(t, run.report, ArtifactRegistryImage).Status)
	require.Len(t, run.prompts, 2)
	for _, prompt := range run.prompts {
		assert.NotContains(t, prompt, ArtifactRegistryImage)
	}
	assert.Equal(t, []string{"myreg.azurecr.io/shop:1"}, run.removedLocal)
}

func TestPurger_LookupFailureIsCollected(t *testing.T) {
	t.Parallel()
	cause := errors.New("registry unreachable")
	var prompts []string
	report := &destroy.Report{}
	store := &docker.MockImageStore{
		ImageExistsFunc: func(context.Context, string) (bool, error) { return false, nil },
	}
	p := NewPurger(store, provisioning.ConfirmFunc(func(prompt string) (bool, error) {
		prompts = append(prompts, prompt)
		return true, nil
	}))
	p.remoteExists = func(context.Context, string, registry.Credentials) (bool, error) {
		return false, cause
	}
	p.deleteRemote = func(context.Context, string, registry.Credentials) error {
		t.Fatal("delete must not run after a failed lookup")
		return nil
	}

	fx := testfx.NewDeployFixture(t, testfx.NewConfigBuilder().
		With("IMAGE", "myreg.azurecr.io/shop:1").
		With("SOURCE_DIR", t.TempDir()).
		Build(t))
	p.Purge(fx.NewContext(), report)

	assert.Empty(t, prompts)
	require.Len(t, report.Errors, 1)
	assert.ErrorIs(t, report.Err(), cause)
	assert.Equal(t, 2, report.Count(destroy.StatusAbsent))
}

func TestOutputDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		output  string
		want    string
		wantErr bool
	}{
		{name: "relative", source: "/src/app", output: "build", want: "/src/app/build"},
		{name: "absolute", source: "/src/app", output: "/tmp/out", want: "/tmp/out"},
		{name: "source itself", source: "/src/app", output: ".", wantErr: true},
		{name: "root", source: "/src/app", output: "/", wantErr: true},
		{name: "empty", source: "/src/app", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := outputDir(tt.source, tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
