package image_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/deployerr"
	"github.com/imamik/acadeploy/internal/platform/docker"
	"github.com/imamik/acadeploy/internal/platform/registry"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/image"
	testfx "github.com/imamik/acadeploy/internal/testing"
)

// fakeStore is an image store whose image appears once it is built.
type fakeStore struct {
	docker.MockImageStore

	present bool
	builds  []docker.BuildOptions
	pushes  []registry.Credentials
}

func newFakeStore(present bool) *fakeStore {
	s := &fakeStore{present: present}
	s.ImageExistsFunc = func(context.Context, string) (bool, error) { return s.present, nil }
	s.BuildImageFunc = func(_ context.Context, opts docker.BuildOptions) error {
		s.builds = append(s.builds, opts)
		s.present = true
		return nil
	}
	s.PushImageFunc = func(_ context.Context, _ string, creds registry.Credentials) error {
		s.pushes = append(s.pushes, creds)
		return nil
	}
	return s
}

func prepare(t *testing.T, b *testfx.ConfigBuilder, store docker.ImageStore, compiler image.Compiler) error {
	t.Helper()
	fx := testfx.NewDeployFixture(t, b.Build(t))
	return image.NewPreparer(store, compiler).Provision(fx.NewContext())
}

func TestPreparer_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "image", image.NewPreparer(nil, nil).Name())
}

func TestPreparer_ImagePresent(t *testing.T) {
	t.Parallel()
	store := newFakeStore(true)
	compiler := &testfx.MockCompiler{}

	err := prepare(t, testfx.NewConfigBuilder(), store, compiler)

	require.NoError(t, err)
	compiler.AssertNotCalled(t, "Compile", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, store.builds)
	assert.Empty(t, store.pushes)
}

func TestPreparer_BuildDisabled(t *testing.T) {
	t.Parallel()
	store := newFakeStore(false)
	compiler := &testfx.MockCompiler{}

	err := prepare(t, testfx.NewConfigBuilder().With("ALLOW_LOCAL_BUILD", "false"), store, compiler)

	require.Error(t, err)
	assert.True(t, deployerr.IsConfig(err))
	assert.Equal(t, deployerr.ExitConfig, deployerr.ExitCode(err))
	compiler.AssertNotCalled(t, "Compile", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, store.builds)
}

func TestPreparer_BuildAndPush(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		image    string
		wantPush bool
	}{
		{name: "matching registry is pushed", image: "myreg.azurecr.io/shop:1", wantPush: true},
		{name: "local image is not pushed", image: "shop:1"},
		{name: "other registry is not pushed", image: "ghcr.io/acme/shop:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore(false)
			compiler := &testfx.MockCompiler{}
			compiler.On("Compile", mock.Anything, "./app", "make build").Return(nil)

			err := prepare(t, testfx.NewConfigBuilder().
				With("IMAGE", tt.image).
				With("SOURCE_DIR", "./app").
				With("REGISTRY_USERNAME", "bot").
				With("REGISTRY_PASSWORD", "pw"), store, compiler)

			require.NoError(t, err)
			compiler.AssertExpectations(t)
			require.Len(t, store.builds, 1)
			assert.Equal(t, docker.BuildOptions{ContextDir: "./app", Dockerfile: "Dockerfile", Tags: []string{tt.image}}, store.builds[0])

			if tt.wantPush {
				require.Len(t, store.pushes, 1)
				assert.Equal(t, registry.Credentials{Username: "bot", Password: "pw"}, store.pushes[0])
			} else {
				assert.Empty(t, store.pushes)
			}
		})
	}
}

func TestPreparer_Failures(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")

	tests := []struct {
		name       string
		compileErr error
		setup      func(*fakeStore)
		wantPhase  string
		wantCode   int
	}{
		{name: "compile fails", compileErr: cause, wantPhase: image.PhaseCompile, wantCode: deployerr.ExitBuild},
		{
			name:      "package fails",
			setup:     func(s *fakeStore) { s.BuildImageFunc = func(context.Context, docker.BuildOptions) error { return cause } },
			wantPhase: image.PhasePackage,
			wantCode:  deployerr.ExitBuild,
		},
		{
			name:      "image still missing",
			setup:     func(s *fakeStore) { s.BuildImageFunc = func(context.Context, docker.BuildOptions) error { return nil } },
			wantPhase: image.PhaseVerify,
			wantCode:  deployerr.ExitBuild,
		},
		{
			name: "push fails",
			setup: func(s *fakeStore) {
				s.PushImageFunc = func(context.Context, string, registry.Credentials) error { return cause }
			},
			wantCode: deployerr.ExitPublish,
		},
		{
			name:       "build tool missing",
			compileErr: &deployerr.ConfigError{Field: "BUILD_COMMAND", Reason: "build tool not available"},
			wantCode:   deployerr.ExitConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore(false)
			if tt.setup != nil {
				tt.setup(store)
			}
			compiler := &testfx.MockCompiler{}
			compiler.On("Compile", mock.Anything, mock.Anything, mock.Anything).Return(tt.compileErr)

			err := prepare(t, testfx.NewConfigBuilder().With("IMAGE", "myreg.azurecr.io/shop:1"), store, compiler)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, deployerr.ExitCode(err))
			if tt.wantPhase != "" {
				var buildErr *deployerr.BuildError
				require.ErrorAs(t, err, &buildErr)
				assert.Equal(t, tt.wantPhase, buildErr.Phase)
			}
		})
	}
}

func TestPreparer_PushIsAttemptedOnce(t *testing.T) {
	t.Parallel()
	store := newFakeStore(false)
	attempts := 0
	store.PushImageFunc = func(context.Context, string, registry.Credentials) error {
		attempts++
		return errors.New("503 Service Unavailable")
	}
	compiler := &testfx.MockCompiler{}
	compiler.On("Compile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := prepare(t, testfx.NewConfigBuilder().With("IMAGE", "myreg.azurecr.io/shop:1"), store, compiler)

	var publishErr *deployerr.PublishError
	require.ErrorAs(t, err, &publishErr)
	assert.Equal(t, 1, attempts)
}

func TestPreparer_InvalidReference(t *testing.T) {
	t.Parallel()
	store := newFakeStore(false)

	err := prepare(t, testfx.NewConfigBuilder().With("IMAGE", "Not A Reference"), store, &testfx.MockCompiler{})

	require.Error(t, err)
	assert.True(t, deployerr.IsConfig(err))
}

func TestPreparer_RunsBeforeProvisioning(t *testing.T) {
	t.Parallel()
	fx := testfx.NewDeployFixture(t, testfx.NewConfigBuilder().With("ALLOW_LOCAL_BUILD", "false").Build(t))
	ctx := fx.NewContext()

	outcome, err := provisioning.Execute(ctx, []provisioning.Phase{
		image.NewPreparer(newFakeStore(false), &testfx.MockCompiler{}),
		provisioning.NewSequencer(),
	})

	require.Error(t, err)
	assert.True(t, deployerr.IsConfig(err))
	assert.Equal(t, provisioning.OutcomeFailedWithoutRollback, outcome)
	assert.Empty(t, fx.Cloud.Calls())
}
