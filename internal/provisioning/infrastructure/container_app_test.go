package infrastructure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/infrastructure"
	testfx "github.com/imamik/acadeploy/internal/testing"
)

func appContext(t *testing.T, b *testfx.ConfigBuilder) *provisioning.Context {
	t.Helper()
	fx := testfx.NewDeployFixture(t, b.Build(t))
	ctx := fx.NewContext()
	ctx.State.EnvironmentID = "/subscriptions/fake/env/e1"
	ctx.State.DatabaseFQDN = "s1.postgres.database.azure.com"
	return ctx
}

func envValue(env []azure.EnvVar, name string) (azure.EnvVar, bool) {
	for _, e := range env {
		if e.Name == name {
			return e, true
		}
	}
	return azure.EnvVar{}, false
}

func TestAppSpec_CredentialsAreSecrets(t *testing.T) {
	t.Parallel()
	ctx := appContext(t, testfx.NewConfigBuilder())

	spec, err := infrastructure.AppSpec(ctx)
	require.NoError(t, err)

	assert.Equal(t, "a1", spec.Name)
	assert.Equal(t, "g1", spec.ResourceGroup)
	assert.Equal(t, "/subscriptions/fake/env/e1", spec.EnvironmentID)
	assert.Equal(t, "x", secretValue(spec.Secrets, "db-password"))
	assert.Equal(t, "test-encryption-key", secretValue(spec.Secrets, "encryption-key"))
	assert.Len(t, spec.Secrets, 2)
	assert.Nil(t, spec.Registry)

	host, ok := envValue(spec.Env, "DATABASE_HOST")
	require.True(t, ok)
	assert.Equal(t, "s1.postgres.database.azure.com", host.Value)

	pw, ok := envValue(spec.Env, "DATABASE_PASSWORD")
	require.True(t, ok)
	assert.Empty(t, pw.Value)
	assert.Equal(t, "db-password", pw.SecretRef)

	key, ok := envValue(spec.Env, "ENCRYPTION_KEY")
	require.True(t, ok)
	assert.Empty(t, key.Value)
	assert.Equal(t, "encryption-key", key.SecretRef)

	auth, ok := envValue(spec.Env, "AUTH_ENABLED")
	require.True(t, ok)
	assert.Equal(t, "false", auth.Value)
	_, ok = envValue(spec.Env, "AUTH_PASSWORD")
	assert.False(t, ok)

	for _, e := range spec.Env {
		assert.NotEqual(t, "x", e.Value, e.Name)
		assert.NotEqual(t, "test-encryption-key", e.Value, e.Name)
	}
}

func TestAppSpec_AuthEnabled(t *testing.T) {
	t.Parallel()
	ctx := appContext(t, testfx.NewConfigBuilder().
		With("AUTH_ENABLED", "true").
		With("AUTH_USERNAME", "alice").
		With("AUTH_PASSWORD", "hunter2"))

	spec, err := infrastructure.AppSpec(ctx)
	require.NoError(t, err)

	assert.Equal(t, "hunter2", secretValue(spec.Secrets, "auth-password"))
	user, ok := envValue(spec.Env, "AUTH_USERNAME")
	require.True(t, ok)
	assert.Equal(t, "alice", user.Value)
	pw, ok := envValue(spec.Env, "AUTH_PASSWORD")
	require.True(t, ok)
	assert.Equal(t, "auth-password", pw.SecretRef)
}

func TestAppSpec_RegistryCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		image    string
		username string
		wantReg  bool
	}{
		{name: "matching registry", image: "myreg.azurecr.io/shop:1", username: "bot", wantReg: true},
		{name: "other registry", image: "ghcr.io/acme/shop:1", username: "bot"},
		{name: "no credentials", image: "myreg.azurecr.io/shop:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := testfx.NewConfigBuilder().With("IMAGE", tt.image)
			if tt.username != "" {
				b = b.With("REGISTRY_USERNAME", tt.username).With("REGISTRY_PASSWORD", "pw")
			}
			spec, err := infrastructure.AppSpec(appContext(t, b))
			require.NoError(t, err)

			if !tt.wantReg {
				assert.Nil(t, spec.Registry)
				assert.Empty(t, secretValue(spec.Secrets, "registry-password"))
				return
			}
			require.NotNil(t, spec.Registry)
			assert.Equal(t, "myreg.azurecr.io", spec.Registry.Server)
			assert.Equal(t, "bot", spec.Registry.Username)
			assert.Equal(t, "registry-password", spec.Registry.PasswordSecretRef)
			assert.Equal(t, "pw", secretValue(spec.Secrets, "registry-password"))
		})
	}
}

func TestAppSpec_MissingOutputs(t *testing.T) {
	t.Parallel()

	ctx := appContext(t, testfx.NewConfigBuilder())
	ctx.State.EnvironmentID = ""
	_, err := infrastructure.AppSpec(ctx)
	assert.ErrorContains(t, err, "managed environment id is missing")

	ctx = appContext(t, testfx.NewConfigBuilder())
	ctx.State.DatabaseFQDN = ""
	_, err = infrastructure.AppSpec(ctx)
	assert.ErrorContains(t, err, "database server host is missing")
}
