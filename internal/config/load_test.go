package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/deployerr"
)

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Defaults(), nil, map[string]string{EnvDatabasePassword: "s3cret-pass"})
	require.NoError(t, err)

	assert.Equal(t, "acadeploy-rg", cfg.ResourceGroup)
	assert.Equal(t, "westeurope", cfg.Location)
	assert.Equal(t, "acadeploy-env", cfg.EnvironmentName)
	assert.Equal(t, "acadeploy-env-logs", cfg.WorkspaceName)
	assert.Equal(t, "acadeploy-app-pg", cfg.DatabaseServer)
	assert.Equal(t, 8080, cfg.TargetPort)
	assert.InDelta(t, 0.5, cfg.CPU, 0.0001)
	assert.Equal(t, "1.0Gi", cfg.Memory)
	assert.Equal(t, 0, cfg.MinReplicas)
	assert.Equal(t, 1, cfg.MaxReplicas)
	assert.Equal(t, 32, cfg.DatabaseStorageGB)
	assert.True(t, cfg.AllowLocalBuild)
	assert.True(t, cfg.Rollback)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, "*.azurecr.io", cfg.RegistryPattern)
	assert.Equal(t, SourceDefault, cfg.SourceOf(EnvResourceGroup))
}

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		env        map[string]string
		explicit   map[string]string
		wantGroup  string
		wantSource Source
	}{
		{
			name:       "default only",
			wantGroup:  "acadeploy-rg",
			wantSource: SourceDefault,
		},
		{
			name:       "env over default",
			env:        map[string]string{EnvResourceGroup: "rg-from-env"},
			wantGroup:  "rg-from-env",
			wantSource: SourceEnv,
		},
		{
			name:       "explicit over env",
			env:        map[string]string{EnvResourceGroup: "rg-from-env"},
			explicit:   map[string]string{EnvResourceGroup: "rg-explicit"},
			wantGroup:  "rg-explicit",
			wantSource: SourceExplicit,
		},
		{
			name:       "empty env value is unset",
			env:        map[string]string{EnvResourceGroup: ""},
			wantGroup:  "acadeploy-rg",
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			explicit := map[string]string{EnvDatabasePassword: "s3cret-pass"}
			for k, v := range tt.explicit {
				explicit[k] = v
			}

			cfg, err := Resolve(Defaults(), tt.env, explicit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, cfg.ResourceGroup)
			assert.Equal(t, tt.wantSource, cfg.SourceOf(EnvResourceGroup))
		})
	}
}

func TestResolve_PrecedenceIsPerField(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"APP_NAME":      "app-env",
		"LOCATION":      "northeurope",
		"CPU":           "1.5",
		"DB_PASSWORD":   "from-env-pass",
		"UNRELATED_VAR": "ignored",
	}
	explicit := map[string]string{"APP_NAME": "app-flag"}

	cfg, err := Resolve(Defaults(), env, explicit)
	require.NoError(t, err)

	assert.Equal(t, "app-flag", cfg.AppName)
	assert.Equal(t, "northeurope", cfg.Location)
	assert.InDelta(t, 1.5, cfg.CPU, 0.0001)
	assert.Equal(t, "from-env-pass", cfg.DatabasePassword)
	assert.Equal(t, "acadeploy-env", cfg.EnvironmentName)
	assert.Equal(t, "app-flag-pg", cfg.DatabaseServer)
}

func TestResolve_TypedValues(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Defaults(), map[string]string{
		"AUTH_ENABLED":      "true",
		"AUTH_PASSWORD":     "pw-12345",
		"MIN_REPLICAS":      "2",
		"MAX_REPLICAS":      "4",
		"ALLOW_LOCAL_BUILD": "false",
	}, map[string]string{EnvDatabasePassword: "s3cret-pass", "ROLLBACK": "false"})
	require.NoError(t, err)

	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, 2, cfg.MinReplicas)
	assert.Equal(t, 4, cfg.MaxReplicas)
	assert.False(t, cfg.AllowLocalBuild)
	assert.False(t, cfg.Rollback)
}

func TestResolve_ConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		env       map[string]string
		explicit  map[string]string
		wantField string
	}{
		{
			name:      "missing database password",
			wantField: EnvDatabasePassword,
		},
		{
			name:      "explicit empty database password",
			env:       map[string]string{EnvDatabasePassword: "from-env"},
			explicit:  map[string]string{EnvDatabasePassword: ""},
			wantField: EnvDatabasePassword,
		},
		{
			name:      "auth enabled without password",
			explicit:  map[string]string{EnvDatabasePassword: "x", "AUTH_ENABLED": "true"},
			wantField: EnvAuthPassword,
		},
		{
			name:      "invalid integer",
			explicit:  map[string]string{EnvDatabasePassword: "x", "MAX_REPLICAS": "many"},
			wantField: "MAX_REPLICAS",
		},
		{
			name:      "replica bounds",
			explicit:  map[string]string{EnvDatabasePassword: "x", "MIN_REPLICAS": "3", "MAX_REPLICAS": "2"},
			wantField: "MAX_REPLICAS",
		},
		{
			name:      "zero cpu",
			explicit:  map[string]string{EnvDatabasePassword: "x", "CPU": "0"},
			wantField: "CPU",
		},
		{
			name:      "unknown explicit key",
			explicit:  map[string]string{"NOPE": "1"},
			wantField: "NOPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Resolve(Defaults(), tt.env, tt.explicit)
			require.Error(t, err)

			var cfgErr *deployerr.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestDecode_SkipsDeployValidation(t *testing.T) {
	t.Parallel()

	cfg, err := Decode(Defaults(), map[string]string{"APP_NAME": "a1"}, map[string]string{"DELETE_RESOURCE_GROUP": "true"})
	require.NoError(t, err)
	assert.Equal(t, "a1", cfg.AppName)
	assert.True(t, cfg.DeleteResourceGroup)
	assert.Empty(t, cfg.DatabasePassword)
}

func TestConfig_Redacted(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Defaults(), nil, map[string]string{EnvDatabasePassword: "hunter22"})
	require.NoError(t, err)

	out := cfg.Redacted()
	assert.Equal(t, "********", out[EnvDatabasePassword])
	assert.Equal(t, "", out[EnvAuthPassword])
	assert.Equal(t, "acadeploy-rg", out[EnvResourceGroup])
	assert.Equal(t, "acadeploy-env-logs", out["WORKSPACE_NAME"])
}

func TestConfig_WithGeneratedEncryptionKey(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Defaults(), nil, map[string]string{EnvDatabasePassword: "hunter22"})
	require.NoError(t, err)

	withKey := cfg.WithGeneratedEncryptionKey("generated")
	assert.Equal(t, "generated", withKey.EncryptionKey)
	assert.True(t, withKey.EncryptionKeyGenerated)
	assert.Empty(t, cfg.EncryptionKey, "original config must not change")
	assert.False(t, cfg.EncryptionKeyGenerated)
}

func TestKeys_UniqueFlags(t *testing.T) {
	t.Parallel()

	flags := map[string]bool{}
	shorts := map[string]bool{}
	for _, k := range Keys {
		assert.False(t, flags[k.Flag], "duplicate flag %s", k.Flag)
		assert.False(t, shorts[k.Short], "duplicate shorthand %s", k.Short)
		assert.Len(t, k.Short, 1, "flag %s needs a one-letter form", k.Flag)
		assert.NotEqual(t, "h", k.Short, "shorthand h is reserved for help")
		flags[k.Flag] = true
		shorts[k.Short] = true
	}
}

func TestKeysFor(t *testing.T) {
	t.Parallel()

	deploy := KeysFor(ScopeDeploy)
	teardown := KeysFor(ScopeTeardown)

	has := func(keys []Key, flag string) bool {
		for _, k := range keys {
			if k.Flag == flag {
				return true
			}
		}
		return false
	}

	assert.True(t, has(deploy, "db-password"))
	assert.False(t, has(teardown, "db-password"))
	assert.True(t, has(teardown, "purge"))
	assert.False(t, has(deploy, "purge"))
	assert.True(t, has(deploy, "resource-group"))
	assert.True(t, has(teardown, "resource-group"))

	k, ok := LookupFlag("app-name")
	require.True(t, ok)
	assert.Equal(t, "APP_NAME", k.Env)
}
