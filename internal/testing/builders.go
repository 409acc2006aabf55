package testing

import (
	"maps"
	"testing"

	"github.com/imamik/acadeploy/internal/config"
)

// ScenarioEnv is the reference deployment used across tests: group g1,
// environment e1, app a1, database server s1, auth off and password "x".
func ScenarioEnv() map[string]string {
	return map[string]string{
		"AZURE_SUBSCRIPTION_ID": "00000000-0000-0000-0000-000000000000",
		"RESOURCE_GROUP":        "g1",
		"ENVIRONMENT_NAME":      "e1",
		"APP_NAME":              "a1",
		"DB_SERVER":             "s1",
		"AUTH_ENABLED":          "false",
		"DB_PASSWORD":           "x",
		"ENCRYPTION_KEY":        "test-encryption-key",
	}
}

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	env map[string]string
}

// NewConfigBuilder creates a new ConfigBuilder seeded with ScenarioEnv.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{env: ScenarioEnv()}
}

// With sets an environment-layer value.
func (b *ConfigBuilder) With(key, value string) *ConfigBuilder {
	nb := b.clone()
	nb.env[key] = value
	return nb
}

// Without removes a value so the default applies.
func (b *ConfigBuilder) Without(key string) *ConfigBuilder {
	nb := b.clone()
	delete(nb.env, key)
	return nb
}

// Build resolves and validates the configuration, failing the test on error.
func (b *ConfigBuilder) Build(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Resolve(config.Defaults(), b.env, nil)
	if err != nil {
		t.Fatalf("resolve test config: %v", err)
	}
	return cfg
}

// BuildUnvalidated decodes without validation, for tests of invalid input.
func (b *ConfigBuilder) BuildUnvalidated(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Decode(config.Defaults(), b.env, nil)
	if err != nil {
		t.Fatalf("decode test config: %v", err)
	}
	return cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{env: maps.Clone(b.env)}
}
