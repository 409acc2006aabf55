package config

import (
	"github.com/imamik/acadeploy/internal/util/naming"
)

// Source identifies which layer a resolved value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceEnv      Source = "env"
	SourceExplicit Source = "explicit"
)

// Config is the resolved configuration of one run. It is built once by
// Resolve or Decode and not mutated afterwards.
type Config struct {
	SubscriptionID string `mapstructure:"azure_subscription_id"`
	ResourceGroup  string `mapstructure:"resource_group"`
	Location       string `mapstructure:"location"`

	EnvironmentName string `mapstructure:"environment_name"`
	WorkspaceName   string `mapstructure:"workspace_name"`

	AppName     string  `mapstructure:"app_name"`
	Image       string  `mapstructure:"image"`
	TargetPort  int     `mapstructure:"target_port"`
	CPU         float64 `mapstructure:"cpu"`
	Memory      string  `mapstructure:"memory"`
	MinReplicas int     `mapstructure:"min_replicas"`
	MaxReplicas int     `mapstructure:"max_replicas"`

	DatabaseServer    string `mapstructure:"db_server"`
	DatabaseName      string `mapstructure:"db_name"`
	DatabaseUser      string `mapstructure:"db_user"`
	DatabasePassword  string `mapstructure:"db_password"`
	DatabaseSKU       string `mapstructure:"db_sku"`
	DatabaseVersion   string `mapstructure:"db_version"`
	DatabaseStorageGB int    `mapstructure:"db_storage_gb"`

	EncryptionKey string `mapstructure:"encryption_key"`
	// EncryptionKeyGenerated is set when the key was generated for this run
	// instead of being supplied. A generated key must never replace the key
	// of an existing app.
	EncryptionKeyGenerated bool `mapstructure:"-"`

	AuthEnabled  bool   `mapstructure:"auth_enabled"`
	AuthUsername string `mapstructure:"auth_username"`
	AuthPassword string `mapstructure:"auth_password"`

	AllowLocalBuild  bool   `mapstructure:"allow_local_build"`
	SourceDir        string `mapstructure:"source_dir"`
	BuildCommand     string `mapstructure:"build_command"`
	Dockerfile       string `mapstructure:"dockerfile"`
	BuildOutputDir   string `mapstructure:"build_output_dir"`
	RegistryPattern  string `mapstructure:"registry_pattern"`
	RegistryUsername string `mapstructure:"registry_username"`
	RegistryPassword string `mapstructure:"registry_password"`

	Rollback bool `mapstructure:"rollback"`

	EnvFile     string `mapstructure:"acadeploy_env_file"`
	LogLevel    string `mapstructure:"log_level"`
	ReportFile  string `mapstructure:"report_file"`
	MetricsFile string `mapstructure:"metrics_file"`

	AssumeYes           bool `mapstructure:"assume_yes"`
	DeleteResourceGroup bool `mapstructure:"delete_resource_group"`
	PurgeLocal          bool `mapstructure:"purge_local"`

	values  map[string]string
	sources map[string]Source
}

// applyDerived fills names whose defaults depend on other values.
func (c *Config) applyDerived() {
	if c.WorkspaceName == "" {
		c.WorkspaceName = naming.Workspace(c.EnvironmentName)
	}
	if c.DatabaseServer == "" {
		c.DatabaseServer = naming.DatabaseServer(c.AppName)
	}
}

// WithGeneratedEncryptionKey returns a copy of c carrying a key generated
// for this run.
func (c *Config) WithGeneratedEncryptionKey(key string) *Config {
	out := *c
	out.EncryptionKey = key
	out.EncryptionKeyGenerated = true
	out.values = copyMap(c.values)
	out.values[EnvEncryptionKey] = key
	return &out
}

// SourceOf reports which layer supplied the value of an environment key.
func (c *Config) SourceOf(env string) Source {
	if s, ok := c.sources[env]; ok {
		return s
	}
	return SourceDefault
}

// Redacted returns every resolved value keyed by environment variable name
// with secrets masked.
func (c *Config) Redacted() map[string]string {
	out := make(map[string]string, len(c.values))
	for _, k := range Keys {
		v, ok := c.values[k.Env]
		if !ok {
			continue
		}
		if k.Secret && v != "" {
			v = "********"
		}
		out[k.Env] = v
	}
	out["WORKSPACE_NAME"] = c.WorkspaceName
	out["DB_SERVER"] = c.DatabaseServer
	return out
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
