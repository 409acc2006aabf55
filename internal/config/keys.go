package config

import "strings"

// ValueType is the type a configuration key decodes into.
type ValueType int

const (
	TypeString ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
)

// Scope selects which commands expose a key as a flag.
type Scope uint8

const (
	ScopeDeploy Scope = 1 << iota
	ScopeTeardown

	ScopeAll = ScopeDeploy | ScopeTeardown
)

// Key describes one configuration value: its environment variable, its
// long and short flag, its default and how it decodes.
type Key struct {
	Env     string
	Flag    string
	Short   string
	Type    ValueType
	Default string
	Usage   string
	Scope   Scope
	Secret  bool
}

// ID is the lower-case key used inside the resolver.
func (k Key) ID() string {
	return strings.ToLower(k.Env)
}

// Environment variable names referenced outside the resolver.
const (
	EnvSubscriptionID   = "AZURE_SUBSCRIPTION_ID"
	EnvResourceGroup    = "RESOURCE_GROUP"
	EnvDatabasePassword = "DB_PASSWORD"
	EnvEncryptionKey    = "ENCRYPTION_KEY"
	EnvAuthPassword     = "AUTH_PASSWORD"
	EnvEnvFile          = "ACADEPLOY_ENV_FILE"
)

// Keys lists every configuration key in flag display order.
var Keys = []Key{
	{Env: EnvSubscriptionID, Flag: "subscription", Short: "S", Usage: "Azure subscription ID", Scope: ScopeAll},
	{Env: EnvResourceGroup, Flag: "resource-group", Short: "g", Default: "acadeploy-rg", Usage: "Resource group holding every deployed resource", Scope: ScopeAll},
	{Env: "LOCATION", Flag: "location", Short: "l", Default: "westeurope", Usage: "Azure region", Scope: ScopeDeploy},
	{Env: "ENVIRONMENT_NAME", Flag: "environment", Short: "e", Default: "acadeploy-env", Usage: "Container Apps managed environment name", Scope: ScopeAll},
	{Env: "WORKSPACE_NAME", Flag: "workspace", Short: "w", Usage: "Log Analytics workspace name (default <environment>-logs)", Scope: ScopeAll},
	{Env: "APP_NAME", Flag: "app-name", Short: "a", Default: "acadeploy-app", Usage: "Container app name", Scope: ScopeAll},
	{Env: "IMAGE", Flag: "image", Short: "i", Default: "acadeploy-app:latest", Usage: "Container image reference", Scope: ScopeAll},
	{Env: "TARGET_PORT", Flag: "target-port", Short: "t", Type: TypeInt, Default: "8080", Usage: "Port the container listens on", Scope: ScopeDeploy},
	{Env: "CPU", Flag: "cpu", Short: "c", Type: TypeFloat, Default: "0.5", Usage: "vCPU allocated to the container", Scope: ScopeDeploy},
	{Env: "MEMORY", Flag: "memory", Short: "m", Default: "1.0Gi", Usage: "Memory allocated to the container", Scope: ScopeDeploy},
	{Env: "MIN_REPLICAS", Flag: "min-replicas", Short: "r", Type: TypeInt, Default: "0", Usage: "Minimum replica count", Scope: ScopeDeploy},
	{Env: "MAX_REPLICAS", Flag: "max-replicas", Short: "x", Type: TypeInt, Default: "1", Usage: "Maximum replica count", Scope: ScopeDeploy},
	{Env: "DB_SERVER", Flag: "db-server", Short: "s", Usage: "PostgreSQL flexible server name (default <app-name>-pg)", Scope: ScopeAll},
	{Env: "DB_NAME", Flag: "db-name", Short: "d", Default: "app", Usage: "Database name", Scope: ScopeDeploy},
	{Env: "DB_USER", Flag: "db-user", Short: "u", Default: "appadmin", Usage: "Database administrator login", Scope: ScopeDeploy},
	{Env: EnvDatabasePassword, Flag: "db-password", Short: "p", Usage: "Database administrator password (required)", Scope: ScopeDeploy, Secret: true},
	{Env: "DB_SKU", Flag: "db-sku", Short: "k", Default: "Standard_B1ms", Usage: "PostgreSQL compute SKU", Scope: ScopeDeploy},
	{Env: "DB_VERSION", Flag: "db-version", Short: "V", Default: "16", Usage: "PostgreSQL major version", Scope: ScopeDeploy},
	{Env: "DB_STORAGE_GB", Flag: "db-storage", Short: "z", Type: TypeInt, Default: "32", Usage: "PostgreSQL storage size in GiB", Scope: ScopeDeploy},
	{Env: EnvEncryptionKey, Flag: "encryption-key", Short: "K", Usage: "Application encryption key (generated on first deploy when empty)", Scope: ScopeDeploy, Secret: true},
	{Env: "AUTH_ENABLED", Flag: "auth", Short: "A", Type: TypeBool, Default: "false", Usage: "Enable application authentication", Scope: ScopeDeploy},
	{Env: "AUTH_USERNAME", Flag: "auth-username", Short: "U", Default: "admin", Usage: "Application username", Scope: ScopeDeploy},
	{Env: EnvAuthPassword, Flag: "auth-password", Short: "P", Usage: "Application password (required with --auth)", Scope: ScopeDeploy, Secret: true},
	{Env: "ALLOW_LOCAL_BUILD", Flag: "allow-local-build", Short: "b", Type: TypeBool, Default: "true", Usage: "Build the image locally when it is missing", Scope: ScopeDeploy},
	{Env: "SOURCE_DIR", Flag: "source-dir", Short: "D", Default: ".", Usage: "Application source directory and docker build context", Scope: ScopeAll},
	{Env: "BUILD_COMMAND", Flag: "build-command", Short: "B", Default: "make build", Usage: "Command that compiles the application", Scope: ScopeDeploy},
	{Env: "DOCKERFILE", Flag: "dockerfile", Short: "F", Default: "Dockerfile", Usage: "Dockerfile path relative to the source directory", Scope: ScopeDeploy},
	{Env: "BUILD_OUTPUT_DIR", Flag: "build-output", Short: "O", Default: "build", Usage: "Build output directory relative to the source directory", Scope: ScopeAll},
	{Env: "REGISTRY_PATTERN", Flag: "registry-pattern", Short: "R", Default: "*.azurecr.io", Usage: "Registry hosts images are pushed to after a local build", Scope: ScopeAll},
	{Env: "REGISTRY_USERNAME", Flag: "registry-username", Short: "n", Usage: "Username the container app pulls the image with", Scope: ScopeDeploy},
	{Env: "REGISTRY_PASSWORD", Flag: "registry-password", Short: "W", Usage: "Password the container app pulls the image with", Scope: ScopeDeploy, Secret: true},
	{Env: "ROLLBACK", Flag: "rollback", Short: "o", Type: TypeBool, Default: "true", Usage: "Delete a freshly created resource group when provisioning fails", Scope: ScopeDeploy},
	{Env: EnvEnvFile, Flag: "env-file", Short: "f", Usage: "key=value file overriding the process environment", Scope: ScopeAll},
	{Env: "LOG_LEVEL", Flag: "log-level", Short: "L", Default: "info", Usage: "Log level (debug, info, warn, error)", Scope: ScopeAll},
	{Env: "REPORT_FILE", Flag: "report", Short: "j", Usage: "Write a YAML run report to this path", Scope: ScopeAll},
	{Env: "METRICS_FILE", Flag: "metrics-file", Short: "M", Usage: "Write Prometheus run metrics to this path", Scope: ScopeAll},
	{Env: "ASSUME_YES", Flag: "yes", Short: "y", Type: TypeBool, Default: "false", Usage: "Answer yes to every confirmation", Scope: ScopeTeardown},
	{Env: "DELETE_RESOURCE_GROUP", Flag: "delete-group", Short: "G", Type: TypeBool, Default: "false", Usage: "Delete the resource group after its resources", Scope: ScopeTeardown},
	{Env: "PURGE_LOCAL", Flag: "purge", Short: "X", Type: TypeBool, Default: "false", Usage: "Remove the local image, build output and registry image", Scope: ScopeTeardown},
}

// Defaults returns the default value of every key, keyed by environment
// variable name.
func Defaults() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[k.Env] = k.Default
	}
	return out
}

// KeysFor returns the keys exposed by a command scope.
func KeysFor(scope Scope) []Key {
	var out []Key
	for _, k := range Keys {
		if k.Scope&scope != 0 {
			out = append(out, k)
		}
	}
	return out
}

// LookupFlag returns the key bound to a long flag name.
func LookupFlag(flag string) (Key, bool) {
	for _, k := range Keys {
		if k.Flag == flag {
			return k, true
		}
	}
	return Key{}, false
}

func lookupID(id string) (Key, bool) {
	for _, k := range Keys {
		if k.ID() == id {
			return k, true
		}
	}
	return Key{}, false
}
