package naming

import "fmt"

// Naming functions for derived resource names.

func Workspace(environment string) string {
	return fmt.Sprintf("%s-logs", environment)
}

func DatabaseServer(app string) string {
	return fmt.Sprintf("%s-pg", app)
}

// DatabaseServerFQDN is the host name Azure assigns to a flexible server.
func DatabaseServerFQDN(server string) string {
	return fmt.Sprintf("%s.postgres.database.azure.com", server)
}

// FirewallRuleAzureServices is the rule admitting traffic from Azure
// services, the 0.0.0.0 range in flexible server terms.
const FirewallRuleAzureServices = "AllowAzureServices"

// Container app secret names. Secret names must be lower-case
// alphanumerics and dashes.
const (
	SecretDatabasePassword = "db-password"
	SecretEncryptionKey    = "encryption-key"
	SecretAuthPassword     = "auth-password"
	SecretRegistryPassword = "registry-password"
)

// Environment variables injected into the application container.
const (
	EnvDatabaseHost     = "DATABASE_HOST"
	EnvDatabasePort     = "DATABASE_PORT"
	EnvDatabaseName     = "DATABASE_NAME"
	EnvDatabaseUser     = "DATABASE_USER"
	EnvDatabasePassword = "DATABASE_PASSWORD"
	EnvDatabaseSSLMode  = "DATABASE_SSLMODE"
	EnvEncryptionKey    = "ENCRYPTION_KEY"
	EnvAuthEnabled      = "AUTH_ENABLED"
	EnvAuthUsername     = "AUTH_USERNAME"
	EnvAuthPassword     = "AUTH_PASSWORD"
)

// Endpoint returns the public URL for an ingress FQDN.
func Endpoint(fqdn string) string {
	if fqdn == "" {
		return ""
	}
	return fmt.Sprintf("https://%s", fqdn)
}
