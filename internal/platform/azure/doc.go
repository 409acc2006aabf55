// Package azure provides a wrapper around the Azure Resource Manager SDK
// clients for the resources one deployment consists of.
//
// # Architecture
//
// The package is organized into domain-specific modules:
//
//   - client.go: Manager interfaces and the SDK-independent resource types
//   - real_client.go: Client initialization over azidentity credentials
//   - operations.go: Generic helpers for existence checks and long-running operations
//   - resource_group.go: Resource groups
//   - workspace.go: Log Analytics workspaces and their shared keys
//   - environment.go: Container Apps managed environments
//   - database.go: PostgreSQL flexible servers, firewall rules and databases
//   - container_app.go: Container apps
//   - errors.go: Error classification over azcore.ResponseError
//   - fake.go: In-memory CloudManager used by tests
//
// # Semantics
//
// Get methods return (nil, nil) when the resource does not exist, so
// callers can tell absence from failure. Create and update calls wait for
// the long-running operation to finish. Methods prefixed with Begin start
// a delete and return once Azure has accepted it, without waiting.
//
// No call is retried. Every call is bounded by the configured timeouts:
//
//   - ACADEPLOY_TIMEOUT_CREATE: create calls (default: 30m)
//   - ACADEPLOY_TIMEOUT_UPDATE: app updates (default: 15m)
//   - ACADEPLOY_TIMEOUT_DELETE: awaited deletes (default: 15m)
//   - ACADEPLOY_TIMEOUT_READ: reads (default: 1m)
package azure
