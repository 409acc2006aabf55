package azure

import "context"

// Workspace is a Log Analytics workspace.
type Workspace struct {
	ID         string
	Name       string
	CustomerID string
}

// Environment is a Container Apps managed environment.
type Environment struct {
	ID   string
	Name string
}

// DatabaseServer is a PostgreSQL flexible server.
type DatabaseServer struct {
	ID   string
	Name string
	FQDN string
}

// ContainerApp is a deployed container app.
type ContainerApp struct {
	ID            string
	Name          string
	EnvironmentID string
	Image         string
	FQDN          string
}

// EnvironmentSpec holds the parameters for creating a managed environment.
type EnvironmentSpec struct {
	ResourceGroup       string
	Name                string
	Location            string
	WorkspaceCustomerID string
	WorkspaceSharedKey  string
	Tags                map[string]string
}

// DatabaseServerSpec holds the parameters for creating a flexible server.
type DatabaseServerSpec struct {
	ResourceGroup string
	Name          string
	Location      string
	AdminLogin    string
	AdminPassword string
	SKU           string
	Version       string
	StorageSizeGB int32
	Tags          map[string]string
}

// FirewallRuleSpec is an IPv4 range admitted by a flexible server.
type FirewallRuleSpec struct {
	Name    string
	StartIP string
	EndIP   string
}

// Secret is a container app secret.
type Secret struct {
	Name  string
	Value string
}

// EnvVar is a container environment variable. Exactly one of Value and
// SecretRef is set.
type EnvVar struct {
	Name      string
	Value     string
	SecretRef string
}

// RegistryCredential lets a container app pull from a private registry.
type RegistryCredential struct {
	Server            string
	Username          string
	PasswordSecretRef string
}

// ContainerAppSpec holds the full desired state of a container app. It is
// used for both create and in-place update.
type ContainerAppSpec struct {
	ResourceGroup string
	Name          string
	Location      string
	EnvironmentID string
	Image         string
	CPU           float64
	Memory        string
	MinReplicas   int32
	MaxReplicas   int32
	TargetPort    int32
	Secrets       []Secret
	Env           []EnvVar
	Registry      *RegistryCredential
	Tags          map[string]string
}

// ResourceGroupManager defines the interface for managing resource groups.
type ResourceGroupManager interface {
	ResourceGroupExists(ctx context.Context, name string) (bool, error)
	CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error
	// BeginDeleteResourceGroup requests deletion and returns without
	// waiting for it to finish.
	BeginDeleteResourceGroup(ctx context.Context, name string) error
}

// WorkspaceManager defines the interface for managing Log Analytics workspaces.
type WorkspaceManager interface {
	GetWorkspace(ctx context.Context, resourceGroup, name string) (*Workspace, error)
	CreateWorkspace(ctx context.Context, resourceGroup, name, location string, tags map[string]string) (*Workspace, error)
	GetWorkspaceSharedKey(ctx context.Context, resourceGroup, name string) (string, error)
	DeleteWorkspace(ctx context.Context, resourceGroup, name string) error
}

// EnvironmentManager defines the interface for managing Container Apps environments.
type EnvironmentManager interface {
	GetEnvironment(ctx context.Context, resourceGroup, name string) (*Environment, error)
	CreateEnvironment(ctx context.Context, spec EnvironmentSpec) (*Environment, error)
	DeleteEnvironment(ctx context.Context, resourceGroup, name string) error
	// ListEnvironmentApps returns the names of the apps in the resource
	// group that run in the given environment.
	ListEnvironmentApps(ctx context.Context, resourceGroup, environmentID string) ([]string, error)
}

// DatabaseManager defines the interface for managing PostgreSQL flexible
// servers and what lives inside them.
type DatabaseManager interface {
	GetDatabaseServer(ctx context.Context, resourceGroup, name string) (*DatabaseServer, error)
	CreateDatabaseServer(ctx context.Context, spec DatabaseServerSpec) (*DatabaseServer, error)
	// BeginDeleteDatabaseServer requests deletion and returns without
	// waiting for it to finish.
	BeginDeleteDatabaseServer(ctx context.Context, resourceGroup, name string) error

	FirewallRuleExists(ctx context.Context, resourceGroup, server, name string) (bool, error)
	CreateFirewallRule(ctx context.Context, resourceGroup, server string, rule FirewallRuleSpec) error

	DatabaseExists(ctx context.Context, resourceGroup, server, name string) (bool, error)
	CreateDatabase(ctx context.Context, resourceGroup, server, name string) error
}

// ContainerAppManager defines the interface for managing container apps.
type ContainerAppManager interface {
	GetContainerApp(ctx context.Context, resourceGroup, name string) (*ContainerApp, error)
	CreateContainerApp(ctx context.Context, spec ContainerAppSpec) (*ContainerApp, error)
	UpdateContainerApp(ctx context.Context, spec ContainerAppSpec) (*ContainerApp, error)
	DeleteContainerApp(ctx context.Context, resourceGroup, name string) error
}

// CloudManager is the full set of resource operations a deployment needs.
type CloudManager interface {
	ResourceGroupManager
	WorkspaceManager
	EnvironmentManager
	DatabaseManager
	ContainerAppManager
}
