package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/operationalinsights/armoperationalinsights"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresqlflexibleservers/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/imamik/acadeploy/internal/config"
)

// RealClient implements CloudManager using the Azure Resource Manager SDK.
type RealClient struct {
	groups        *armresources.ResourceGroupsClient
	workspaces    *armoperationalinsights.WorkspacesClient
	sharedKeys    *armoperationalinsights.SharedKeysClient
	environments  *armappcontainers.ManagedEnvironmentsClient
	apps          *armappcontainers.ContainerAppsClient
	servers       *armpostgresqlflexibleservers.ServersClient
	firewallRules *armpostgresqlflexibleservers.FirewallRulesClient
	databases     *armpostgresqlflexibleservers.DatabasesClient

	timeouts      *config.Timeouts
	clientOptions *arm.ClientOptions
}

var _ CloudManager = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithClientOptions sets ARM client options such as a custom transport
// or cloud (useful for testing and sovereign clouds).
func WithClientOptions(o *arm.ClientOptions) ClientOption {
	return func(c *RealClient) {
		c.clientOptions = o
	}
}

// NewDefaultCredential returns the credential chain used by the Azure CLI
// and SDKs: environment, workload identity, managed identity, az login.
func NewDefaultCredential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return cred, nil
}

// NewRealClient creates a RealClient for one subscription.
func NewRealClient(subscriptionID string, cred azcore.TokenCredential, opts ...ClientOption) (*RealClient, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required")
	}

	c := &RealClient{
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.groups, err = armresources.NewResourceGroupsClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	if c.workspaces, err = armoperationalinsights.NewWorkspacesClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create workspaces client: %w", err)
	}
	if c.sharedKeys, err = armoperationalinsights.NewSharedKeysClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create shared keys client: %w", err)
	}
	if c.environments, err = armappcontainers.NewManagedEnvironmentsClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create managed environments client: %w", err)
	}
	if c.apps, err = armappcontainers.NewContainerAppsClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create container apps client: %w", err)
	}
	if c.servers, err = armpostgresqlflexibleservers.NewServersClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create flexible servers client: %w", err)
	}
	if c.firewallRules, err = armpostgresqlflexibleservers.NewFirewallRulesClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create firewall rules client: %w", err)
	}
	if c.databases, err = armpostgresqlflexibleservers.NewDatabasesClient(subscriptionID, cred, c.clientOptions); err != nil {
		return nil, fmt.Errorf("failed to create databases client: %w", err)
	}

	return c, nil
}
