package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresqlflexibleservers/v4"
)

const (
	databaseCharset   = "UTF8"
	databaseCollation = "en_US.utf8"
)

// GetDatabaseServer returns the flexible server, or nil if it does not exist.
func (c *RealClient) GetDatabaseServer(ctx context.Context, resourceGroup, name string) (*DatabaseServer, error) {
	resp, err := (&GetOperation[armpostgresqlflexibleservers.ServersClientGetResponse]{
		ResourceType: "database server",
		Name:         name,
		Get: func(ctx context.Context) (armpostgresqlflexibleservers.ServersClientGetResponse, error) {
			return c.servers.Get(ctx, resourceGroup, name, nil)
		},
	}).Execute(ctx, c.timeouts.Read)
	if err != nil || resp == nil {
		return nil, err
	}
	return serverFromSDK(&resp.Server), nil
}

// CreateDatabaseServer creates a burstable flexible server and waits for it.
func (c *RealClient) CreateDatabaseServer(ctx context.Context, spec DatabaseServerSpec) (*DatabaseServer, error) {
	resp, err := (&LongRunningOperation[armpostgresqlflexibleservers.ServersClientCreateResponse]{
		ResourceType: "database server",
		Name:         spec.Name,
		Action:       "create",
		Begin: func(ctx context.Context) (*runtime.Poller[armpostgresqlflexibleservers.ServersClientCreateResponse], error) {
			return c.servers.BeginCreate(ctx, spec.ResourceGroup, spec.Name, armpostgresqlflexibleservers.Server{
				Location: to.Ptr(spec.Location),
				Tags:     toTags(spec.Tags),
				SKU: &armpostgresqlflexibleservers.SKU{
					Name: to.Ptr(spec.SKU),
					Tier: to.Ptr(armpostgresqlflexibleservers.SKUTierBurstable),
				},
				Properties: &armpostgresqlflexibleservers.ServerProperties{
					AdministratorLogin:         to.Ptr(spec.AdminLogin),
					AdministratorLoginPassword: to.Ptr(spec.AdminPassword),
					Version:                    to.Ptr(armpostgresqlflexibleservers.ServerVersion(spec.Version)),
					Storage: &armpostgresqlflexibleservers.Storage{
						StorageSizeGB: to.Ptr(spec.StorageSizeGB),
					},
				},
			}, nil)
		},
	}).Execute(ctx, c.timeouts.Create)
	if err != nil {
		return nil, err
	}
	return serverFromSDK(&resp.Server), nil
}

// BeginDeleteDatabaseServer requests deletion of the server and its
// databases without waiting for completion.
func (c *RealClient) BeginDeleteDatabaseServer(ctx context.Context, resourceGroup, name string) error {
	return beginDelete(ctx, c.timeouts.Delete, "database server", name,
		func(ctx context.Context) (*runtime.Poller[armpostgresqlflexibleservers.ServersClientDeleteResponse], error) {
			return c.servers.BeginDelete(ctx, resourceGroup, name, nil)
		})
}

// FirewallRuleExists reports whether the server has the named firewall rule.
func (c *RealClient) FirewallRuleExists(ctx context.Context, resourceGroup, server, name string) (bool, error) {
	resp, err := (&GetOperation[armpostgresqlflexibleservers.FirewallRulesClientGetResponse]{
		ResourceType: "firewall rule",
		Name:         name,
		Get: func(ctx context.Context) (armpostgresqlflexibleservers.FirewallRulesClientGetResponse, error) {
			return c.firewallRules.Get(ctx, resourceGroup, server, name, nil)
		},
	}).Execute(ctx, c.timeouts.Read)
	if err != nil {
		return false, err
	}
	return resp != nil, nil
}

// CreateFirewallRule creates a firewall rule on the server and waits for it.
func (c *RealClient) CreateFirewallRule(ctx context.Context, resourceGroup, server string, rule FirewallRuleSpec) error {
	_, err := (&LongRunningOperation[armpostgresqlflexibleservers.FirewallRulesClientCreateOrUpdateResponse]{
		ResourceType: "firewall rule",
		Name:         rule.Name,
		Action:       "create",
		Begin: func(ctx context.Context) (*runtime.Poller[armpostgresqlflexibleservers.FirewallRulesClientCreateOrUpdateResponse], error) {
			return c.firewallRules.BeginCreateOrUpdate(ctx, resourceGroup, server, rule.Name, armpostgresqlflexibleservers.FirewallRule{
				Properties: &armpostgresqlflexibleservers.FirewallRuleProperties{
					StartIPAddress: to.Ptr(rule.StartIP),
					EndIPAddress:   to.Ptr(rule.EndIP),
				},
			}, nil)
		},
	}).Execute(ctx, c.timeouts.Create)
	return err
}

// DatabaseExists reports whether the server hosts the named database.
func (c *RealClient) DatabaseExists(ctx context.Context, resourceGroup, server, name string) (bool, error) {
	resp, err := (&GetOperation[armpostgresqlflexibleservers.DatabasesClientGetResponse]{
		ResourceType: "database",
		Name:         name,
		Get: func(ctx context.Context) (armpostgresqlflexibleservers.DatabasesClientGetResponse, error) {
			return c.databases.Get(ctx, resourceGroup, server, name, nil)
		},
	}).Execute(ctx, c.timeouts.Read)
	if err != nil {
		return false, err
	}
	return resp != nil, nil
}

// CreateDatabase creates a UTF-8 database on the server and waits for it.
func (c *RealClient) CreateDatabase(ctx context.Context, resourceGroup, server, name string) error {
	_, err := (&LongRunningOperation[armpostgresqlflexibleservers.DatabasesClientCreateResponse]{
		ResourceType: "database",
		Name:         name,
		Action:       "create",
		Begin: func(ctx context.Context) (*runtime.Poller[armpostgresqlflexibleservers.DatabasesClientCreateResponse], error) {
			return c.databases.BeginCreate(ctx, resourceGroup, server, name, armpostgresqlflexibleservers.Database{
				Properties: &armpostgresqlflexibleservers.DatabaseProperties{
					Charset:   to.Ptr(databaseCharset),
					Collation: to.Ptr(databaseCollation),
				},
			}, nil)
		},
	}).Execute(ctx, c.timeouts.Create)
	return err
}

func serverFromSDK(s *armpostgresqlflexibleservers.Server) *DatabaseServer {
	out := &DatabaseServer{
		ID:   deref(s.ID),
		Name: deref(s.Name),
	}
	if s.Properties != nil {
		out.FQDN = deref(s.Properties.FullyQualifiedDomainName)
	}
	return out
}
