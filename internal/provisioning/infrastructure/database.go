package infrastructure

import (
	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/util/naming"
)

// azureServicesRule admits connections from Azure services, which is how
// the container app reaches the server.
var azureServicesRule = azure.FirewallRuleSpec{
	Name:    naming.FirewallRuleAzureServices,
	StartIP: "0.0.0.0",
	EndIP:   "0.0.0.0",
}

// DatabaseServer ensures the PostgreSQL flexible server and its firewall
// rule. The server FQDN is an output.
type DatabaseServer struct{}

func (h *DatabaseServer) Kind() provisioning.Kind { return provisioning.KindDatabaseServer }

func (h *DatabaseServer) ResourceName(ctx *provisioning.Context) string {
	return ctx.Config.DatabaseServer
}

func (h *DatabaseServer) Exists(ctx *provisioning.Context) (bool, error) {
	srv, err := ctx.Cloud.GetDatabaseServer(ctx, ctx.Config.ResourceGroup, ctx.Config.DatabaseServer)
	return srv != nil, err
}

func (h *DatabaseServer) Create(ctx *provisioning.Context) error {
	cfg := ctx.Config
	_, err := ctx.Cloud.CreateDatabaseServer(ctx, azure.DatabaseServerSpec{
		ResourceGroup: cfg.ResourceGroup,
		Name:          cfg.DatabaseServer,
		Location:      cfg.Location,
		AdminLogin:    cfg.DatabaseUser,
		AdminPassword: cfg.DatabasePassword,
		SKU:           cfg.DatabaseSKU,
		Version:       cfg.DatabaseVersion,
		StorageSizeGB: int32(cfg.DatabaseStorageGB),
		Tags:          resourceTags(ctx, h.Kind()),
	})
	return err
}

// ResolveOutputs records the FQDN and ensures the firewall rule, check
// first, on new and reused servers alike.
func (h *DatabaseServer) ResolveOutputs(ctx *provisioning.Context) error {
	rg, name := ctx.Config.ResourceGroup, ctx.Config.DatabaseServer

	srv, err := ctx.Cloud.GetDatabaseServer(ctx, rg, name)
	if err != nil {
		return err
	}
	ctx.State.DatabaseFQDN = naming.DatabaseServerFQDN(name)
	if srv != nil && srv.FQDN != "" {
		ctx.State.DatabaseFQDN = srv.FQDN
	}

	exists, err := ctx.Cloud.FirewallRuleExists(ctx, rg, name, azureServicesRule.Name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	ctx.Observer.Printf("Creating firewall rule %s on %s", azureServicesRule.Name, name)
	return ctx.Cloud.CreateFirewallRule(ctx, rg, name, azureServicesRule)
}

// Delete requests deletion of the server, its databases and rules
// without waiting for completion.
func (h *DatabaseServer) Delete(ctx *provisioning.Context) error {
	return ctx.Cloud.BeginDeleteDatabaseServer(ctx, ctx.Config.ResourceGroup, ctx.Config.DatabaseServer)
}

// Database ensures the application database on the server. It is removed
// together with the server and has no delete of its own.
type Database struct{}

func (h *Database) Kind() provisioning.Kind { return provisioning.KindDatabase }

func (h *Database) ResourceName(ctx *provisioning.Context) string {
	return ctx.Config.DatabaseName
}

func (h *Database) Exists(ctx *provisioning.Context) (bool, error) {
	return ctx.Cloud.DatabaseExists(ctx, ctx.Config.ResourceGroup, ctx.Config.DatabaseServer, ctx.Config.DatabaseName)
}

func (h *Database) Create(ctx *provisioning.Context) error {
	return ctx.Cloud.CreateDatabase(ctx, ctx.Config.ResourceGroup, ctx.Config.DatabaseServer, ctx.Config.DatabaseName)
}
