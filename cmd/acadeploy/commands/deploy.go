package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/acadeploy/cmd/acadeploy/handlers"
	"github.com/imamik/acadeploy/internal/config"
)

// Deploy returns the deploy command.
//
// The deploy command makes sure the image exists, then ensures the
// resource group, log workspace, managed environment, database server,
// database and container app in that order.
func Deploy() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deploy",
		Aliases: []string{"up"},
		Short:   "Provision or update the deployment",
		Long: `Deploy provisions the application on Azure Container Apps.

Resources are ensured in order, each one reused when it already exists:
  - Resource group
  - Log Analytics workspace
  - Container Apps managed environment
  - PostgreSQL flexible server with a firewall rule for Azure services
  - Database
  - Container app (updated in place on every run)

The image is built locally first when it is missing and local builds are
allowed, and pushed when its registry matches --registry-pattern.

Every flag can also be set through its environment variable or an env file
given with --env-file. Flags win over the environment, the environment wins
over built-in defaults.

When a resource fails and the resource group was created by this run, the
group is deleted again unless --rollback=false.

Example:
  acadeploy deploy -g my-rg -a my-app -i myreg.azurecr.io/my-app:1.0 -p "$DB_PASSWORD"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), explicitValues(cmd))
		},
	}

	bindConfigFlags(cmd, config.ScopeDeploy)

	return cmd
}
