package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/acadeploy/cmd/acadeploy/handlers"
	"github.com/imamik/acadeploy/internal/config"
)

// Teardown returns the teardown command.
//
// The teardown command deletes the deployment in reverse creation order.
// Missing resources are skipped and a failed delete does not stop the
// remaining ones.
func Teardown() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teardown",
		Aliases: []string{"down"},
		Short:   "Delete the deployment",
		Long: `Teardown deletes the deployment in reverse creation order:
  - Container app
  - Managed environment (kept while other apps still run in it)
  - PostgreSQL flexible server and its databases
  - Log Analytics workspace
  - Resource group (only with --delete-group)

With --purge the local image, the build output directory and the image in
the registry are removed as well.

Deleting the resource group and each purge step ask for confirmation.
Without a terminal every confirmation is answered no unless --yes is set.

Example:
  acadeploy teardown -g my-rg -a my-app --delete-group --yes

WARNING: This operation is irreversible. All application data will be lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Teardown(cmd.Context(), explicitValues(cmd))
		},
	}

	bindConfigFlags(cmd, config.ScopeTeardown)

	return cmd
}
