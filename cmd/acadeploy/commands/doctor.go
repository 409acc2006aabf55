package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/acadeploy/cmd/acadeploy/handlers"
	"github.com/imamik/acadeploy/internal/config"
)

// Doctor returns the command that checks the local setup.
func Doctor() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check local tools, Docker and Azure credentials",
		Long: `Doctor checks everything a deploy needs before it starts:
  - Build tool and optional helper tools on PATH
  - Docker daemon reachability
  - Azure credentials and subscription
  - Configuration errors and warnings

Example:
  acadeploy doctor --env-file .env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), explicitValues(cmd))
		},
	}

	bindConfigFlags(cmd, config.ScopeDeploy)

	return cmd
}
