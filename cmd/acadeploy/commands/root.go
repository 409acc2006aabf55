// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the acadeploy CLI.
//
// Usage is printed for argument and flag errors only. Once a command runs,
// its errors are reported by main, which maps them to exit codes.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acadeploy",
		Short: "Deploy an application to Azure Container Apps with PostgreSQL",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Teardown())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
