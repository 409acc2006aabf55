// Package main is the entry point for the acadeploy CLI.
//
// acadeploy provisions a containerized application on Azure Container
// Apps together with its PostgreSQL flexible server, and tears the
// deployment down again. Every run is idempotent: existing resources are
// reused, the app is updated in place.
//
// Commands: deploy, teardown, doctor, version, completion.
//
// For detailed usage information, run:
//
//	acadeploy --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/acadeploy/cmd/acadeploy/commands"
	"github.com/imamik/acadeploy/internal/deployerr"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(deployerr.ExitCode(err))
	}
}
