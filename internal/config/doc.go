// Package config resolves the deployment configuration used by every
// acadeploy command.
//
// A [Config] is assembled once per run from three layers, evaluated per
// key: values passed explicitly on the command line win over the
// environment (the process environment overlaid with an optional key=value
// env file), which wins over built-in defaults. The key table in keys.go
// is the single source for environment variable names, flag names,
// one-letter shorthands and defaults.
//
// Resolution is a pure function of its three input maps, so it can be
// exercised without touching the process environment.
package config
