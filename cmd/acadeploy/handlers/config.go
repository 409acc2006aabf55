// Package handlers implements the business logic behind the CLI commands.
//
// Collaborators are created through package-level factory variables so
// tests can swap in fakes without touching Azure or a Docker daemon.
package handlers

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/deployerr"
	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/platform/docker"
	"github.com/imamik/acadeploy/internal/provisioning"
)

// Factory function variables - can be replaced in tests.
var (
	// environ returns the process environment.
	environ = os.Environ

	// newCloudClient creates the Azure client for a subscription.
	newCloudClient = func(subscriptionID string) (azure.CloudManager, error) {
		cred, err := azure.NewDefaultCredential()
		if err != nil {
			return nil, err
		}
		return azure.NewRealClient(subscriptionID, cred)
	}

	// newImageStore connects to the local Docker daemon. Build and push
	// progress is written to out.
	newImageStore = func(out io.Writer) (docker.ImageStore, error) {
		return docker.NewClient(docker.WithOutput(out))
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// environmentLayer merges the process environment with the env file named
// by the explicit values or the environment.
func environmentLayer(explicit map[string]string) (map[string]string, error) {
	env := config.EnvironmentLayer(environ(), nil)

	path := explicit[config.EnvEnvFile]
	if path == "" {
		path = env[config.EnvEnvFile]
	}
	if path == "" {
		return env, nil
	}

	file, err := config.LoadEnvFile(path)
	if err != nil {
		return nil, &deployerr.ConfigError{Field: config.EnvEnvFile, Reason: "cannot be read", Err: err}
	}
	return config.EnvironmentLayer(environ(), file), nil
}

// resolveConfig resolves and validates the deploy configuration.
func resolveConfig(explicit map[string]string) (*config.Config, error) {
	env, err := environmentLayer(explicit)
	if err != nil {
		return nil, err
	}
	return config.Resolve(config.Defaults(), env, explicit)
}

// decodeConfig resolves the configuration without deploy-time validation.
func decodeConfig(explicit map[string]string) (*config.Config, error) {
	env, err := environmentLayer(explicit)
	if err != nil {
		return nil, err
	}
	return config.Decode(config.Defaults(), env, explicit)
}

func requireSubscription(cfg *config.Config) error {
	if cfg.SubscriptionID == "" {
		return &deployerr.ConfigError{Field: config.EnvSubscriptionID, Reason: "must not be empty"}
	}
	return nil
}

// newRunContext wires the observer and metrics into a provisioning context.
func newRunContext(ctx context.Context, cfg *config.Config, cloud azure.CloudManager, logger *logrus.Logger) *provisioning.Context {
	pCtx := newProvisioningContext(ctx, cfg, cloud)
	pCtx.Observer = provisioning.NewLogObserver(logger).WithFields(map[string]string{"app": cfg.AppName})
	pCtx.Metrics = provisioning.NewMetrics()
	return pCtx
}

// closeStore releases the daemon connection if the store holds one.
func closeStore(store docker.ImageStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}
