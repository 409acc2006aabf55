package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/deployerr"
	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/image"
	"github.com/imamik/acadeploy/internal/provisioning/infrastructure"
	"github.com/imamik/acadeploy/internal/util/keygen"
)

// Factory function variables for deploy - can be replaced in tests.
var (
	// newCompiler creates the compiler that runs the build command.
	newCompiler = func(out io.Writer) image.Compiler {
		return image.NewExecCompiler(out)
	}

	// generateEncryptionKey creates a key when none was supplied.
	generateEncryptionKey = func() (string, error) {
		return keygen.GenerateToken(keygen.DefaultTokenBytes)
	}
)

// Deploy handles the deploy command.
//
// It resolves and validates the configuration, prepares the image and then
// ensures every resource in order. A failure after the resource group was
// created by this run triggers the rollback.
func Deploy(ctx context.Context, explicit map[string]string) error {
	cfg, err := resolveConfig(explicit)
	if err != nil {
		return err
	}
	if err := requireSubscription(cfg); err != nil {
		return err
	}

	logger := provisioning.NewLogger(stderr, cfg.LogLevel)

	cloud, err := newCloudClient(cfg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	if cfg.EncryptionKey == "" {
		if err := requireKeyForExistingApp(ctx, cloud, cfg); err != nil {
			return err
		}
		key, err := generateEncryptionKey()
		if err != nil {
			return fmt.Errorf("failed to generate encryption key: %w", err)
		}
		cfg = cfg.WithGeneratedEncryptionKey(key)
		fmt.Fprint(stdout, renderGeneratedKey(key))
	}

	store, err := newImageStore(stderr)
	if err != nil {
		return fmt.Errorf("failed to connect to Docker: %w", err)
	}
	defer closeStore(store)

	pCtx := newRunContext(ctx, cfg, cloud, logger)

	logger.Infof("Deploying %s to resource group %s", cfg.AppName, cfg.ResourceGroup)
	outcome, runErr := provisioning.Execute(pCtx, []provisioning.Phase{
		provisioning.NewValidationPhase(),
		image.NewPreparer(store, newCompiler(stderr)),
		provisioning.NewSequencer(infrastructure.Deployment()...),
	})

	if cfg.ReportFile != "" {
		if err := provisioning.WriteReport(cfg.ReportFile, provisioning.NewReport(pCtx, outcome, runErr)); err != nil {
			logger.Warnf("Run report not written: %v", err)
		}
	}
	if err := pCtx.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warnf("Run metrics not written: %v", err)
	}

	fmt.Fprint(stdout, renderDeploySummary(cfg, pCtx.State, outcome, runErr))
	return runErr
}

// requireKeyForExistingApp fails when the app is already deployed, since a
// new key cannot read the data written under the old one.
func requireKeyForExistingApp(ctx context.Context, cloud azure.CloudManager, cfg *config.Config) error {
	exists, err := cloud.ResourceGroupExists(ctx, cfg.ResourceGroup)
	if err != nil {
		return fmt.Errorf("failed to check resource group %s: %w", cfg.ResourceGroup, err)
	}
	if !exists {
		return nil
	}
	app, err := cloud.GetContainerApp(ctx, cfg.ResourceGroup, cfg.AppName)
	if err != nil {
		return fmt.Errorf("failed to check container app %s: %w", cfg.AppName, err)
	}
	if app != nil {
		return &deployerr.ConfigError{
			Field:  config.EnvEncryptionKey,
			Reason: "must be supplied to redeploy an existing app",
			Err:    infrastructure.ErrEncryptionKeyRequired,
		}
	}
	return nil
}
