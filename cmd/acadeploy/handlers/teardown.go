package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/destroy"
	"github.com/imamik/acadeploy/internal/provisioning/image"
)

// Teardown handles the teardown command.
//
// Every step is attempted. Failed deletes are logged and listed in the
// summary but do not fail the command; only errors that prevent the walk
// from starting do.
func Teardown(ctx context.Context, explicit map[string]string) error {
	cfg, err := decodeConfig(explicit)
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

	pCtx := newRunContext(ctx, cfg, cloud, logger)
	confirm := newConfirmer(cfg.AssumeYes)

	destroyer := destroy.NewProvisioner(destroy.Options{
		DeleteResourceGroup: cfg.DeleteResourceGroup,
		Confirmer:           confirm,
	})
	if err := provisioning.RunPhases(pCtx, []provisioning.Phase{destroyer}); err != nil {
		return fmt.Errorf("teardown failed: %w", err)
	}
	report := destroyer.Report()

	if cfg.PurgeLocal {
		store, err := newImageStore(stderr)
		if err != nil {
			report.Fail(image.ArtifactLocalImage, cfg.Image, err)
		} else {
			image.NewPurger(store, confirm).Purge(pCtx, report)
			closeStore(store)
		}
	}

	if err := pCtx.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warnf("Run metrics not written: %v", err)
	}

	for _, stepErr := range report.Errors {
		logger.Warn(stepErr)
	}
	fmt.Fprint(stdout, renderTeardownSummary(cfg, report))
	return nil
}
