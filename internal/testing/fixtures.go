package testing

import (
	"context"
	"testing"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/provisioning"
)

// DeployFixture bundles an in-memory cloud with a fresh provisioning
// context per run.
type DeployFixture struct {
	Cloud    *azure.FakeCloud
	Observer *RecordingObserver
	Metrics  *provisioning.Metrics
	Config   *config.Config

	t *testing.T
}

// NewDeployFixture creates a fixture over an empty fake subscription.
func NewDeployFixture(t *testing.T, cfg *config.Config) *DeployFixture {
	t.Helper()
	return &DeployFixture{
		Cloud:  azure.NewFakeCloud(),
		Config: cfg,
		t:      t,
	}
}

// NewContext returns a provisioning context for one run. Observer and
// Metrics are replaced on every call.
func (f *DeployFixture) NewContext() *provisioning.Context {
	f.t.Helper()
	f.Observer = NewRecordingObserver()
	f.Metrics = provisioning.NewMetrics()

	ctx := provisioning.NewContext(TestContext(f.t), f.Config, f.Cloud)
	ctx.Observer = f.Observer
	ctx.Metrics = f.Metrics
	return ctx
}

// Deploy runs the sequencer over handlers through Execute on a fresh
// context and returns that context with the outcome.
func (f *DeployFixture) Deploy(handlers ...provisioning.Handler) (*provisioning.Context, provisioning.Outcome, error) {
	f.t.Helper()
	ctx := f.NewContext()
	outcome, err := provisioning.Execute(ctx, []provisioning.Phase{provisioning.NewSequencer(handlers...)})
	return ctx, outcome, err
}

// SeedResourceGroup makes the resource group exist before any run.
func (f *DeployFixture) SeedResourceGroup(name string) {
	f.t.Helper()
	if err := f.Cloud.CreateResourceGroup(context.Background(), name, f.Config.Location, nil); err != nil {
		f.t.Fatalf("seed resource group: %v", err)
	}
	f.Cloud.ResetCalls()
}
