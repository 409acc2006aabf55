package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/destroy"
	testfx "github.com/imamik/acadeploy/internal/testing"
)

func TestRenderDeploySummary(t *testing.T) {
	t.Parallel()
	cfg := testfx.NewConfigBuilder().Build(t)

	state := provisioning.NewState()
	state.Track(provisioning.KindResourceGroup, "g1").ExistedBeforeRun = true
	state.Track(provisioning.KindContainerApp, "a1").CreatedByRun = true
	state.AppFQDN = "a1.example.io"

	t.Run("succeeded", func(t *testing.T) {
		t.Parallel()
		out := renderDeploySummary(cfg, state, provisioning.OutcomeSucceeded, nil)
		assert.Contains(t, out, "Deployment succeeded")
		assert.Contains(t, out, "https://a1.example.io")
		assert.Contains(t, out, "created")
		assert.Contains(t, out, "reused")
	})

	t.Run("failed without rollback", func(t *testing.T) {
		t.Parallel()
		out := renderDeploySummary(cfg, state, provisioning.OutcomeFailedWithoutRollback, errors.New("boom\ndetails"))
		assert.Contains(t, out, "manual cleanup may be required")
		assert.Contains(t, out, "boom")
		assert.NotContains(t, out, "details")
		assert.NotContains(t, out, "https://")
	})
}

func TestRenderTeardownSummary(t *testing.T) {
	t.Parallel()
	cfg := testfx.NewConfigBuilder().Build(t)

	report := &destroy.Report{}
	report.Add("container-app", "a1", destroy.StatusDeleted, "")
	report.Add("environment", "e1", destroy.StatusKept, "still hosts container apps: other")
	report.Fail("database-server", "s1", errors.New("locked"))

	out := renderTeardownSummary(cfg, report)
	assert.Contains(t, out, "g1")
	assert.Contains(t, out, "still hosts container apps: other")
	assert.Contains(t, out, "1 failed step(s)")
}

func TestRenderGeneratedKey(t *testing.T) {
	t.Parallel()
	out := renderGeneratedKey("k-123")
	assert.Contains(t, out, "k-123")
	assert.Contains(t, out, "ENCRYPTION_KEY")
}

func TestFirstLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a", firstLine("a\nb"))
	assert.Equal(t, "single", firstLine("single"))
	assert.Empty(t, firstLine(""))
}
