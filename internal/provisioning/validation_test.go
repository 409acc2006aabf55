package provisioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acadeploy/internal/deployerr"
	"github.com/imamik/acadeploy/internal/platform/azure"
)

func TestValidationPhase_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "validation", NewValidationPhase().Name())
}

func TestValidationPhase_LogsWarnings(t *testing.T) {
	t.Parallel()
	ctx, observer := newTestContext(t, testConfig(t, nil), azure.NewFakeCloud())

	require.NoError(t, NewValidationPhase().Provision(ctx))

	// DB_PASSWORD "x" is accepted with a warning.
	require.True(t, observer.has(EventValidationWarning))
	assert.False(t, observer.has(EventValidationError))
}

func TestValidationPhase_FailsWithConfigError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]string
		field     string
	}{
		{"empty database password", map[string]string{"DB_PASSWORD": ""}, "DB_PASSWORD"},
		{"auth without password", map[string]string{"AUTH_ENABLED": "true"}, "AUTH_PASSWORD"},
		{"zero cpu", map[string]string{"CPU": "0"}, "CPU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cloud := azure.NewFakeCloud()
			ctx, observer := newTestContext(t, testConfig(t, tt.overrides), cloud)

			err := NewValidationPhase().Provision(ctx)

			require.Error(t, err)
			assert.True(t, deployerr.IsConfig(err))
			assert.Contains(t, err.Error(), tt.field)
			assert.True(t, observer.has(EventValidationError))
			assert.Empty(t, cloud.Calls())
		})
	}
}
