package prerequisites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTool(t *testing.T) {
	t.Parallel()

	tool, ok := BuildTool("make build")
	require.True(t, ok)
	assert.Equal(t, "make", tool.Name)
	assert.True(t, tool.Required)

	_, ok = BuildTool("   ")
	assert.False(t, ok)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	results := Check([]Tool{
		{Name: "sh", Required: true},
		{Name: "definitely-not-a-real-tool-xyz", Required: true, InstallURL: "https://example.com"},
		{Name: "another-missing-optional-tool", Required: false},
	})

	require.Len(t, results.Results, 3)
	assert.True(t, results.Results[0].Found)
	assert.NotEmpty(t, results.Results[0].Path)
	assert.Len(t, results.Missing, 2)
	assert.True(t, results.HasErrors())

	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-tool-xyz (https://example.com)")
	assert.NotContains(t, err.Error(), "another-missing-optional-tool")
}

func TestCheckResults_OnlyOptionalMissing(t *testing.T) {
	t.Parallel()

	results := Check([]Tool{{Name: "missing-optional-tool-abc", Required: false}})
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestCheckForBuild(t *testing.T) {
	t.Parallel()

	results := CheckForBuild("definitely-not-a-real-builder-xyz --release")
	assert.True(t, results.HasErrors())
	assert.Contains(t, results.Error().Error(), "definitely-not-a-real-builder-xyz")

	empty := CheckForBuild("")
	assert.False(t, empty.HasErrors())
}

func TestOptionalTools(t *testing.T) {
	t.Parallel()

	for _, tool := range OptionalTools() {
		assert.False(t, tool.Required, tool.Name)
		assert.NotEmpty(t, tool.InstallURL, tool.Name)
	}
}
