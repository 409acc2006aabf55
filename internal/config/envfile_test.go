package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deploy.env")
	content := "# deployment overrides\nRESOURCE_GROUP=rg-file\nDB_PASSWORD=\"quoted pass\"\n\nAPP_NAME=app-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	values, err := LoadEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, "rg-file", values["RESOURCE_GROUP"])
	assert.Equal(t, "quoted pass", values["DB_PASSWORD"])
	assert.Equal(t, "app-file", values["APP_NAME"])
}

func TestLoadEnvFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")
}

func TestEnvironmentLayer(t *testing.T) {
	t.Parallel()

	environ := []string{"RESOURCE_GROUP=rg-process", "APP_NAME=app-process", "MALFORMED", "EQUALS=a=b"}
	file := map[string]string{"RESOURCE_GROUP": "rg-file"}

	layer := EnvironmentLayer(environ, file)

	assert.Equal(t, "rg-file", layer["RESOURCE_GROUP"], "file overrides process environment")
	assert.Equal(t, "app-process", layer["APP_NAME"])
	assert.Equal(t, "a=b", layer["EQUALS"])
	_, ok := layer["MALFORMED"]
	assert.False(t, ok)
}

func TestEnvFileStaysBelowExplicit(t *testing.T) {
	t.Parallel()

	layer := EnvironmentLayer(nil, map[string]string{"APP_NAME": "from-file", EnvDatabasePassword: "file-pass"})
	cfg, err := Resolve(Defaults(), layer, map[string]string{"APP_NAME": "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.AppName)
	assert.Equal(t, "file-pass", cfg.DatabasePassword)
}
