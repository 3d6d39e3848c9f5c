package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.rootDir(""))
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pums.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_dir: /srv/pums\nretry_max: 5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/pums", cfg.RootDir)
	require.NotNil(t, cfg.RetryMax)
	assert.Equal(t, 5, *cfg.RetryMax)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pums.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_dir: /srv/pums\ndata_url: https://mirror.test\n"), 0o644))
	t.Setenv("PUMS_ROOT_DIR", "/env/pums")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/pums", cfg.RootDir)
	assert.Equal(t, "https://mirror.test", cfg.DataURL)
}

func TestLoadConfigBadRetryEnv(t *testing.T) {
	t.Setenv("PUMS_RETRY_MAX", "lots")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PUMS_RETRY_MAX")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestRootDirPrecedence(t *testing.T) {
	cfg := FileConfig{RootDir: "/from/config"}
	assert.Equal(t, "/flag/wins", cfg.rootDir("/flag/wins"))
	assert.Equal(t, "/from/config", cfg.rootDir(""))
}
