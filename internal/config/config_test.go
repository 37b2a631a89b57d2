package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GH_TOKEN", "")
	t.Setenv("ORG_NAME", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "intoolswetrust", cfg.Org)
	assert.Equal(t, "index.md", cfg.IndexPath)
	assert.Equal(t, "templates/index.md.tmpl", cfg.TemplatePath)
	assert.Equal(t, "_config.yml", cfg.SiteConfigPath)
	assert.True(t, cfg.Bootstrap)
	assert.True(t, cfg.IncludeTimestamp)
	assert.False(t, cfg.Archive)
	assert.False(t, cfg.Authenticated())
	assert.Equal(t, 100*time.Millisecond, cfg.MinDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GH_TOKEN", "secret")
	t.Setenv("ORG_NAME", "acme")
	t.Setenv("BOOTSTRAP", "false")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("GITHUB_MIN_DELAY", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Org)
	assert.Equal(t, "secret", cfg.GitHubToken)
	assert.True(t, cfg.Authenticated())
	assert.False(t, cfg.Bootstrap)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.MinDelay)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("ORG_NAME", "")
	path := filepath.Join(dir, "pages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("org_name: filed\nindex_path: site/index.md\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "filed", cfg.Org)
	assert.Equal(t, "site/index.md", cfg.IndexPath)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Org: "acme", IndexPath: "index.md", StorageType: "sqlite"}

	cfg := base
	cfg.Org = ""
	var cfgErr *ConfigError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "ORG_NAME", cfgErr.Field)

	cfg = base
	cfg.StorageType = "mysql"
	assert.EqualError(t, cfg.Validate(), "STORAGE_TYPE: must be 'sqlite' or 'postgres'")

	cfg = base
	cfg.StorageType = "postgres"
	assert.NoError(t, cfg.Validate(), "postgres URL only matters when archiving")
	cfg.Archive = true
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.MinDelay = -time.Second
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "GITHUB_MIN_DELAY", cfgErr.Field)
}
