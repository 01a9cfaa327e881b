package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "src/main/java", cfg.SourceRoot)
	assert.Equal(t, "src/main/resources", cfg.ResourcesRoot)
	assert.Equal(t, "client", cfg.MarkerDir)
	assert.Equal(t, "application-local.yml", cfg.YamlFile)
	assert.Equal(t, "pom.xml", cfg.PomFile)
	assert.Equal(t, "", cfg.TemplateRoot)
	assert.False(t, cfg.StrictPlaceholders)
	assert.True(t, cfg.PatchPom)
}

func TestLoadProjectFile(t *testing.T) {
	root := t.TempDir()
	content := `marker-dir = "httpclient"
strict-placeholders = true
patch-pom = false
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".retrogen.toml"), []byte(content), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "httpclient", cfg.MarkerDir)
	assert.True(t, cfg.StrictPlaceholders)
	assert.False(t, cfg.PatchPom)
	// untouched keys keep their defaults
	assert.Equal(t, "src/main/java", cfg.SourceRoot)
}

func TestLoadEnvOverrides(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".retrogen.toml"), []byte(`marker-dir = "fromfile"`), 0644))

	t.Setenv("RETROGEN_MARKER_DIR", "fromenv")
	t.Setenv("RETROGEN_TEMPLATE_ROOT", "/opt/templates")

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.MarkerDir, "environment beats the project file")
	assert.Equal(t, "/opt/templates", cfg.TemplateRoot)
}

func TestLoadBadProjectFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".retrogen.toml"), []byte("not [valid toml"), 0644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "client", cfg.MarkerDir)
}
