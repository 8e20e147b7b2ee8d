package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismgfx/prism/engine/core"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Overlay"
start_width = 640
backend = "soft"
log_level = "warn"
headless = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Overlay", cfg.Name)
	assert.Equal(t, uint32(640), cfg.StartWidth)
	assert.Equal(t, "soft", cfg.Backend)
	assert.Equal(t, core.WarnLevel, cfg.LogLevel)
	assert.True(t, cfg.Headless)

	// Unset keys keep their defaults.
	assert.Equal(t, uint32(720), cfg.StartHeight)
	assert.Equal(t, "shaders", cfg.ShaderDir)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.StartWidth = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend = "metal"
	assert.Error(t, cfg.Validate())
}
