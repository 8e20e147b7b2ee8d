package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/prismgfx/prism/engine/core"
)

// ApplicationConfig describes the window, the renderer backend and the asset
// locations. It is loaded from a TOML file next to the binary; a missing file
// yields the defaults.
type ApplicationConfig struct {
	Name        string        `toml:"name"`
	StartPosX   uint32        `toml:"start_pos_x"`
	StartPosY   uint32        `toml:"start_pos_y"`
	StartWidth  uint32        `toml:"start_width"`
	StartHeight uint32        `toml:"start_height"`
	Backend     string        `toml:"backend"`
	LogLevel    core.LogLevel `toml:"log_level"`
	ShaderDir   string        `toml:"shader_dir"`
	Headless    bool          `toml:"headless"`
}

func Default() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "Prism Application",
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Backend:     "vulkan",
		LogLevel:    core.DebugLevel,
		ShaderDir:   "shaders",
	}
}

// Load reads the config at path, overlaying it onto the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (*ApplicationConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			core.LogDebug("no config file at %s, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("invalid window size %dx%d", c.StartWidth, c.StartHeight)
	}
	switch c.Backend {
	case "vulkan", "soft":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
