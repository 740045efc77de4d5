// package config loads engine settings from a TOML file.
// All fields are optional; missing values fall back to engine defaults.
package config

import (
	"fmt"
	"os"

	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/pelletier/go-toml/v2"
)

// Asset source kinds.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Present modes.
const (
	PresentVSync    = "vsync"
	PresentUncapped = "uncapped"
)

// Config holds the top-level engine configuration.
type Config struct {
	// Window configures the platform window.
	Window WindowConfig `toml:"window"`

	// Camera configures controller speed and zoom sensitivity.
	Camera CameraConfig `toml:"camera"`

	// Assets configures where model and texture files are loaded from.
	Assets AssetsConfig `toml:"assets"`

	// Scene configures what the engine puts on screen.
	Scene SceneConfig `toml:"scene"`

	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// Profiler enables per-second frame timing output.
	Profiler bool `toml:"profiler"`
}

// WindowConfig holds window creation settings.
type WindowConfig struct {
	// Title is the window title text.
	Title string `toml:"title"`

	// Width is the initial window width in pixels.
	Width int `toml:"width"`

	// Height is the initial window height in pixels.
	Height int `toml:"height"`

	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode"`
}

// CameraConfig holds camera controller settings.
type CameraConfig struct {
	// Speed is the movement speed in units per second.
	Speed float32 `toml:"speed"`

	// Fov is the vertical field of view in degrees.
	Fov float32 `toml:"fov"`
}

// AssetsConfig holds asset source settings.
type AssetsConfig struct {
	// Source selects where assets come from: "local" or "remote".
	Source string `toml:"source"`

	// Root is the directory models and textures are read from when Source
	// is "local".
	Root string `toml:"root"`

	// BaseURL is the asset server URL when Source is "remote".
	BaseURL string `toml:"base_url"`
}

// SceneConfig holds scene content settings.
type SceneConfig struct {
	// ParticleCount is the particle population per particle system.
	ParticleCount int `toml:"particle_count"`

	// LightMarker draws the first node's model at the light position.
	LightMarker bool `toml:"light_marker"`
}

// Default returns the configuration used when no file is present.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "Mjolnir",
			Width:       1280,
			Height:      720,
			PresentMode: PresentVSync,
		},
		Camera: CameraConfig{
			Speed: 4.0,
			Fov:   45,
		},
		Assets: AssetsConfig{
			Source: SourceLocal,
			Root:   "assets",
		},
		Scene: SceneConfig{
			ParticleCount: 60,
			LightMarker:   true,
		},
		LogLevel: "info",
	}
}

// Load reads and parses the TOML file at path, filling unset fields with
// defaults. A missing file is not an error; the defaults are returned.
//
// Parameters:
//   - path: path to the TOML configuration file
//
// Returns:
//   - Config: the parsed configuration merged with defaults
//   - error: error if the file exists but cannot be read, parsed, or validated
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// LightMarker defaults to true, so unmarshal over the defaults and
	// Coalesce only the comparable zero-value fields.
	parsed := Default()
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	def := Default()
	parsed.Window.Title = common.Coalesce(parsed.Window.Title, def.Window.Title)
	parsed.Window.Width = common.Coalesce(parsed.Window.Width, def.Window.Width)
	parsed.Window.Height = common.Coalesce(parsed.Window.Height, def.Window.Height)
	parsed.Window.PresentMode = common.Coalesce(parsed.Window.PresentMode, def.Window.PresentMode)
	parsed.Camera.Speed = common.Coalesce(parsed.Camera.Speed, def.Camera.Speed)
	parsed.Camera.Fov = common.Coalesce(parsed.Camera.Fov, def.Camera.Fov)
	parsed.Assets.Source = common.Coalesce(parsed.Assets.Source, def.Assets.Source)
	parsed.Assets.Root = common.Coalesce(parsed.Assets.Root, def.Assets.Root)
	parsed.Scene.ParticleCount = common.Coalesce(parsed.Scene.ParticleCount, def.Scene.ParticleCount)
	parsed.LogLevel = common.Coalesce(parsed.LogLevel, def.LogLevel)

	if err := parsed.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return parsed, nil
}

func (c *Config) validate() error {
	switch c.Assets.Source {
	case SourceLocal:
	case SourceRemote:
		if c.Assets.BaseURL == "" {
			return fmt.Errorf("assets.base_url is required when assets.source is %q", SourceRemote)
		}
	default:
		return fmt.Errorf("unknown assets.source %q", c.Assets.Source)
	}

	switch c.Window.PresentMode {
	case PresentVSync, PresentUncapped:
	default:
		return fmt.Errorf("unknown window.present_mode %q", c.Window.PresentMode)
	}

	if c.Scene.ParticleCount < 0 {
		return fmt.Errorf("scene.particle_count must not be negative")
	}

	return nil
}
