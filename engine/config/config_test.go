package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	data := `
log_level = "debug"

[window]
title = "Scene Viewer"

[camera]
speed = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Scene Viewer", cfg.Window.Title)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.5, cfg.Camera.Speed, 1e-6)

	// Unset fields come from defaults.
	assert.Equal(t, Default().Window.Width, cfg.Window.Width)
	assert.Equal(t, Default().Window.Height, cfg.Window.Height)
	assert.Equal(t, Default().Camera.Fov, cfg.Camera.Fov)
	assert.Equal(t, Default().Assets.Root, cfg.Assets.Root)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("window = ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRemoteSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	data := `
[assets]
source = "remote"
base_url = "http://assets.example.com/mjolnir"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, cfg.Assets.Source)
	assert.Equal(t, "http://assets.example.com/mjolnir", cfg.Assets.BaseURL)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"remote without base_url": "[assets]\nsource = \"remote\"",
		"unknown source":          "[assets]\nsource = \"ftp\"",
		"unknown present mode":    "[window]\npresent_mode = \"fast\"",
		"negative particle count": "[scene]\nparticle_count = -1",
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), "engine.toml")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestLoadLightMarkerToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nlight_marker = false"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Scene.LightMarker)
	assert.Equal(t, Default().Scene.ParticleCount, cfg.Scene.ParticleCount)
}
