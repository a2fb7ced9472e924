package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "globe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaults(t *testing.T) {

	cfg := Default()

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)

	assert.Equal(t, "textures/earthMap.jpg", cfg.Textures.Earth)
	assert.Equal(t, "textures/mapBump.jpg", cfg.Textures.Bump)
	assert.Equal(t, "textures/cloudMap.png", cfg.Textures.Cloud)
	assert.Equal(t, "textures/galaxyMap.png", cfg.Textures.Galaxy)

	assert.Equal(t, -0.001, cfg.Rotation.Earth)
	assert.Equal(t, 0.0005, cfg.Rotation.Cloud)
	assert.Equal(t, -0.001, cfg.Rotation.Galaxy)

	assert.Equal(t, 0.2, cfg.Lights.AmbientIntensity)
	assert.Equal(t, 1.0, cfg.Lights.PointIntensity)
	assert.Equal(t, []float64{5, 3, 8}, cfg.Lights.PointPosition)

	assert.Equal(t, 75.0, cfg.Camera.Fov)
	assert.Equal(t, 2.0, cfg.Camera.MaxPixelRatio)

	assert.True(t, cfg.Controls.Damping)
	assert.Equal(t, 2.0, cfg.Controls.MinDistance)
	assert.Equal(t, 4.0, cfg.Controls.MaxDistance)

	assert.False(t, cfg.WaitForTextures)

}

func TestLoadFile(t *testing.T) {

	path := writeConfig(t, `
window:
  width: 640
rotation:
  cloud: 0.002
wait_for_textures: true
`)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height, "unset values keep their defaults")
	assert.Equal(t, 0.002, cfg.Rotation.Cloud)
	assert.True(t, cfg.WaitForTextures)

}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {

	t.Setenv("GLOBE_WINDOW_HEIGHT", "480")
	t.Setenv("GLOBE_WAIT_FOR_TEXTURES", "true")

	cfg, err := NewLoader(writeConfig(t, "window:\n  height: 600\n")).Load()
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.Window.Height)
	assert.True(t, cfg.WaitForTextures)

}

func TestLoadInvalid(t *testing.T) {

	tests := map[string]string{
		"size":      "window:\n  width: 0\n",
		"distance":  "controls:\n  min_distance: 5\n  max_distance: 4\n",
		"light":     "lights:\n  point_position: [1, 2]\n",
		"intensity": "lights:\n  ambient_intensity: -1\n",
		"clipping":  "camera:\n  near: 10\n  far: 1\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, contents)).Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

}

func TestWatch(t *testing.T) {

	path := writeConfig(t, "rotation:\n  earth: -0.001\n")

	loader := NewLoader(path)
	_, err := loader.Load()
	require.NoError(t, err)

	updates := loader.Watch()

	require.NoError(t, os.WriteFile(path, []byte("rotation:\n  earth: -0.01\n"), 0o644))

	// A single save can produce several events, some of which may see a partially written file.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Rotation.Earth == -0.01 {
				return
			}
		case <-timeout:
			t.Fatal("config change wasn't picked up")
		}
	}

}
