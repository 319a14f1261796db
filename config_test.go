package solar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StrategyReparent, cfg.Strategy)
	assert.Equal(t, "sun", cfg.DefaultTarget)
	assert.Equal(t, 60.0, cfg.FrameRate)
	assert.False(t, cfg.ScaleByDelta)
	assert.Equal(t, 3.0, cfg.Tween.Duration)
	assert.Equal(t, "power1.out", cfg.Tween.Easing)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, "solar.toml", `
strategy = "tween"
default_target = "earth"
scale_by_delta = true

[tween]
duration = 1.5
easing = "sine.inOut"

[window]
width = 800
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, StrategyTween, cfg.Strategy)
	assert.Equal(t, "earth", cfg.DefaultTarget)
	assert.True(t, cfg.ScaleByDelta)
	assert.Equal(t, 1.5, cfg.Tween.Duration)
	assert.Equal(t, "sine.inOut", cfg.Tween.Easing)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, 60.0, cfg.FrameRate)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "solar.toml", "strategy = \"tween\"\ncamera_speed = 4\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera_speed")
}

func TestLoadConfigRejectsUnknownStrategy(t *testing.T) {
	path := writeFile(t, "solar.toml", `strategy = "teleport"`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = -1
	cfg.Tween.Easing = "bounce"
	cfg.Window.Zoom = 0
	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "frame_rate")
	assert.Contains(t, msg, "tween.easing")
	assert.Contains(t, msg, "window.zoom")
}

func TestOpenTables(t *testing.T) {
	cfg := DefaultConfig()
	tables, err := cfg.OpenTables()
	require.NoError(t, err)
	assert.Len(t, tables.Bodies, 9)

	cfg.Tables = writeFile(t, "bodies.toml", `
[[body]]
id = "sun"
radius = 10.0
lookout = [20.0, 0.0, -1.0]
tween_target = [20.0, -1.0]
`)
	tables, err = cfg.OpenTables()
	require.NoError(t, err)
	require.Len(t, tables.Bodies, 1)
	assert.Equal(t, 10.0, tables.Bodies[0].Radius)
}

func TestStrategyText(t *testing.T) {
	for _, s := range []Strategy{StrategyReparent, StrategyTween} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var got Strategy
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}
	got, err := ParseStrategy(" Tween ")
	require.NoError(t, err)
	assert.Equal(t, StrategyTween, got)

	got, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyReparent, got)

	_, err = ParseStrategy("orbit")
	assert.Error(t, err)
}
