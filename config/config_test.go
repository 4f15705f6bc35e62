package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "broadside.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, parameter.TickRate, cfg.TickRate)
	assert.Equal(t, core.ViewThirdPerson, cfg.CameraView())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tick_rate: 30
seed: harbour
audio:
  muted: true
assets:
  load_delay: 250ms
  workers: 2
camera:
  view: birds_eye
log:
  debug: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TickRate)
	assert.True(t, cfg.Audio.Muted)
	assert.Equal(t, Default().Audio.Volume, cfg.Audio.Volume, "Expected unset keys to keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Assets.LoadDelay)
	assert.Equal(t, 2, cfg.Assets.Workers)
	assert.Equal(t, core.ViewBirdsEye, cfg.CameraView())
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "logs", cfg.Log.Dir)
	assert.Equal(t, time.Second/30, cfg.TickInterval())
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "tick_rate: [oops\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadValidationErrors(t *testing.T) {
	path := writeConfig(t, `
tick_rate: 0
audio:
  volume: 2
assets:
  workers: 0
camera:
  view: sideways
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTickRate)
	assert.ErrorIs(t, err, ErrVolume)
	assert.ErrorIs(t, err, ErrWorkers)
	assert.ErrorIs(t, err, ErrView)
}

func TestSeedValue(t *testing.T) {
	_, ok := Default().SeedValue()
	assert.False(t, ok)

	cfg := Default()
	cfg.Seed = "harbour"
	v, ok := cfg.SeedValue()
	require.True(t, ok)
	assert.Equal(t, xxhash.Sum64String("harbour"), v)

	other := cfg
	other.Seed = "harbor"
	w, _ := other.SeedValue()
	assert.NotEqual(t, v, w)
}
