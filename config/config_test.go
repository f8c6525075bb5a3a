package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
env:
  env: test
  log:
    level: debug
http:
  port: 9090
capture:
  frameRate: 25
  gracePeriod: 250ms
routing:
  provider: osrm
osrm:
  baseUrl: http://localhost:5000
storage:
  documentsUrl: mem://
  artifactsUrl: mem://
`

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.Playback.Duration)
	assert.Equal(t, 30, cfg.Capture.FrameRate)
	assert.Equal(t, 0.99, cfg.Capture.CompletionThreshold)
	assert.Equal(t, 500*time.Millisecond, cfg.Capture.GracePeriod)
	assert.Equal(t, 5*time.Minute, cfg.Capture.Timeout)
	assert.Equal(t, "straight", cfg.Routing.Provider)
	assert.Equal(t, "mem://", cfg.Storage.ArtifactsURL)
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleConfig), 0o600))
	t.Chdir(dir)
	t.Setenv("CAPTURE_FRAMERATE", "24")
	t.Setenv("HTTP_PORT", "9191")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)
	applyDefaults(cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 9191, cfg.HTTP.Port)
	assert.Equal(t, 24, cfg.Capture.FrameRate)
	assert.Equal(t, 250*time.Millisecond, cfg.Capture.GracePeriod)
	assert.Equal(t, "osrm", cfg.Routing.Provider)
	assert.Equal(t, "http://localhost:5000", cfg.OSRM.BaseURL)
	assert.Equal(t, "4M", cfg.Capture.Bitrate, "unset fields get defaults")
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Routing.Provider = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Capture.CompletionThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Render.TrailColor = "orange"
	assert.Error(t, cfg.Validate())
}
