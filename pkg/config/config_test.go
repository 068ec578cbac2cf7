package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	homedir.DisableCache = true
	t.Setenv("HOME", dir)
	t.Setenv(EnvConfigPath, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".manas"), cfg.Path)
	assert.Equal(t, filepath.Join(dir, ".manas", "manas.db"), cfg.Serve.DB)
	assert.Equal(t, DefaultAddr, cfg.Serve.Addr)
	assert.Equal(t, DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Authenticated())
	assert.Empty(t, cfg.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	file := `
path: /tmp/manas-guest
server:
  url: http://localhost:8080/
log:
  level: debug
http:
  timeout: 3s
serve:
  secret: s3cret
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".manas.yaml"), []byte(file), 0o600))
	t.Setenv("MANAS_TOKEN", "tok")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/manas-guest", cfg.Path)
	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "s3cret", cfg.Serve.Secret)
	assert.True(t, cfg.Authenticated())
	assert.NotEmpty(t, cfg.File)
}

func TestYAMLMasksSecrets(t *testing.T) {
	cfg := &Config{Path: "/p", Token: "tok", Serve: Serve{Secret: "s", Addr: ":1"}}
	raw, err := cfg.YAML()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok\n")

	var back Config
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.Equal(t, "/p", back.Path)
	assert.Equal(t, "********", back.Token)
	assert.Equal(t, "********", back.Serve.Secret)
	assert.Equal(t, "tok", cfg.Token)
}

func TestLoggerRejectsBadLevel(t *testing.T) {
	cfg := &Config{Log: Log{Level: "loud"}}
	_, err := cfg.Logger()
	assert.Error(t, err)

	cfg.Log.Level = "info"
	l, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, l)
}
