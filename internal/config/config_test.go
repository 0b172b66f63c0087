package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, SimulatorConfig().Validate())
	assert.Equal(t, 1260, DefaultConfig().Width)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"), SimulatorConfig())
	require.NoError(t, err)
	if diff := cmp.Diff(SimulatorConfig(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifewheel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
web:
  listen: ":9000"
  dev: true
storage:
  driver: file
  path: /tmp/lifewheel
start_phase: chooseAreas
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Web.ListenAddr)
	assert.True(t, cfg.Web.DevMode)
	assert.Equal(t, StorageConfig{Driver: "file", Path: "/tmp/lifewheel"}, cfg.Storage)
	assert.Equal(t, "chooseAreas", cfg.StartPhase)
	assert.Equal(t, "/dev/fb0", cfg.Framebuffer, "unset fields keep their defaults")

	require.NoError(t, os.WriteFile(path, []byte("web: [1, 2"), 0o644))
	_, err = Load(path, nil)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvListenAddr, "127.0.0.1:8181")
	t.Setenv(EnvDevMode, "true")
	t.Setenv(EnvStorage, "sqlite:/data/state.db")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8181", cfg.Web.ListenAddr)
	assert.True(t, cfg.Web.DevMode)
	assert.Equal(t, StorageConfig{Driver: "sqlite", Path: "/data/state.db"}, cfg.Storage)

	t.Setenv(EnvStorage, "memory")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)

	t.Setenv(EnvDevMode, "sometimes")
	_, err = Load("", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"size", func(c *Config) { c.Width = 0 }},
		{"driver", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"path", func(c *Config) { c.Storage = StorageConfig{Driver: "file"} }},
		{"listen", func(c *Config) { c.Web.ListenAddr = "nohost" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Web.ListenAddr = "off"
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "lifewheel.yaml")
	want := SimulatorConfig()
	want.StartPhase = "showWheel"
	require.NoError(t, want.Save(path))

	got, err := Load(path, DefaultConfig())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}
