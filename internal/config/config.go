// Package config loads the settings shared by the device binary and the
// simulator: defaults, then an optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/web"
)

// Environment overrides.
const (
	EnvListenAddr = "LIFEWHEEL_LISTEN"
	EnvDevMode    = "LIFEWHEEL_DEV"
	// EnvStorage is "driver" or "driver:path", e.g. "sqlite:/var/lib/lifewheel/state.db".
	EnvStorage = "LIFEWHEEL_STORAGE"
)

// StorageDrivers lists the accepted storage drivers.
var StorageDrivers = []string{"memory", "file", "sqlite"}

type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Web     web.ServerConfig `yaml:"web"`
	Storage StorageConfig    `yaml:"storage"`

	// Framebuffer is the device the device binary draws to.
	Framebuffer string `yaml:"framebuffer"`
	// StartPhase, when set and registered, is opened instead of the phase
	// selected from the restored state.
	StartPhase string `yaml:"start_phase"`

	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	// Path is a directory for the file driver and a database file for sqlite.
	Path string `yaml:"path"`
}

// DefaultConfig returns the device defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:  render.CanvasWidth,
		Height: render.CanvasHeight,
		Web: web.ServerConfig{
			ListenAddr: ":80",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "/var/lib/lifewheel/state.db",
		},
		Framebuffer: "/dev/fb0",
		LogFile:     "/var/log/lifewheel.log",
	}
}

// SimulatorConfig returns the defaults of the simulator: a local port, state
// kept in memory and logs on stderr.
func SimulatorConfig() *Config {
	cfg := DefaultConfig()
	cfg.Web.ListenAddr = ":8080"
	cfg.Storage = StorageConfig{Driver: "memory"}
	cfg.Framebuffer = ""
	cfg.LogFile = ""
	cfg.Debug = true
	return cfg
}

// Load reads path over cfg, applies the environment and validates the result.
// A missing file is not an error; cfg is used as is.
func Load(path string, cfg *Config) (*Config, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		c.Web.ListenAddr = addr
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		c.Web.DevMode = dev
	}
	if raw := os.Getenv(EnvStorage); raw != "" {
		driver, path, found := strings.Cut(raw, ":")
		c.Storage.Driver = driver
		if found {
			c.Storage.Path = path
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if err := c.Web.Validate(); err != nil {
		return err
	}

	valid := false
	for _, d := range StorageDrivers {
		if c.Storage.Driver == d {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid storage driver: %q (valid: %v)", c.Storage.Driver, StorageDrivers)
	}
	if c.Storage.Driver != "memory" && c.Storage.Path == "" {
		return fmt.Errorf("storage driver %s needs a path", c.Storage.Driver)
	}
	return nil
}
