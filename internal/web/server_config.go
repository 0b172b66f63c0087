package web

import (
	"fmt"
	"net"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - device:    :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string `yaml:"listen"`
	DevMode    bool   `yaml:"dev"`
	// StaticDir, when set, replaces the embedded remote control page.
	StaticDir string `yaml:"static_dir"`
}

// Enabled reports whether the server should run at all. An empty address or
// "off" disables it.
func (c ServerConfig) Enabled() bool {
	return c.ListenAddr != "" && c.ListenAddr != "off"
}

func (c ServerConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return fmt.Errorf("listen address %q: %w", c.ListenAddr, err)
	}
	return nil
}

// NewServer returns the HTTP server for c, or a NoopServer when disabled.
func NewServer(c ServerConfig, api API, logger Logger) Server {
	if !c.Enabled() {
		return &NoopServer{}
	}
	s := NewHTTPServer(c.ListenAddr, api)
	s.StaticDir = c.StaticDir
	s.DevMode = c.DevMode
	s.Logger = logger
	return s
}
