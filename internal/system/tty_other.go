//go:build !linux

// Package system holds the small pieces of device plumbing: console mode on
// the framebuffer VT and the address the remote control is reachable at.
package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphicsConsole does nothing off Linux.
func EnterGraphicsConsole(l logger) (restore func()) { return func() {} }
