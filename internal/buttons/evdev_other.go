//go:build !linux

package buttons

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// NewEvdevButtons has no input devices to read outside Linux.
func NewEvdevButtons(logger Logger) *NoopButtons {
	if logger != nil {
		logger.Infof("input", "evdev input is only available on linux")
	}
	return NewNoopButtons()
}
