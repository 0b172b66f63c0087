package app

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// ZapLogger adapts a zap logger to the component-tagged Logger interface.
type ZapLogger struct{ l *zap.SugaredLogger }

func NewZapLogger(l *zap.Logger) ZapLogger { return ZapLogger{l: l.Sugar()} }

// NewFileLogger writes JSON log lines to path. An empty path logs to stderr.
// Development mode switches to the console encoder at debug level.
func NewFileLogger(path string, development bool) (ZapLogger, error) {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if path != "" {
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}
	l, err := config.Build()
	if err != nil {
		return ZapLogger{}, fmt.Errorf("build logger: %w", err)
	}
	return NewZapLogger(l), nil
}

func (z ZapLogger) Infof(component string, format string, args ...interface{}) {
	z.l.With("component", component).Infof(format, args...)
}

func (z ZapLogger) Errorf(component string, format string, args ...interface{}) {
	z.l.With("component", component).Errorf(format, args...)
}

// Sync flushes buffered entries.
func (z ZapLogger) Sync() error { return z.l.Sync() }
