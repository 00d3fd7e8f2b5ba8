package app

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the component logger handed to every subsystem.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// ZapLogger routes component logs through a zap logger, one named child per component.
type ZapLogger struct{ l *zap.SugaredLogger }

func NewZapLogger(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{l: l.Sugar()}
}

func (z ZapLogger) Infof(component string, format string, args ...interface{}) {
	z.l.Named(component).Infof(format, args...)
}

func (z ZapLogger) Errorf(component string, format string, args ...interface{}) {
	z.l.Named(component).Errorf(format, args...)
}

func (z ZapLogger) Sync() error { return z.l.Sync() }

// NewFileLogger writes console-encoded debug logs to w.
func NewFileLogger(w io.Writer) ZapLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return NewZapLogger(zap.New(core))
}
