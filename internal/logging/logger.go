// Package logging builds the zap loggers used by the CLI, the storefront
// replica and the browser suite.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. format is "console" or "json";
// an unparsable level falls back to info.
func New(level, format string) *zap.Logger {
	return NewWithWriter(level, format, zapcore.Lock(os.Stderr))
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(level, format string, w zapcore.WriteSyncer) *zap.Logger {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		atomicLevel.SetLevel(zap.InfoLevel)
	}

	core := zapcore.NewCore(encoder(format), w, atomicLevel)
	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named("sauce-e2e")
}

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if format == "json" {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// Sync flushes l, ignoring the errors stdout/stderr return on some platforms.
func Sync(l *zap.Logger) {
	_ = l.Sync()
}
