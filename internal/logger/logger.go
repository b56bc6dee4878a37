package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// defaultLevel is the fallback log level when an unknown level string is provided.
const defaultLevel = zapcore.InfoLevel

// ToLevel converts a textual level to zapcore.Level.
func ToLevel(level string) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultLevel
	}
}

// NewCore builds a console zapcore.Core writing to ws at the given level.
func NewCore(level string, ws zapcore.WriteSyncer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(ws), zap.NewAtomicLevelAt(ToLevel(level)))
}

// New returns a console logger writing to stderr at the given level.
// Stdout is left for program output.
func New(level string) *zap.Logger {
	return zap.New(NewCore(level, os.Stderr))
}
