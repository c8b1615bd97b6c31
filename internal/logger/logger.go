// Package logger builds the process zap logger. Output goes to stderr so
// tree JSON written to stdout stays clean.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger for production and a console logger otherwise.
// verbose lowers the level from Info to Debug.
func New(env string, verbose bool) (*zap.Logger, error) {
	return NewLeveled(env, zap.NewAtomicLevelAt(level(verbose)))
}

// NewLeveled is New with a caller-owned level, so a flag parsed after the
// logger exists can still turn on debug output.
func NewLeveled(env string, lvl zap.AtomicLevel) (*zap.Logger, error) {
	var config zap.Config

	switch strings.ToLower(env) {
	case "prod", "production":
		config = zap.NewProductionConfig()
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	}

	config.Level = lvl
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

func level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// Sync flushes buffered entries. Syncing stderr fails on some terminals,
// which is not worth reporting.
func Sync(l *zap.Logger) {
	if l != nil {
		_ = l.Sync()
	}
}
