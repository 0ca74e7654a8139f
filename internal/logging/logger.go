// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package logging

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap backed logger writing to stderr at the given level.
// Debug enables logr's V(1) messages.
func New(level string) (logr.Logger, error) {
	var (
		zapLevel zapcore.Level
		cfg      zap.Config
	)
	switch strings.ToLower(level) {
	case "debug":
		cfg = zap.NewDevelopmentConfig()
		zapLevel = zapcore.DebugLevel
	case "info", "":
		cfg = zap.NewProductionConfig()
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		cfg = zap.NewProductionConfig()
		zapLevel = zapcore.WarnLevel
	case "error":
		cfg = zap.NewProductionConfig()
		zapLevel = zapcore.ErrorLevel
	default:
		return logr.Logger{}, errors.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	zl, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, errors.Wrap(err, "build logger")
	}
	return zapr.NewLogger(zl), nil
}
