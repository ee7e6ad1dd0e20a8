// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zap logger and carries request-scoped loggers
// through context.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

const serviceName = "scholar-federator"

// New builds the service logger from cfg. Every entry carries the service
// name and build version so lines from the CLI and the server can be told
// apart once they are shipped together.
func New(cfg types.LogConfig, version string) (*zap.Logger, error) {
	l, err := NewLogger(cfg.Env, cfg.Level)
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", serviceName), zap.String("version", version)), nil
}

// NewLogger creates a zap logger for the given environment. "prod" writes
// JSON; "local" and "dev" (the default) write colored console output.
// levelOverride (debug, info, warn, error), if non-empty, replaces the
// environment's default level. Logs always go to stderr because the search
// command prints its results on stdout.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(levelOverride[0])); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelOverride[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
