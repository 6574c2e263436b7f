// Package log builds the zap logger shared by the calclex commands.
//
// Library packages accept a *zap.Logger and default to zap.NewNop(); only
// the command layer decides where logs go.
package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Env selects an encoder preset.
type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

// Config controls logger construction.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Env is dev (console encoder) or prod (JSON encoder).
	Env Env
	// Output receives log lines. Required.
	Output io.Writer
}

// ParseLevel maps a level name to a zapcore.Level.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New builds a logger writing to cfg.Output.
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Output == nil {
		return nil, fmt.Errorf("log output is required")
	}

	var enc zapcore.Encoder
	switch cfg.Env {
	case EnvProd:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case EnvDev, "":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log env %q", cfg.Env)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(cfg.Output), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
