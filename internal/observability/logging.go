// Package observability builds the arena's loggers: one root logger per
// process, a child per match, and a child per robot within a match.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siomorehead/Fighter-Robot/internal/config"
)

// RootName is the name every arena logger descends from.
const RootName = "arena"

// NewLogger creates the root logger from the logging configuration. Sampling
// is off so per-turn decision logs are never dropped.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a logger named RootName or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("observability.NewLogger: level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "ts"
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("observability.NewLogger: unknown format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeName = zapcore.FullNameEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("observability.NewLogger: build: %w", err)
	}
	return logger.Named(RootName), nil
}

// MatchLogger scopes base to one match. Every entry carries the match id, and
// the seed when the match is reproducible.
func MatchLogger(base *zap.Logger, id uuid.UUID, seed int64) *zap.Logger {
	fields := []zap.Field{zap.String("match", id.String())}
	if seed != 0 {
		fields = append(fields, zap.Int64("seed", seed))
	}
	return base.Named("match").With(fields...)
}

// RobotLogger scopes a match logger to one robot.
func RobotLogger(match *zap.Logger, id int, variant string) *zap.Logger {
	return match.Named("robot").With(zap.Int("robot", id), zap.String("variant", variant))
}
