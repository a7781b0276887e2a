// Package internallogger adapts go.uber.org/zap to the types.Logger
// interface used throughout the library. Components never talk to zap
// directly; they fan out structured events to whatever loggers were attached
// through their options.
package internallogger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the zap configuration before the logger is built.
type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter wraps a zap.Logger behind the types.Logger interface.
type ZapLoggerAdapter struct {
	logger      *zap.Logger
	level       zapcore.Level
	callerDepth int
	mu          sync.Mutex
}

// NewLogger initializes a new ZapLoggerAdapter with configurable options.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	config := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	callerDepth := 2 // Default caller depth

	// Apply each provided option to the configuration
	for _, option := range options {
		option(&config, &level, &callerDepth)
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(callerDepth))
	if err != nil {
		// Fall back to a bare production logger rather than returning nil;
		// an unconfigurable logger should never take the device down.
		logger = zap.NewNop()
	}

	return &ZapLoggerAdapter{
		logger:      logger,
		level:       level,
		callerDepth: callerDepth,
	}
}

// LoggerWithLevel configures the logger to use the specified log level.
// It converts the level string to zapcore.Level and sets it in the zap config.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		level := parseLogLevel(levelStr)
		*lvl = ConvertLevel(level)
	}
}

// LoggerWithDevelopment enables or disables development mode in the logger configuration.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		cfg.Development = dev
		if dev {
			cfg.Encoding = "console"
		}
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]interface{}{}
		}
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.InitialFields[key] = value
		}
	}
}

// LoggerWithCallerSkip sets the number of additional caller frames to skip.
func LoggerWithCallerSkip(skip int) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		*callerDepth += skip
	}
}
