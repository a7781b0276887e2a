package builder

import (
	internallogger "github.com/entropic-dev/galvanometer/pkg/internal/internallogger"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

type LoggerOption = internallogger.LoggerOption

// Logger is the structured logging interface every component accepts.
type Logger = types.Logger

// NewLogger builds a zap-backed logger behind the Logger interface.
func NewLogger(options ...internallogger.LoggerOption) types.Logger {
	return internallogger.NewLogger(options...)
}

// LoggerWithLevel configures the logger to use the specified log level.
func LoggerWithLevel(levelStr string) LoggerOption {
	return internallogger.LoggerWithLevel(levelStr)
}

// LoggerWithDevelopment enables or disables development mode.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return internallogger.LoggerWithDevelopment(dev)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internallogger.LoggerWithFields(fields)
}

// LoggerWithCallerSkip adjusts the reported call site depth.
func LoggerWithCallerSkip(skip int) LoggerOption {
	return internallogger.LoggerWithCallerSkip(skip)
}

// LogLevel is exported from the internal types package.
type LogLevel = types.LogLevel

// Export log levels to be accessible under the builder package.
const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
