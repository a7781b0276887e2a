package internallogger

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"go.uber.org/zap"
)

// Log emits a log entry at the requested level with structured fields.
func (z *ZapLoggerAdapter) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	z.mu.Lock()
	logger := z.logger
	z.mu.Unlock()

	if logger == nil || logger.Core() == nil {
		return
	}

	zapLevel := ConvertLevel(level)
	if !logger.Core().Enabled(zapLevel) {
		return
	}

	sugared := logger.Sugar()
	switch level {
	case types.DebugLevel:
		sugared.Debugw(msg, keysAndValues...)
	case types.InfoLevel:
		sugared.Infow(msg, keysAndValues...)
	case types.WarnLevel:
		sugared.Warnw(msg, keysAndValues...)
	case types.ErrorLevel:
		sugared.Errorw(msg, keysAndValues...)
	case types.DPanicLevel:
		sugared.DPanicw(msg, keysAndValues...)
	case types.PanicLevel:
		sugared.Panicw(msg, keysAndValues...)
	case types.FatalLevel:
		sugared.Fatalw(msg, keysAndValues...)
	}
}

func (z *ZapLoggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.Log(types.DebugLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.Log(types.InfoLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.Log(types.WarnLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.Log(types.ErrorLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) DPanic(msg string, keysAndValues ...interface{}) {
	z.Log(types.DPanicLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Panic(msg string, keysAndValues ...interface{}) {
	z.Log(types.PanicLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Fatal(msg string, keysAndValues ...interface{}) {
	z.Log(types.FatalLevel, msg, keysAndValues...)
}

// GetLevel returns the adapter's current logging level.
func (z *ZapLoggerAdapter) GetLevel() types.LogLevel {
	z.mu.Lock()
	defer z.mu.Unlock()
	return convertZapLevel(z.level)
}

// SetLevel rebuilds the underlying logger at the requested level.
func (z *ZapLoggerAdapter) SetLevel(level types.LogLevel) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.level = ConvertLevel(level)
	z.logger = z.logger.WithOptions(zap.IncreaseLevel(z.level))
}

// Flush forces any buffered log entries to be written out.
func (z *ZapLoggerAdapter) Flush() error {
	z.mu.Lock()
	logger := z.logger
	z.mu.Unlock()
	if logger == nil {
		return nil
	}
	return logger.Sync()
}
