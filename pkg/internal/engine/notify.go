package engine

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// ConnectLogger attaches loggers to the engine.
func (e *QualityEngine) ConnectLogger(loggers ...types.Logger) {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			e.loggers = append(e.loggers, l)
		}
	}
}

// NotifyLoggers fans a structured event out to every attached logger whose
// level admits it.
func (e *QualityEngine) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := e.snapshotLoggers()
	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold the lock while invoking logger methods.
func (e *QualityEngine) snapshotLoggers() []types.Logger {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	if len(e.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(e.loggers))
	copy(out, e.loggers)
	return out
}
