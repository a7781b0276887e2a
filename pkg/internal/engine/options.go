package engine

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// WithCalibration replaces the default acceptance bounds. Used by tests and
// by build-time calibration tooling; production firmware ships the default.
func WithCalibration(cal types.Calibration) types.Option[*QualityEngine] {
	return func(e *QualityEngine) {
		e.cal = cal
	}
}

// WithLogger attaches one or more loggers to the engine.
func WithLogger(logger ...types.Logger) types.Option[*QualityEngine] {
	return func(e *QualityEngine) {
		e.ConnectLogger(logger...)
	}
}

// WithComponentMetadata overrides the engine's name and ID.
func WithComponentMetadata(name string, id string) types.Option[*QualityEngine] {
	return func(e *QualityEngine) {
		e.SetComponentMetadata(name, id)
	}
}
