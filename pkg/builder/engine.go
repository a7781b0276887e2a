package builder

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/bandwidth"
	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	"github.com/entropic-dev/galvanometer/pkg/internal/histogram"
	"github.com/entropic-dev/galvanometer/pkg/internal/moments"
	"github.com/entropic-dev/galvanometer/pkg/internal/spectrum"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
)

// QualityEngine judges sample batches against a calibration.
type QualityEngine = engine.QualityEngine

// Report bundles everything one test run derived from its batch.
type Report = engine.Report

// Calibration holds the acceptance bounds and structural constants one
// analog front-end design was measured against.
type Calibration = types.Calibration

// Histogram is the saturating sample-distribution accumulator.
type Histogram = histogram.Histogram

// MomentSummary carries the four fixed-point moment statistics of a batch.
type MomentSummary = moments.Summary

// PowerSpectrum is the block-averaged power spectral density estimate.
type PowerSpectrum = spectrum.PowerSpectrum

// BandwidthEstimate describes the detected peak and band edges.
type BandwidthEstimate = bandwidth.Estimate

// Verdict is the engine's final pass/fail decision with its evidence.
type Verdict = verdict.Verdict

// CheckResult is one acceptance check's outcome, used by EvaluateAll.
type CheckResult = verdict.CheckResult

// FailedTest identifies which acceptance check a batch failed.
type FailedTest = verdict.FailedTest

// EngineOption configures a QualityEngine.
type EngineOption = types.Option[*engine.QualityEngine]

// Export the failed-test identifiers under the builder package.
const (
	TestNone          = verdict.TestNone
	TestMean          = verdict.TestMean
	TestVariance      = verdict.TestVariance
	TestSkewness      = verdict.TestSkewness
	TestKurtosis      = verdict.TestKurtosis
	TestPeakFrequency = verdict.TestPeakFrequency
	TestBandwidth     = verdict.TestBandwidth
)

// NewQualityEngine creates an engine configured with the provided options.
// Without options it judges against the reference hardware's calibration.
func NewQualityEngine(options ...types.Option[*engine.QualityEngine]) *engine.QualityEngine {
	return engine.NewQualityEngine(options...)
}

// EngineWithCalibration replaces the default acceptance bounds.
func EngineWithCalibration(cal types.Calibration) types.Option[*engine.QualityEngine] {
	return engine.WithCalibration(cal)
}

// EngineWithLogger attaches one or more loggers to the engine.
func EngineWithLogger(logger ...types.Logger) types.Option[*engine.QualityEngine] {
	return engine.WithLogger(logger...)
}

// EngineWithComponentMetadata overrides the engine's name and ID.
func EngineWithComponentMetadata(name string, id string) types.Option[*engine.QualityEngine] {
	return engine.WithComponentMetadata(name, id)
}

// DefaultCalibration returns the reference hardware's acceptance bounds.
func DefaultCalibration() types.Calibration {
	return verdict.DefaultCalibration()
}
