// Package engine runs the full entropy quality-assurance sequence over one
// sample batch: distribution histogram, fixed-point moment statistics,
// averaged power spectrum, band detection, and the final verdict.
//
// The engine is deliberately boring about execution: it is single-threaded,
// performs no I/O, holds no state between calls, and runs to completion in
// bounded time once a batch is handed to it. Sample collection — the only
// part of a test that waits on anything — happens outside, at the
// types.SampleSource boundary. Because every run owns its own buffers and
// results, judging the same batch twice produces bit-identical verdicts.
package engine

import (
	"sync"

	"github.com/entropic-dev/galvanometer/pkg/internal/bandwidth"
	"github.com/entropic-dev/galvanometer/pkg/internal/histogram"
	"github.com/entropic-dev/galvanometer/pkg/internal/moments"
	"github.com/entropic-dev/galvanometer/pkg/internal/spectrum"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/utils"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
)

// Report bundles everything one test run derived from its batch. The verdict
// is the production output; the intermediate artifacts are retained for the
// diagnostic and calibration paths.
type Report struct {
	Histogram *histogram.Histogram
	Moments   moments.Summary
	Spectrum  spectrum.PowerSpectrum
	Bandwidth bandwidth.Estimate
	Verdict   verdict.Verdict
}

// QualityEngine judges sample batches against a calibration. It is safe to
// reuse across runs; it is the caller's job not to re-enter a single engine
// from an interrupt-style context while a run is in progress.
type QualityEngine struct {
	componentMetadata types.ComponentMetadata
	cal               types.Calibration
	loggers           []types.Logger
	loggersLock       sync.Mutex
}

// NewQualityEngine creates an engine configured with the provided options.
// Without options it judges against the reference hardware's calibration.
func NewQualityEngine(options ...types.Option[*QualityEngine]) *QualityEngine {
	e := &QualityEngine{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "QUALITY_ENGINE",
		},
		cal: verdict.DefaultCalibration(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Calibration returns the engine's acceptance bounds.
func (e *QualityEngine) Calibration() types.Calibration {
	return e.cal
}

// GetComponentMetadata returns metadata (ID, Name, Type).
func (e *QualityEngine) GetComponentMetadata() types.ComponentMetadata {
	return e.componentMetadata
}

// SetComponentMetadata sets Name and ID.
func (e *QualityEngine) SetComponentMetadata(name string, id string) {
	e.componentMetadata.Name = name
	e.componentMetadata.ID = id
}

// Run judges one batch. An error means the batch itself was malformed
// (wrong size, out-of-range samples); a statistically failing source is not
// an error but a Report whose Verdict says so.
func (e *QualityEngine) Run(batch types.SampleBatch) (Report, error) {
	if err := batch.Validate(e.cal); err != nil {
		e.NotifyLoggers(types.ErrorLevel,
			"Rejected malformed sample batch",
			"component", e.componentMetadata,
			"event", "Run",
			"error", err.Error(),
		)
		return Report{}, err
	}

	var report Report
	report.Histogram = histogram.Accumulate(e.cal, batch)
	report.Moments = moments.Estimate(e.cal, batch)

	ps, err := spectrum.Estimate(e.cal, batch)
	if err != nil {
		return Report{}, err
	}
	report.Spectrum = ps
	report.Bandwidth = bandwidth.Detect(e.cal, ps)
	report.Verdict = verdict.Evaluate(e.cal, report.Moments, report.Bandwidth)

	if report.Verdict.Pass {
		e.NotifyLoggers(types.InfoLevel,
			"Noise source passed statistical acceptance",
			"component", e.componentMetadata,
			"event", "Run",
			"mean", report.Moments.Mean.String(),
			"variance", report.Moments.Variance.String(),
			"peakFraction", report.Bandwidth.PeakFraction.String(),
		)
	} else {
		e.NotifyLoggers(types.WarnLevel,
			"Noise source failed statistical acceptance",
			"component", e.componentMetadata,
			"event", "Run",
			"failedTest", report.Verdict.Failed.String(),
			"observed", report.Verdict.Observed.String(),
			"acceptableMin", report.Verdict.AcceptableMin.String(),
			"acceptableMax", report.Verdict.AcceptableMax.String(),
			"detail", report.Verdict.Detail,
		)
	}
	return report, nil
}
