// Package diagnostics is the debug-only export surface for build-time
// calibration tooling. Nothing here participates in the production pass/fail
// path: snapshots, parquet archives and the live stream exist so an engineer
// with a board on the bench can see what the noise source is actually doing
// while the acceptance bounds are being derived.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	"github.com/klauspost/compress/zstd"
)

// Snapshot is a flattened, serialization-friendly view of one test run:
// the full histogram and averaged spectrum plus every derived statistic,
// with fixed-point values widened to float64 for the tooling side.
type Snapshot struct {
	CapturedAt time.Time `json:"capturedAt"`

	Histogram      []uint16 `json:"histogram,omitempty"`
	HistogramTotal uint32   `json:"histogramTotal"`

	Power     []float64 `json:"power,omitempty"`
	BlockSize int       `json:"blockSize"`
	Blocks    int       `json:"blocks"`

	Mean           float64 `json:"mean"`
	Variance       float64 `json:"variance"`
	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excessKurtosis"`
	Degenerate     bool    `json:"degenerate,omitempty"`

	PeakFraction float64 `json:"peakFraction"`
	LowerEdge    float64 `json:"lowerEdge"`
	LowerFound   bool    `json:"lowerFound"`
	UpperEdge    float64 `json:"upperEdge"`
	UpperFound   bool    `json:"upperFound"`

	Pass       bool   `json:"pass"`
	FailedTest string `json:"failedTest,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// BuildSnapshot flattens a report into its exportable form.
func BuildSnapshot(report engine.Report) Snapshot {
	snap := Snapshot{
		CapturedAt:     time.Now().UTC(),
		Power:          append([]float64(nil), report.Spectrum.Power...),
		BlockSize:      report.Spectrum.BlockSize,
		Blocks:         report.Spectrum.Blocks,
		Mean:           report.Moments.Mean.Float64(),
		Variance:       report.Moments.Variance.Float64(),
		Skewness:       report.Moments.Skewness.Float64(),
		ExcessKurtosis: report.Moments.ExcessKurtosis.Float64(),
		Degenerate:     report.Moments.Degenerate,
		PeakFraction:   report.Bandwidth.PeakFraction.Float64(),
		LowerEdge:      report.Bandwidth.LowerFraction.Float64(),
		LowerFound:     report.Bandwidth.LowerFound,
		UpperEdge:      report.Bandwidth.UpperFraction.Float64(),
		UpperFound:     report.Bandwidth.UpperFound,
		Pass:           report.Verdict.Pass,
		Detail:         report.Verdict.Detail,
	}
	if report.Histogram != nil {
		snap.Histogram = report.Histogram.Counts()
		snap.HistogramTotal = report.Histogram.Total()
	}
	if !report.Verdict.Pass {
		snap.FailedTest = report.Verdict.Failed.String()
	}
	return snap
}

// WriteSnapshot serializes the snapshot as zstd-compressed JSON. A full
// histogram plus spectrum compresses to a fraction of its raw size, which
// matters when snapshots are pulled off the device over a slow debug link.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		zw.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return zw.Close()
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer zr.Close()
	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}
