package diagnostics_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entropic-dev/galvanometer/pkg/internal/diagnostics"
	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	"github.com/entropic-dev/galvanometer/pkg/internal/sampler"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
	parquet "github.com/parquet-go/parquet-go"
)

func sampleReport(t *testing.T) engine.Report {
	t.Helper()
	qe := engine.NewQualityEngine()
	source := sampler.NewSimulatedSource(sampler.WithSeed(1))
	batch, err := source.Collect(context.Background(), qe.Calibration().SampleCount)
	require.NoError(t, err)
	report, err := qe.Run(batch)
	require.NoError(t, err)
	return report
}

func TestSnapshotFlattensReport(t *testing.T) {
	report := sampleReport(t)

	snap := diagnostics.BuildSnapshot(report)

	assert.Equal(t, report.Verdict.Pass, snap.Pass)
	assert.Len(t, snap.Histogram, report.Histogram.NumBins())
	assert.Equal(t, report.Histogram.Total(), snap.HistogramTotal)
	assert.Len(t, snap.Power, report.Spectrum.BlockSize/2)
	assert.InDelta(t, report.Moments.Mean.Float64(), snap.Mean, 1e-9)
	assert.InDelta(t, report.Bandwidth.PeakFraction.Float64(), snap.PeakFraction, 1e-9)
	assert.False(t, snap.CapturedAt.IsZero())
	if report.Verdict.Pass {
		assert.Empty(t, snap.FailedTest)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := diagnostics.BuildSnapshot(sampleReport(t))

	var buf bytes.Buffer
	require.NoError(t, diagnostics.WriteSnapshot(&buf, snap))

	// zstd plus JSON still beats the raw struct handily with a histogram
	// and spectrum inside.
	assert.Less(t, buf.Len(), 8192)

	got, err := diagnostics.ReadSnapshot(&buf)
	require.NoError(t, err)

	assert.Equal(t, snap.Histogram, got.Histogram)
	assert.Equal(t, snap.HistogramTotal, got.HistogramTotal)
	assert.Equal(t, snap.Power, got.Power)
	assert.Equal(t, snap.Mean, got.Mean)
	assert.Equal(t, snap.Pass, got.Pass)
	assert.True(t, snap.CapturedAt.Equal(got.CapturedAt))
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	_, err := diagnostics.ReadSnapshot(bytes.NewReader([]byte("not a snapshot")))
	require.Error(t, err)
}

func TestCalibrationRecorderWritesRows(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	rec := diagnostics.NewCalibrationRecorder(&buf)
	require.NoError(t, rec.Record(report))
	require.NoError(t, rec.Record(report))
	require.NoError(t, rec.Close())

	rows, err := parquet.Read[diagnostics.CalibrationRecord](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, report.Verdict.Pass, rows[0].Pass)
	assert.InDelta(t, report.Moments.Mean.Float64(), rows[0].Mean, 1e-9)
	assert.NotZero(t, rows[0].CapturedAtUnixNano)
}

func TestCalibrationRecorderRefusesAfterClose(t *testing.T) {
	var buf bytes.Buffer
	rec := diagnostics.NewCalibrationRecorder(&buf)
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close(), "closing twice is harmless")
	require.Error(t, rec.Record(sampleReport(t)))
}

func TestParseCalibrationOverridesDefaults(t *testing.T) {
	doc := []byte(`
min_mean: 250.0
max_mean: 350.0
psd_threshold_repetitions: 7
`)
	cal, err := diagnostics.ParseCalibration(doc)
	require.NoError(t, err)

	def := verdict.DefaultCalibration()
	assert.InDelta(t, 250.0, cal.MinMean.Float64(), 1e-4)
	assert.InDelta(t, 350.0, cal.MaxMean.Float64(), 1e-4)
	assert.Equal(t, 7, cal.PSDThresholdRepetitions)
	// Untouched fields keep the reference defaults.
	assert.Equal(t, def.MinVariance, cal.MinVariance)
	assert.Equal(t, def.SampleCount, cal.SampleCount)
}

func TestParseCalibrationZeroBoundIsExplicit(t *testing.T) {
	// min_mean: 0 must override, not fall back to the default.
	cal, err := diagnostics.ParseCalibration([]byte("min_mean: 0.0\n"))
	require.NoError(t, err)
	assert.Zero(t, cal.MinMean)
}

func TestParseCalibrationRejectsBrokenStructure(t *testing.T) {
	_, err := diagnostics.ParseCalibration([]byte("transform_block_size: 100\n"))
	require.Error(t, err, "non-power-of-two block size must not validate")

	_, err = diagnostics.ParseCalibration([]byte("{not yaml"))
	require.Error(t, err)
}
