package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	parquet "github.com/parquet-go/parquet-go"
	"github.com/shirou/gopsutil/host"
)

// CalibrationRecord is one row of the calibration archive: the derived
// statistics of a batch plus the thermal environment it was captured in.
// The acceptance bounds are temperature-derived, so a calibration data set
// without the ambient conditions attached is close to useless.
type CalibrationRecord struct {
	CapturedAtUnixNano int64  `parquet:"captured_at_unix_nano"`
	Hostname           string `parquet:"hostname"`
	Platform           string `parquet:"platform"`
	SensorTemps        string `parquet:"sensor_temps"`

	Mean           float64 `parquet:"mean"`
	Variance       float64 `parquet:"variance"`
	Skewness       float64 `parquet:"skewness"`
	ExcessKurtosis float64 `parquet:"excess_kurtosis"`
	Degenerate     bool    `parquet:"degenerate"`

	PeakFraction float64 `parquet:"peak_fraction"`
	LowerEdge    float64 `parquet:"lower_edge"`
	UpperEdge    float64 `parquet:"upper_edge"`
	EdgesFound   bool    `parquet:"edges_found"`

	Pass       bool   `parquet:"pass"`
	FailedTest string `parquet:"failed_test"`
}

// CalibrationRecorder appends one parquet row per judged batch. It is a
// bench tool: long capture sessions produce an archive the calibration
// notebooks can aggregate when re-deriving bounds for a hardware revision.
type CalibrationRecorder struct {
	mu     sync.Mutex
	pw     *parquet.GenericWriter[CalibrationRecord]
	closed bool
}

// NewCalibrationRecorder writes parquet to w. Extra writer options (such as
// a compression codec) pass straight through to parquet-go.
func NewCalibrationRecorder(w io.Writer, options ...parquet.WriterOption) *CalibrationRecorder {
	return &CalibrationRecorder{
		pw: parquet.NewGenericWriter[CalibrationRecord](w, options...),
	}
}

// Record appends one row for the given report.
func (r *CalibrationRecorder) Record(report engine.Report) error {
	record := CalibrationRecord{
		CapturedAtUnixNano: time.Now().UnixNano(),
		Mean:               report.Moments.Mean.Float64(),
		Variance:           report.Moments.Variance.Float64(),
		Skewness:           report.Moments.Skewness.Float64(),
		ExcessKurtosis:     report.Moments.ExcessKurtosis.Float64(),
		Degenerate:         report.Moments.Degenerate,
		PeakFraction:       report.Bandwidth.PeakFraction.Float64(),
		LowerEdge:          report.Bandwidth.LowerFraction.Float64(),
		UpperEdge:          report.Bandwidth.UpperFraction.Float64(),
		EdgesFound:         report.Bandwidth.LowerFound && report.Bandwidth.UpperFound,
		Pass:               report.Verdict.Pass,
	}
	if !report.Verdict.Pass {
		record.FailedTest = report.Verdict.Failed.String()
	}
	record.Hostname, record.Platform, record.SensorTemps = captureEnvironment()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("calibration recorder already closed")
	}
	if _, err := r.pw.Write([]CalibrationRecord{record}); err != nil {
		return fmt.Errorf("writing calibration record: %w", err)
	}
	return nil
}

// Close flushes the parquet footer. The archive is unreadable without it.
func (r *CalibrationRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.pw.Close()
}

// captureEnvironment best-effort reads the bench machine's identity and
// temperature sensors. Missing sensors are normal (VMs, locked-down
// laptops); the record simply carries empty fields.
func captureEnvironment() (hostname, platform, temps string) {
	if info, err := host.Info(); err == nil {
		hostname = info.Hostname
		platform = info.Platform
	}
	sensors, err := host.SensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return hostname, platform, ""
	}
	parts := make([]string, 0, len(sensors))
	for _, s := range sensors {
		if s.SensorKey == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%.1f", s.SensorKey, s.Temperature))
	}
	return hostname, platform, strings.Join(parts, ";")
}
