package builder

import (
	"io"

	"github.com/entropic-dev/galvanometer/pkg/internal/diagnostics"
	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

// Snapshot is a flattened, serialization-friendly view of one test run.
type Snapshot = diagnostics.Snapshot

// CalibrationRecorder appends one parquet row per judged batch.
type CalibrationRecorder = diagnostics.CalibrationRecorder

// StreamServer pushes snapshots to websocket subscribers.
type StreamServer = diagnostics.StreamServer

type StreamOption = diagnostics.StreamOption

// BuildSnapshot flattens a report into its exportable form.
func BuildSnapshot(report engine.Report) diagnostics.Snapshot {
	return diagnostics.BuildSnapshot(report)
}

// WriteSnapshot serializes the snapshot as zstd-compressed JSON.
func WriteSnapshot(w io.Writer, snap diagnostics.Snapshot) error {
	return diagnostics.WriteSnapshot(w, snap)
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (diagnostics.Snapshot, error) {
	return diagnostics.ReadSnapshot(r)
}

// NewCalibrationRecorder writes a parquet calibration archive to w.
func NewCalibrationRecorder(w io.Writer, options ...parquet.WriterOption) *diagnostics.CalibrationRecorder {
	return diagnostics.NewCalibrationRecorder(w, options...)
}

// NewStreamServer creates a websocket snapshot stream server.
func NewStreamServer(options ...diagnostics.StreamOption) *diagnostics.StreamServer {
	return diagnostics.NewStreamServer(options...)
}

// StreamWithLogger attaches loggers to the stream server.
func StreamWithLogger(loggers ...types.Logger) diagnostics.StreamOption {
	return diagnostics.StreamWithLogger(loggers...)
}

// LoadCalibration reads a YAML calibration set over the reference defaults.
func LoadCalibration(path string) (types.Calibration, error) {
	return diagnostics.LoadCalibration(path)
}

// ParseCalibration applies a YAML calibration document over the reference
// defaults.
func ParseCalibration(data []byte) (types.Calibration, error) {
	return diagnostics.ParseCalibration(data)
}
