package builder

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/walletgate"
)

// KeyGate refuses wallet key generation until a fresh sample batch passes
// every statistical acceptance test.
type KeyGate = walletgate.KeyGate

// WalletError is a host-protocol error code.
type WalletError = walletgate.WalletError

// HostResponse is the wire-level result reported back to the host.
type HostResponse = walletgate.HostResponse

// ErrRNGFailure is the sentinel wrapped by every refused authorization.
var ErrRNGFailure = walletgate.ErrRNGFailure

// NewKeyGate wires a sample source to a quality engine.
func NewKeyGate(source types.SampleSource, qe *engine.QualityEngine, options ...types.Option[*walletgate.KeyGate]) *walletgate.KeyGate {
	return walletgate.NewKeyGate(source, qe, options...)
}

// GateWithLogger attaches one or more loggers to the gate.
func GateWithLogger(logger ...types.Logger) types.Option[*walletgate.KeyGate] {
	return walletgate.WithLogger(logger...)
}

// GateWithComponentMetadata overrides the gate's name and ID.
func GateWithComponentMetadata(name string, id string) types.Option[*walletgate.KeyGate] {
	return walletgate.WithComponentMetadata(name, id)
}

// BuildHostResponse flattens a report into the host-protocol result.
func BuildHostResponse(report engine.Report) walletgate.HostResponse {
	return walletgate.BuildHostResponse(report)
}
