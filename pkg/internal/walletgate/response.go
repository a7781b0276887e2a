package walletgate

import (
	"fmt"

	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
)

// HostResponse is the boundary value handed to the host-device protocol
// layer: a plain success, or a failure with an explanatory message. The
// framing and transport of the actual wire message are the protocol layer's
// business, not the engine's.
type HostResponse struct {
	Success bool
	Message string
}

// BuildHostResponse maps a test report onto the success/failure shape the
// host expects. Failure messages name the failing test and the observed
// value so build-time tooling on the host side can log something useful.
func BuildHostResponse(report engine.Report) HostResponse {
	v := report.Verdict
	if v.Pass {
		return HostResponse{Success: true}
	}
	msg := fmt.Sprintf("entropy self-test failed: %s out of bounds (observed %s, acceptable [%s, %s])",
		v.Failed, v.Observed, v.AcceptableMin, v.AcceptableMax)
	if v.Detail != "" {
		msg = fmt.Sprintf("entropy self-test failed: %s: %s", v.Failed, v.Detail)
	}
	return HostResponse{Success: false, Message: msg}
}
