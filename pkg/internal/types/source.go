package types

import "context"

// SampleSource is the boundary to the ADC sampling subsystem. The analysis
// engine never initiates sampling itself; a caller collects a full batch
// from a source and only then hands it to the engine. Collect is the only
// place the system waits, so it takes a context; the analysis that follows
// is pure computation and runs to completion unconditionally.
type SampleSource interface {
	// Collect blocks until count samples have been gathered or the context
	// is cancelled. Implementations must return a freshly allocated batch on
	// every call: batches are owned by a single test run.
	Collect(ctx context.Context, count int) (SampleBatch, error)
}
