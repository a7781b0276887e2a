// Package sampler provides implementations of the types.SampleSource
// boundary: the engine never initiates sampling, so everything that produces
// batches — real ADC front ends, captured-data replays, and the simulated
// noise source used by tests and examples — lives behind this interface.
package sampler

import (
	"context"
	"fmt"
	"sync"

	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// SliceSource replays a fixed sequence of captured samples, batch by batch.
// The calibration tooling uses it to re-judge batches recorded from real
// hardware.
type SliceSource struct {
	mu      sync.Mutex
	samples []types.Sample
	offset  int
}

// NewSliceSource wraps a captured sample sequence. The source does not copy
// the slice; the caller must not mutate it afterwards.
func NewSliceSource(samples []types.Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

// Collect returns the next count samples as a fresh batch, or an error once
// the capture is exhausted.
func (s *SliceSource) Collect(ctx context.Context, count int) (types.SampleBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offset+count > len(s.samples) {
		return nil, fmt.Errorf("capture exhausted: %d samples left, %d requested", len(s.samples)-s.offset, count)
	}
	batch := make(types.SampleBatch, count)
	copy(batch, s.samples[s.offset:s.offset+count])
	s.offset += count
	return batch, nil
}

// Remaining reports how many captured samples have not been replayed yet.
func (s *SliceSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples) - s.offset
}
