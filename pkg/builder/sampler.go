package builder

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/sampler"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// Sample is one raw ADC reading.
type Sample = types.Sample

// SampleBatch is one test run's worth of samples.
type SampleBatch = types.SampleBatch

// SampleSource produces sample batches on demand.
type SampleSource = types.SampleSource

// MaxSampleValue is the largest value the ADC can emit.
const MaxSampleValue = types.MaxSampleValue

// SimulatedSource synthesizes band-limited Gaussian noise shaped like the
// reference front end's output.
type SimulatedSource = sampler.SimulatedSource

// SliceSource replays a fixed sequence of captured samples.
type SliceSource = sampler.SliceSource

// NewSimulatedSource creates a simulated noise source. Without options it
// reproduces the reference hardware's measured statistics with seed 1.
func NewSimulatedSource(options ...types.Option[*sampler.SimulatedSource]) *sampler.SimulatedSource {
	return sampler.NewSimulatedSource(options...)
}

// SimulatedWithSeed fixes the simulation's random seed.
func SimulatedWithSeed(seed int64) types.Option[*sampler.SimulatedSource] {
	return sampler.WithSeed(seed)
}

// SimulatedWithMean sets the simulated ADC mean.
func SimulatedWithMean(mean float64) types.Option[*sampler.SimulatedSource] {
	return sampler.WithMean(mean)
}

// SimulatedWithStdDev sets the simulated ADC standard deviation.
func SimulatedWithStdDev(sd float64) types.Option[*sampler.SimulatedSource] {
	return sampler.WithStdDev(sd)
}

// SimulatedWithBand sets the simulated pass band as fractions of the
// sampling rate, 0 < low < high < 0.5.
func SimulatedWithBand(low, high float64) types.Option[*sampler.SimulatedSource] {
	return sampler.WithBand(low, high)
}

// NewSliceSource wraps a captured sample sequence for replay.
func NewSliceSource(samples []types.Sample) *sampler.SliceSource {
	return sampler.NewSliceSource(samples)
}
