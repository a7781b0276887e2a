package sampler

import (
	"context"
	"math"
	"math/cmplx"
	"math/rand"
	"sync"

	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
)

// Default simulation parameters, mirroring the reference front end: the
// measured ADC mean and variance, and a pass band comfortably inside the
// calibrated peak-frequency window.
const (
	defaultSimMean    = 311.47
	defaultSimStdDev  = 34.666 // sqrt(1201.7)
	defaultSimBandLow = 0.05
	defaultSimBandHi  = 0.30
)

// SimulatedSource synthesizes band-limited Gaussian noise shaped like the
// reference analog front end's output. It exists for tests, examples and
// calibration tooling on machines with no noise hardware attached; with a
// fixed seed its output is fully deterministic.
//
// Synthesis happens in the frequency domain: each in-band frequency bin gets
// an independent complex Gaussian coefficient, everything out of band stays
// zero, and an inverse transform yields a Gaussian time series whose power
// lives exactly where the band says it should. The result is rescaled to the
// requested mean and standard deviation, then quantized to the ADC's range.
type SimulatedSource struct {
	mu       sync.Mutex
	rng      *rand.Rand
	mean     float64
	stdDev   float64
	bandLow  float64
	bandHigh float64
}

// NewSimulatedSource creates a simulated noise source. Without options it
// reproduces the reference hardware's measured statistics with seed 1.
func NewSimulatedSource(options ...types.Option[*SimulatedSource]) *SimulatedSource {
	s := &SimulatedSource{
		rng:      rand.New(rand.NewSource(1)),
		mean:     defaultSimMean,
		stdDev:   defaultSimStdDev,
		bandLow:  defaultSimBandLow,
		bandHigh: defaultSimBandHi,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// WithSeed fixes the simulation's random seed.
func WithSeed(seed int64) types.Option[*SimulatedSource] {
	return func(s *SimulatedSource) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMean sets the simulated ADC mean.
func WithMean(mean float64) types.Option[*SimulatedSource] {
	return func(s *SimulatedSource) {
		s.mean = mean
	}
}

// WithStdDev sets the simulated ADC standard deviation.
func WithStdDev(sd float64) types.Option[*SimulatedSource] {
	return func(s *SimulatedSource) {
		s.stdDev = sd
	}
}

// WithBand sets the simulated pass band as fractions of the sampling rate,
// 0 < low < high < 0.5.
func WithBand(low, high float64) types.Option[*SimulatedSource] {
	return func(s *SimulatedSource) {
		s.bandLow = low
		s.bandHigh = high
	}
}

// Collect synthesizes one fresh batch of count samples.
func (s *SimulatedSource) Collect(ctx context.Context, count int) (types.SampleBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Populate the in-band bins with complex Gaussian coefficients and keep
	// the spectrum conjugate-symmetric so the inverse transform is real.
	coeffs := make([]complex128, count)
	kLow := int(s.bandLow * float64(count))
	if kLow < 1 {
		kLow = 1
	}
	kHigh := int(s.bandHigh * float64(count))
	if kHigh > count/2-1 {
		kHigh = count/2 - 1
	}
	for k := kLow; k <= kHigh; k++ {
		c := complex(s.rng.NormFloat64(), s.rng.NormFloat64())
		coeffs[k] = c
		coeffs[count-k] = cmplx.Conj(c)
	}
	wave := fft.IFFT(coeffs)

	// Rescale the synthesized series to the requested mean and standard
	// deviation exactly, so the batch lands on calibration regardless of
	// how much power the random draw happened to produce.
	var sum, sumSq float64
	for _, c := range wave {
		v := real(c)
		sum += v
		sumSq += v * v
	}
	n := float64(count)
	mu := sum / n
	sigma := math.Sqrt(sumSq/n - mu*mu)
	if sigma == 0 {
		sigma = 1
	}
	gain := s.stdDev / sigma

	batch := make(types.SampleBatch, count)
	for i, c := range wave {
		v := s.mean + (real(c)-mu)*gain
		q := math.Round(v)
		if q < 0 {
			q = 0
		}
		if q > float64(types.MaxSampleValue) {
			q = float64(types.MaxSampleValue)
		}
		batch[i] = types.Sample(q)
	}
	return batch, nil
}
