package types

import (
	"fmt"

	"github.com/entropic-dev/galvanometer/pkg/internal/fixpoint"
)

// Calibration is the immutable set of empirically derived constants that one
// specific analog front-end design was measured against. It is constructed
// once at startup and passed explicitly to the components that need it, so
// the engine can be exercised with alternate calibration sets in tests and
// in the build-time calibration tooling.
//
// Changing the analog hardware means re-measuring these values, not touching
// the algorithms.
type Calibration struct {
	// SampleCount is the number of ADC samples collected per test batch.
	SampleCount int
	// SampleScaleDown divides each sample before moment accumulation so the
	// running sums stay within fixed-point range. Must be a power of two so
	// the division can be replaced by a reciprocal multiply.
	SampleScaleDown int
	// HistogramNumBins is the number of histogram bins, one per possible ADC
	// value.
	HistogramNumBins int
	// BitsPerHistogramBin bounds the storage of each histogram counter; a
	// bin saturates at 2^BitsPerHistogramBin - 1.
	BitsPerHistogramBin uint
	// TransformBlockSize is the number of samples per forward-transform
	// block in the spectral estimator.
	TransformBlockSize int

	// Acceptance bounds for the moment tests, in ADC output units.
	MinMean     fixpoint.Fix
	MaxMean     fixpoint.Fix
	MinVariance fixpoint.Fix
	MaxVariance fixpoint.Fix
	// MaxSkewness bounds the standardized third central moment in either
	// direction.
	MaxSkewness fixpoint.Fix
	// Kurtosis bounds are deliberately asymmetric around zero: for 4096
	// samples the kurtosis estimator's own distribution is noticeably
	// skewed, so the measured 5-sigma points do not mirror each other.
	MinKurtosis fixpoint.Fix
	MaxKurtosis fixpoint.Fix

	// PSDBandwidthThreshold is the fraction of peak power below which a
	// spectrum bin counts as outside the noise source's band. It sits below
	// the conventional half-power point to absorb per-bin statistical
	// fluctuation in the averaged estimate.
	PSDBandwidthThreshold fixpoint.Fix
	// PSDThresholdRepetitions is the number of consecutive below-threshold
	// bins required before a band edge is accepted, rejecting single-bin
	// noise spikes.
	PSDThresholdRepetitions int

	// Acceptance bounds for the spectral tests, as fractions of the
	// sampling rate.
	MinPeakFrequency fixpoint.Fix
	MaxPeakFrequency fixpoint.Fix
	MinBandwidth     fixpoint.Fix
}

// Validate checks the structural relationships between the calibration
// values that the pipeline depends on.
func (c Calibration) Validate() error {
	if c.SampleCount <= 0 {
		return fmt.Errorf("sample count must be positive, got %d", c.SampleCount)
	}
	if c.TransformBlockSize <= 0 || c.TransformBlockSize&(c.TransformBlockSize-1) != 0 {
		return fmt.Errorf("transform block size must be a positive power of two, got %d", c.TransformBlockSize)
	}
	if c.SampleCount%(2*c.TransformBlockSize) != 0 {
		return fmt.Errorf("sample count %d must be a multiple of twice the transform block size %d", c.SampleCount, c.TransformBlockSize)
	}
	if c.SampleScaleDown <= 0 || c.SampleScaleDown&(c.SampleScaleDown-1) != 0 {
		return fmt.Errorf("sample scale-down must be a positive power of two, got %d", c.SampleScaleDown)
	}
	if c.HistogramNumBins <= int(MaxSampleValue) {
		return fmt.Errorf("histogram needs a bin per ADC value: %d bins cannot hold values up to %d", c.HistogramNumBins, MaxSampleValue)
	}
	if c.BitsPerHistogramBin == 0 || c.BitsPerHistogramBin > 16 {
		return fmt.Errorf("bits per histogram bin must be in [1,16], got %d", c.BitsPerHistogramBin)
	}
	if c.PSDThresholdRepetitions <= 0 {
		return fmt.Errorf("PSD threshold repetitions must be positive, got %d", c.PSDThresholdRepetitions)
	}
	return nil
}
