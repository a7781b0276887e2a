package verdict

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/fixpoint"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// Measured characteristics of the reference analog front end. Everything
// below was determined empirically against that one hardware design; a
// different front end means re-measuring, not re-deriving in code.
const (
	// centralMean is the nominal ADC mean, as measured.
	centralMean = 311.47
	// centralVariance is the nominal ADC variance, as measured.
	centralVariance = 1201.7

	// Worst-case mean drift: a 3.2% swing from two 1%-tolerance resistors
	// over a 60 K temperature range, 65 counts of op-amp input offset
	// through the gain stage, and 4 counts of total ADC error.
	meanDriftFactor = 0.032
	meanDriftOffset = 65.0 + 4.0

	// Variance bound factors: Johnson-Nyquist amplitude over the operating
	// temperature range, resistor drift through the filter chain, 5-sigma
	// statistical fluctuation at N=4096 (measured), and ADC gain error.
	minVarianceFactor = 0.846 * 0.817 * 0.805 * 0.988
	maxVarianceFactor = 1.154 * 1.224 * 1.195 * 1.012

	// 5-sigma points of the standardized moment estimators at N=4096,
	// measured. The kurtosis pair is asymmetric on purpose: at this sample
	// size the kurtosis estimator's own distribution is skewed (about
	// 0.35), so its upper tail sits further from zero than its lower.
	maxSkewness = 0.237
	minKurtosis = -0.48
	maxKurtosis = 0.65

	// Band-edge threshold relative to peak power. The conventional 3 dB
	// point would be 0.5, but each bin of the averaged estimate fluctuates
	// with a standard deviation near 1.7 dB (measured), so the threshold is
	// lowered by about 8.5 dB to put 5-sigma single-bin excursions below it.
	psdBandwidthThreshold = 0.0329
	// Consecutive below-threshold bins required to accept a band edge.
	psdThresholdRepetitions = 5

	// Peak frequency window, as fractions of the sampling rate: safely below
	// the front end's high-pass cutoff and above its low-pass cutoff.
	minPeakFrequency = 0.0227
	maxPeakFrequency = 0.408
	// Minimum acceptable band width as a fraction of the sampling rate. Not
	// derated for statistical fluctuation; the threshold and repetition
	// count already absorb that.
	minBandwidth = 0.0726
)

// DefaultCalibration returns the acceptance bounds for the reference
// hardware, converted into fixed point once at startup.
func DefaultCalibration() types.Calibration {
	return types.Calibration{
		SampleCount:         4096,
		SampleScaleDown:     64,
		HistogramNumBins:    1024,
		BitsPerHistogramBin: 11,
		TransformBlockSize:  256,

		MinMean:     fixpoint.FromFloat((1-meanDriftFactor)*centralMean - meanDriftOffset),
		MaxMean:     fixpoint.FromFloat((1+meanDriftFactor)*centralMean + meanDriftOffset),
		MinVariance: fixpoint.FromFloat(minVarianceFactor * centralVariance),
		MaxVariance: fixpoint.FromFloat(maxVarianceFactor * centralVariance),
		MaxSkewness: fixpoint.FromFloat(maxSkewness),
		MinKurtosis: fixpoint.FromFloat(minKurtosis),
		MaxKurtosis: fixpoint.FromFloat(maxKurtosis),

		PSDBandwidthThreshold:   fixpoint.FromFloat(psdBandwidthThreshold),
		PSDThresholdRepetitions: psdThresholdRepetitions,
		MinPeakFrequency:        fixpoint.FromFloat(minPeakFrequency),
		MaxPeakFrequency:        fixpoint.FromFloat(maxPeakFrequency),
		MinBandwidth:            fixpoint.FromFloat(minBandwidth),
	}
}
