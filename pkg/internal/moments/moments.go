// Package moments derives the central-moment statistics of a sample batch in
// Q16.16 fixed point. This is the numerically hostile part of the pipeline:
// the raw sums of squared, cubed and fourth-power deviations of 4096 ten-bit
// samples would silently blow past the 16 integer bits available, so every
// accumulation is scaled down before it grows, and every multiply saturates
// rather than wraps.
//
// Range reasoning, with S = SampleScaleDown (64) and N = SampleCount (4096):
//
//	scaled sample  v/S            <= 1023/64  < 16
//	deviation      d = v/S - mean, |d| < 16
//	d^2            < 256
//	d^3            < 4096
//	d^2 * (d^2/N)  < 256 * 0.0625 = 16
//
// Every intermediate stays clear of the 32767 ceiling, and the fourth power
// is never formed directly: d^4 alone (up to 65536) would not fit, so one
// factor is pre-divided by N first. Division by S and N happens as a
// multiply with a precomputed reciprocal; both are powers of two, so the
// reciprocals are exact.
package moments

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/fixpoint"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// Summary holds the four derived statistics for one batch. Mean and Variance
// are reported in ADC output units (the scale-down is undone at the end);
// Skewness and ExcessKurtosis are standardized and therefore scale-free.
type Summary struct {
	Mean           fixpoint.Fix
	Variance       fixpoint.Fix
	Skewness       fixpoint.Fix
	ExcessKurtosis fixpoint.Fix
	// Degenerate is set when the second central moment is zero (all samples
	// identical): skewness and kurtosis are undefined and reported as zero
	// rather than computed through a division by zero.
	Degenerate bool
}

// Estimate computes the batch's moment summary with a two-pass scheme: the
// mean first, then the central moments against it. The single-pass
// sum-of-squares shortcut is deliberately avoided; in fixed point its
// catastrophic cancellation would eat the entire fractional precision.
func Estimate(cal types.Calibration, batch types.SampleBatch) Summary {
	recipCount := fixpoint.Reciprocal(cal.SampleCount)
	recipScale := fixpoint.Reciprocal(cal.SampleScaleDown)
	scaleUp := fixpoint.FromInt(cal.SampleScaleDown)

	// Pass 1: mean of the scaled samples. Each term is shrunk by 1/N before
	// accumulation, keeping the running sum below 16 regardless of content.
	var mean fixpoint.Fix
	for _, s := range batch {
		scaled := fixpoint.FromInt(int(s)).Mul(recipScale)
		mean = mean.Add(scaled.Mul(recipCount))
	}

	// Pass 2: second, third and fourth central moments of the scaled
	// samples relative to the scaled mean.
	var m2, m3, m4 fixpoint.Fix
	for _, s := range batch {
		d := fixpoint.FromInt(int(s)).Mul(recipScale).Sub(mean)
		d2 := d.Mul(d)
		m2 = m2.Add(d2.Mul(recipCount))
		m3 = m3.Add(d2.Mul(d).Mul(recipCount))
		// d^4 would overflow; shrink one factor by 1/N first.
		m4 = m4.Add(d2.Mul(recipCount).Mul(d2))
	}

	out := Summary{
		Mean: mean.Mul(scaleUp),
		// Variance in ADC units is m2 * S^2. This can saturate for batches
		// far outside calibration (e.g. samples split between the rails);
		// the pegged value still fails the variance bound on the same side.
		Variance: m2.Mul(scaleUp).Mul(scaleUp),
	}

	if m2 == 0 {
		out.Degenerate = true
		return out
	}

	// Standardized moments: m3 / m2^1.5 and m4 / m2^2 - 3.
	out.Skewness = m3.Div(m2.Mul(m2.Sqrt()))
	out.ExcessKurtosis = m4.Div(m2.Mul(m2)).Sub(fixpoint.FromInt(3))
	return out
}
