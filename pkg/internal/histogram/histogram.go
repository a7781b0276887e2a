// Package histogram bins raw ADC samples into a fixed-width distribution
// table. The histogram makes no acceptance decision itself; it exists for
// diagnostic export and distribution-shape checks run by the calibration
// tooling.
package histogram

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// Histogram is a per-ADC-value count table for one sample batch. Bin
// counters saturate at their configured capacity instead of wrapping; the
// batch total is tracked separately so the sample accounting stays exact
// even when a bin pegs.
type Histogram struct {
	counts     []uint16
	saturation uint16
	total      uint32
}

// Accumulate builds the distribution table for one batch. The batch is
// assumed to have passed types.SampleBatch.Validate, so every sample indexes
// a real bin.
func Accumulate(cal types.Calibration, batch types.SampleBatch) *Histogram {
	h := &Histogram{
		counts:     make([]uint16, cal.HistogramNumBins),
		saturation: uint16(1<<cal.BitsPerHistogramBin - 1),
	}
	for _, s := range batch {
		if h.counts[s] < h.saturation {
			h.counts[s]++
		}
		h.total++
	}
	return h
}

// Bin returns the saturating count for one ADC value.
func (h *Histogram) Bin(v types.Sample) uint16 {
	return h.counts[v]
}

// NumBins returns the number of bins in the table.
func (h *Histogram) NumBins() int {
	return len(h.counts)
}

// Saturation returns the per-bin counter ceiling.
func (h *Histogram) Saturation() uint16 {
	return h.saturation
}

// Total returns the number of samples observed, counting every sample even
// when its bin had already saturated.
func (h *Histogram) Total() uint32 {
	return h.total
}

// Counts returns a copy of the bin table for diagnostic export.
func (h *Histogram) Counts() []uint16 {
	out := make([]uint16, len(h.counts))
	copy(out, h.counts)
	return out
}

// ChiSquare computes Pearson's statistic against an expected distribution
// over the same bins. Diagnostic use only: the calibration tooling compares
// captured batches against the front-end's measured reference shape. Bins
// with a nonpositive expectation are skipped.
func (h *Histogram) ChiSquare(expected []float64) float64 {
	var chi2 float64
	n := len(h.counts)
	if len(expected) < n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		if expected[i] <= 0 {
			continue
		}
		d := float64(h.counts[i]) - expected[i]
		chi2 += d * d / expected[i]
	}
	return chi2
}
