// Package spectrum estimates the power spectral density of a sample batch.
// A single transform over one block is far too noisy to threshold against
// calibrated bounds, so the batch is cut into non-overlapping blocks, each
// block is transformed, and the squared magnitudes are averaged across
// blocks (Bartlett's method). The batch length is constructed to be an exact
// multiple of twice the block size, so the partition never leaves a remainder.
package spectrum

import (
	"fmt"
	"math/cmplx"

	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum is the one-sided averaged power estimate for a batch:
// Power[k] is the mean squared magnitude of frequency bin k across all
// blocks, for k in [0, BlockSize/2). Power[0] is the DC bin; it carries the
// source's mean offset, not AC noise, and is excluded from every downstream
// search.
type PowerSpectrum struct {
	Power     []float64
	BlockSize int
	Blocks    int
}

// FrequencyFraction converts a bin index to a frequency expressed as a
// fraction of the sampling rate, in [0, 0.5).
func (ps PowerSpectrum) FrequencyFraction(bin int) float64 {
	return float64(bin) / float64(ps.BlockSize)
}

// Estimate computes the averaged power spectrum of the batch.
func Estimate(cal types.Calibration, batch types.SampleBatch) (PowerSpectrum, error) {
	blockSize := cal.TransformBlockSize
	if blockSize <= 0 || len(batch)%blockSize != 0 {
		return PowerSpectrum{}, fmt.Errorf("batch length %d does not partition into blocks of %d", len(batch), blockSize)
	}
	numBlocks := len(batch) / blockSize

	ps := PowerSpectrum{
		Power:     make([]float64, blockSize/2),
		BlockSize: blockSize,
		Blocks:    numBlocks,
	}

	block := make([]float64, blockSize)
	for b := 0; b < numBlocks; b++ {
		for i := 0; i < blockSize; i++ {
			block[i] = float64(batch[b*blockSize+i])
		}
		coeffs := fft.FFTReal(block)
		for k := range ps.Power {
			mag := cmplx.Abs(coeffs[k])
			ps.Power[k] += mag * mag
		}
	}

	// Average across blocks; summation order is irrelevant, so permuting
	// the blocks yields the identical estimate.
	inv := 1 / float64(numBlocks)
	for k := range ps.Power {
		ps.Power[k] *= inv
	}
	return ps, nil
}
