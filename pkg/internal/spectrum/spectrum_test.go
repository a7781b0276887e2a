package spectrum_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/entropic-dev/galvanometer/pkg/internal/spectrum"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
)

func TestEstimateShape(t *testing.T) {
	cal := verdict.DefaultCalibration()
	batch := make(types.SampleBatch, cal.SampleCount)

	ps, err := spectrum.Estimate(cal, batch)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if len(ps.Power) != cal.TransformBlockSize/2 {
		t.Errorf("len(Power) = %d, want %d", len(ps.Power), cal.TransformBlockSize/2)
	}
	if ps.BlockSize != cal.TransformBlockSize {
		t.Errorf("BlockSize = %d, want %d", ps.BlockSize, cal.TransformBlockSize)
	}
	if ps.Blocks != cal.SampleCount/cal.TransformBlockSize {
		t.Errorf("Blocks = %d, want %d", ps.Blocks, cal.SampleCount/cal.TransformBlockSize)
	}
}

func TestEstimateRejectsPartialBlock(t *testing.T) {
	cal := verdict.DefaultCalibration()
	batch := make(types.SampleBatch, cal.SampleCount-1)
	if _, err := spectrum.Estimate(cal, batch); err == nil {
		t.Fatal("expected error for batch that does not partition into blocks")
	}
}

// TestEstimateSinusoidPeak feeds a pure tone aligned to a bin and checks all
// the power lands there.
func TestEstimateSinusoidPeak(t *testing.T) {
	cal := verdict.DefaultCalibration()
	batch := make(types.SampleBatch, cal.SampleCount)

	// Bin 32 of a 256-point block is frequency fraction 0.125: exactly 32
	// cycles per block, so there is no leakage into neighboring bins.
	const bin = 32
	for i := range batch {
		v := 512 + 400*math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(cal.TransformBlockSize))
		batch[i] = types.Sample(math.Round(v))
	}

	ps, err := spectrum.Estimate(cal, batch)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	peak := 1
	for k := 2; k < len(ps.Power); k++ {
		if ps.Power[k] > ps.Power[peak] {
			peak = k
		}
	}
	if peak != bin {
		t.Fatalf("peak bin = %d, want %d", peak, bin)
	}
	if got := ps.FrequencyFraction(peak); got != 0.125 {
		t.Errorf("FrequencyFraction(%d) = %v, want 0.125", peak, got)
	}

	// A bin-aligned tone leaks nothing: everything outside DC and the tone
	// bin is quantization residue, orders of magnitude below the peak.
	for k := 1; k < len(ps.Power); k++ {
		if k == bin {
			continue
		}
		if ps.Power[k] > ps.Power[bin]*1e-4 {
			t.Errorf("bin %d holds %v, want below %v", k, ps.Power[k], ps.Power[bin]*1e-4)
		}
	}
}

// TestEstimateBlockOrderInvariant permutes whole blocks and checks the
// averaged estimate does not change.
func TestEstimateBlockOrderInvariant(t *testing.T) {
	cal := verdict.DefaultCalibration()
	rng := rand.New(rand.NewSource(3))
	batch := make(types.SampleBatch, cal.SampleCount)
	for i := range batch {
		batch[i] = types.Sample(rng.Intn(1024))
	}

	ps1, err := spectrum.Estimate(cal, batch)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	// Swap the first and last blocks.
	swapped := make(types.SampleBatch, len(batch))
	copy(swapped, batch)
	bs := cal.TransformBlockSize
	last := len(batch) - bs
	copy(swapped[:bs], batch[last:])
	copy(swapped[last:], batch[:bs])

	ps2, err := spectrum.Estimate(cal, swapped)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	for k := range ps1.Power {
		if diff := math.Abs(ps1.Power[k] - ps2.Power[k]); diff > 1e-6*ps1.Power[k]+1e-9 {
			t.Fatalf("bin %d differs after block permutation: %v vs %v", k, ps1.Power[k], ps2.Power[k])
		}
	}
}

func TestFrequencyFractionRange(t *testing.T) {
	ps := spectrum.PowerSpectrum{BlockSize: 256}
	if got := ps.FrequencyFraction(0); got != 0 {
		t.Errorf("FrequencyFraction(0) = %v", got)
	}
	if got := ps.FrequencyFraction(127); got >= 0.5 {
		t.Errorf("FrequencyFraction(127) = %v, want below 0.5", got)
	}
}
