package bandwidth_test

import (
	"math"
	"testing"

	"github.com/entropic-dev/galvanometer/pkg/internal/bandwidth"
	"github.com/entropic-dev/galvanometer/pkg/internal/spectrum"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
)

// flatBand builds a synthetic averaged spectrum: unit power inside
// [low, high), a small floor outside, and a DC spike that must be ignored.
func flatBand(blockSize, low, high int, floor float64) spectrum.PowerSpectrum {
	power := make([]float64, blockSize/2)
	for k := range power {
		power[k] = floor
	}
	for k := low; k < high; k++ {
		power[k] = 1
	}
	power[0] = 50 // DC offset, never a peak candidate
	return spectrum.PowerSpectrum{Power: power, BlockSize: blockSize, Blocks: 16}
}

func TestDetectFindsBandEdges(t *testing.T) {
	cal := verdict.DefaultCalibration()
	ps := flatBand(256, 20, 80, 1e-6)

	est := bandwidth.Detect(cal, ps)

	if est.PeakBin < 20 || est.PeakBin >= 80 {
		t.Fatalf("PeakBin = %d, want inside [20,80)", est.PeakBin)
	}
	if !est.LowerFound || !est.UpperFound {
		t.Fatalf("edges not found: %+v", est)
	}
	if est.LowerBin != 19 {
		t.Errorf("LowerBin = %d, want 19", est.LowerBin)
	}
	if est.UpperBin != 80 {
		t.Errorf("UpperBin = %d, want 80", est.UpperBin)
	}

	width, ok := est.Width()
	if !ok {
		t.Fatal("Width() not ok with both edges found")
	}
	want := (80.0 - 19.0) / 256.0
	if diff := math.Abs(width.Float64() - want); diff > 1e-4 {
		t.Errorf("Width() = %v, want %v", width.Float64(), want)
	}
}

func TestDetectIgnoresDCPeak(t *testing.T) {
	cal := verdict.DefaultCalibration()
	ps := flatBand(256, 20, 80, 1e-6)
	ps.Power[0] = 1e9

	est := bandwidth.Detect(cal, ps)
	if est.PeakBin == 0 {
		t.Fatal("peak search considered the DC bin")
	}
}

// TestDetectSingleBinDipIsNotAnEdge puts one below-threshold bin inside the
// band. One bin is a statistical fluctuation, not an edge; the repetition
// requirement must scan straight past it.
func TestDetectSingleBinDipIsNotAnEdge(t *testing.T) {
	cal := verdict.DefaultCalibration()
	ps := flatBand(256, 20, 80, 1e-6)
	ps.Power[50] = 1e-6

	est := bandwidth.Detect(cal, ps)

	if !est.LowerFound || !est.UpperFound {
		t.Fatalf("edges not found: %+v", est)
	}
	if est.LowerBin != 19 || est.UpperBin != 80 {
		t.Errorf("edges = (%d, %d), want (19, 80): dip treated as edge", est.LowerBin, est.UpperBin)
	}
}

// TestDetectEdgeIsFirstBinOfRun checks the edge lands on the first
// below-threshold bin of the qualifying run, not the bin that completed it.
func TestDetectEdgeIsFirstBinOfRun(t *testing.T) {
	cal := verdict.DefaultCalibration()
	ps := flatBand(256, 20, 80, 1e-6)

	// A four-bin dip right above the band, one above-threshold bin, then
	// the true edge. The dip is one bin short of qualifying and must be
	// discarded entirely.
	for k := 80; k < 84; k++ {
		ps.Power[k] = 1e-6
	}
	ps.Power[84] = 1
	// Band continues above the spoiler, then falls away for good.
	for k := 85; k < 90; k++ {
		ps.Power[k] = 1
	}

	est := bandwidth.Detect(cal, ps)

	if !est.UpperFound {
		t.Fatalf("upper edge not found: %+v", est)
	}
	if est.UpperBin != 90 {
		t.Errorf("UpperBin = %d, want 90 (start of the qualifying run)", est.UpperBin)
	}
}

// TestDetectMissingEdge drives a band flush against DC: the power never
// settles below threshold on the low side, so the lower edge must be
// reported missing rather than clamped.
func TestDetectMissingEdge(t *testing.T) {
	cal := verdict.DefaultCalibration()
	ps := flatBand(256, 1, 80, 1e-6)

	est := bandwidth.Detect(cal, ps)

	if est.LowerFound {
		t.Errorf("lower edge reported found at %d for band flush against DC", est.LowerBin)
	}
	if !est.UpperFound {
		t.Errorf("upper edge should be found: %+v", est)
	}
	if _, ok := est.Width(); ok {
		t.Error("Width() ok with a missing edge")
	}
}

// TestDetectExactRunLength places exactly the calibrated number of
// below-threshold bins at the end of the spectrum and checks they qualify.
func TestDetectExactRunLength(t *testing.T) {
	cal := verdict.DefaultCalibration()
	blockSize := 256
	bins := blockSize / 2

	ps := flatBand(blockSize, 20, bins-cal.PSDThresholdRepetitions, 1e-6)

	est := bandwidth.Detect(cal, ps)

	if !est.UpperFound {
		t.Fatalf("run of exactly %d bins did not qualify", cal.PSDThresholdRepetitions)
	}
	if est.UpperBin != bins-cal.PSDThresholdRepetitions {
		t.Errorf("UpperBin = %d, want %d", est.UpperBin, bins-cal.PSDThresholdRepetitions)
	}

	// One bin fewer must not qualify.
	ps = flatBand(blockSize, 20, bins-cal.PSDThresholdRepetitions+1, 1e-6)
	est = bandwidth.Detect(cal, ps)
	if est.UpperFound {
		t.Errorf("run of %d bins qualified, requires %d", cal.PSDThresholdRepetitions-1, cal.PSDThresholdRepetitions)
	}
}

func TestDetectEmptySpectrum(t *testing.T) {
	cal := verdict.DefaultCalibration()
	est := bandwidth.Detect(cal, spectrum.PowerSpectrum{BlockSize: 256})
	if est.LowerFound || est.UpperFound {
		t.Errorf("edges found in empty spectrum: %+v", est)
	}
}
