package moments_test

import (
	"context"
	"math"
	"testing"

	"github.com/entropic-dev/galvanometer/pkg/internal/moments"
	"github.com/entropic-dev/galvanometer/pkg/internal/sampler"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
	"gonum.org/v1/gonum/stat"
)

// collectBatch synthesizes one reference-shaped batch for the oracle tests.
func collectBatch(t *testing.T, seed int64) types.SampleBatch {
	t.Helper()
	cal := verdict.DefaultCalibration()
	source := sampler.NewSimulatedSource(sampler.WithSeed(seed))
	batch, err := source.Collect(context.Background(), cal.SampleCount)
	if err != nil {
		t.Fatalf("collecting batch: %v", err)
	}
	return batch
}

// TestEstimateAgainstFloatOracle checks the fixed-point pipeline against
// gonum's floating-point estimators. The tolerances cover the Q16.16
// rounding noise plus gonum's small-sample bias corrections; both are orders
// of magnitude below the calibrated acceptance windows.
func TestEstimateAgainstFloatOracle(t *testing.T) {
	cal := verdict.DefaultCalibration()

	for _, seed := range []int64{1, 7, 42} {
		batch := collectBatch(t, seed)
		got := moments.Estimate(cal, batch)

		float := make([]float64, len(batch))
		for i, s := range batch {
			float[i] = float64(s)
		}
		wantMean := stat.Mean(float, nil)
		wantVariance := stat.Variance(float, nil)
		wantSkew := stat.Skew(float, nil)
		wantKurt := stat.ExKurtosis(float, nil)

		if got.Degenerate {
			t.Fatalf("seed %d: unexpected degenerate summary", seed)
		}
		if diff := math.Abs(got.Mean.Float64() - wantMean); diff > 1.0 {
			t.Errorf("seed %d: mean = %v, oracle %v (diff %v)", seed, got.Mean, wantMean, diff)
		}
		if diff := math.Abs(got.Variance.Float64() - wantVariance); diff > 0.02*wantVariance {
			t.Errorf("seed %d: variance = %v, oracle %v (diff %v)", seed, got.Variance, wantVariance, diff)
		}
		if diff := math.Abs(got.Skewness.Float64() - wantSkew); diff > 0.03 {
			t.Errorf("seed %d: skewness = %v, oracle %v (diff %v)", seed, got.Skewness, wantSkew, diff)
		}
		if diff := math.Abs(got.ExcessKurtosis.Float64() - wantKurt); diff > 0.06 {
			t.Errorf("seed %d: excess kurtosis = %v, oracle %v (diff %v)", seed, got.ExcessKurtosis, wantKurt, diff)
		}
	}
}

func TestEstimateConstantBatchIsDegenerate(t *testing.T) {
	cal := verdict.DefaultCalibration()
	batch := make(types.SampleBatch, cal.SampleCount)
	for i := range batch {
		batch[i] = 512
	}

	got := moments.Estimate(cal, batch)

	if !got.Degenerate {
		t.Fatal("constant batch not flagged degenerate")
	}
	if diff := math.Abs(got.Mean.Float64() - 512); diff > 1.0 {
		t.Errorf("mean = %v, want 512", got.Mean)
	}
	if got.Variance != 0 {
		t.Errorf("variance = %v, want 0", got.Variance)
	}
	if got.Skewness != 0 || got.ExcessKurtosis != 0 {
		t.Errorf("degenerate summary carries nonzero standardized moments: %+v", got)
	}
}

// TestEstimateTwoValueBatch exercises a distribution with known closed-form
// moments: half the samples at a, half at b gives variance ((b-a)/2)^2 and
// excess kurtosis -2.
func TestEstimateTwoValueBatch(t *testing.T) {
	cal := verdict.DefaultCalibration()
	batch := make(types.SampleBatch, cal.SampleCount)
	for i := range batch {
		if i%2 == 0 {
			batch[i] = 280
		} else {
			batch[i] = 344
		}
	}

	got := moments.Estimate(cal, batch)

	if diff := math.Abs(got.Mean.Float64() - 312); diff > 1.0 {
		t.Errorf("mean = %v, want 312", got.Mean)
	}
	if diff := math.Abs(got.Variance.Float64() - 1024); diff > 25 {
		t.Errorf("variance = %v, want 1024", got.Variance)
	}
	if diff := math.Abs(got.Skewness.Float64()); diff > 0.03 {
		t.Errorf("skewness = %v, want 0", got.Skewness)
	}
	if diff := math.Abs(got.ExcessKurtosis.Float64() - (-2)); diff > 0.06 {
		t.Errorf("excess kurtosis = %v, want -2", got.ExcessKurtosis)
	}
}

// TestEstimateRailSplitSaturatesVariance drives the worst-case input: samples
// split between the ADC rails. The reported variance pegs at the fixed-point
// ceiling, which still fails the calibrated upper bound the same way the
// true value would.
func TestEstimateRailSplitSaturatesVariance(t *testing.T) {
	cal := verdict.DefaultCalibration()
	batch := make(types.SampleBatch, cal.SampleCount)
	for i := range batch {
		if i%2 == 0 {
			batch[i] = 0
		} else {
			batch[i] = 1023
		}
	}

	got := moments.Estimate(cal, batch)

	// True variance is (1023/2)^2 = 261632, far beyond the Q16.16 ceiling.
	if got.Variance.Float64() > cal.MaxVariance.Float64() && got.Variance != 0 {
		return
	}
	t.Errorf("rail-split variance = %v, want above MaxVariance %v", got.Variance, cal.MaxVariance)
}
