// Package verdict renders the pass/fail decision for one sample batch by
// comparing every derived statistic against its calibrated bound. A failing
// verdict is not an error condition: it is the engine doing its job when the
// hardware has degraded, and it is reported as a value with enough context
// to tell the operator which property of the noise source gave way first.
package verdict

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/bandwidth"
	"github.com/entropic-dev/galvanometer/pkg/internal/fixpoint"
	"github.com/entropic-dev/galvanometer/pkg/internal/moments"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
)

// FailedTest identifies which acceptance test a verdict failed on.
type FailedTest int

const (
	TestNone FailedTest = iota
	TestMean
	TestVariance
	TestSkewness
	TestKurtosis
	TestPeakFrequency
	TestBandwidth
)

// String returns the test's name for logs and host-facing messages.
func (t FailedTest) String() string {
	switch t {
	case TestNone:
		return "none"
	case TestMean:
		return "mean"
	case TestVariance:
		return "variance"
	case TestSkewness:
		return "skewness"
	case TestKurtosis:
		return "kurtosis"
	case TestPeakFrequency:
		return "peak frequency"
	case TestBandwidth:
		return "bandwidth"
	default:
		return "unknown"
	}
}

// Verdict is the single structured result of one test run. It is immutable
// once produced; the wallet-initialization flow consumes it and nothing else.
type Verdict struct {
	Pass bool
	// Failed names the first test that failed, or TestNone.
	Failed FailedTest
	// Observed is the measured value of the failing statistic.
	Observed fixpoint.Fix
	// AcceptableMin and AcceptableMax bound the failing statistic's
	// calibrated acceptance window.
	AcceptableMin fixpoint.Fix
	AcceptableMax fixpoint.Fix
	// Detail carries a short human-readable qualifier for cases a numeric
	// range cannot express, such as a band edge that was never found.
	Detail string
}

// CheckResult is one acceptance test's outcome, used by the diagnostic path
// that wants every test evaluated rather than the first failure.
type CheckResult struct {
	Test          FailedTest
	Pass          bool
	Observed      fixpoint.Fix
	AcceptableMin fixpoint.Fix
	AcceptableMax fixpoint.Fix
	Detail        string
}

// Evaluate runs the acceptance tests in fixed order and stops at the first
// failure. The ordering puts the cheap moment bounds ahead of the spectral
// ones; a grossly broken source is rejected before its spectrum matters.
func Evaluate(cal types.Calibration, ms moments.Summary, bw bandwidth.Estimate) Verdict {
	for _, c := range runChecks(cal, ms, bw) {
		if !c.Pass {
			return Verdict{
				Pass:          false,
				Failed:        c.Test,
				Observed:      c.Observed,
				AcceptableMin: c.AcceptableMin,
				AcceptableMax: c.AcceptableMax,
				Detail:        c.Detail,
			}
		}
	}
	return Verdict{Pass: true, Failed: TestNone}
}

// EvaluateAll runs every acceptance test regardless of earlier failures.
// Calibration tooling uses this to see the whole picture of a failing batch.
func EvaluateAll(cal types.Calibration, ms moments.Summary, bw bandwidth.Estimate) []CheckResult {
	return runChecks(cal, ms, bw)
}

func runChecks(cal types.Calibration, ms moments.Summary, bw bandwidth.Estimate) []CheckResult {
	checks := make([]CheckResult, 0, 6)

	checks = append(checks, CheckResult{
		Test:          TestMean,
		Pass:          ms.Mean >= cal.MinMean && ms.Mean <= cal.MaxMean,
		Observed:      ms.Mean,
		AcceptableMin: cal.MinMean,
		AcceptableMax: cal.MaxMean,
	})

	checks = append(checks, CheckResult{
		Test:          TestVariance,
		Pass:          ms.Variance >= cal.MinVariance && ms.Variance <= cal.MaxVariance,
		Observed:      ms.Variance,
		AcceptableMin: cal.MinVariance,
		AcceptableMax: cal.MaxVariance,
	})

	skew := CheckResult{
		Test:          TestSkewness,
		Observed:      ms.Skewness,
		AcceptableMin: cal.MaxSkewness.Neg(),
		AcceptableMax: cal.MaxSkewness,
	}
	if ms.Degenerate {
		skew.Detail = "skewness undefined for zero-variance batch"
	} else {
		skew.Pass = ms.Skewness.Abs() <= cal.MaxSkewness
	}
	checks = append(checks, skew)

	kurt := CheckResult{
		Test:          TestKurtosis,
		Observed:      ms.ExcessKurtosis,
		AcceptableMin: cal.MinKurtosis,
		AcceptableMax: cal.MaxKurtosis,
	}
	if ms.Degenerate {
		kurt.Detail = "kurtosis undefined for zero-variance batch"
	} else {
		kurt.Pass = ms.ExcessKurtosis >= cal.MinKurtosis && ms.ExcessKurtosis <= cal.MaxKurtosis
	}
	checks = append(checks, kurt)

	checks = append(checks, CheckResult{
		Test:          TestPeakFrequency,
		Pass:          bw.PeakFraction >= cal.MinPeakFrequency && bw.PeakFraction <= cal.MaxPeakFrequency,
		Observed:      bw.PeakFraction,
		AcceptableMin: cal.MinPeakFrequency,
		AcceptableMax: cal.MaxPeakFrequency,
	})

	bwCheck := CheckResult{
		Test:          TestBandwidth,
		AcceptableMin: cal.MinBandwidth,
		AcceptableMax: fixpoint.Max,
	}
	switch width, ok := bw.Width(); {
	case !ok && !bw.LowerFound && !bw.UpperFound:
		bwCheck.Detail = "no band edges found before spectrum end"
	case !ok && !bw.LowerFound:
		bwCheck.Detail = "lower band edge not found before spectrum end"
	case !ok:
		bwCheck.Detail = "upper band edge not found before spectrum end"
	default:
		bwCheck.Observed = width
		bwCheck.Pass = width >= cal.MinBandwidth
	}
	checks = append(checks, bwCheck)

	return checks
}
