package diagnostics

import (
	"fmt"
	"os"

	"github.com/entropic-dev/galvanometer/pkg/internal/fixpoint"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
	"gopkg.in/yaml.v3"
)

// calibrationFile is the YAML shape calibration tooling edits by hand while
// trialing candidate bounds against captured data. Zero-valued fields keep
// the reference default; the production firmware path never reads this —
// shipped bounds are compiled in.
type calibrationFile struct {
	SampleCount         int `yaml:"sample_count"`
	SampleScaleDown     int `yaml:"sample_scale_down"`
	HistogramNumBins    int `yaml:"histogram_num_bins"`
	BitsPerHistogramBin int `yaml:"bits_per_histogram_bin"`
	TransformBlockSize  int `yaml:"transform_block_size"`

	MinMean     *float64 `yaml:"min_mean"`
	MaxMean     *float64 `yaml:"max_mean"`
	MinVariance *float64 `yaml:"min_variance"`
	MaxVariance *float64 `yaml:"max_variance"`
	MaxSkewness *float64 `yaml:"max_skewness"`
	MinKurtosis *float64 `yaml:"min_kurtosis"`
	MaxKurtosis *float64 `yaml:"max_kurtosis"`

	PSDBandwidthThreshold   *float64 `yaml:"psd_bandwidth_threshold"`
	PSDThresholdRepetitions int      `yaml:"psd_threshold_repetitions"`
	MinPeakFrequency        *float64 `yaml:"min_peak_frequency"`
	MaxPeakFrequency        *float64 `yaml:"max_peak_frequency"`
	MinBandwidth            *float64 `yaml:"min_bandwidth"`
}

// LoadCalibration reads a YAML calibration set, applying its fields over the
// reference defaults, and validates the result.
func LoadCalibration(path string) (types.Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Calibration{}, fmt.Errorf("reading calibration file: %w", err)
	}
	return ParseCalibration(data)
}

// ParseCalibration applies a YAML calibration document over the reference
// defaults.
func ParseCalibration(data []byte) (types.Calibration, error) {
	var f calibrationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return types.Calibration{}, fmt.Errorf("parsing calibration file: %w", err)
	}

	cal := verdict.DefaultCalibration()
	if f.SampleCount > 0 {
		cal.SampleCount = f.SampleCount
	}
	if f.SampleScaleDown > 0 {
		cal.SampleScaleDown = f.SampleScaleDown
	}
	if f.HistogramNumBins > 0 {
		cal.HistogramNumBins = f.HistogramNumBins
	}
	if f.BitsPerHistogramBin > 0 {
		cal.BitsPerHistogramBin = uint(f.BitsPerHistogramBin)
	}
	if f.TransformBlockSize > 0 {
		cal.TransformBlockSize = f.TransformBlockSize
	}
	if f.PSDThresholdRepetitions > 0 {
		cal.PSDThresholdRepetitions = f.PSDThresholdRepetitions
	}

	setFix := func(dst *fixpoint.Fix, src *float64) {
		if src != nil {
			*dst = fixpoint.FromFloat(*src)
		}
	}
	setFix(&cal.MinMean, f.MinMean)
	setFix(&cal.MaxMean, f.MaxMean)
	setFix(&cal.MinVariance, f.MinVariance)
	setFix(&cal.MaxVariance, f.MaxVariance)
	setFix(&cal.MaxSkewness, f.MaxSkewness)
	setFix(&cal.MinKurtosis, f.MinKurtosis)
	setFix(&cal.MaxKurtosis, f.MaxKurtosis)
	setFix(&cal.PSDBandwidthThreshold, f.PSDBandwidthThreshold)
	setFix(&cal.MinPeakFrequency, f.MinPeakFrequency)
	setFix(&cal.MaxPeakFrequency, f.MaxPeakFrequency)
	setFix(&cal.MinBandwidth, f.MinBandwidth)

	if err := cal.Validate(); err != nil {
		return types.Calibration{}, err
	}
	return cal, nil
}
