package types_test

import (
	"testing"

	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/verdict"
)

func TestSampleBatchValidate(t *testing.T) {
	cal := verdict.DefaultCalibration()

	good := make(types.SampleBatch, cal.SampleCount)
	if err := good.Validate(cal); err != nil {
		t.Errorf("valid batch rejected: %v", err)
	}

	short := make(types.SampleBatch, cal.SampleCount-1)
	if err := short.Validate(cal); err == nil {
		t.Error("short batch accepted")
	}

	hot := make(types.SampleBatch, cal.SampleCount)
	hot[100] = types.MaxSampleValue + 1
	if err := hot.Validate(cal); err == nil {
		t.Error("out-of-range sample accepted")
	}
}

func TestCalibrationValidate(t *testing.T) {
	base := verdict.DefaultCalibration()

	cases := []struct {
		name   string
		mutate func(*types.Calibration)
	}{
		{"zero sample count", func(c *types.Calibration) { c.SampleCount = 0 }},
		{"non power-of-two block", func(c *types.Calibration) { c.TransformBlockSize = 100 }},
		{"batch not block multiple", func(c *types.Calibration) { c.SampleCount = 4096 + 128 }},
		{"non power-of-two scale", func(c *types.Calibration) { c.SampleScaleDown = 3 }},
		{"too few histogram bins", func(c *types.Calibration) { c.HistogramNumBins = 512 }},
		{"zero bin bits", func(c *types.Calibration) { c.BitsPerHistogramBin = 0 }},
		{"oversized bin bits", func(c *types.Calibration) { c.BitsPerHistogramBin = 17 }},
		{"zero repetitions", func(c *types.Calibration) { c.PSDThresholdRepetitions = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cal := base
			c.mutate(&cal)
			if err := cal.Validate(); err == nil {
				t.Error("broken calibration validated")
			}
		})
	}

	if err := base.Validate(); err != nil {
		t.Errorf("reference calibration rejected: %v", err)
	}
}
