package types

import "fmt"

// Sample is one raw reading from the noise source's analog-to-digital
// converter. The ADC is 10 bits wide, so valid values are 0 through 1023.
type Sample uint16

// MaxSampleValue is the largest value a 10-bit ADC can produce.
const MaxSampleValue Sample = 1023

// SampleBatch is one fixed-length collection of raw ADC samples, judged as a
// single independent test run. A batch is owned exclusively by the run that
// collected it: the analysis components read it, none of them mutate it, and
// nothing is carried over between batches.
type SampleBatch []Sample

// Validate checks that the batch satisfies the structural invariants the
// analysis pipeline relies on: exact calibrated length, an even partition
// into transform blocks, and every sample within the ADC's range.
func (b SampleBatch) Validate(cal Calibration) error {
	if len(b) != cal.SampleCount {
		return fmt.Errorf("sample batch has %d samples, calibration requires %d", len(b), cal.SampleCount)
	}
	if cal.TransformBlockSize <= 0 || len(b)%(2*cal.TransformBlockSize) != 0 {
		return fmt.Errorf("sample batch length %d is not a multiple of twice the transform block size %d", len(b), cal.TransformBlockSize)
	}
	for i, s := range b {
		if s > MaxSampleValue {
			return fmt.Errorf("sample %d out of ADC range: %d > %d", i, s, MaxSampleValue)
		}
	}
	return nil
}
