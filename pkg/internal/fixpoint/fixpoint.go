// Package fixpoint provides the signed Q16.16 fixed-point numeric substrate
// used by the statistical acceptance tests. The target platform has no
// hardware floating point, so every calibrated bound and every accumulated
// moment is carried as a Fix.
//
// All arithmetic saturates instead of wrapping: a silent overflow inside a
// moment accumulation would corrupt a security decision, so the worst case
// here is a pegged value that fails a bounds check loudly.
package fixpoint

import (
	"math"
	"strconv"
)

// Fix is a signed fixed-point number with 16 integer bits and 16 fractional
// bits. The representable range is [-32768, 32767.99998].
type Fix int32

const (
	// One is the Fix representation of 1.0.
	One Fix = 1 << 16
	// Max is the largest representable Fix, used as the saturation ceiling.
	Max Fix = math.MaxInt32
	// Min is the smallest representable Fix, used as the saturation floor.
	Min Fix = math.MinInt32

	fracBits = 16
	// half is 0.5 in raw units, added before truncation to round to nearest.
	half int64 = 1 << (fracBits - 1)
)

// saturate clamps a raw 64-bit intermediate back into the Fix range.
func saturate(raw int64) Fix {
	if raw > int64(Max) {
		return Max
	}
	if raw < int64(Min) {
		return Min
	}
	return Fix(raw)
}

// FromInt converts an integer to Fix, saturating out-of-range values.
func FromInt(i int) Fix {
	return saturate(int64(i) << fracBits)
}

// FromFloat converts a float64 to the nearest representable Fix. It is meant
// for constructing calibration constants at startup, not for hot-path math.
func FromFloat(f float64) Fix {
	if math.IsNaN(f) {
		return 0
	}
	return saturate(int64(math.Round(f * float64(One))))
}

// Float64 returns the floating-point value of x. Diagnostic export only; the
// acceptance path never converts back to float.
func (x Fix) Float64() float64 {
	return float64(x) / float64(One)
}

// Int truncates x toward zero and returns the integer part.
func (x Fix) Int() int {
	return int(x / One)
}

// Add returns x+y with saturation.
func (x Fix) Add(y Fix) Fix {
	return saturate(int64(x) + int64(y))
}

// Sub returns x-y with saturation.
func (x Fix) Sub(y Fix) Fix {
	return saturate(int64(x) - int64(y))
}

// Mul returns x*y rounded to the nearest representable value (ties toward
// +inf) with saturation. The product is formed in 64 bits, so no precision
// is lost before the final rounding step.
func (x Fix) Mul(y Fix) Fix {
	p := int64(x)*int64(y) + half
	return saturate(p >> fracBits)
}

// Div returns x/y rounded to nearest with saturation. Division by zero
// saturates in the direction of the dividend's sign; callers guard the
// degenerate cases they care about (see moments.Estimate).
func (x Fix) Div(y Fix) Fix {
	if y == 0 {
		if x >= 0 {
			return Max
		}
		return Min
	}
	// One extra quotient bit for round-to-nearest.
	q := (int64(x) << (fracBits + 1)) / int64(y)
	if q >= 0 {
		q = (q + 1) >> 1
	} else {
		q = -((-q + 1) >> 1)
	}
	return saturate(q)
}

// Neg returns -x with saturation (Neg(Min) == Max).
func (x Fix) Neg() Fix {
	return saturate(-int64(x))
}

// Abs returns |x| with saturation.
func (x Fix) Abs() Fix {
	if x < 0 {
		return x.Neg()
	}
	return x
}

// Sqrt returns the square root of x, computed bit by bit over a 64-bit
// radicand so the full fractional precision of the result is retained.
// Negative inputs return 0; the only caller passes a second central moment,
// which is non-negative by construction.
func (x Fix) Sqrt() Fix {
	if x <= 0 {
		return 0
	}
	n := uint64(x) << fracBits
	var r uint64
	bit := uint64(1) << 46 // highest even bit position for a 47-bit radicand
	for bit > n {
		bit >>= 2
	}
	for bit != 0 {
		if n >= r+bit {
			n -= r + bit
			r = (r >> 1) + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return Fix(r)
}

// Reciprocal returns 1/n as a Fix. The statistical accumulators use
// precomputed reciprocals so the per-sample hot path multiplies instead of
// divides; n is a power of two in every calibrated configuration, which
// makes the result exact.
func Reciprocal(n int) Fix {
	return One.Div(FromInt(n))
}

// String formats x with full fractional precision for logs and diagnostics.
func (x Fix) String() string {
	return strconv.FormatFloat(x.Float64(), 'f', 5, 64)
}
