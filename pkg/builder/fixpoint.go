package builder

import (
	"github.com/entropic-dev/galvanometer/pkg/internal/fixpoint"
)

// Fix is the signed Q16.16 fixed-point number used by the acceptance math.
type Fix = fixpoint.Fix

// FixFromFloat converts a float64 to fixed point, saturating out-of-range
// values.
func FixFromFloat(f float64) fixpoint.Fix {
	return fixpoint.FromFloat(f)
}

// FixFromInt converts an integer to fixed point, saturating out-of-range
// values.
func FixFromInt(i int) fixpoint.Fix {
	return fixpoint.FromInt(i)
}
