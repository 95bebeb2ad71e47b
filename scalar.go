package ink

import "github.com/chewxy/math32"

// Scalar tolerances for single-precision geometry.
//
// The library works in float32 throughout. These tolerances assume a
// 24-bit significand; they are not suitable for float64 geometry.
const (
	// scalarNearlyZero is the tolerance below which a scalar is treated
	// as zero. 1/4096 leaves room for 12 bits of error on top of the
	// significand.
	scalarNearlyZero = 1.0 / (1 << 12)

	// scalarRoot2Over2 is sqrt(2)/2, the conic weight of a 90 degree arc.
	scalarRoot2Over2 = 0.707106781

	// scalarMax is the largest finite float32.
	scalarMax = 3.402823466e+38
)

// isFinite reports whether x is neither NaN nor infinite.
func isFinite(x float32) bool {
	// A finite value multiplied by zero is exactly zero. NaN and the
	// infinities propagate instead.
	return x*0 == 0
}

// nearlyZero reports whether x is within scalarNearlyZero of zero.
func nearlyZero(x float32) bool {
	return math32.Abs(x) <= scalarNearlyZero
}

// nearlyZeroWithin reports whether x is within tolerance of zero.
func nearlyZeroWithin(x, tolerance float32) bool {
	return math32.Abs(x) <= tolerance
}

// nearlyEqual reports whether a and b differ by at most scalarNearlyZero.
func nearlyEqual(a, b float32) bool {
	return math32.Abs(a-b) <= scalarNearlyZero
}

// ave returns the midpoint of a and b.
func ave(a, b float32) float32 {
	return (a + b) * 0.5
}

// interp returns the linear interpolation between a and b at t.
func interp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// bound clamps x to the range [min, max].
func bound(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// boundUnit clamps x to the unit range [0, 1].
func boundUnit(x float32) float32 {
	return bound(x, 0, 1)
}

// validUnitDivide computes numer/denom and reports whether the result is
// a valid parameter in the half-open range (0, 1). Negative ratios, ratios
// of at least one, and non-finite ratios are rejected.
func validUnitDivide(numer, denom float32) (float32, bool) {
	if numer < 0 {
		numer = -numer
		denom = -denom
	}
	if denom == 0 || numer == 0 || numer >= denom {
		return 0, false
	}
	r := numer / denom
	if math32.IsNaN(r) {
		return 0, false
	}
	if r == 0 {
		return 0, false
	}
	return r, true
}
