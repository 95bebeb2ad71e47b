package ink

import (
	"math"

	"github.com/chewxy/math32"
)

// Point represents a 2D point or vector with float32 coordinates.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Negate returns the point with both coordinates negated.
func (p Point) Negate() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
//
// The squared length can overflow float32 even when the length itself is
// representable, so the computation falls back to float64 when needed.
func (p Point) Length() float32 {
	mag2 := p.X*p.X + p.Y*p.Y
	if isFinite(mag2) {
		return math32.Sqrt(mag2)
	}
	xx := float64(p.X)
	yy := float64(p.Y)
	return float32(math.Sqrt(xx*xx + yy*yy))
}

// LengthSq returns the squared length of the vector.
func (p Point) LengthSq() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	return p.Sub(q).Length()
}

// DistanceToSq returns the squared distance between two points.
func (p Point) DistanceToSq(q Point) float32 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	// Zero-scale each coordinate before multiplying so large finite
	// values cannot overflow the product into Inf.
	accum := p.X * 0
	accum *= p.Y * 0
	return accum == 0
}

// CanNormalize reports whether the vector has a well-defined direction:
// finite coordinates and nonzero length.
func (p Point) CanNormalize() bool {
	return p.IsFinite() && !p.IsZero()
}

// Normalize returns a unit vector in the same direction.
// It reports false when the vector is degenerate (zero length, or so
// large or small that normalizing produces a non-finite result), in
// which case the zero point is returned.
func (p Point) Normalize() (Point, bool) {
	return p.SetLength(1.0)
}

// SetLength returns the vector scaled to the given length.
// It reports false when the vector cannot be scaled (see Normalize).
//
// The scale factor is computed in float64: the squared magnitude of a
// large but representable vector overflows float32.
func (p Point) SetLength(length float32) (Point, bool) {
	xx := float64(p.X)
	yy := float64(p.Y)
	dmag := math.Sqrt(xx*xx + yy*yy)
	dscale := float64(length) / dmag
	x := float32(xx * dscale)
	y := float32(yy * dscale)
	if !isFinite(x) || !isFinite(y) || (x == 0 && y == 0) {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// RotateCW returns the vector rotated 90 degrees clockwise
// (in the y-down coordinate system used throughout ink).
func (p Point) RotateCW() Point {
	return Point{X: -p.Y, Y: p.X}
}

// RotateCCW returns the vector rotated 90 degrees counter-clockwise.
func (p Point) RotateCCW() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// NearlyEqual reports whether p and q are equal within scalarNearlyZero
// on both axes.
func (p Point) NearlyEqual(q Point) bool {
	return nearlyZero(p.X-q.X) && nearlyZero(p.Y-q.Y)
}

// equalsWithinTolerance reports whether p and q are equal within the
// given tolerance on both axes.
func (p Point) equalsWithinTolerance(q Point, tolerance float32) bool {
	return nearlyZeroWithin(p.X-q.X, tolerance) && nearlyZeroWithin(p.Y-q.Y, tolerance)
}
