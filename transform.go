package ink

import "github.com/chewxy/math32"

// Transform is a 2D affine transformation matrix:
//
//	| SX  KX  TX |
//	| KY  SY  TY |
//	|  0   0   1 |
//
// Points are mapped as x' = SX*x + KX*y + TX, y' = KY*x + SY*y + TY.
type Transform struct {
	SX, KY, KX, SY, TX, TY float32
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{SX: 1, SY: 1}
}

// FromTranslate creates a translation transform.
func FromTranslate(tx, ty float32) Transform {
	return Transform{SX: 1, SY: 1, TX: tx, TY: ty}
}

// FromScale creates a scaling transform.
func FromScale(sx, sy float32) Transform {
	return Transform{SX: sx, SY: sy}
}

// FromRotate creates a rotation transform by angle radians around the
// origin. Positive angles rotate clockwise in the y-down coordinate
// system.
func FromRotate(angle float32) Transform {
	s, c := math32.Sincos(angle)
	return fromSinCos(s, c)
}

// fromSinCos creates a rotation transform from a precomputed sine and
// cosine pair.
func fromSinCos(sin, cos float32) Transform {
	return Transform{SX: cos, KY: sin, KX: -sin, SY: cos}
}

// IsIdentity reports whether t is the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// IsFinite reports whether all six coefficients are finite.
func (t Transform) IsFinite() bool {
	return isFinite(t.SX) && isFinite(t.KY) && isFinite(t.KX) &&
		isFinite(t.SY) && isFinite(t.TX) && isFinite(t.TY)
}

// PreScale returns the transform with a scale applied before t.
func (t Transform) PreScale(sx, sy float32) Transform {
	return Transform{
		SX: t.SX * sx,
		KY: t.KY * sx,
		KX: t.KX * sy,
		SY: t.SY * sy,
		TX: t.TX,
		TY: t.TY,
	}
}

// PostConcat returns other * t: t is applied first, then other.
func (t Transform) PostConcat(other Transform) Transform {
	return concat(other, t)
}

// PreConcat returns t * other: other is applied first, then t.
func (t Transform) PreConcat(other Transform) Transform {
	return concat(t, other)
}

// concat composes two transforms so that b is applied first, then a.
func concat(a, b Transform) Transform {
	return Transform{
		SX: a.SX*b.SX + a.KX*b.KY,
		KX: a.SX*b.KX + a.KX*b.SY,
		TX: a.SX*b.TX + a.KX*b.TY + a.TX,
		KY: a.KY*b.SX + a.SY*b.KY,
		SY: a.KY*b.KX + a.SY*b.SY,
		TY: a.KY*b.TX + a.SY*b.TY + a.TY,
	}
}

// MapPoint returns the point mapped through the transform.
func (t Transform) MapPoint(p Point) Point {
	return Point{
		X: t.SX*p.X + t.KX*p.Y + t.TX,
		Y: t.KY*p.X + t.SY*p.Y + t.TY,
	}
}

// MapPoints maps every point in the slice in place.
func (t Transform) MapPoints(points []Point) {
	if t.IsIdentity() {
		return
	}
	for i := range points {
		points[i] = t.MapPoint(points[i])
	}
}
