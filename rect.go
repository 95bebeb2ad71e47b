package ink

// Rect is an axis-aligned rectangle defined by its left/top and
// right/bottom edges. A valid Rect has Left <= Right, Top <= Bottom and
// finite coordinates; use NewRect to construct one.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// NewRect creates a rectangle from edge coordinates.
// It reports false when the edges are inverted or non-finite.
func NewRect(left, top, right, bottom float32) (Rect, bool) {
	r := Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	if left > right || top > bottom || !r.IsFinite() {
		return Rect{}, false
	}
	return r, true
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// IsFinite reports whether all four edges are finite.
func (r Rect) IsFinite() bool {
	// Multiplying each edge by zero keeps the accumulator at zero for
	// finite inputs and poisons it with NaN for Inf or NaN, without
	// risking overflow from the edge values themselves.
	accum := r.Left * 0
	accum *= r.Top * 0
	accum *= r.Right * 0
	accum *= r.Bottom * 0
	return accum == 0
}

// boundsFromPoints computes the tight bounding rectangle of a point
// slice. It reports false for an empty slice or non-finite coordinates.
func boundsFromPoints(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	left := points[0].X
	top := points[0].Y
	right := points[0].X
	bottom := points[0].Y
	// NaN compares false against every bound, so a non-finite point
	// would otherwise be skipped silently. Accumulate finiteness the
	// same way Rect.IsFinite does.
	var accum float32
	for _, p := range points {
		accum *= p.X * 0
		accum *= p.Y * 0
	}
	if accum != 0 {
		return Rect{}, false
	}
	for _, p := range points[1:] {
		if p.X < left {
			left = p.X
		}
		if p.Y < top {
			top = p.Y
		}
		if p.X > right {
			right = p.X
		}
		if p.Y > bottom {
			bottom = p.Y
		}
	}
	return NewRect(left, top, right, bottom)
}
