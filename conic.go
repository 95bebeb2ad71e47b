package ink

import "github.com/chewxy/math32"

// PathDirection describes the winding of a contour.
type PathDirection uint8

const (
	// PathDirectionCW winds clockwise (in the y-down coordinate system).
	PathDirectionCW PathDirection = iota
	// PathDirectionCCW winds counter-clockwise.
	PathDirectionCCW
)

// maxConicToQuadPow2 limits the number of suggested quads to
// approximate a conic: at most 1<<4 quads.
const maxConicToQuadPow2 = 4

// conic is a rational quadratic Bezier segment. Conics never appear in
// stored paths; they are an intermediate form for circular arcs (round
// caps and joins) and are lowered to quads before storage.
type conic struct {
	points [3]Point
	weight float32
}

func newConic(p0, p1, p2 Point, weight float32) conic {
	return conic{points: [3]Point{p0, p1, p2}, weight: weight}
}

// computeQuadPow2 returns log2 of the number of quads needed to
// approximate the conic within tolerance, using the error bound from
// "High order approximation of conic sections by quadratic splines"
// by Michael Floater, 1993.
func (c *conic) computeQuadPow2(tolerance float32) (int, bool) {
	if tolerance < 0 || !isFinite(tolerance) {
		return 0, false
	}
	if !c.points[0].IsFinite() || !c.points[1].IsFinite() || !c.points[2].IsFinite() {
		return 0, false
	}

	a := c.weight - 1.0
	k := a / (4.0 * (2.0 + a))
	x := k * (c.points[0].X - 2.0*c.points[1].X + c.points[2].X)
	y := k * (c.points[0].Y - 2.0*c.points[1].Y + c.points[2].Y)

	err := math32.Sqrt(x*x + y*y)
	pow2 := 0
	for i := 0; i < maxConicToQuadPow2; i++ {
		if err <= tolerance {
			break
		}
		err *= 0.25
		pow2++
	}
	return pow2, true
}

// chopIntoQuadsPow2 chops the conic into 1<<pow2 quads, stored
// continuously in points (2*N+1 of them), and returns the quad count.
func (c *conic) chopIntoQuadsPow2(pow2 int, points []Point) int {
	points[0] = c.points[0]
	conicSubdivide(c, points[1:], pow2)

	quadCount := 1 << pow2
	ptCount := 2*quadCount + 1
	nonFinite := false
	for _, p := range points[:ptCount] {
		if !p.IsFinite() {
			nonFinite = true
			break
		}
	}
	if nonFinite {
		// if we generated a non-finite, pin ourselves to the middle of the
		// hull, as our first and last are already on the first/last pts of
		// the hull.
		for i := 1; i < ptCount-1; i++ {
			points[i] = c.points[1]
		}
	}

	return quadCount
}

// chop splits the conic in half, renormalizing the weights.
func (c *conic) chop() (conic, conic) {
	scale := 1.0 / (1.0 + c.weight)
	newW := subdivideWeightValue(c.weight)

	p0 := c.points[0]
	p1 := c.points[1]
	p2 := c.points[2]
	wp1 := p1.Mul(c.weight)

	mPt := p0.Add(wp1.Mul(2)).Add(p2).Mul(scale * 0.5)
	if !mPt.IsFinite() {
		// the weighted midpoint overflowed; redo it in doubles
		wD := float64(c.weight)
		w2 := wD * 2.0
		scaleHalf := 1.0 / (1.0 + wD) * 0.5
		mPt.X = float32((float64(p0.X) + w2*float64(p1.X) + float64(p2.X)) * scaleHalf)
		mPt.Y = float32((float64(p0.Y) + w2*float64(p1.Y) + float64(p2.Y)) * scaleHalf)
	}

	return conic{
			points: [3]Point{p0, p0.Add(wp1).Mul(scale), mPt},
			weight: newW,
		}, conic{
			points: [3]Point{mPt, wp1.Add(p2).Mul(scale), p2},
			weight: newW,
		}
}

func subdivideWeightValue(w float32) float32 {
	return math32.Sqrt(0.5 + w*0.5)
}

func conicSubdivide(src *conic, points []Point, level int) []Point {
	if level == 0 {
		points[0] = src.points[1]
		points[1] = src.points[2]
		return points[2:]
	}

	dst0, dst1 := src.chop()

	startY := src.points[0].Y
	endY := src.points[2].Y
	if scalarBetween(startY, src.points[1].Y, endY) {
		// If the input is monotonic and the output is not, the scan converter
		// hangs. Ensure that the chopped conics maintain their y-order.
		midY := dst0.points[2].Y
		if !scalarBetween(startY, midY, endY) {
			// If the computed midpoint is outside the ends, move it to the closer one.
			closerY := endY
			if math32.Abs(midY-startY) < math32.Abs(midY-endY) {
				closerY = startY
			}
			dst0.points[2].Y = closerY
			dst1.points[0].Y = closerY
		}

		if !scalarBetween(startY, dst0.points[1].Y, dst0.points[2].Y) {
			// If the 1st control is not between the start and end, put it at the
			// start. This also reduces the quad to a line.
			dst0.points[1].Y = startY
		}

		if !scalarBetween(dst1.points[0].Y, dst1.points[1].Y, endY) {
			// If the 2nd control is not between the start and end, put it at the
			// end. This also reduces the quad to a line.
			dst1.points[1].Y = endY
		}
	}

	level--
	points = conicSubdivide(&dst0, points, level)
	return conicSubdivide(&dst1, points, level)
}

// scalarBetween reports whether (a <= b <= c) || (a >= b >= c).
func scalarBetween(a, b, c float32) bool {
	return (a-b)*(c-b) <= 0
}

// buildUnitArc appends to dst the conics describing the arc of the unit
// circle from direction uStart to direction uStop in the given
// direction, mapped through userTransform. One conic covers each full
// quadrant, plus a final conic of weight cos(theta/2) for the
// remaining sub-90-degree sweep. Returns nil for an (effectively) zero
// sweep.
func buildUnitArc(uStart, uStop Point, dir PathDirection, userTransform Transform, dst *[5]conic) []conic {
	// rotate by x,y so that uStart is (1,0)
	x := uStart.Dot(uStop)
	y := uStart.Cross(uStop)

	absY := math32.Abs(y)

	// check for (effectively) coincident vectors
	// this can happen if our angle is nearly 0 or nearly 180 (y == 0)
	// ... we use the dot-prod to distinguish between 0 and 180 (x > 0)
	if absY <= scalarNearlyZero && x > 0 &&
		((y >= 0 && dir == PathDirectionCW) || (y <= 0 && dir == PathDirectionCCW)) {
		return nil
	}

	if dir == PathDirectionCCW {
		y = -y
	}

	// We decide to use 1-conic per quadrant of a circle. What quadrant does [xy] lie in?
	//      0 == [0  .. 90)
	//      1 == [90 ..180)
	//      2 == [180..270)
	//      3 == [270..360)
	quadrant := 0
	if y == 0 {
		quadrant = 2 // 180
	} else if x == 0 {
		if y > 0 {
			quadrant = 1 // 90
		} else {
			quadrant = 3 // 270
		}
	} else {
		if y < 0 {
			quadrant += 2
		}
		if (x < 0) != (y < 0) {
			quadrant++
		}
	}

	quadrantPoints := [8]Point{
		{1, 0},
		{1, 1},
		{0, 1},
		{-1, 1},
		{-1, 0},
		{-1, -1},
		{0, -1},
		{1, -1},
	}

	const quadrantWeight = scalarRoot2Over2

	conicCount := quadrant
	for i := 0; i < conicCount; i++ {
		dst[i] = newConic(
			quadrantPoints[i*2],
			quadrantPoints[i*2+1],
			quadrantPoints[i*2+2],
			quadrantWeight,
		)
	}

	// Now compute any remaining (sub-90-degree) arc for the last conic.
	finalPt := Pt(x, y)
	lastQ := quadrantPoints[quadrant*2] // will already be a unit-vector
	dot := lastQ.Dot(finalPt)

	if dot < 1.0 {
		offCurve := Pt(lastQ.X+x, lastQ.Y+y)
		// compute the bisector vector, and then rescale to be the off-curve
		// point. we compute its length from cos(theta/2) = length / 1, using
		// the half-angle identity we get length = sqrt(2 / (1 + cos(theta)).
		// We already have cos() when we computed the dot. This is nice, since
		// our computed weight is cos(theta/2) as well!
		cosThetaOver2 := math32.Sqrt((1.0 + dot) / 2.0)
		offCurve, _ = offCurve.SetLength(1.0 / cosThetaOver2)
		if !lastQ.NearlyEqual(offCurve) {
			dst[conicCount] = newConic(lastQ, offCurve, finalPt, cosThetaOver2)
			conicCount++
		}
	}

	// now handle counter-clockwise and the initial unitStart rotation
	transform := fromSinCos(uStart.Y, uStart.X)
	if dir == PathDirectionCCW {
		transform = transform.PreScale(1.0, -1.0)
	}
	transform = transform.PostConcat(userTransform)

	for i := 0; i < conicCount; i++ {
		transform.MapPoints(dst[i].points[:])
	}

	if conicCount == 0 {
		return nil
	}
	return dst[:conicCount]
}

// autoConicToQuads converts a conic into a run of quads within a fixed
// tolerance, for lowering conic segments into stored path verbs.
type autoConicToQuads struct {
	points [64]Point
	len    int // the number of quads
}

const conicToQuadTolerance = 0.25

func computeConicToQuads(p0, p1, p2 Point, weight float32) (autoConicToQuads, bool) {
	cn := newConic(p0, p1, p2, weight)
	pow2, ok := cn.computeQuadPow2(conicToQuadTolerance)
	if !ok {
		return autoConicToQuads{}, false
	}
	var dst autoConicToQuads
	dst.len = cn.chopIntoQuadsPow2(pow2, dst.points[:])
	return dst, true
}
