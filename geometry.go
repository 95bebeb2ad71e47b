package ink

import (
	"math"

	"github.com/chewxy/math32"
)

// Curve evaluation and subdivision primitives shared by the stroker,
// the contour measure and the dash applicator. Quads and cubics are
// represented as plain point slices in the same order the path stores
// them; parameters t are in the unit range.

// quadCoeff holds a quadratic Bezier in polynomial form:
// eval(t) = A*t^2 + B*t + C.
type quadCoeff struct {
	a, b, c Point
}

func quadCoeffFromPoints(points []Point) quadCoeff {
	c := points[0]
	b := points[1].Sub(c).Mul(2)
	a := points[2].Sub(points[1].Mul(2)).Add(c)
	return quadCoeff{a: a, b: b, c: c}
}

func (q quadCoeff) eval(t float32) Point {
	return q.a.Mul(t).Add(q.b).Mul(t).Add(q.c)
}

// cubicCoeff holds a cubic Bezier in polynomial form:
// eval(t) = A*t^3 + B*t^2 + C*t + D.
type cubicCoeff struct {
	a, b, c, d Point
}

func cubicCoeffFromPoints(points []Point) cubicCoeff {
	p0 := points[0]
	p1 := points[1]
	p2 := points[2]
	p3 := points[3]
	return cubicCoeff{
		a: p3.Add(p1.Sub(p2).Mul(3)).Sub(p0),
		b: p2.Sub(p1.Mul(2)).Add(p0).Mul(3),
		c: p1.Sub(p0).Mul(3),
		d: p0,
	}
}

func (c cubicCoeff) eval(t float32) Point {
	return c.a.Mul(t).Add(c.b).Mul(t).Add(c.c).Mul(t).Add(c.d)
}

// chopQuadAt splits a quad at t, writing the two sub-quads into dst
// (5 points, the middle one shared).
func chopQuadAt(src []Point, t float32, dst *[5]Point) {
	p0 := src[0]
	p1 := src[1]
	p2 := src[2]

	p01 := p0.Lerp(p1, t)
	p12 := p1.Lerp(p2, t)

	dst[0] = p0
	dst[1] = p01
	dst[2] = p01.Lerp(p12, t)
	dst[3] = p12
	dst[4] = p2
}

// chopCubicAt splits a cubic at t, writing the two sub-cubics into dst
// (7 points, the middle one shared).
func chopCubicAt(src []Point, t float32, dst *[7]Point) {
	p0 := src[0]
	p1 := src[1]
	p2 := src[2]
	p3 := src[3]

	ab := p0.Lerp(p1, t)
	bc := p1.Lerp(p2, t)
	cd := p2.Lerp(p3, t)
	abc := ab.Lerp(bc, t)
	bcd := bc.Lerp(cd, t)
	abcd := abc.Lerp(bcd, t)

	dst[0] = p0
	dst[1] = ab
	dst[2] = abc
	dst[3] = abcd
	dst[4] = bcd
	dst[5] = cd
	dst[6] = p3
}

// chopCubicAtMany splits a cubic at each of the sorted t values,
// writing 3*len(tValues)+4 points into dst. After each chop the next t
// is renormalized to the remaining sub-cubic; when rounding pushes the
// renormalized t out of range the remainder is emitted as a degenerate
// clump of coincident points.
func chopCubicAtMany(src []Point, tValues []float32, dst []Point) {
	if len(tValues) == 0 {
		copy(dst, src[:4])
		return
	}

	t := tValues[0]
	var tmp [4]Point
	var chopped [7]Point

	offset := 0
	for i := range tValues {
		chopCubicAt(src, t, &chopped)
		copy(dst[offset:], chopped[:])
		if i == len(tValues)-1 {
			break
		}

		offset += 3
		tmp[0] = dst[offset+0]
		tmp[1] = dst[offset+1]
		tmp[2] = dst[offset+2]
		tmp[3] = dst[offset+3]
		src = tmp[:]

		// watch out in case the renormalized t isn't in range
		n, ok := validUnitDivide(tValues[i+1]-tValues[i], 1.0-tValues[i])
		if !ok {
			// if we can't, just create a degenerate cubic
			dst[offset+4] = src[3]
			dst[offset+5] = src[3]
			dst[offset+6] = src[3]
			break
		}
		t = n
	}
}

// findUnitQuadRoots solves a*t^2 + b*t + c == 0 for roots strictly
// inside the unit interval, storing them sorted and deduplicated in
// roots. From Numerical Recipes in C:
//
//	Q = -1/2 (B + sign(B) sqrt[B*B - 4*A*C])
//	x1 = Q / A
//	x2 = C / Q
func findUnitQuadRoots(a, b, c float32, roots *[3]float32) int {
	if a == 0 {
		if r, ok := validUnitDivide(-c, b); ok {
			roots[0] = r
			return 1
		}
		return 0
	}

	// use doubles so we don't overflow temporarily trying to compute R
	dr := float64(b)*float64(b) - 4.0*float64(a)*float64(c)
	if dr < 0 {
		return 0
	}
	r := float32(math.Sqrt(dr))
	if !isFinite(r) {
		return 0
	}

	var q float32
	if b < 0 {
		q = -(b - r) / 2.0
	} else {
		q = -(b + r) / 2.0
	}

	n := 0
	if root, ok := validUnitDivide(q, a); ok {
		roots[n] = root
		n++
	}
	if root, ok := validUnitDivide(c, q); ok {
		roots[n] = root
		n++
	}

	if n == 2 {
		if roots[0] > roots[1] {
			roots[0], roots[1] = roots[1], roots[0]
		} else if roots[0] == roots[1] {
			n-- // skip the double root
		}
	}

	return n
}

// findQuadMaxCurvature returns the t of maximum curvature of a quad.
//
// F(t)  = a (1 - t) ^ 2 + 2 b t (1 - t) + c t ^ 2
// F'(t) = 2 (b - a) + 2 (a - 2b + c) t
//
// Maximum curvature solves Fx' Fx'' + Fy' Fy'' = 0, giving
// t = - (Ax Bx + Ay By) / (Bx ^ 2 + By ^ 2).
func findQuadMaxCurvature(src []Point) float32 {
	ax := src[1].X - src[0].X
	ay := src[1].Y - src[0].Y
	bx := src[0].X - src[1].X - src[1].X + src[2].X
	by := src[0].Y - src[1].Y - src[1].Y + src[2].Y

	numer := -(ax*bx + ay*by)
	denom := bx*bx + by*by
	if denom < 0 {
		numer = -numer
		denom = -denom
	}

	if numer <= 0 {
		return 0
	}
	if numer >= denom {
		// Also catches denom=0
		return 1
	}

	return numer / denom
}

func evalQuadAt(src []Point, t float32) Point {
	return quadCoeffFromPoints(src).eval(t)
}

func evalQuadTangentAt(src []Point, t float32) Point {
	// The derivative equation is 2(b - a +(a - 2b +c)t). This returns a
	// zero tangent vector when t is 0 or 1, and the control point is equal
	// to the end point. In this case, use the quad end points to compute the tangent.
	if (t == 0 && src[0] == src[1]) || (t == 1 && src[1] == src[2]) {
		return src[2].Sub(src[0])
	}

	b := src[1].Sub(src[0])
	a := src[2].Sub(src[1]).Sub(b)
	tan := a.Mul(t).Add(b)
	return tan.Add(tan)
}

// findCubicMaxCurvature finds the t values of maximum curvature,
// appending them to tValues and returning the filled prefix.
//
// Looking for F' dot F'' == 0
//
// A = b - a
// B = c - 2b + a
// C = d - 3c + 3b - a
//
// F' = 3Ct^2 + 6Bt + 3A
// F'' = 6Ct + 6B
//
// F' dot F'' -> CCt^3 + 3BCt^2 + (2BB + CA)t + AB
func findCubicMaxCurvature(src []Point, tValues *[3]float32) []float32 {
	coeffX := formulateF1DotF2(src[0].X, src[1].X, src[2].X, src[3].X)
	coeffY := formulateF1DotF2(src[0].Y, src[1].Y, src[2].Y, src[3].Y)

	for i := 0; i < 4; i++ {
		coeffX[i] += coeffY[i]
	}

	n := solveCubicPoly(&coeffX, tValues)
	return tValues[:n]
}

func formulateF1DotF2(p0, p1, p2, p3 float32) [4]float32 {
	a := p1 - p0
	b := p2 - 2.0*p1 + p0
	c := p3 + 3.0*(p1-p2) - p0

	return [4]float32{
		c * c,
		3.0 * b * c,
		2.0*b*b + c*a,
		a * b,
	}
}

// solveCubicPoly solves coeff[0]t^3 + coeff[1]t^2 + coeff[2]t +
// coeff[3] == 0, returning the number of roots clamped into the unit
// range. Repeated roots are collapsed and the results are sorted.
func solveCubicPoly(coeff *[4]float32, tValues *[3]float32) int {
	if nearlyZero(coeff[0]) {
		// we're just a quadratic
		var tmp [3]float32
		n := findUnitQuadRoots(coeff[1], coeff[2], coeff[3], &tmp)
		for i := 0; i < n; i++ {
			tValues[i] = tmp[i]
		}
		return n
	}

	inva := 1.0 / coeff[0]
	a := coeff[1] * inva
	b := coeff[2] * inva
	c := coeff[3] * inva

	q := (a*a - b*3.0) / 9.0
	r := (2.0*a*a*a - 9.0*a*b + 27.0*c) / 54.0

	q3 := q * q * q
	r2MinusQ3 := r*r - q3
	adiv3 := a / 3.0

	if r2MinusQ3 < 0 { // we have 3 real roots
		// the divide/root can, due to finite precisions, be slightly outside of -1...1
		theta := math32.Acos(bound(r/math32.Sqrt(q3), -1.0, 1.0))
		neg2RootQ := -2.0 * math32.Sqrt(q)

		tValues[0] = boundUnit(neg2RootQ*math32.Cos(theta/3.0) - adiv3)
		tValues[1] = boundUnit(neg2RootQ*math32.Cos((theta+2.0*math32.Pi)/3.0) - adiv3)
		tValues[2] = boundUnit(neg2RootQ*math32.Cos((theta-2.0*math32.Pi)/3.0) - adiv3)

		sortArray3(tValues)
		return collapseDuplicates3(tValues)
	}

	// we have 1 real root
	v := math32.Abs(r) + math32.Sqrt(r2MinusQ3)
	v = scalarCubeRoot(v)
	if r > 0 {
		v = -v
	}
	if v != 0 {
		v += q / v
	}
	tValues[0] = boundUnit(v - adiv3)
	return 1
}

func sortArray3(array *[3]float32) {
	if array[0] > array[1] {
		array[0], array[1] = array[1], array[0]
	}
	if array[1] > array[2] {
		array[1], array[2] = array[2], array[1]
	}
	if array[0] > array[1] {
		array[0], array[1] = array[1], array[0]
	}
}

func collapseDuplicates3(array *[3]float32) int {
	n := 3
	if array[1] == array[2] {
		n = 2
	}
	if array[0] == array[1] {
		n = 1
	}
	return n
}

func scalarCubeRoot(x float32) float32 {
	return math32.Pow(x, 0.3333333)
}

func evalCubicPosAt(src []Point, t float32) Point {
	return cubicCoeffFromPoints(src).eval(t)
}

func evalCubicTangentAt(src []Point, t float32) Point {
	// The derivative equation returns a zero tangent vector when t is 0 or 1,
	// and the adjacent control point is equal to the end point. In this case,
	// use the next control point or the end points to compute the tangent.
	if (t == 0 && src[0] == src[1]) || (t == 1 && src[2] == src[3]) {
		var tangent Point
		if t == 0 {
			tangent = src[2].Sub(src[0])
		} else {
			tangent = src[3].Sub(src[1])
		}
		if tangent.X == 0 && tangent.Y == 0 {
			tangent = src[3].Sub(src[0])
		}
		return tangent
	}
	return evalCubicDerivative(src, t)
}

func evalCubicDerivative(src []Point, t float32) Point {
	p0 := src[0]
	p1 := src[1]
	p2 := src[2]
	p3 := src[3]
	coeff := quadCoeff{
		a: p3.Add(p1.Sub(p2).Mul(3)).Sub(p0),
		b: p2.Sub(p1.Mul(2)).Add(p0).Mul(2),
		c: p1.Sub(p0),
	}
	return coeff.eval(t)
}

// findCubicInflections finds the inflection points of a cubic,
// appending them to tValues and returning the filled prefix.
//
// Inflection means that curvature is zero. Curvature is
// [F' x F''] / [F'^3], so we solve F'x X F''y - F'y X F''x == 0.
// After some canceling of the cubic term, we get
// A = b - a
// B = c - 2b + a
// C = d - 3c + 3b - a
// (BxCy - ByCx)t^2 + (AxCy - AyCx)t + AxBy - AyBx == 0
func findCubicInflections(src []Point, tValues *[3]float32) []float32 {
	ax := src[1].X - src[0].X
	ay := src[1].Y - src[0].Y
	bx := src[2].X - 2.0*src[1].X + src[0].X
	by := src[2].Y - 2.0*src[1].Y + src[0].Y
	cx := src[3].X + 3.0*(src[1].X-src[2].X) - src[0].X
	cy := src[3].Y + 3.0*(src[1].Y-src[2].Y) - src[0].Y

	n := findUnitQuadRoots(
		bx*cy-by*cx,
		ax*cy-ay*cx,
		ax*by-ay*bx,
		tValues,
	)
	return tValues[:n]
}

// findCubicCusp returns the location (in t) of a cubic's cusp, if there
// is one.
func findCubicCusp(src []Point) (float32, bool) {
	// When the adjacent control point matches the end point, it behaves as if
	// the cubic has a cusp: there's a point of max curvature where the derivative
	// goes to zero. Ideally, this would be where t is zero or one, but math
	// error makes not so. It is not uncommon to create cubics this way; skip them.
	if src[0] == src[1] {
		return 0, false
	}
	if src[2] == src[3] {
		return 0, false
	}

	// Cubics only have a cusp if the line segments formed by the control and end
	// points cross. Detect crossing if line ends are on opposite sides of the
	// plane formed by the other line.
	if onSameSide(src, 0, 2) || onSameSide(src, 2, 0) {
		return 0, false
	}

	// Cubics may have multiple points of maximum curvature, although at most
	// only one is a cusp.
	var tValues [3]float32
	maxCurvature := findCubicMaxCurvature(src, &tValues)
	for _, testT := range maxCurvature {
		if testT <= 0 || testT >= 1 {
			// no need to consider max curvature on the end
			continue
		}

		// A cusp is at the max curvature, and also has a derivative close to
		// zero. Choose the 'close to zero' meaning by comparing the derivative
		// length with the overall cubic size.
		dPt := evalCubicDerivative(src, testT)
		dPtMagnitude := dPt.LengthSq()
		precision := calcCubicPrecision(src)
		if dPtMagnitude < precision {
			// All three max curvature t values may be close to the cusp;
			// return the first one.
			return testT, true
		}
	}

	return 0, false
}

// onSameSide reports whether src[testIndex] and src[testIndex+1] are in
// the same half plane defined by the line through src[lineIndex] and
// src[lineIndex+1].
func onSameSide(src []Point, testIndex, lineIndex int) bool {
	origin := src[lineIndex]
	line := src[lineIndex+1].Sub(origin)
	var crosses [2]float32
	for i := 0; i < 2; i++ {
		testLine := src[testIndex+i].Sub(origin)
		crosses[i] = line.Cross(testLine)
	}
	return crosses[0]*crosses[1] >= 0
}

// calcCubicPrecision returns a constant proportional to the dimensions
// of the cubic, used as a derivative-magnitude threshold for cusps.
func calcCubicPrecision(src []Point) float32 {
	return (src[1].DistanceToSq(src[0]) +
		src[2].DistanceToSq(src[1]) +
		src[3].DistanceToSq(src[2])) * 1e-8
}
