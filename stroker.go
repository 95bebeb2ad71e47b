package ink

import "github.com/chewxy/math32"

// Path stroking.
//
// A stroked path is built from two offset curves that run parallel to
// the original on both sides, joined according to the stroke's cap and
// join settings. Curved segments are approximated by quadratic pieces:
// each piece is accepted when a ray from the source curve hits the
// candidate quad within the error budget derived from the resolution
// scale, and split in half otherwise.

const quadRecursiveLimit = 3

// quads with extreme widths (e.g. (0,1) (1,6) (0,3) width=5e7) recurse to point of failure
// largest seen for normal cubics: 5, 26
// largest seen for normal quads: 11
var recursiveLimits = [4]int32{5 * 3, 26 * 3, 11 * 3, 11 * 3} // 3x limits seen in practice

type capProc func(pivot, normal, stop Point, otherPath *PathBuilder, path *PathBuilder)

type joinProc func(
	beforeUnitNormal, pivot, afterUnitNormal Point,
	radius, invMiterLimit float32,
	prevIsLine, currIsLine bool,
	builders swappableBuilders,
)

// swappableBuilders lets a joiner flip which side of the stroke is the
// working outer contour without copying builder contents.
type swappableBuilders struct {
	inner *PathBuilder
	outer *PathBuilder
}

func (s *swappableBuilders) swap() {
	s.inner, s.outer = s.outer, s.inner
}

type reductionType uint8

const (
	reductionPoint       reductionType = iota // all curve points are practically identical
	reductionLine                             // the control point is on the line between the ends
	reductionQuad                             // the control point is outside the line between the ends
	reductionDegenerate                       // the control point is on the line but outside the ends
	reductionDegenerate2                      // two control points are on the line but outside ends (cubic)
	reductionDegenerate3                      // three areas of max curvature found (for cubic)
)

type strokeKind int8

const (
	strokeOuter strokeKind = 1 // sign-opposite values flip the perpendicular axis
	strokeInner strokeKind = -1
)

type resultType uint8

const (
	resultSplit      resultType = iota // the caller should split the quad stroke in two
	resultDegenerate                   // the caller should add a line
	resultQuad                         // the caller should (continue to try to) add a quad stroke
)

type intersectRayType uint8

const (
	intersectRayCtrlPt intersectRayType = iota
	intersectRayResult
)

// Stroke returns a stroked copy of the path.
//
// resolutionScale can be obtained via [ComputeResolutionScale].
//
// If you plan on stroking multiple paths, use a [PathStroker] directly:
// it preserves the temporary allocations between calls.
func (p *Path) Stroke(stroke Stroke, resolutionScale float32) (*Path, bool) {
	return NewPathStroker().Stroke(p, stroke, resolutionScale)
}

// ComputeResolutionScale returns the "intended" resolution for stroked
// output under the given transform. Default is 1.0.
//
// Larger values (res > 1) indicate that the result should be more
// precise, since it will be zoomed up, and small errors will be
// magnified. Smaller values (0 < res < 1) indicate that the result can
// be less precise, since it will be zoomed down, and small errors may
// be invisible.
func ComputeResolutionScale(ts Transform) float32 {
	sx := Pt(ts.SX, ts.KX).Length()
	sy := Pt(ts.KY, ts.SY).Length()
	if isFinite(sx) && isFinite(sy) {
		scale := max(sx, sy)
		if scale > 0 {
			return scale
		}
	}
	return 1.0
}

// PathStroker converts paths into their stroked fill outlines.
//
// The zero value is not usable; call [NewPathStroker].
type PathStroker struct {
	radius             float32
	invMiterLimit      float32
	resScale           float32
	invResScale        float32
	invResScaleSquared float32

	firstNormal     Point
	prevNormal      Point
	firstUnitNormal Point
	prevUnitNormal  Point

	// on original path
	firstPt Point
	prevPt  Point

	firstOuterPt               Point
	firstOuterPtIndexInContour int
	segmentCount               int32
	prevIsLine                 bool

	lineCap LineCap
	capper  capProc
	joiner  joinProc

	// outer is our working answer, inner is temp
	inner  PathBuilder
	outer  PathBuilder
	cusper PathBuilder

	strokeKind strokeKind

	recursionDepth int32 // track stack depth to abort if numerics run amok
	foundTangents  bool  // do less work until tangents meet (cubic)
	joinCompleted  bool  // previous join was not degenerate
}

// NewPathStroker creates a new PathStroker.
func NewPathStroker() *PathStroker {
	return &PathStroker{
		resScale:           1.0,
		invResScale:        1.0,
		invResScaleSquared: 1.0,
		segmentCount:       -1,
		lineCap:            LineCapButt,
		capper:             buttCapper,
		joiner:             miterJoiner,
		strokeKind:         strokeOuter,
	}
}

// Stroke builds the stroked outline of path.
//
// Can be called multiple times to reuse allocated buffers. When the
// stroke carries a dash pattern, the path is dashed first and the
// resulting segments are stroked.
//
// resolutionScale can be obtained via [ComputeResolutionScale].
func (s *PathStroker) Stroke(path *Path, stroke Stroke, resolutionScale float32) (*Path, bool) {
	if stroke.Dash != nil {
		dashed, ok := path.Dash(stroke.Dash, resolutionScale)
		if !ok {
			return nil, false
		}
		path = dashed
	}

	if !(stroke.Width > 0) || !isFinite(stroke.Width) {
		return nil, false
	}

	return s.strokeInner(path, stroke.Width, stroke.MiterLimit, stroke.Cap, stroke.Join, resolutionScale)
}

func (s *PathStroker) strokeInner(
	path *Path,
	width, miterLimit float32,
	lineCap LineCap,
	lineJoin LineJoin,
	resScale float32,
) (*Path, bool) {
	invMiterLimit := float32(0)

	if lineJoin == LineJoinMiter {
		if miterLimit <= 1.0 {
			lineJoin = LineJoinBevel
		} else {
			invMiterLimit = 1.0 / miterLimit
		}
	}

	s.resScale = resScale
	// The '4' below matches the fill scan converter's error term.
	s.invResScale = 1.0 / (resScale * 4.0)
	s.invResScaleSquared = s.invResScale * s.invResScale

	s.radius = width * 0.5
	s.invMiterLimit = invMiterLimit

	s.firstNormal = Point{}
	s.prevNormal = Point{}
	s.firstUnitNormal = Point{}
	s.prevUnitNormal = Point{}

	s.firstPt = Point{}
	s.prevPt = Point{}

	s.firstOuterPt = Point{}
	s.firstOuterPtIndexInContour = 0
	s.segmentCount = -1
	s.prevIsLine = false

	s.lineCap = lineCap
	s.capper = capFactory(lineCap)
	s.joiner = joinFactory(lineJoin)

	// Need some estimate of how large our final result (outer) and our
	// per-contour temp (inner) will be, so we don't spend extra time
	// repeatedly growing these arrays.
	//
	// 1x for inner == 'wag' (worst contour length would be better guess)
	s.inner.Clear()
	s.inner.reserve(len(path.verbs), len(path.points))

	// 3x for result == inner + outer + join (swag)
	s.outer.Clear()
	s.outer.reserve(len(path.verbs)*3, len(path.points)*3)

	s.cusper.Clear()

	s.strokeKind = strokeOuter

	s.recursionDepth = 0
	s.foundTangents = false
	s.joinCompleted = false

	lastSegmentIsLine := false
	iter := path.Segments()
	iter.SetAutoClose(true)
	for {
		seg, ok := iter.Next()
		if !ok {
			break
		}
		switch seg.Kind {
		case PathVerbMove:
			s.moveTo(seg.P0)
		case PathVerbLine:
			s.lineTo(seg.P0, iter)
			lastSegmentIsLine = true
		case PathVerbQuad:
			s.quadTo(seg.P0, seg.P1)
			lastSegmentIsLine = false
		case PathVerbCubic:
			s.cubicTo(seg.P0, seg.P1, seg.P2)
			lastSegmentIsLine = false
		case PathVerbClose:
			if lineCap != LineCapButt {
				// If the stroke consists of a moveTo followed by a close, treat it
				// as if it were followed by a zero-length line. Lines without length
				// can have square and round end caps.
				if s.hasOnlyMoveTo() {
					s.lineTo(s.moveToPt(), nil)
					lastSegmentIsLine = true
					continue
				}

				// If the stroke consists of a moveTo followed by one or more zero-length
				// verbs, then followed by a close, treat is as if it were followed by a
				// zero-length line. Lines without length can have square & round end caps.
				if s.isCurrentContourEmpty() {
					lastSegmentIsLine = true
					continue
				}
			}

			s.close(lastSegmentIsLine)
		}
	}

	return s.finish(lastSegmentIsLine)
}

func (s *PathStroker) builders() swappableBuilders {
	return swappableBuilders{inner: &s.inner, outer: &s.outer}
}

func (s *PathStroker) moveToPt() Point {
	return s.firstPt
}

func (s *PathStroker) moveTo(p Point) {
	if s.segmentCount > 0 {
		s.finishContour(false, false)
	}

	s.segmentCount = 0
	s.firstPt = p
	s.prevPt = p
	s.joinCompleted = false
}

func (s *PathStroker) lineTo(p Point, iter *PathSegmentsIter) {
	teenyLine := s.prevPt.equalsWithinTolerance(p, scalarNearlyZero*s.invResScale)
	if s.lineCap == LineCapButt && teenyLine {
		return
	}

	if teenyLine && (s.joinCompleted || (iter != nil && iter.hasValidTangent())) {
		return
	}

	var normal, unitNormal Point
	if !s.preJoinTo(p, true, &normal, &unitNormal) {
		return
	}

	s.outer.LineTo(p.X+normal.X, p.Y+normal.Y)
	s.inner.LineTo(p.X-normal.X, p.Y-normal.Y)

	s.postJoinTo(p, normal, unitNormal)
}

func (s *PathStroker) quadTo(p1, p2 Point) {
	quad := [3]Point{s.prevPt, p1, p2}
	reduction, kind := checkQuadLinear(&quad)
	if kind == reductionPoint {
		// If the stroke consists of a moveTo followed by a degenerate curve, treat it
		// as if it were followed by a zero-length line. Lines without length
		// can have square and round end caps.
		s.lineTo(p2, nil)
		return
	}

	if kind == reductionLine {
		s.lineTo(p2, nil)
		return
	}

	if kind == reductionDegenerate {
		s.lineTo(reduction, nil)
		saveJoiner := s.joiner
		s.joiner = roundJoiner
		s.lineTo(p2, nil)
		s.joiner = saveJoiner
		return
	}

	var normalAB, unitAB, normalBC, unitBC Point
	if !s.preJoinTo(p1, false, &normalAB, &unitAB) {
		s.lineTo(p2, nil)
		return
	}

	var quadPoints quadConstruct
	s.initQuad(strokeOuter, 0, 1, &quadPoints)
	s.quadStroke(&quad, &quadPoints)
	s.initQuad(strokeInner, 0, 1, &quadPoints)
	s.quadStroke(&quad, &quadPoints)

	ok := setNormalUnitNormal(quad[1], quad[2], s.resScale, s.radius, &normalBC, &unitBC)
	if !ok {
		normalBC = normalAB
		unitBC = unitAB
	}

	s.postJoinTo(p2, normalBC, unitBC)
}

func (s *PathStroker) cubicTo(pt1, pt2, pt3 Point) {
	cubic := [4]Point{s.prevPt, pt1, pt2, pt3}
	var reduction [3]Point
	var tangentPt Point
	kind := checkCubicLinear(&cubic, &reduction, &tangentPt)
	if kind == reductionPoint {
		// If the stroke consists of a moveTo followed by a degenerate curve, treat it
		// as if it were followed by a zero-length line. Lines without length
		// can have square and round end caps.
		s.lineTo(pt3, nil)
		return
	}

	if kind == reductionLine {
		s.lineTo(pt3, nil)
		return
	}

	if kind >= reductionDegenerate && kind <= reductionDegenerate3 {
		s.lineTo(reduction[0], nil)
		saveJoiner := s.joiner
		s.joiner = roundJoiner
		if kind >= reductionDegenerate2 {
			s.lineTo(reduction[1], nil)
		}

		if kind == reductionDegenerate3 {
			s.lineTo(reduction[2], nil)
		}

		s.lineTo(pt3, nil)
		s.joiner = saveJoiner
		return
	}

	var normalAB, unitAB, normalCD, unitCD Point
	if !s.preJoinTo(tangentPt, false, &normalAB, &unitAB) {
		s.lineTo(pt3, nil)
		return
	}

	var tValueStorage [3]float32
	tValues := findCubicInflections(cubic[:], &tValueStorage)
	lastT := float32(0)
	for index := 0; index <= len(tValues); index++ {
		nextT := float32(1)
		if index < len(tValues) {
			nextT = tValues[index]
		}

		var quadPoints quadConstruct
		s.initQuad(strokeOuter, lastT, nextT, &quadPoints)
		s.cubicStroke(&cubic, &quadPoints)
		s.initQuad(strokeInner, lastT, nextT, &quadPoints)
		s.cubicStroke(&cubic, &quadPoints)
		lastT = nextT
	}

	if cusp, ok := findCubicCusp(cubic[:]); ok {
		cuspLoc := evalCubicPosAt(cubic[:], cusp)
		s.cusper.PushCircle(cuspLoc.X, cuspLoc.Y, s.radius)
	}

	// emit the join even if one stroke succeeded but the last one failed
	// this avoids reversing an inner stroke with a partial path followed by another moveto
	s.setCubicEndNormal(&cubic, normalAB, unitAB, &normalCD, &unitCD)

	s.postJoinTo(pt3, normalCD, unitCD)
}

func (s *PathStroker) cubicStroke(cubic *[4]Point, quadPoints *quadConstruct) bool {
	if !s.foundTangents {
		kind := s.tangentsMeet(cubic, quadPoints)
		if kind != resultQuad {
			ok := pointsWithinDist(quadPoints.quad[0], quadPoints.quad[2], s.invResScale)
			if (kind == resultDegenerate || ok) && s.cubicMidOnLine(cubic, quadPoints) {
				s.addDegenerateLine(quadPoints)
				return true
			}
		} else {
			s.foundTangents = true
		}
	}

	if s.foundTangents {
		kind := s.compareQuadCubic(cubic, quadPoints)
		if kind == resultQuad {
			stroke := &quadPoints.quad
			if s.strokeKind == strokeOuter {
				s.outer.QuadTo(stroke[1].X, stroke[1].Y, stroke[2].X, stroke[2].Y)
			} else {
				s.inner.QuadTo(stroke[1].X, stroke[1].Y, stroke[2].X, stroke[2].Y)
			}

			return true
		}

		if kind == resultDegenerate {
			if !quadPoints.oppositeTangents {
				s.addDegenerateLine(quadPoints)
				return true
			}
		}
	}

	if !isFinite(quadPoints.quad[2].X) || !isFinite(quadPoints.quad[2].Y) {
		return false // just abort if projected quad isn't representable
	}

	s.recursionDepth++
	if s.recursionDepth > recursiveLimits[boolToIndex(s.foundTangents)] {
		return false // just abort if projected quad isn't representable
	}

	var half quadConstruct
	if !half.initWithStart(quadPoints) {
		s.addDegenerateLine(quadPoints)
		s.recursionDepth--
		return true
	}

	if !s.cubicStroke(cubic, &half) {
		return false
	}

	if !half.initWithEnd(quadPoints) {
		s.addDegenerateLine(quadPoints)
		s.recursionDepth--
		return true
	}

	if !s.cubicStroke(cubic, &half) {
		return false
	}

	s.recursionDepth--
	return true
}

func (s *PathStroker) cubicMidOnLine(cubic *[4]Point, quadPoints *quadConstruct) bool {
	var strokeMid Point
	s.cubicQuadMid(cubic, quadPoints, &strokeMid)
	dist := ptToLine(strokeMid, quadPoints.quad[0], quadPoints.quad[2])
	return dist < s.invResScaleSquared
}

func (s *PathStroker) cubicQuadMid(cubic *[4]Point, quadPoints *quadConstruct, mid *Point) {
	var cubicMidPt Point
	s.cubicPerpRay(cubic, quadPoints.midT, &cubicMidPt, mid, nil)
}

// Given a cubic and t, return the point on curve,
// its perpendicular, and the perpendicular tangent.
func (s *PathStroker) cubicPerpRay(cubic *[4]Point, t float32, tPt, onPt, tangent *Point) {
	*tPt = evalCubicPosAt(cubic[:], t)
	dxy := evalCubicTangentAt(cubic[:], t)

	var chopped [7]Point
	if dxy.X == 0 && dxy.Y == 0 {
		cPoints := cubic[:]
		if nearlyZero(t) {
			dxy = cubic[2].Sub(cubic[0])
		} else if nearlyZero(1.0 - t) {
			dxy = cubic[3].Sub(cubic[1])
		} else {
			// If the cubic inflection falls on the cusp, subdivide the cubic
			// to find the tangent at that point.
			chopCubicAt(cubic[:], t, &chopped)
			dxy = chopped[3].Sub(chopped[2])
			if dxy.X == 0 && dxy.Y == 0 {
				dxy = chopped[3].Sub(chopped[1])
				cPoints = chopped[:]
			}
		}

		if dxy.X == 0 && dxy.Y == 0 {
			dxy = cPoints[3].Sub(cPoints[0])
		}
	}

	s.setRayPoints(*tPt, &dxy, onPt, tangent)
}

func (s *PathStroker) setCubicEndNormal(cubic *[4]Point, normalAB, unitNormalAB Point, normalCD, unitNormalCD *Point) {
	ab := cubic[1].Sub(cubic[0])
	cd := cubic[3].Sub(cubic[2])

	degenerateAB := degenerateVector(ab)
	degenerateCD := degenerateVector(cd)

	if degenerateAB && degenerateCD {
		*normalCD = normalAB
		*unitNormalCD = unitNormalAB
		return
	}

	if degenerateAB {
		ab = cubic[2].Sub(cubic[0])
		degenerateAB = degenerateVector(ab)
	}

	if degenerateCD {
		cd = cubic[3].Sub(cubic[1])
		degenerateCD = degenerateVector(cd)
	}

	if degenerateAB || degenerateCD {
		*normalCD = normalAB
		*unitNormalCD = unitNormalAB
		return
	}

	setNormalUnitNormalFromVector(cd, s.radius, normalCD, unitNormalCD)
}

func (s *PathStroker) compareQuadCubic(cubic *[4]Point, quadPoints *quadConstruct) resultType {
	// get the quadratic approximation of the stroke
	s.cubicQuadEnds(cubic, quadPoints)
	kind := s.intersectRay(intersectRayCtrlPt, quadPoints)
	if kind != resultQuad {
		return kind
	}

	// project a ray from the curve to the stroke
	// points near midpoint on quad, midpoint on cubic
	var ray0, ray1 Point
	s.cubicPerpRay(cubic, quadPoints.midT, &ray1, &ray0, nil)
	stroke := quadPoints.quad
	return s.strokeCloseEnough(&stroke, &[2]Point{ray0, ray1}, quadPoints)
}

// Given a cubic and a t range, find the start and end if they haven't been found already.
func (s *PathStroker) cubicQuadEnds(cubic *[4]Point, quadPoints *quadConstruct) {
	if !quadPoints.startSet {
		var cubicStartPt Point
		s.cubicPerpRay(cubic, quadPoints.startT, &cubicStartPt, &quadPoints.quad[0], &quadPoints.tangentStart)
		quadPoints.startSet = true
	}

	if !quadPoints.endSet {
		var cubicEndPt Point
		s.cubicPerpRay(cubic, quadPoints.endT, &cubicEndPt, &quadPoints.quad[2], &quadPoints.tangentEnd)
		quadPoints.endSet = true
	}
}

func (s *PathStroker) close(isLine bool) {
	s.finishContour(true, isLine)
}

func (s *PathStroker) finishContour(close, currIsLine bool) {
	if s.segmentCount > 0 {
		if close {
			s.joiner(
				s.prevUnitNormal,
				s.prevPt,
				s.firstUnitNormal,
				s.radius,
				s.invMiterLimit,
				s.prevIsLine,
				currIsLine,
				s.builders(),
			)
			s.outer.Close()

			// now add inner as its own contour
			pt, _ := s.inner.LastPoint()
			s.outer.MoveTo(pt.X, pt.Y)
			s.outer.reversePathTo(&s.inner)
			s.outer.Close()
		} else {
			// add caps to start and end

			// cap the end
			pt, _ := s.inner.LastPoint()
			var otherPath *PathBuilder
			if currIsLine {
				otherPath = &s.inner
			}
			s.capper(s.prevPt, s.prevNormal, pt, otherPath, &s.outer)
			s.outer.reversePathTo(&s.inner)

			// cap the start
			otherPath = nil
			if s.prevIsLine {
				otherPath = &s.inner
			}
			s.capper(s.firstPt, s.firstNormal.Negate(), s.firstOuterPt, otherPath, &s.outer)
			s.outer.Close()
		}

		if !s.cusper.IsEmpty() {
			s.outer.pushBuilder(&s.cusper)
			s.cusper.Clear()
		}
	}

	// since we may re-use inner, we rewind instead of reset, to save on
	// reallocating its internal storage.
	s.inner.Clear()
	s.segmentCount = -1
	s.firstOuterPtIndexInContour = len(s.outer.points)
}

func (s *PathStroker) preJoinTo(p Point, currIsLine bool, normal, unitNormal *Point) bool {
	prevX := s.prevPt.X
	prevY := s.prevPt.Y

	normalSet := setNormalUnitNormal(s.prevPt, p, s.resScale, s.radius, normal, unitNormal)
	if !normalSet {
		if s.lineCap == LineCapButt {
			return false
		}

		// Square caps and round caps draw even if the segment length is zero.
		// Since the zero length segment has no direction, set the orientation
		// to upright as the default orientation.
		*normal = Pt(s.radius, 0)
		*unitNormal = Pt(1, 0)
	}

	if s.segmentCount == 0 {
		s.firstNormal = *normal
		s.firstUnitNormal = *unitNormal
		s.firstOuterPt = Pt(prevX+normal.X, prevY+normal.Y)

		s.outer.MoveTo(s.firstOuterPt.X, s.firstOuterPt.Y)
		s.inner.MoveTo(prevX-normal.X, prevY-normal.Y)
	} else {
		// we have a previous segment
		s.joiner(
			s.prevUnitNormal,
			s.prevPt,
			*unitNormal,
			s.radius,
			s.invMiterLimit,
			s.prevIsLine,
			currIsLine,
			s.builders(),
		)
	}
	s.prevIsLine = currIsLine
	return true
}

func (s *PathStroker) postJoinTo(p Point, normal, unitNormal Point) {
	s.joinCompleted = true
	s.prevPt = p
	s.prevUnitNormal = unitNormal
	s.prevNormal = normal
	s.segmentCount++
}

func (s *PathStroker) initQuad(kind strokeKind, start, end float32, quadPoints *quadConstruct) {
	s.strokeKind = kind
	s.foundTangents = false
	quadPoints.init(start, end)
}

func (s *PathStroker) quadStroke(quad *[3]Point, quadPoints *quadConstruct) bool {
	kind := s.compareQuadQuad(quad, quadPoints)
	if kind == resultQuad {
		path := &s.inner
		if s.strokeKind == strokeOuter {
			path = &s.outer
		}

		path.QuadTo(
			quadPoints.quad[1].X,
			quadPoints.quad[1].Y,
			quadPoints.quad[2].X,
			quadPoints.quad[2].Y,
		)

		return true
	}

	if kind == resultDegenerate {
		s.addDegenerateLine(quadPoints)
		return true
	}

	s.recursionDepth++
	if s.recursionDepth > recursiveLimits[quadRecursiveLimit] {
		return false // just abort if projected quad isn't representable
	}

	var half quadConstruct
	half.initWithStart(quadPoints)
	if !s.quadStroke(quad, &half) {
		return false
	}

	half.initWithEnd(quadPoints)
	if !s.quadStroke(quad, &half) {
		return false
	}

	s.recursionDepth--
	return true
}

func (s *PathStroker) compareQuadQuad(quad *[3]Point, quadPoints *quadConstruct) resultType {
	// get the quadratic approximation of the stroke
	if !quadPoints.startSet {
		var quadStartPt Point
		s.quadPerpRay(quad, quadPoints.startT, &quadStartPt, &quadPoints.quad[0], &quadPoints.tangentStart)
		quadPoints.startSet = true
	}

	if !quadPoints.endSet {
		var quadEndPt Point
		s.quadPerpRay(quad, quadPoints.endT, &quadEndPt, &quadPoints.quad[2], &quadPoints.tangentEnd)
		quadPoints.endSet = true
	}

	kind := s.intersectRay(intersectRayCtrlPt, quadPoints)
	if kind != resultQuad {
		return kind
	}

	// project a ray from the curve to the stroke
	var ray0, ray1 Point
	s.quadPerpRay(quad, quadPoints.midT, &ray1, &ray0, nil)
	stroke := quadPoints.quad
	return s.strokeCloseEnough(&stroke, &[2]Point{ray0, ray1}, quadPoints)
}

// Given a point on the curve and its derivative, scale the derivative by the radius, and
// compute the perpendicular point and its tangent.
func (s *PathStroker) setRayPoints(tp Point, dxy *Point, onP, tangent *Point) {
	scaled, ok := dxy.SetLength(s.radius)
	if !ok {
		scaled = Pt(s.radius, 0)
	}
	*dxy = scaled

	axisFlip := float32(s.strokeKind) // go opposite ways for outer, inner
	onP.X = tp.X + axisFlip*dxy.Y
	onP.Y = tp.Y - axisFlip*dxy.X

	if tangent != nil {
		tangent.X = onP.X + dxy.X
		tangent.Y = onP.Y + dxy.Y
	}
}

// Given a quad and t, return the point on curve,
// its perpendicular, and the perpendicular tangent.
func (s *PathStroker) quadPerpRay(quad *[3]Point, t float32, tp, onP, tangent *Point) {
	*tp = evalQuadAt(quad[:], t)
	dxy := evalQuadTangentAt(quad[:], t)

	if dxy.IsZero() {
		dxy = quad[2].Sub(quad[0])
	}

	s.setRayPoints(*tp, &dxy, onP, tangent)
}

func (s *PathStroker) addDegenerateLine(quadPoints *quadConstruct) {
	if s.strokeKind == strokeOuter {
		s.outer.LineTo(quadPoints.quad[2].X, quadPoints.quad[2].Y)
	} else {
		s.inner.LineTo(quadPoints.quad[2].X, quadPoints.quad[2].Y)
	}
}

func (s *PathStroker) strokeCloseEnough(stroke *[3]Point, ray *[2]Point, quadPoints *quadConstruct) resultType {
	strokeMid := evalQuadAt(stroke[:], 0.5)
	// measure the distance from the curve to the quad-stroke midpoint, compare to radius
	if pointsWithinDist(ray[0], strokeMid, s.invResScale) {
		// if the difference is small
		if sharpAngle(&quadPoints.quad) {
			return resultSplit
		}

		return resultQuad
	}

	// measure the distance to quad's bounds (quick reject)
	// an alternative : look for point in triangle
	if !ptInQuadBounds(stroke, ray[0], s.invResScale) {
		// if far, subdivide
		return resultSplit
	}

	// measure the curve ray distance to the quad-stroke
	var roots [3]float32
	rootCount := intersectQuadRay(ray, stroke, &roots)
	if rootCount != 1 {
		return resultSplit
	}

	quadPt := evalQuadAt(stroke[:], roots[0])
	dist := s.invResScale * (1.0 - math32.Abs(roots[0]-0.5)*2.0)
	if pointsWithinDist(ray[0], quadPt, dist) {
		// if the difference is small, we're done
		if sharpAngle(&quadPoints.quad) {
			return resultSplit
		}

		return resultQuad
	}

	// otherwise, subdivide
	return resultSplit
}

// Find the intersection of the stroke tangents to construct a stroke quad.
// Return whether the stroke is a degenerate (a line), a quad, or must be split.
// Optionally compute the quad's control point.
func (s *PathStroker) intersectRay(rayType intersectRayType, quadPoints *quadConstruct) resultType {
	start := quadPoints.quad[0]
	end := quadPoints.quad[2]
	aLen := quadPoints.tangentStart.Sub(start)
	bLen := quadPoints.tangentEnd.Sub(end)

	// Slopes match when denom goes to zero:
	//                   axLen / ayLen ==                   bxLen / byLen
	// (ayLen * byLen) * axLen / ayLen == (ayLen * byLen) * bxLen / byLen
	//          byLen  * axLen         ==  ayLen          * bxLen
	//          byLen  * axLen         -   ayLen          * bxLen         ( == denom )
	denom := aLen.Cross(bLen)
	if denom == 0 || !isFinite(denom) {
		quadPoints.oppositeTangents = aLen.Dot(bLen) < 0
		return resultDegenerate
	}

	quadPoints.oppositeTangents = false
	ab0 := start.Sub(end)
	numerA := bLen.Cross(ab0)
	numerB := aLen.Cross(ab0)
	if (numerA >= 0) == (numerB >= 0) {
		// if the control point is outside the quad ends

		// if the perpendicular distances from the quad points to the opposite tangent line
		// are small, a straight line is good enough
		dist1 := ptToLine(start, end, quadPoints.tangentEnd)
		dist2 := ptToLine(end, start, quadPoints.tangentStart)
		if max(dist1, dist2) <= s.invResScaleSquared {
			return resultDegenerate
		}

		return resultSplit
	}

	// check to see if the denominator is teeny relative to the numerator
	// if the offset by one will be lost, the ratio is too large
	numerA /= denom
	validDivide := numerA > numerA-1.0
	if validDivide {
		if rayType == intersectRayCtrlPt {
			// the intersection of the tangents need not be on the tangent segment
			// so 0 <= numerA <= 1 is not necessarily true
			quadPoints.quad[1].X = start.X*(1.0-numerA) + quadPoints.tangentStart.X*numerA
			quadPoints.quad[1].Y = start.Y*(1.0-numerA) + quadPoints.tangentStart.Y*numerA
		}

		return resultQuad
	}

	quadPoints.oppositeTangents = aLen.Dot(bLen) < 0

	// if the lines are parallel, straight line is good enough
	return resultDegenerate
}

// Given a cubic and a t-range, determine if the stroke can be described by a quadratic.
func (s *PathStroker) tangentsMeet(cubic *[4]Point, quadPoints *quadConstruct) resultType {
	s.cubicQuadEnds(cubic, quadPoints)
	return s.intersectRay(intersectRayResult, quadPoints)
}

func (s *PathStroker) finish(isLine bool) (*Path, bool) {
	s.finishContour(false, isLine)

	// Swap out the outer builder.
	buf := s.outer
	s.outer = PathBuilder{}

	return buf.Finish()
}

func (s *PathStroker) hasOnlyMoveTo() bool {
	return s.segmentCount == 0
}

func (s *PathStroker) isCurrentContourEmpty() bool {
	return s.inner.isZeroLengthSincePoint(0) &&
		s.outer.isZeroLengthSincePoint(s.firstOuterPtIndexInContour)
}

func capFactory(lineCap LineCap) capProc {
	switch lineCap {
	case LineCapRound:
		return roundCapper
	case LineCapSquare:
		return squareCapper
	default:
		return buttCapper
	}
}

func buttCapper(_, _, stop Point, _ *PathBuilder, path *PathBuilder) {
	path.LineTo(stop.X, stop.Y)
}

func roundCapper(pivot, normal, stop Point, _ *PathBuilder, path *PathBuilder) {
	parallel := normal.RotateCW()

	projectedCenter := pivot.Add(parallel)

	path.conicPointsTo(projectedCenter.Add(normal), projectedCenter, scalarRoot2Over2)
	path.conicPointsTo(projectedCenter.Sub(normal), stop, scalarRoot2Over2)
}

func squareCapper(pivot, normal, stop Point, otherPath *PathBuilder, path *PathBuilder) {
	parallel := normal.RotateCW()

	if otherPath != nil {
		path.setLastPoint(Pt(pivot.X+normal.X+parallel.X, pivot.Y+normal.Y+parallel.Y))
		path.LineTo(pivot.X-normal.X+parallel.X, pivot.Y-normal.Y+parallel.Y)
	} else {
		path.LineTo(pivot.X+normal.X+parallel.X, pivot.Y+normal.Y+parallel.Y)
		path.LineTo(pivot.X-normal.X+parallel.X, pivot.Y-normal.Y+parallel.Y)
		path.LineTo(stop.X, stop.Y)
	}
}

func joinFactory(join LineJoin) joinProc {
	switch join {
	case LineJoinRound:
		return roundJoiner
	case LineJoinBevel:
		return bevelJoiner
	default:
		return miterJoiner
	}
}

func isClockwise(before, after Point) bool {
	return before.X*after.Y > before.Y*after.X
}

type angleType uint8

const (
	angleNearly180 angleType = iota
	angleSharp
	angleShallow
	angleNearlyLine
)

func dotToAngleType(dot float32) angleType {
	if dot >= 0 {
		// shallow or line
		if nearlyZero(1.0 - dot) {
			return angleNearlyLine
		}
		return angleShallow
	}
	// sharp or 180
	if nearlyZero(1.0 + dot) {
		return angleNearly180
	}
	return angleSharp
}

func handleInnerJoin(pivot, after Point, inner *PathBuilder) {
	// In the degenerate case that the stroke radius is larger than our segments
	// just connecting the two inner segments may "show through" as a funny
	// diagonal. To pseudo-fix this, we go through the pivot point. This adds
	// an extra point/edge, but I can't see a cheap way to know when this is
	// not needed :(
	inner.LineTo(pivot.X, pivot.Y)

	inner.LineTo(pivot.X-after.X, pivot.Y-after.Y)
}

func bevelJoiner(
	beforeUnitNormal, pivot, afterUnitNormal Point,
	radius, _ float32,
	_, _ bool,
	builders swappableBuilders,
) {
	after := afterUnitNormal.Mul(radius)

	if !isClockwise(beforeUnitNormal, afterUnitNormal) {
		builders.swap()
		after = after.Negate()
	}

	builders.outer.LineTo(pivot.X+after.X, pivot.Y+after.Y)
	handleInnerJoin(pivot, after, builders.inner)
}

func roundJoiner(
	beforeUnitNormal, pivot, afterUnitNormal Point,
	radius, _ float32,
	_, _ bool,
	builders swappableBuilders,
) {
	dotProd := beforeUnitNormal.Dot(afterUnitNormal)
	angle := dotToAngleType(dotProd)

	if angle == angleNearlyLine {
		return
	}

	before := beforeUnitNormal
	after := afterUnitNormal
	dir := PathDirectionCW

	if !isClockwise(before, after) {
		builders.swap()
		before = before.Negate()
		after = after.Negate()
		dir = PathDirectionCCW
	}

	ts := Transform{SX: radius, SY: radius, TX: pivot.X, TY: pivot.Y}

	var storage [5]conic
	conics := buildUnitArc(before, after, dir, ts, &storage)
	if conics != nil {
		for i := range conics {
			builders.outer.conicPointsTo(conics[i].points[1], conics[i].points[2], conics[i].weight)
		}

		after = after.Mul(radius)
		handleInnerJoin(pivot, after, builders.inner)
	}
}

func miterJoiner(
	beforeUnitNormal, pivot, afterUnitNormal Point,
	radius, invMiterLimit float32,
	prevIsLine, currIsLine bool,
	builders swappableBuilders,
) {
	doBlunt := func(builders swappableBuilders, currIsLine bool, after Point) {
		after = after.Mul(radius)
		if !currIsLine {
			builders.outer.LineTo(pivot.X+after.X, pivot.Y+after.Y)
		}

		handleInnerJoin(pivot, after, builders.inner)
	}

	doMiter := func(builders swappableBuilders, currIsLine bool, mid, after Point) {
		if prevIsLine {
			builders.outer.setLastPoint(Pt(pivot.X+mid.X, pivot.Y+mid.Y))
		} else {
			builders.outer.LineTo(pivot.X+mid.X, pivot.Y+mid.Y)
		}

		doBlunt(builders, currIsLine, after)
	}

	// negate the dot since we're using normals instead of tangents
	dotProd := beforeUnitNormal.Dot(afterUnitNormal)
	angle := dotToAngleType(dotProd)
	before := beforeUnitNormal
	after := afterUnitNormal
	var mid Point

	if angle == angleNearlyLine {
		return
	}

	if angle == angleNearly180 {
		currIsLine = false
		doBlunt(builders, currIsLine, after)
		return
	}

	ccw := !isClockwise(before, after)
	if ccw {
		builders.swap()
		before = before.Negate()
		after = after.Negate()
	}

	// Before we enter the world of square-roots and divides,
	// check if we're trying to join an upright right angle
	// (common case for stroking rectangles). If so, special case
	// that (for speed an accuracy).
	// Note: we only need to check one normal if dot==0
	if dotProd == 0 && invMiterLimit <= scalarRoot2Over2 {
		mid = before.Add(after).Mul(radius)
		doMiter(builders, currIsLine, mid, after)
		return
	}

	// midLength = radius / sinHalfAngle
	// if (midLength > miterLimit * radius) abort
	// if (radius / sinHalf > miterLimit * radius) abort
	// if (1 / sinHalf > miterLimit) abort
	// if (1 / miterLimit > sinHalf) abort
	// My dotProd is opposite sign, since it is built from normals and not tangents
	// hence 1 + dot instead of 1 - dot in the formula
	sinHalfAngle := math32.Sqrt((1.0 + dotProd) * 0.5)
	if sinHalfAngle < invMiterLimit {
		currIsLine = false
		doBlunt(builders, currIsLine, after)
		return
	}

	// choose the most accurate way to form the initial mid-vector
	if angle == angleSharp {
		mid = Pt(after.Y-before.Y, before.X-after.X)
		if ccw {
			mid = mid.Negate()
		}
	} else {
		mid = Pt(before.X+after.X, before.Y+after.Y)
	}

	mid, _ = mid.SetLength(radius / sinHalfAngle)
	doMiter(builders, currIsLine, mid, after)
}

func setNormalUnitNormal(before, after Point, scale, radius float32, normal, unitNormal *Point) bool {
	unit, ok := Pt((after.X-before.X)*scale, (after.Y-before.Y)*scale).Normalize()
	if !ok {
		return false
	}

	*unitNormal = unit.RotateCCW()
	*normal = unitNormal.Mul(radius)
	return true
}

func setNormalUnitNormalFromVector(vec Point, radius float32, normal, unitNormal *Point) bool {
	unit, ok := vec.Normalize()
	if !ok {
		return false
	}

	*unitNormal = unit.RotateCCW()
	*normal = unitNormal.Mul(radius)
	return true
}

// quadConstruct holds the state of the quad stroke under construction.
type quadConstruct struct {
	quad             [3]Point // the stroked quad parallel to the original curve
	tangentStart     Point    // a point tangent to quad[0]
	tangentEnd       Point    // a point tangent to quad[2]
	startT           float32  // a segment of the original curve
	midT             float32
	endT             float32
	startSet         bool // state to share common points across structs
	endSet           bool
	oppositeTangents bool // set if coincident tangents have opposite directions
}

// init reports false if start and end are too close to have a unique middle.
func (q *quadConstruct) init(start, end float32) bool {
	q.startT = start
	q.midT = boundUnit((start + end) * 0.5)
	q.endT = end
	q.startSet = false
	q.endSet = false
	return q.startT < q.midT && q.midT < q.endT
}

func (q *quadConstruct) initWithStart(parent *quadConstruct) bool {
	if !q.init(parent.startT, parent.midT) {
		return false
	}

	q.quad[0] = parent.quad[0]
	q.tangentStart = parent.tangentStart
	q.startSet = true
	return true
}

func (q *quadConstruct) initWithEnd(parent *quadConstruct) bool {
	if !q.init(parent.midT, parent.endT) {
		return false
	}

	q.quad[2] = parent.quad[2]
	q.tangentEnd = parent.tangentEnd
	q.endSet = true
	return true
}

func checkQuadLinear(quad *[3]Point) (Point, reductionType) {
	degenerateAB := degenerateVector(quad[1].Sub(quad[0]))
	degenerateBC := degenerateVector(quad[2].Sub(quad[1]))
	if degenerateAB && degenerateBC {
		return Point{}, reductionPoint
	}

	if degenerateAB || degenerateBC {
		return Point{}, reductionLine
	}

	if !quadInLine(quad) {
		return Point{}, reductionQuad
	}

	t := findQuadMaxCurvature(quad[:])
	if t == 0 || t == 1 {
		return Point{}, reductionLine
	}

	return evalQuadAt(quad[:], t), reductionDegenerate
}

func degenerateVector(v Point) bool {
	return !v.CanNormalize()
}

// quadInLine reports whether all three quad points are in a line, i.e.
// the inside point is close to a line connecting the outermost points.
//
// Find the outermost point by looking for the largest difference in X or Y.
// Since the XOR of the indices is 3 (0 ^ 1 ^ 2),
// the missing index equals: outer1 ^ outer2 ^ 3.
func quadInLine(quad *[3]Point) bool {
	ptMax := float32(-1)
	outer1 := 0
	outer2 := 0
	for index := 0; index < 2; index++ {
		for inner := index + 1; inner < 3; inner++ {
			testDiff := quad[inner].Sub(quad[index])
			testMax := max(math32.Abs(testDiff.X), math32.Abs(testDiff.Y))
			if ptMax < testMax {
				outer1 = index
				outer2 = inner
				ptMax = testMax
			}
		}
	}

	mid := outer1 ^ outer2 ^ 3
	const curvatureSlop = 0.000005 // this multiplier is pulled out of the air
	lineSlop := ptMax * ptMax * curvatureSlop
	return ptToLine(quad[mid], quad[outer1], quad[outer2]) <= lineSlop
}

// ptToLine returns the distance squared from the point to the line.
func ptToLine(pt, lineStart, lineEnd Point) float32 {
	dxy := lineEnd.Sub(lineStart)
	ab0 := pt.Sub(lineStart)
	numer := dxy.Dot(ab0)
	denom := dxy.Dot(dxy)
	t := numer / denom
	if t >= 0 && t <= 1 {
		hit := Pt(
			lineStart.X*(1.0-t)+lineEnd.X*t,
			lineStart.Y*(1.0-t)+lineEnd.Y*t,
		)
		return hit.DistanceToSq(pt)
	}
	return pt.DistanceToSq(lineStart)
}

// intersectQuadRay intersects the line with the quad and returns the t
// values on the quad where the line crosses.
func intersectQuadRay(line *[2]Point, quad *[3]Point, roots *[3]float32) int {
	vec := line[1].Sub(line[0])
	var r [3]float32
	for n := 0; n < 3; n++ {
		r[n] = (quad[n].Y-line[0].Y)*vec.X - (quad[n].X-line[0].X)*vec.Y
	}
	a := r[2]
	b := r[1]
	c := r[0]
	a += c - 2.0*b // A = a - 2*b + c
	b -= c         // B = -(b - c)

	return findUnitQuadRoots(a, 2.0*b, c, roots)
}

func pointsWithinDist(nearPt, farPt Point, limit float32) bool {
	return nearPt.DistanceToSq(farPt) <= limit*limit
}

func sharpAngle(quad *[3]Point) bool {
	smaller := quad[1].Sub(quad[0])
	larger := quad[1].Sub(quad[2])
	smallerLen := smaller.LengthSq()
	largerLen := larger.LengthSq()
	if smallerLen > largerLen {
		smaller, larger = larger, smaller
		largerLen = smallerLen
	}

	scaled, ok := smaller.SetLength(largerLen)
	if !ok {
		return false
	}

	dot := scaled.Dot(larger)
	return dot > 0
}

// ptInQuadBounds reports whether the point is close to the bounds of
// the quad. This is used as a quick reject.
func ptInQuadBounds(quad *[3]Point, pt Point, invResScale float32) bool {
	xMin := min(quad[0].X, quad[1].X, quad[2].X)
	if pt.X+invResScale < xMin {
		return false
	}

	xMax := max(quad[0].X, quad[1].X, quad[2].X)
	if pt.X-invResScale > xMax {
		return false
	}

	yMin := min(quad[0].Y, quad[1].Y, quad[2].Y)
	if pt.Y+invResScale < yMin {
		return false
	}

	yMax := max(quad[0].Y, quad[1].Y, quad[2].Y)
	if pt.Y-invResScale > yMax {
		return false
	}

	return true
}

func checkCubicLinear(cubic *[4]Point, reduction *[3]Point, tangentPt *Point) reductionType {
	degenerateAB := degenerateVector(cubic[1].Sub(cubic[0]))
	degenerateBC := degenerateVector(cubic[2].Sub(cubic[1]))
	degenerateCD := degenerateVector(cubic[3].Sub(cubic[2]))
	if degenerateAB && degenerateBC && degenerateCD {
		return reductionPoint
	}

	if boolToIndex(degenerateAB)+boolToIndex(degenerateBC)+boolToIndex(degenerateCD) == 2 {
		return reductionLine
	}

	if !cubicInLine(cubic) {
		if tangentPt != nil {
			if degenerateAB {
				*tangentPt = cubic[2]
			} else {
				*tangentPt = cubic[1]
			}
		}

		return reductionQuad
	}

	var tValueStorage [3]float32
	tValues := findCubicMaxCurvature(cubic[:], &tValueStorage)
	rCount := 0
	// Now loop over the t-values, and reject any that evaluate to either end-point
	for _, t := range tValues {
		if t <= 0 || t >= 1 {
			continue
		}

		reduction[rCount] = evalCubicPosAt(cubic[:], t)
		if reduction[rCount] != cubic[0] && reduction[rCount] != cubic[3] {
			rCount++
		}
	}

	switch rCount {
	case 1:
		return reductionDegenerate
	case 2:
		return reductionDegenerate2
	case 3:
		return reductionDegenerate3
	default:
		return reductionLine
	}
}

// cubicInLine reports whether all four cubic points are in a line, i.e.
// the inner points are close to a line connecting the outermost points.
//
// Find the outermost point by looking for the largest difference in X or Y.
// Given the indices of the outermost points, and that outer1 is greater than outer2,
// this table shows the index of the smaller of the remaining points:
//
//	                outer2
//	            0    1    2    3
//	outer1      ----------------
//	   0     |  -    2    1    1
//	   1     |  -    -    0    0
//	   2     |  -    -    -    0
//	   3     |  -    -    -    -
//
// If outer1 == 0 and outer2 == 1, the smaller of the remaining indices (2 and 3) is 2.
//
// This table can be collapsed to: (1 + (2 >> outer2)) >> outer1
//
// Given three indices (outer1 outer2 mid1) from 0..3, the remaining index is:
//
//	mid2 == (outer1 ^ outer2 ^ mid1)
func cubicInLine(cubic *[4]Point) bool {
	ptMax := float32(-1)
	outer1 := 0
	outer2 := 0
	for index := 0; index < 3; index++ {
		for inner := index + 1; inner < 4; inner++ {
			testDiff := cubic[inner].Sub(cubic[index])
			testMax := max(math32.Abs(testDiff.X), math32.Abs(testDiff.Y))
			if ptMax < testMax {
				outer1 = index
				outer2 = inner
				ptMax = testMax
			}
		}
	}

	mid1 := (1 + (2 >> outer2)) >> outer1
	mid2 := outer1 ^ outer2 ^ mid1
	lineSlop := ptMax * ptMax * 0.00001 // this multiplier is pulled out of the air

	return ptToLine(cubic[mid1], cubic[outer1], cubic[outer2]) <= lineSlop &&
		ptToLine(cubic[mid2], cubic[outer1], cubic[outer2]) <= lineSlop
}

func boolToIndex(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
