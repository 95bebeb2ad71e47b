package ink

import "github.com/chewxy/math32"

// Arc-length measurement of path contours. A ContourMeasure maps
// distances along a contour to positions, tangents and sub-segments by
// flattening each curve into a table of (distance, t) entries.
//
// The parameter space of each curve is subdivided over fixed-point t
// values so that halving is exact; maxTValue is the fixed-point
// representation of t == 1.

const maxTValue = 0x3FFFFFFF

type segmentKind uint8

const (
	segmentLine segmentKind = iota
	segmentQuad
	segmentCubic
)

// measureSegment is one entry of the distance table: the cumulative
// distance up to fixed-point tValue of the curve starting at
// pointIndex.
type measureSegment struct {
	distance   float32 // total distance up to this point
	pointIndex int     // index into the ContourMeasure points slice
	tValue     uint32
	kind       segmentKind
}

func (s measureSegment) scalarT() float32 {
	// 1/maxTValue can't be represented as a float, but it's close and the
	// limits work fine.
	const maxTReciprocal = 1.0 / float32(maxTValue)
	return float32(s.tValue) * maxTReciprocal
}

// ContourMeasure is the arc-length table of a single contour.
type ContourMeasure struct {
	segments []measureSegment
	points   []Point
	length   float32
	isClosed bool
}

// Length returns the total length of the contour. A closed contour
// includes the implicit closing line.
func (c *ContourMeasure) Length() float32 {
	return c.length
}

// IsClosed reports whether the contour ends with a Close verb.
func (c *ContourMeasure) IsClosed() bool {
	return c.isClosed
}

// ContourMeasureIter yields a ContourMeasure for every contour of a
// path, in order. Contours that contain only a Move are yielded with a
// zero length.
type ContourMeasureIter struct {
	iter      *PathSegmentsIter
	tolerance float32
}

// NewContourMeasureIter creates an iterator over the contours of path.
//
// resScale is the same resolution scale used for stroking: larger
// values flatten the curves more precisely.
func NewContourMeasureIter(path *Path, resScale float32) *ContourMeasureIter {
	// can't use tangents, since we need [0..1..................2] to be seen
	// as definitely not a line (it is when drawn, but not parametrically)
	// so we compare midpoints
	const cheapDistLimit = 0.5 // just made this value up

	return &ContourMeasureIter{
		iter:      path.Segments(),
		tolerance: cheapDistLimit / resScale,
	}
}

// Next returns the measure of the next contour, reporting false at the
// end of the path or when the accumulated length is not finite.
func (it *ContourMeasureIter) Next() (*ContourMeasure, bool) {
	// As we accumulate distance, we have to check that the result of +=
	// actually made it larger, since a very small delta might be > 0, but
	// still have no effect on distance (if distance >>> delta).
	contour := &ContourMeasure{}

	pointIndex := 0
	var distance float32
	haveSeenClose := false
	var prevP Point

	for {
		seg, ok := it.iter.Next()
		if !ok {
			break
		}

		switch seg.Kind {
		case PathVerbMove:
			contour.points = append(contour.points, seg.P0)
			prevP = seg.P0
		case PathVerbLine:
			prevD := distance
			distance = contour.computeLineSeg(prevP, seg.P0, distance, pointIndex)
			if distance > prevD {
				contour.points = append(contour.points, seg.P0)
				pointIndex++
			}
			prevP = seg.P0
		case PathVerbQuad:
			prevD := distance
			distance = contour.computeQuadSegs(prevP, seg.P0, seg.P1,
				distance, 0, maxTValue, pointIndex, it.tolerance)
			if distance > prevD {
				contour.points = append(contour.points, seg.P0, seg.P1)
				pointIndex += 2
			}
			prevP = seg.P1
		case PathVerbCubic:
			prevD := distance
			distance = contour.computeCubicSegs(prevP, seg.P0, seg.P1, seg.P2,
				distance, 0, maxTValue, pointIndex, it.tolerance)
			if distance > prevD {
				contour.points = append(contour.points, seg.P0, seg.P1, seg.P2)
				pointIndex += 3
			}
			prevP = seg.P2
		case PathVerbClose:
			haveSeenClose = true
		}

		if verb, ok := it.iter.NextVerb(); ok && verb == PathVerbMove {
			break
		}
	}

	if !isFinite(distance) {
		return nil, false
	}

	if haveSeenClose {
		prevD := distance
		firstPt := contour.points[0]
		distance = contour.computeLineSeg(contour.points[pointIndex], firstPt, distance, pointIndex)
		if distance > prevD {
			contour.points = append(contour.points, firstPt)
		}
	}

	contour.length = distance
	contour.isClosed = haveSeenClose

	if len(contour.points) == 0 {
		return nil, false
	}
	return contour, true
}

// PosTan returns the position and the unit tangent at the given
// distance along the contour. The distance is clamped to
// [0, Length]. It reports false when the contour is empty or the
// interpolated parameter is not finite.
func (c *ContourMeasure) PosTan(distance float32) (Point, Point, bool) {
	if len(c.segments) == 0 {
		return Point{}, Point{}, false
	}

	distance = bound(distance, 0, c.length)

	index, t, ok := c.distanceToSegment(distance)
	if !ok {
		return Point{}, Point{}, false
	}
	seg := c.segments[index]

	var pos, tangent Point
	computePosTan(c.points[seg.pointIndex:], seg.kind, t, &pos, &tangent)
	return pos, tangent, true
}

// PushSegment appends the part of the contour between the two distances
// to pb, optionally starting with a MoveTo. Distances are clamped to
// [0, Length]. It reports false for inverted or NaN ranges and for
// empty contours.
func (c *ContourMeasure) PushSegment(startD, stopD float32, startWithMoveTo bool, pb *PathBuilder) bool {
	if startD < 0 {
		startD = 0
	}
	if stopD > c.length {
		stopD = c.length
	}
	if !(startD <= stopD) {
		// catch NaN values as well
		return false
	}
	if len(c.segments) == 0 {
		return false
	}

	segIndex, startT, ok := c.distanceToSegment(startD)
	if !ok {
		return false
	}
	seg := c.segments[segIndex]

	stopSegIndex, stopT, ok := c.distanceToSegment(stopD)
	if !ok {
		return false
	}
	stopSeg := c.segments[stopSegIndex]

	if startWithMoveTo {
		var p Point
		computePosTan(c.points[seg.pointIndex:], seg.kind, startT, &p, nil)
		pb.MoveTo(p.X, p.Y)
	}

	if seg.pointIndex == stopSeg.pointIndex {
		measureSegmentTo(c.points[seg.pointIndex:], seg.kind, startT, stopT, pb)
	} else {
		newSegIndex := segIndex
		for {
			measureSegmentTo(c.points[seg.pointIndex:], seg.kind, startT, 1, pb)

			oldPointIndex := seg.pointIndex
			for {
				newSegIndex++
				if c.segments[newSegIndex].pointIndex != oldPointIndex {
					break
				}
			}
			seg = c.segments[newSegIndex]

			startT = 0

			if seg.pointIndex >= stopSeg.pointIndex {
				break
			}
		}

		measureSegmentTo(c.points[seg.pointIndex:], seg.kind, 0, stopT, pb)
	}

	return true
}

// distanceToSegment finds the table entry covering distance and
// interpolates the curve parameter inside it.
func (c *ContourMeasure) distanceToSegment(distance float32) (int, float32, bool) {
	index := findMeasureSegment(c.segments, distance)
	// don't care if we hit an exact match or not, so we xor index if it is negative
	index ^= index >> 31
	seg := c.segments[index]

	// now interpolate t-values with the prev segment (if possible)
	var startT float32
	var startD float32
	// check if the prev segment is legal, and references the same set of points
	if index > 0 {
		startD = c.segments[index-1].distance
		if c.segments[index-1].pointIndex == seg.pointIndex {
			startT = c.segments[index-1].scalarT()
		}
	}

	t := startT + (seg.scalarT()-startT)*(distance-startD)/(seg.distance-startD)
	if !(t >= 0 && t <= 1) {
		// catches NaN from a zero-length denominator
		return 0, 0, false
	}
	return int(index), t, true
}

func (c *ContourMeasure) computeLineSeg(p0, p1 Point, distance float32, pointIndex int) float32 {
	d := p0.Distance(p1)
	prevD := distance
	distance += d
	if distance > prevD {
		c.segments = append(c.segments, measureSegment{
			distance:   distance,
			pointIndex: pointIndex,
			tValue:     maxTValue,
			kind:       segmentLine,
		})
	}
	return distance
}

func (c *ContourMeasure) computeQuadSegs(
	p0, p1, p2 Point,
	distance float32,
	minT, maxT uint32,
	pointIndex int,
	tolerance float32,
) float32 {
	if tSpanBigEnough(maxT-minT) && quadTooCurvy(p0, p1, p2, tolerance) {
		var tmp [5]Point
		halfT := (minT + maxT) >> 1

		chopQuadAt([]Point{p0, p1, p2}, 0.5, &tmp)
		distance = c.computeQuadSegs(tmp[0], tmp[1], tmp[2],
			distance, minT, halfT, pointIndex, tolerance)
		distance = c.computeQuadSegs(tmp[2], tmp[3], tmp[4],
			distance, halfT, maxT, pointIndex, tolerance)
	} else {
		d := p0.Distance(p2)
		prevD := distance
		distance += d
		if distance > prevD {
			c.segments = append(c.segments, measureSegment{
				distance:   distance,
				pointIndex: pointIndex,
				tValue:     maxT,
				kind:       segmentQuad,
			})
		}
	}
	return distance
}

func (c *ContourMeasure) computeCubicSegs(
	p0, p1, p2, p3 Point,
	distance float32,
	minT, maxT uint32,
	pointIndex int,
	tolerance float32,
) float32 {
	if tSpanBigEnough(maxT-minT) && cubicTooCurvy(p0, p1, p2, p3, tolerance) {
		var tmp [7]Point
		halfT := (minT + maxT) >> 1

		chopCubicAt([]Point{p0, p1, p2, p3}, 0.5, &tmp)
		distance = c.computeCubicSegs(tmp[0], tmp[1], tmp[2], tmp[3],
			distance, minT, halfT, pointIndex, tolerance)
		distance = c.computeCubicSegs(tmp[3], tmp[4], tmp[5], tmp[6],
			distance, halfT, maxT, pointIndex, tolerance)
	} else {
		d := p0.Distance(p3)
		prevD := distance
		distance += d
		if distance > prevD {
			c.segments = append(c.segments, measureSegment{
				distance:   distance,
				pointIndex: pointIndex,
				tValue:     maxT,
				kind:       segmentCubic,
			})
		}
	}
	return distance
}

// findMeasureSegment binary-searches the distance table. A negative
// result is the bitwise complement of the insertion point, matching the
// convention of the callers.
func findMeasureSegment(base []measureSegment, key float32) int32 {
	lo := int32(0)
	hi := int32(len(base) - 1)

	for lo < hi {
		mid := (hi + lo) >> 1
		if base[mid].distance < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if base[hi].distance < key {
		hi++
		hi = ^hi
	} else if key < base[hi].distance {
		hi = ^hi
	}

	return hi
}

func computePosTan(points []Point, kind segmentKind, t float32, pos, tangent *Point) {
	switch kind {
	case segmentLine:
		if pos != nil {
			*pos = Pt(
				interp(points[0].X, points[1].X, t),
				interp(points[0].Y, points[1].Y, t),
			)
		}
		if tangent != nil {
			*tangent, _ = points[1].Sub(points[0]).Normalize()
		}
	case segmentQuad:
		if pos != nil {
			*pos = evalQuadAt(points[:3], t)
		}
		if tangent != nil {
			*tangent, _ = evalQuadTangentAt(points[:3], t).Normalize()
		}
	case segmentCubic:
		if pos != nil {
			*pos = evalCubicPosAt(points[:4], t)
		}
		if tangent != nil {
			*tangent, _ = evalCubicTangentAt(points[:4], t).Normalize()
		}
	}
}

// measureSegmentTo appends the part of a single curve between two
// parameters to pb. A zero-length range emits a zero-length line so
// that the stroker can still cap it.
func measureSegmentTo(points []Point, kind segmentKind, startT, stopT float32, pb *PathBuilder) {
	if startT == stopT {
		if pt, ok := pb.LastPoint(); ok {
			// If the dash has a zero-length on segment, add a corresponding
			// zero-length line. The stroke code will add end caps to zero
			// length lines as appropriate.
			pb.lineToPt(pt)
		}
		return
	}

	switch kind {
	case segmentLine:
		if stopT == 1 {
			pb.lineToPt(points[1])
		} else {
			pb.LineTo(
				interp(points[0].X, points[1].X, stopT),
				interp(points[0].Y, points[1].Y, stopT),
			)
		}
	case segmentQuad:
		var tmp0, tmp1 [5]Point
		if startT == 0 {
			if stopT == 1 {
				pb.quadToPt(points[1], points[2])
			} else {
				chopQuadAt(points, stopT, &tmp0)
				pb.quadToPt(tmp0[1], tmp0[2])
			}
		} else {
			chopQuadAt(points, startT, &tmp0)
			if stopT == 1 {
				pb.quadToPt(tmp0[3], tmp0[4])
			} else {
				newT := (stopT - startT) / (1 - startT)
				chopQuadAt(tmp0[2:], newT, &tmp1)
				pb.quadToPt(tmp1[1], tmp1[2])
			}
		}
	case segmentCubic:
		var tmp0, tmp1 [7]Point
		if startT == 0 {
			if stopT == 1 {
				pb.cubicToPt(points[1], points[2], points[3])
			} else {
				chopCubicAt(points, stopT, &tmp0)
				pb.cubicToPt(tmp0[1], tmp0[2], tmp0[3])
			}
		} else {
			chopCubicAt(points, startT, &tmp0)
			if stopT == 1 {
				pb.cubicToPt(tmp0[4], tmp0[5], tmp0[6])
			} else {
				newT := (stopT - startT) / (1 - startT)
				chopCubicAt(tmp0[3:], newT, &tmp1)
				pb.cubicToPt(tmp1[1], tmp1[2], tmp1[3])
			}
		}
	}
}

func tSpanBigEnough(tSpan uint32) bool {
	return tSpan>>10 != 0
}

func quadTooCurvy(p0, p1, p2 Point, tolerance float32) bool {
	// diff = (a/4 + b/2 + c/4) - (a/2 + c/2)
	// diff = -a/4 + b/2 - c/4
	dx := p1.X*0.5 - (p0.X+p2.X)*0.25
	dy := p1.Y*0.5 - (p0.Y+p2.Y)*0.25

	dist := math32.Max(math32.Abs(dx), math32.Abs(dy))
	return dist > tolerance
}

func cubicTooCurvy(p0, p1, p2, p3 Point, tolerance float32) bool {
	n0 := cheapDistExceedsLimit(p1,
		interp(p0.X, p3.X, 1.0/3.0),
		interp(p0.Y, p3.Y, 1.0/3.0),
		tolerance)
	n1 := cheapDistExceedsLimit(p2,
		interp(p0.X, p3.X, 2.0/3.0),
		interp(p0.Y, p3.Y, 2.0/3.0),
		tolerance)
	return n0 || n1
}

func cheapDistExceedsLimit(pt Point, x, y, tolerance float32) bool {
	dist := math32.Max(math32.Abs(x-pt.X), math32.Abs(y-pt.Y))
	return dist > tolerance
}
