package ink

import (
	"fmt"
	"strings"
)

// PathVerb describes how a path segment is built from its points.
type PathVerb uint8

const (
	// PathVerbMove starts a new contour at a point.
	PathVerbMove PathVerb = iota
	// PathVerbLine adds a line from the last point.
	PathVerbLine
	// PathVerbQuad adds a quadratic Bezier from the last point.
	PathVerbQuad
	// PathVerbCubic adds a cubic Bezier from the last point.
	PathVerbCubic
	// PathVerbClose closes the current contour.
	PathVerbClose
)

// Path is an immutable sequence of contours built from move/line/quad/
// cubic/close verbs. Use a PathBuilder to construct one; a finished
// Path is never empty and always has finite bounds.
//
// Points are stored in a slice parallel to the verbs: a Move and a Line
// consume one point each, a Quad two, a Cubic three and a Close none.
type Path struct {
	verbs  []PathVerb
	points []Point
	bounds Rect
}

// Len returns the number of verbs in the path.
func (p *Path) Len() int {
	return len(p.verbs)
}

// Bounds returns the bounding rectangle of the path's points.
//
// The control points of curves are included, so the bounds may be
// larger than the tight bounds of the outline itself.
func (p *Path) Bounds() Rect {
	return p.bounds
}

// Verbs returns the internal verb slice. The caller must not modify it.
func (p *Path) Verbs() []PathVerb {
	return p.verbs
}

// Points returns the internal point slice. The caller must not modify it.
func (p *Path) Points() []Point {
	return p.points
}

// Transform returns the path mapped through ts.
//
// Some points may become NaN/inf, therefore this method can fail.
func (p *Path) Transform(ts Transform) (*Path, bool) {
	if ts.IsIdentity() {
		return p, true
	}

	points := make([]Point, len(p.points))
	copy(points, p.points)
	ts.MapPoints(points)

	bounds, ok := boundsFromPoints(points)
	if !ok {
		return nil, false
	}

	verbs := make([]PathVerb, len(p.verbs))
	copy(verbs, p.verbs)
	return &Path{verbs: verbs, points: points, bounds: bounds}, true
}

// Segments returns an iterator over the path's segments.
func (p *Path) Segments() *PathSegmentsIter {
	return &PathSegmentsIter{path: p}
}

// Clear returns a PathBuilder that reuses the path's allocations.
// The path must not be used afterwards.
func (p *Path) Clear() *PathBuilder {
	return &PathBuilder{
		verbs:          p.verbs[:0],
		points:         p.points[:0],
		moveToRequired: true,
	}
}

// String returns the path in SVG-like notation, mostly for debugging.
func (p *Path) String() string {
	var s strings.Builder
	iter := p.Segments()
	for {
		seg, ok := iter.Next()
		if !ok {
			break
		}
		switch seg.Kind {
		case PathVerbMove:
			fmt.Fprintf(&s, "M %v %v ", seg.P0.X, seg.P0.Y)
		case PathVerbLine:
			fmt.Fprintf(&s, "L %v %v ", seg.P0.X, seg.P0.Y)
		case PathVerbQuad:
			fmt.Fprintf(&s, "Q %v %v %v %v ", seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y)
		case PathVerbCubic:
			fmt.Fprintf(&s, "C %v %v %v %v %v %v ",
				seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y, seg.P2.X, seg.P2.Y)
		case PathVerbClose:
			s.WriteString("Z ")
		}
	}
	return strings.TrimRight(s.String(), " ")
}

// PathSegment is a single step of a path traversal. Kind selects which
// points are meaningful: a Move or Line uses P0, a Quad P0..P1, a
// Cubic P0..P2 and a Close none of them.
type PathSegment struct {
	Kind       PathVerb
	P0, P1, P2 Point
}

// PathSegmentsIter walks a path verb by verb.
type PathSegmentsIter struct {
	path        *Path
	verbIndex   int
	pointsIndex int

	autoClose  bool
	lastMoveTo Point
	lastPoint  Point
}

// SetAutoClose sets the auto closing mode. Off by default.
//
// When enabled, a Close verb on a contour whose last point differs from
// its starting point first emits a Line back to the start, and only
// then emits the Close itself.
func (it *PathSegmentsIter) SetAutoClose(flag bool) {
	it.autoClose = flag
}

// LastPoint returns the end point of the most recently emitted segment.
func (it *PathSegmentsIter) LastPoint() Point {
	return it.lastPoint
}

// CurrVerb returns the most recently emitted verb.
func (it *PathSegmentsIter) CurrVerb() PathVerb {
	return it.path.verbs[it.verbIndex-1]
}

// NextVerb peeks at the upcoming verb without advancing.
func (it *PathSegmentsIter) NextVerb() (PathVerb, bool) {
	if it.verbIndex < len(it.path.verbs) {
		return it.path.verbs[it.verbIndex], true
	}
	return 0, false
}

// Next returns the next segment, reporting false at the end of the path.
func (it *PathSegmentsIter) Next() (PathSegment, bool) {
	if it.verbIndex >= len(it.path.verbs) {
		return PathSegment{}, false
	}

	verb := it.path.verbs[it.verbIndex]
	it.verbIndex++

	switch verb {
	case PathVerbMove:
		it.pointsIndex++
		it.lastMoveTo = it.path.points[it.pointsIndex-1]
		it.lastPoint = it.lastMoveTo
		return PathSegment{Kind: PathVerbMove, P0: it.lastMoveTo}, true
	case PathVerbLine:
		it.pointsIndex++
		it.lastPoint = it.path.points[it.pointsIndex-1]
		return PathSegment{Kind: PathVerbLine, P0: it.lastPoint}, true
	case PathVerbQuad:
		it.pointsIndex += 2
		it.lastPoint = it.path.points[it.pointsIndex-1]
		return PathSegment{
			Kind: PathVerbQuad,
			P0:   it.path.points[it.pointsIndex-2],
			P1:   it.lastPoint,
		}, true
	case PathVerbCubic:
		it.pointsIndex += 3
		it.lastPoint = it.path.points[it.pointsIndex-1]
		return PathSegment{
			Kind: PathVerbCubic,
			P0:   it.path.points[it.pointsIndex-3],
			P1:   it.path.points[it.pointsIndex-2],
			P2:   it.lastPoint,
		}, true
	default: // PathVerbClose
		seg := it.autoCloseSegment()
		it.lastPoint = it.lastMoveTo
		return seg, true
	}
}

func (it *PathSegmentsIter) autoCloseSegment() PathSegment {
	if it.autoClose && it.lastPoint != it.lastMoveTo {
		// revisit the Close verb after the synthetic closing line
		it.verbIndex--
		return PathSegment{Kind: PathVerbLine, P0: it.lastMoveTo}
	}
	return PathSegment{Kind: PathVerbClose}
}

// hasValidTangent reports whether any of the remaining segments of the
// current contour has a defined direction. Used to orient caps on
// degenerate contours.
func (it *PathSegmentsIter) hasValidTangent() bool {
	iter := *it
	for {
		seg, ok := iter.Next()
		if !ok {
			return false
		}
		switch seg.Kind {
		case PathVerbMove, PathVerbClose:
			return false
		case PathVerbLine:
			if iter.lastPoint == seg.P0 {
				continue
			}
			return true
		case PathVerbQuad:
			if iter.lastPoint == seg.P0 && iter.lastPoint == seg.P1 {
				continue
			}
			return true
		case PathVerbCubic:
			if iter.lastPoint == seg.P0 && iter.lastPoint == seg.P1 && iter.lastPoint == seg.P2 {
				continue
			}
			return true
		}
	}
}
