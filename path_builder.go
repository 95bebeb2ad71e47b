package ink

// PathBuilder constructs a Path incrementally.
//
// The zero value is ready to use.
type PathBuilder struct {
	verbs           []PathVerb
	points          []Point
	lastMoveToIndex int
	moveToRequired  bool
}

// NewPathBuilder creates a new builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{moveToRequired: true}
}

// NewPathBuilderWithCapacity creates a new builder with preallocated
// verb and point storage.
//
// Number of points depends on a verb type:
//
//   - Move - 1
//   - Line - 1
//   - Quad - 2
//   - Cubic - 3
//   - Close - 0
func NewPathBuilderWithCapacity(verbsCapacity, pointsCapacity int) *PathBuilder {
	return &PathBuilder{
		verbs:          make([]PathVerb, 0, verbsCapacity),
		points:         make([]Point, 0, pointsCapacity),
		moveToRequired: true,
	}
}

// FromRect creates a new Path from a Rect.
//
// Never fails since a valid Rect is always representable.
//
// Segments are created clockwise: TopLeft -> TopRight -> BottomRight ->
// BottomLeft. The contour is closed.
func FromRect(rect Rect) *Path {
	return &Path{
		verbs: []PathVerb{
			PathVerbMove,
			PathVerbLine,
			PathVerbLine,
			PathVerbLine,
			PathVerbClose,
		},
		points: []Point{
			{rect.Left, rect.Top},
			{rect.Right, rect.Top},
			{rect.Right, rect.Bottom},
			{rect.Left, rect.Bottom},
		},
		bounds: rect,
	}
}

// FromCircle creates a new Path from a circle.
//
// See [PathBuilder.PushCircle] for details.
func FromCircle(cx, cy, radius float32) (*Path, bool) {
	var b PathBuilder
	b.PushCircle(cx, cy, radius)
	return b.Finish()
}

// FromOval creates a new Path from an oval.
//
// See [PathBuilder.PushOval] for details.
func FromOval(oval Rect) (*Path, bool) {
	var b PathBuilder
	b.PushOval(oval)
	return b.Finish()
}

// reserve grows the verb and point storage so at least verbsAdditional
// verbs and pointsAdditional points can be added without reallocating.
func (b *PathBuilder) reserve(verbsAdditional, pointsAdditional int) {
	if cap(b.verbs)-len(b.verbs) < verbsAdditional {
		verbs := make([]PathVerb, len(b.verbs), len(b.verbs)+verbsAdditional)
		copy(verbs, b.verbs)
		b.verbs = verbs
	}
	if cap(b.points)-len(b.points) < pointsAdditional {
		points := make([]Point, len(b.points), len(b.points)+pointsAdditional)
		copy(points, b.points)
		b.points = points
	}
}

// Len returns the current number of segments in the builder.
func (b *PathBuilder) Len() int {
	return len(b.verbs)
}

// IsEmpty checks if the builder has any segments added.
func (b *PathBuilder) IsEmpty() bool {
	return len(b.verbs) == 0
}

// MoveTo adds the beginning of a contour.
//
// Multiple continuous MoveTo segments are not allowed.
// If the previous segment was also MoveTo, it will be overwritten with
// the current one.
func (b *PathBuilder) MoveTo(x, y float32) {
	if len(b.verbs) > 0 && b.verbs[len(b.verbs)-1] == PathVerbMove {
		b.points[len(b.points)-1] = Pt(x, y)
		return
	}

	b.lastMoveToIndex = len(b.points)
	b.moveToRequired = false

	b.verbs = append(b.verbs, PathVerbMove)
	b.points = append(b.points, Pt(x, y))
}

func (b *PathBuilder) injectMoveToIfNeeded() {
	if b.moveToRequired || len(b.verbs) == 0 {
		if b.lastMoveToIndex < len(b.points) {
			p := b.points[b.lastMoveToIndex]
			b.MoveTo(p.X, p.Y)
		} else {
			b.MoveTo(0, 0)
		}
	}
}

// LineTo adds a line from the last point.
//
//   - If the builder is empty - adds Move(0, 0) first.
//   - If the builder ends with Close - adds Move(last_x, last_y) first.
func (b *PathBuilder) LineTo(x, y float32) {
	b.injectMoveToIfNeeded()

	b.verbs = append(b.verbs, PathVerbLine)
	b.points = append(b.points, Pt(x, y))
}

func (b *PathBuilder) lineToPt(p Point) {
	b.LineTo(p.X, p.Y)
}

// QuadTo adds a quad curve from the last point to x, y.
//
//   - If the builder is empty - adds Move(0, 0) first.
//   - If the builder ends with Close - adds Move(last_x, last_y) first.
func (b *PathBuilder) QuadTo(x1, y1, x, y float32) {
	b.injectMoveToIfNeeded()

	b.verbs = append(b.verbs, PathVerbQuad)
	b.points = append(b.points, Pt(x1, y1), Pt(x, y))
}

func (b *PathBuilder) quadToPt(p1, p Point) {
	b.QuadTo(p1.X, p1.Y, p.X, p.Y)
}

// conicTo lowers a conic segment into quad segments. Stored paths do
// not carry conic verbs, but circular arcs are produced as conics
// internally.
func (b *PathBuilder) conicTo(x1, y1, x, y, weight float32) {
	switch {
	case !(weight > 0): // also catches NaN
		b.LineTo(x, y)
	case !isFinite(weight):
		b.LineTo(x1, y1)
		b.LineTo(x, y)
	case weight == 1.0:
		b.QuadTo(x1, y1, x, y)
	default:
		b.injectMoveToIfNeeded()

		last, _ := b.LastPoint()
		quadder, ok := computeConicToQuads(last, Pt(x1, y1), Pt(x, y), weight)
		if !ok {
			return
		}
		// Points are ordered as: 0 - 1 2 - 3 4 - 5 6 - ..
		offset := 1
		for i := 0; i < quadder.len; i++ {
			pt1 := quadder.points[offset+0]
			pt2 := quadder.points[offset+1]
			b.QuadTo(pt1.X, pt1.Y, pt2.X, pt2.Y)
			offset += 2
		}
	}
}

func (b *PathBuilder) conicPointsTo(p1, p Point, weight float32) {
	b.conicTo(p1.X, p1.Y, p.X, p.Y, weight)
}

// CubicTo adds a cubic curve from the last point to x, y.
//
//   - If the builder is empty - adds Move(0, 0) first.
//   - If the builder ends with Close - adds Move(last_x, last_y) first.
func (b *PathBuilder) CubicTo(x1, y1, x2, y2, x, y float32) {
	b.injectMoveToIfNeeded()

	b.verbs = append(b.verbs, PathVerbCubic)
	b.points = append(b.points, Pt(x1, y1), Pt(x2, y2), Pt(x, y))
}

func (b *PathBuilder) cubicToPt(p1, p2, p Point) {
	b.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p.X, p.Y)
}

// Close closes the current contour.
//
// A closed contour connects the first and the last Point with a line,
// forming a continuous loop.
//
// Does nothing when the builder is empty or already closed.
//
// Open and closed contours will be filled the same way.
// Stroking an open contour will add LineCap at the contour's start and
// end. Stroking a closed contour will add LineJoin at the contour's
// start and end.
func (b *PathBuilder) Close() {
	// don't add a close if it's the first verb or a repeat
	if len(b.verbs) > 0 && b.verbs[len(b.verbs)-1] != PathVerbClose {
		b.verbs = append(b.verbs, PathVerbClose)
	}

	b.moveToRequired = true
}

// LastPoint returns the last point if any.
func (b *PathBuilder) LastPoint() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	return b.points[len(b.points)-1], true
}

func (b *PathBuilder) setLastPoint(p Point) {
	if len(b.points) == 0 {
		b.MoveTo(p.X, p.Y)
		return
	}
	b.points[len(b.points)-1] = p
}

func (b *PathBuilder) isZeroLengthSincePoint(startPtIndex int) bool {
	count := len(b.points) - startPtIndex
	if count < 2 {
		return true
	}

	first := b.points[startPtIndex]
	for i := 1; i < count; i++ {
		if first != b.points[startPtIndex+i] {
			return false
		}
	}
	return true
}

// PushRect adds a rectangle contour.
//
// The contour is closed and has a clockwise direction.
//
// Does nothing when any value is not finite or the rectangle is
// inverted.
func (b *PathBuilder) PushRect(x, y, w, h float32) {
	rect, ok := NewRect(x, y, x+w, y+h)
	if !ok {
		return
	}
	b.MoveTo(rect.Left, rect.Top)
	b.LineTo(rect.Right, rect.Top)
	b.LineTo(rect.Right, rect.Bottom)
	b.LineTo(rect.Left, rect.Bottom)
	b.Close()
}

// PushOval adds an oval contour bounded by the provided rectangle.
//
// The contour is closed and has a clockwise direction.
func (b *PathBuilder) PushOval(oval Rect) {
	cx := oval.Left*0.5 + oval.Right*0.5
	cy := oval.Top*0.5 + oval.Bottom*0.5

	ovalPoints := [4]Point{
		{cx, oval.Bottom},
		{oval.Left, cy},
		{cx, oval.Top},
		{oval.Right, cy},
	}

	rectPoints := [4]Point{
		{oval.Right, oval.Bottom},
		{oval.Left, oval.Bottom},
		{oval.Left, oval.Top},
		{oval.Right, oval.Top},
	}

	const weight = float32(scalarRoot2Over2)
	b.MoveTo(ovalPoints[3].X, ovalPoints[3].Y)
	for i := 0; i < 4; i++ {
		b.conicPointsTo(rectPoints[i], ovalPoints[i], weight)
	}
	b.Close()
}

// PushCircle adds a circle contour.
//
// The contour is closed and has a clockwise direction.
//
// Does nothing when the radius is not positive or any value is not
// finite.
func (b *PathBuilder) PushCircle(x, y, r float32) {
	if oval, ok := NewRect(x-r, y-r, x+r, y+r); ok && r > 0 {
		b.PushOval(oval)
	}
}

// pushBuilder appends all contours of other.
func (b *PathBuilder) pushBuilder(other *PathBuilder) {
	if other.IsEmpty() {
		return
	}

	if b.lastMoveToIndex != 0 {
		b.lastMoveToIndex = len(b.points) + other.lastMoveToIndex
	}

	b.verbs = append(b.verbs, other.verbs...)
	b.points = append(b.points, other.points...)
}

// reversePathTo appends, in reverse order, the first contour of other,
// ignoring other's last point.
func (b *PathBuilder) reversePathTo(other *PathBuilder) {
	if other.IsEmpty() {
		return
	}

	pointsOffset := len(other.points) - 1
	for i := len(other.verbs) - 1; i >= 0; i-- {
		switch other.verbs[i] {
		case PathVerbMove:
			// if the path has multiple contours, stop after reversing the last
			return
		case PathVerbLine:
			pt := other.points[pointsOffset-1]
			pointsOffset--
			b.lineToPt(pt)
		case PathVerbQuad:
			pt1 := other.points[pointsOffset-1]
			pt2 := other.points[pointsOffset-2]
			pointsOffset -= 2
			b.quadToPt(pt1, pt2)
		case PathVerbCubic:
			pt1 := other.points[pointsOffset-1]
			pt2 := other.points[pointsOffset-2]
			pt3 := other.points[pointsOffset-3]
			pointsOffset -= 3
			b.cubicToPt(pt1, pt2, pt3)
		case PathVerbClose:
		}
	}
}

// Clear resets the builder.
//
// Memory is not deallocated.
func (b *PathBuilder) Clear() {
	b.verbs = b.verbs[:0]
	b.points = b.points[:0]
	b.lastMoveToIndex = 0
	b.moveToRequired = true
}

// Finish finishes the builder and returns a Path.
//
// Reports false when the path is empty or has invalid bounds.
func (b *PathBuilder) Finish() (*Path, bool) {
	if b.IsEmpty() {
		return nil, false
	}

	// Just a move to? Bail.
	if len(b.verbs) == 1 {
		return nil, false
	}

	bounds, ok := boundsFromPoints(b.points)
	if !ok {
		return nil, false
	}

	return &Path{
		verbs:  b.verbs,
		points: b.points,
		bounds: bounds,
	}, true
}
