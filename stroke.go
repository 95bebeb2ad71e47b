package ink

// LineCap draws at the beginning and end of an open path contour.
type LineCap uint8

const (
	// LineCapButt adds no stroke extension.
	LineCapButt LineCap = iota
	// LineCapRound adds a circle.
	LineCapRound
	// LineCapSquare adds a square.
	LineCapSquare
)

// String returns the name of the line cap style.
func (c LineCap) String() string {
	switch c {
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return "Butt"
	}
}

// LineJoin specifies how corners are drawn when a shape is stroked.
//
// Join affects the four corners of a stroked rectangle, and the
// connected segments in a stroked path.
//
// Choose miter join to draw sharp corners. Choose round join to draw a
// circle with a radius equal to the stroke width on top of the corner.
// Choose bevel join to minimally connect the thick strokes.
//
// The fill path constructed to describe the stroked path respects the
// join setting but may not contain the actual join. For instance, a
// fill path constructed with round joins does not necessarily include
// circles at each connected segment.
type LineJoin uint8

const (
	// LineJoinMiter extends to the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound adds a circle.
	LineJoinRound
	// LineJoinBevel connects outside edges.
	LineJoinBevel
)

// String returns the name of the line join style.
func (j LineJoin) String() string {
	switch j {
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return "Miter"
	}
}

// Stroke defines the style for stroking paths.
// It encapsulates all stroke-related properties in a single struct.
type Stroke struct {
	// Width is the stroke thickness. Must be > 0. Default: 1.0
	Width float32

	// MiterLimit is the limit at which a sharp corner is drawn beveled.
	// Default: 4.0 (common default, matches SVG)
	MiterLimit float32

	// Cap is the shape of line endpoints. Default: LineCapButt
	Cap LineCap

	// Join is the shape of line joins. Default: LineJoinMiter
	Join LineJoin

	// Dash is the dash pattern for the stroke.
	// nil means a solid line (no dashing).
	Dash *StrokeDash
}

// DefaultStroke returns a Stroke with default settings.
// This creates a solid 1-pixel line with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		MiterLimit: 4.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		Dash:       nil,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float32) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of the Stroke with the given line cap style.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given line join style.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the Stroke with the given miter limit.
// The miter limit controls when miter joins are converted to bevel joins.
// A value of 1.0 effectively disables miter joins.
func (s Stroke) WithMiterLimit(limit float32) Stroke {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy of the Stroke with the given dash pattern.
// Pass nil to remove dashing and return to solid lines.
func (s Stroke) WithDash(dash *StrokeDash) Stroke {
	s.Dash = dash
	return s
}

// WithDashPattern returns a copy of the Stroke with a dash pattern
// created from the given lengths and a zero offset.
// An invalid pattern leaves the stroke solid.
//
// Example:
//
//	stroke.WithDashPattern(5, 3) // 5 units dash, 3 units gap
func (s Stroke) WithDashPattern(lengths ...float32) Stroke {
	if dash, ok := NewStrokeDash(lengths, 0); ok {
		s.Dash = dash
	}
	return s
}

// WithDashOffset returns a copy of the Stroke with the dash pattern
// shifted by the given offset. It has no effect when no dash pattern
// is set.
func (s Stroke) WithDashOffset(offset float32) Stroke {
	if s.Dash == nil {
		return s
	}
	if dash, ok := NewStrokeDash(s.Dash.Array(), offset); ok {
		s.Dash = dash
	}
	return s
}

// IsDashed returns true if this stroke has a dash pattern.
func (s Stroke) IsDashed() bool {
	return s.Dash != nil
}

// Thin returns a thin stroke (0.5 pixels).
func Thin() Stroke {
	return DefaultStroke().WithWidth(0.5)
}

// Thick returns a thick stroke (3 pixels).
func Thick() Stroke {
	return DefaultStroke().WithWidth(3.0)
}

// Bold returns a bold stroke (5 pixels).
func Bold() Stroke {
	return DefaultStroke().WithWidth(5.0)
}

// RoundStroke returns a stroke with round caps and joins.
func RoundStroke() Stroke {
	return DefaultStroke().WithCap(LineCapRound).WithJoin(LineJoinRound)
}

// SquareStroke returns a stroke with square caps.
func SquareStroke() Stroke {
	return DefaultStroke().WithCap(LineCapSquare)
}

// DashedStroke returns a dashed stroke with the given pattern.
func DashedStroke(lengths ...float32) Stroke {
	return DefaultStroke().WithDashPattern(lengths...)
}
