package ink

import (
	"image"

	"golang.org/x/image/vector"
)

// FillPath fills the path on the pixmap with the given color.
//
// The path is transformed by ts before rasterization. Anti-aliased,
// non-zero winding. Paths that fall outside the pixmap are clipped.
// Reports false when the transformed path is not representable.
func (p *Pixmap) FillPath(path *Path, c RGBA, ts Transform) bool {
	if !ts.IsIdentity() {
		transformed, ok := path.Transform(ts)
		if !ok {
			return false
		}
		path = transformed
	}

	r := vector.NewRasterizer(p.width, p.height)

	iter := path.Segments()
	for {
		seg, ok := iter.Next()
		if !ok {
			break
		}
		switch seg.Kind {
		case PathVerbMove:
			r.MoveTo(seg.P0.X, seg.P0.Y)
		case PathVerbLine:
			r.LineTo(seg.P0.X, seg.P0.Y)
		case PathVerbQuad:
			r.QuadTo(seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y)
		case PathVerbCubic:
			r.CubeTo(seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y, seg.P2.X, seg.P2.Y)
		case PathVerbClose:
			r.ClosePath()
		}
	}
	// The rasterizer requires explicitly closed contours.
	r.ClosePath()

	dst := p.asImage()
	r.Draw(dst, dst.Rect, image.NewUniform(c.Color()), image.Point{})
	return true
}

// StrokePath strokes the path on the pixmap with the given color.
//
// The stroke outline is built in path space with a resolution scale
// derived from ts, then filled like [Pixmap.FillPath]. Reports false
// when the stroke outline cannot be built (zero or non-finite width,
// empty dashed outline).
func (p *Pixmap) StrokePath(path *Path, stroke Stroke, c RGBA, ts Transform) bool {
	stroked, ok := path.Stroke(stroke, ComputeResolutionScale(ts))
	if !ok {
		Logger().Debug("stroke outline could not be built", "width", stroke.Width)
		return false
	}

	return p.FillPath(stroked, c, ts)
}
