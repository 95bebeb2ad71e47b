// Package ink builds stroked outlines of 2D vector paths.
//
// # Overview
//
// ink is a pure Go path geometry library for the GoGPU ecosystem. It
// converts a path plus stroke properties (width, caps, joins, miter
// limit, dash pattern) into the plain fill path that outlines the
// stroke, and measures paths so segments can be extracted by distance.
// A small software rasterizer is included so results can be rendered
// straight to a pixmap.
//
// # Quick Start
//
//	import "github.com/gogpu/ink"
//
//	// Build a path
//	pb := ink.NewPathBuilder()
//	pb.MoveTo(10, 10)
//	pb.LineTo(20, 50)
//	pb.LineTo(30, 10)
//	pb.Close()
//	path, _ := pb.Finish()
//
//	// Stroke it
//	stroke := ink.DefaultStroke().WithWidth(4).WithJoin(ink.LineJoinRound)
//	outline, _ := path.Stroke(stroke, 1.0)
//
//	// Render to a PNG
//	pm := ink.NewPixmap(64, 64)
//	pm.FillPath(outline, ink.Black, ink.Identity())
//	pm.SavePNG("output.png")
//
// # Precision
//
// All geometry is single precision. Curved stroke edges are
// approximated by quadratic pieces within an error budget derived from
// the resolution scale; pass the scale of your final transform to
// [ComputeResolutionScale] so the approximation stays below one device
// pixel.
//
// # Error Handling
//
// Geometric operations that can fail (empty paths, non-finite inputs,
// degenerate strokes) return an additional bool instead of an error
// value. error is reserved for I/O.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package ink

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
