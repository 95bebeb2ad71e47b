package ink

import (
	"log/slog"

	"github.com/chewxy/math32"
)

// StrokeDash describes stroke dashing properties.
//
// It contains an array of pairs, where the first number of each pair
// indicates an "on" interval and the second one an "off" interval, plus
// a dash offset value.
//
// # Guarantees
//
//   - The dash array always has an even number of values.
//   - All dash array values are finite and >= 0.
//   - There are at least two dash array values.
//   - The sum of all dash array values is positive and finite.
//   - The dash offset is finite.
type StrokeDash struct {
	array       []float32
	offset      float32
	intervalLen float32
	firstLen    float32
	firstIndex  int
}

// NewStrokeDash creates a new stroke dashing object.
//
// It reports false when the guarantees above cannot be met.
func NewStrokeDash(dashArray []float32, dashOffset float32) (*StrokeDash, bool) {
	if !isFinite(dashOffset) {
		return nil, false
	}

	if len(dashArray) < 2 || len(dashArray)%2 != 0 {
		return nil, false
	}

	for _, n := range dashArray {
		if n < 0 {
			return nil, false
		}
	}

	var intervalLen float32
	for _, n := range dashArray {
		intervalLen += n
	}
	if !(intervalLen > 0) || !isFinite(intervalLen) {
		return nil, false
	}

	dashOffset = adjustDashOffset(dashOffset, intervalLen)
	firstLen, firstIndex := findFirstInterval(dashArray, dashOffset)

	array := make([]float32, len(dashArray))
	copy(array, dashArray)

	return &StrokeDash{
		array:       array,
		offset:      dashOffset,
		intervalLen: intervalLen,
		firstLen:    firstLen,
		firstIndex:  firstIndex,
	}, true
}

// Array returns the dash intervals.
func (d *StrokeDash) Array() []float32 {
	return d.array
}

// Offset returns the normalized dash offset, in [0, interval length).
func (d *StrokeDash) Offset() float32 {
	return d.offset
}

// adjustDashOffset adjusts the phase to be between 0 and len, "flipping"
// the phase if negative. E.g., if len is 100, then a phase of -20 (or
// -120) is equivalent to 80.
func adjustDashOffset(offset, len float32) float32 {
	if offset < 0 {
		offset = -offset
		if offset > len {
			offset = math32.Mod(offset, len)
		}

		offset = len - offset

		// Due to finite precision, it's possible that phase == len,
		// even after the subtract (if len >>> phase), so fix that here.
		if offset == len {
			offset = 0
		}

		return offset
	}

	if offset >= len {
		return math32.Mod(offset, len)
	}
	return offset
}

func findFirstInterval(dashArray []float32, dashOffset float32) (float32, int) {
	for i, gap := range dashArray {
		if dashOffset > gap || (dashOffset == gap && gap != 0) {
			dashOffset -= gap
		} else {
			return gap - dashOffset, i
		}
	}

	// If we get here, the phase "appears" to be larger than our length. This
	// shouldn't happen with perfect precision, but we can accumulate errors
	// during the initial length computation (rounding can make our sum be too
	// big or too small). In that event, we just have to eat the error here.
	return dashArray[0], 0
}

// Dash converts the path into a dashed one.
//
// resolutionScale can be obtained via [ComputeResolutionScale].
//
// It reports false when the dashed path would be empty or degenerate,
// or when the dash segment count would exceed an internal safety limit.
func (p *Path) Dash(dash *StrokeDash, resolutionScale float32) (*Path, bool) {
	isEven := func(x int) bool { return x%2 == 0 }

	// Since the path length / dash length ratio may be arbitrarily large, we
	// can exert significant memory pressure while attempting to build the
	// dashed path. To avoid this, we simply give up dashing beyond a certain
	// threshold: at 2 verbs per segment, a million segments caps the overhead
	// at a few tens of megabytes per path.
	const maxDashCount = 1000000

	var pb PathBuilder
	var dashCount float32

	it := NewContourMeasureIter(p, resolutionScale)
	for {
		contour, ok := it.Next()
		if !ok {
			break
		}

		skipFirstSegment := contour.isClosed
		addedSegment := false
		length := contour.length
		index := dash.firstIndex

		dashCount += length * float32(len(dash.array)>>1) / dash.intervalLen
		if dashCount > maxDashCount {
			Logger().Debug("dash segment limit exceeded, giving up",
				slog.Float64("contour_length", float64(length)))
			return nil, false
		}

		// Using double precision to avoid looping indefinitely due to single
		// precision rounding (for extreme path length / dash length ratios).
		distance := 0.0
		dLen := dash.firstLen

		for distance < float64(length) {
			addedSegment = false
			if isEven(index) && !skipFirstSegment {
				addedSegment = true
				contour.PushSegment(float32(distance), float32(distance+float64(dLen)), true, &pb)
			}

			distance += float64(dLen)

			// clear this so we only respect it the first time around
			skipFirstSegment = false

			// wrap around our intervals array if necessary
			index++
			if index == len(dash.array) {
				index = 0
			}

			// fetch our next dLen
			dLen = dash.array[index]
		}

		// extend if we ended on a segment and we need to join up with the
		// (skipped) initial segment
		if contour.isClosed && isEven(dash.firstIndex) && dash.firstLen >= 0 {
			contour.PushSegment(0, dash.firstLen, !addedSegment, &pb)
		}
	}

	return pb.Finish()
}
