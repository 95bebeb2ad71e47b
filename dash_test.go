package ink

import (
	"math"
	"testing"
)

func TestNewStrokeDash(t *testing.T) {
	inf := float32(math.Inf(1))

	tests := []struct {
		name   string
		array  []float32
		offset float32
	}{
		{"empty array", []float32{}, 0},
		{"single entry", []float32{1}, 0},
		{"odd length", []float32{1, 2, 3}, 0},
		{"negative entry", []float32{1, -2}, 0},
		{"zero sum", []float32{0, 0}, 0},
		{"cancelling entries", []float32{1, -1}, 0},
		{"non-finite offset", []float32{1, 1}, inf},
		{"non-finite entry", []float32{1, inf}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := NewStrokeDash(tt.array, tt.offset); ok {
				t.Errorf("NewStrokeDash(%v, %v) succeeded, want failure", tt.array, tt.offset)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		dash, ok := NewStrokeDash([]float32{6, 4.5}, 0)
		if !ok {
			t.Fatal("NewStrokeDash([6 4.5], 0) failed")
		}
		if got := dash.Array(); len(got) != 2 || got[0] != 6 || got[1] != 4.5 {
			t.Errorf("Array() = %v, want [6 4.5]", got)
		}
		if dash.Offset() != 0 {
			t.Errorf("Offset() = %v, want 0", dash.Offset())
		}
	})
}

func TestAdjustDashOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset float32
		len    float32
		want   float32
	}{
		{"in range", 20, 100, 20},
		{"wraps", 120, 100, 20},
		{"exact length", 100, 100, 0},
		{"negative flips", -20, 100, 80},
		{"negative wraps", -120, 100, 80},
		{"zero", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adjustDashOffset(tt.offset, tt.len); got != tt.want {
				t.Errorf("adjustDashOffset(%v, %v) = %v, want %v", tt.offset, tt.len, got, tt.want)
			}
		})
	}
}

func TestFindFirstInterval(t *testing.T) {
	tests := []struct {
		name         string
		array        []float32
		offset       float32
		wantDistance float32
		wantIndex    int
	}{
		{"zero offset", []float32{6, 4.5}, 0, 6, 0},
		{"inside first dash", []float32{6, 4.5}, 2, 4, 0},
		{"inside first gap", []float32{6, 4.5}, 7, 3.5, 1},
		{"at dash boundary", []float32{6, 4.5}, 6, 4.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, index := findFirstInterval(tt.array, tt.offset)
			if distance != tt.wantDistance || index != tt.wantIndex {
				t.Errorf("findFirstInterval(%v, %v) = (%v, %d), want (%v, %d)",
					tt.array, tt.offset, distance, index, tt.wantDistance, tt.wantIndex)
			}
		})
	}
}

func TestDashPolyline(t *testing.T) {
	pb := NewPathBuilder()
	pb.MoveTo(665.54, 287.3)
	pb.LineTo(675.67, 273.04)
	pb.LineTo(675.52, 271.32)
	pb.LineTo(674.79, 269.61)
	pb.LineTo(674.05, 268.04)
	pb.LineTo(672.88, 266.47)
	pb.LineTo(671.27, 264.9)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	dash, ok := NewStrokeDash([]float32{6, 4.5}, 0)
	if !ok {
		t.Fatal("NewStrokeDash() failed")
	}

	if _, ok := path.Dash(dash, 1.0); !ok {
		t.Error("Dash() = not ok, want ok")
	}
}

func TestDashLine(t *testing.T) {
	pb := NewPathBuilder()
	pb.MoveTo(0, 0)
	pb.LineTo(30, 0)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	dash, ok := NewStrokeDash([]float32{10, 5}, 0)
	if !ok {
		t.Fatal("NewStrokeDash() failed")
	}

	dashed, ok := path.Dash(dash, 1.0)
	if !ok {
		t.Fatal("Dash() failed")
	}

	// [0,10] and [15,25] dashes plus the partial [30,30] is empty,
	// so two full dashes.
	want := []PathSegment{
		{Kind: PathVerbMove, P0: Pt(0, 0)},
		{Kind: PathVerbLine, P0: Pt(10, 0)},
		{Kind: PathVerbMove, P0: Pt(15, 0)},
		{Kind: PathVerbLine, P0: Pt(25, 0)},
	}

	var got []PathSegment
	iter := dashed.Segments()
	for {
		seg, ok := iter.Next()
		if !ok {
			break
		}
		got = append(got, seg)
	}

	if len(got) != len(want) {
		t.Fatalf("segment count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDashOffsetShiftsPattern(t *testing.T) {
	pb := NewPathBuilder()
	pb.MoveTo(0, 0)
	pb.LineTo(30, 0)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	dash, ok := NewStrokeDash([]float32{10, 5}, 12)
	if !ok {
		t.Fatal("NewStrokeDash() failed")
	}

	dashed, ok := path.Dash(dash, 1.0)
	if !ok {
		t.Fatal("Dash() failed")
	}

	// Offset 12 starts inside the gap; the first dash begins at 3.
	first, okSeg := dashed.Segments().Next()
	if !okSeg {
		t.Fatal("dashed path is empty")
	}
	if first.Kind != PathVerbMove || first.P0 != Pt(3, 0) {
		t.Errorf("first segment = %+v, want move to (3, 0)", first)
	}
}

func TestDashSegmentCountCeiling(t *testing.T) {
	// A long line with a tiny dash pattern would produce billions of
	// segments. Dashing must refuse instead of exhausting memory.
	pb := NewPathBuilder()
	pb.MoveTo(0, 0)
	pb.LineTo(1e8, 0)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	dash, ok := NewStrokeDash([]float32{0.5, 0.5}, 0)
	if !ok {
		t.Fatal("NewStrokeDash() failed")
	}

	if _, ok := path.Dash(dash, 1.0); ok {
		t.Error("Dash() with over a million segments succeeded, want failure")
	}
}

func TestDashClosedContourWrap(t *testing.T) {
	// Perimeter 40 with pattern [6 4]: the first "on" interval is
	// deferred and wrapped around the seam at the end.
	pb := NewPathBuilder()
	pb.PushRect(0, 0, 10, 10)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	dash, ok := NewStrokeDash([]float32{6, 4}, 0)
	if !ok {
		t.Fatal("NewStrokeDash() failed")
	}

	dashed, ok := path.Dash(dash, 1.0)
	if !ok {
		t.Fatal("Dash() failed")
	}

	moves := 0
	iter := dashed.Segments()
	for {
		seg, ok := iter.Next()
		if !ok {
			break
		}
		if seg.Kind == PathVerbMove {
			moves++
		}
	}
	if moves != 4 {
		t.Errorf("dash count = %d, want 4", moves)
	}
}
