package ink

import (
	"math"
	"testing"
)

func TestNewRect(t *testing.T) {
	r, ok := NewRect(10, 20, 30, 60)
	if !ok {
		t.Fatal("NewRect(10, 20, 30, 60) failed")
	}
	if r.Width() != 20 || r.Height() != 40 {
		t.Errorf("size = %v x %v, want 20 x 40", r.Width(), r.Height())
	}

	if _, ok := NewRect(30, 20, 10, 60); ok {
		t.Error("inverted rect accepted, want failure")
	}
	if _, ok := NewRect(0, 0, float32(math.NaN()), 1); ok {
		t.Error("NaN rect accepted, want failure")
	}

	// Large finite edges whose product overflows float32 are still valid.
	if _, ok := NewRect(-5e9, -5e9, 5e9, 5e9); !ok {
		t.Error("NewRect(-5e9, -5e9, 5e9, 5e9) failed, want success")
	}
}

func TestBoundsFromPoints(t *testing.T) {
	r, ok := boundsFromPoints([]Point{Pt(3, 7), Pt(-2, 1), Pt(5, 4)})
	if !ok {
		t.Fatal("boundsFromPoints failed")
	}
	want := Rect{Left: -2, Top: 1, Right: 5, Bottom: 7}
	if r != want {
		t.Errorf("bounds = %+v, want %+v", r, want)
	}

	if _, ok := boundsFromPoints(nil); ok {
		t.Error("empty bounds accepted, want failure")
	}
	if _, ok := boundsFromPoints([]Point{Pt(float32(math.Inf(1)), 0)}); ok {
		t.Error("non-finite bounds accepted, want failure")
	}
	if _, ok := boundsFromPoints([]Point{Pt(0, 0), Pt(float32(math.NaN()), 5), Pt(10, 10)}); ok {
		t.Error("NaN point after the first accepted, want failure")
	}
	if _, ok := boundsFromPoints([]Point{Pt(-5e9, -5e9), Pt(5e9, 5e9)}); !ok {
		t.Error("large finite points rejected, want success")
	}
}
