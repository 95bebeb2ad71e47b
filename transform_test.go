package ink

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestTransformIdentity(t *testing.T) {
	id := Identity()
	if !id.IsIdentity() {
		t.Error("Identity().IsIdentity() = false, want true")
	}
	p := Pt(3, 4)
	if got := id.MapPoint(p); got != p {
		t.Errorf("identity MapPoint(%v) = %v", p, got)
	}
	if FromTranslate(1, 0).IsIdentity() {
		t.Error("translation reported as identity")
	}
}

func TestTransformMapPoint(t *testing.T) {
	tests := []struct {
		name string
		ts   Transform
		in   Point
		want Point
	}{
		{"translate", FromTranslate(10, -5), Pt(1, 2), Pt(11, -3)},
		{"scale", FromScale(2, 3), Pt(1, 2), Pt(2, 6)},
		{"scale origin", FromScale(2, 3), Pt(0, 0), Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.MapPoint(tt.in); got != tt.want {
				t.Errorf("MapPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformRotate(t *testing.T) {
	// A quarter turn is clockwise in y-down coordinates.
	got := FromRotate(math32.Pi / 2).MapPoint(Pt(1, 0))
	if !got.NearlyEqual(Pt(0, 1)) {
		t.Errorf("quarter turn of (1, 0) = %v, want (0, 1)", got)
	}
}

func TestTransformConcat(t *testing.T) {
	// PreConcat applies the other transform first.
	ts := FromTranslate(10, 0).PreConcat(FromScale(2, 2))
	if got := ts.MapPoint(Pt(1, 1)); got != Pt(12, 2) {
		t.Errorf("translate∘scale MapPoint(1, 1) = %v, want (12, 2)", got)
	}

	// PostConcat applies the other transform last.
	ts = FromTranslate(10, 0).PostConcat(FromScale(2, 2))
	if got := ts.MapPoint(Pt(1, 1)); got != Pt(22, 2) {
		t.Errorf("scale∘translate MapPoint(1, 1) = %v, want (22, 2)", got)
	}
}

func TestTransformPreScale(t *testing.T) {
	ts := FromTranslate(5, 5).PreScale(2, 3)
	if got := ts.MapPoint(Pt(1, 1)); got != Pt(7, 8) {
		t.Errorf("MapPoint(1, 1) = %v, want (7, 8)", got)
	}
}

func TestTransformMapPoints(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 2)}
	FromScale(2, 2).MapPoints(pts)
	if pts[0] != Pt(0, 0) || pts[1] != Pt(2, 4) {
		t.Errorf("MapPoints = %v, want [(0,0) (2,4)]", pts)
	}
}
