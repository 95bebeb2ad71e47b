package ink

import (
	"math"
	"testing"
)

func TestPointLength(t *testing.T) {
	tests := []struct {
		p    Point
		want float32
	}{
		{Pt(3, 4), 5},
		{Pt(0, 0), 0},
		{Pt(-3, -4), 5},
		{Pt(1, 0), 1},
	}
	for _, tt := range tests {
		if got := tt.p.Length(); got != tt.want {
			t.Errorf("Length(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPointNormalize(t *testing.T) {
	n, ok := Pt(3, 4).Normalize()
	if !ok {
		t.Fatal("Normalize(3, 4) failed")
	}
	if !n.NearlyEqual(Pt(0.6, 0.8)) {
		t.Errorf("Normalize(3, 4) = %v, want (0.6, 0.8)", n)
	}

	if _, ok := Pt(0, 0).Normalize(); ok {
		t.Error("Normalize(0, 0) succeeded, want failure")
	}

	// A very large vector overflows the float32 squared magnitude but
	// still normalizes through the float64 intermediate.
	n, ok = Pt(3e38, 0).Normalize()
	if !ok {
		t.Fatal("Normalize(3e38, 0) failed")
	}
	if !n.NearlyEqual(Pt(1, 0)) {
		t.Errorf("Normalize(3e38, 0) = %v, want (1, 0)", n)
	}
}

func TestPointSetLength(t *testing.T) {
	p, ok := Pt(3, 4).SetLength(10)
	if !ok {
		t.Fatal("SetLength(10) failed")
	}
	if !p.NearlyEqual(Pt(6, 8)) {
		t.Errorf("SetLength(10) = %v, want (6, 8)", p)
	}

	if _, ok := Pt(0, 0).SetLength(10); ok {
		t.Error("SetLength on zero vector succeeded, want failure")
	}
}

func TestPointRotate(t *testing.T) {
	p := Pt(2, 3)
	if got := p.RotateCW(); got != Pt(-3, 2) {
		t.Errorf("RotateCW(%v) = %v, want (-3, 2)", p, got)
	}
	if got := p.RotateCCW(); got != Pt(3, -2) {
		t.Errorf("RotateCCW(%v) = %v, want (3, -2)", p, got)
	}
	if got := p.RotateCW().RotateCCW(); got != p {
		t.Errorf("RotateCW then RotateCCW = %v, want %v", got, p)
	}
}

func TestPointDotCross(t *testing.T) {
	a, b := Pt(1, 2), Pt(3, 4)
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := a.Cross(b); got != -2 {
		t.Errorf("Cross = %v, want -2", got)
	}
	if got := b.Cross(a); got != 2 {
		t.Errorf("reversed Cross = %v, want 2", got)
	}
}

func TestPointLerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 20)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != Pt(5, 10) {
		t.Errorf("Lerp(0.5) = %v, want (5, 10)", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(1, 2), true},
		{Pt(1e20, 1e20), true},
		{Pt(nan, 0), false},
		{Pt(0, inf), false},
		{Pt(-inf, nan), false},
	}
	for _, tt := range tests {
		if got := tt.p.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPointCanNormalize(t *testing.T) {
	if !Pt(1, 0).CanNormalize() {
		t.Error("CanNormalize(1, 0) = false, want true")
	}
	if Pt(0, 0).CanNormalize() {
		t.Error("CanNormalize(0, 0) = true, want false")
	}
	if Pt(float32(math.NaN()), 1).CanNormalize() {
		t.Error("CanNormalize(NaN, 1) = true, want false")
	}
}
