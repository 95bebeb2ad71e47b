package ink

import (
	"testing"
)

func TestDefaultStroke(t *testing.T) {
	s := DefaultStroke()

	if s.Width != 1.0 {
		t.Errorf("DefaultStroke().Width = %v, want 1.0", s.Width)
	}
	if s.Cap != LineCapButt {
		t.Errorf("DefaultStroke().Cap = %v, want LineCapButt", s.Cap)
	}
	if s.Join != LineJoinMiter {
		t.Errorf("DefaultStroke().Join = %v, want LineJoinMiter", s.Join)
	}
	if s.MiterLimit != 4.0 {
		t.Errorf("DefaultStroke().MiterLimit = %v, want 4.0", s.MiterLimit)
	}
	if s.Dash != nil {
		t.Errorf("DefaultStroke().Dash = %v, want nil", s.Dash)
	}
}

func TestStroke_WithWidth(t *testing.T) {
	tests := []struct {
		name  string
		width float32
	}{
		{"thin", 0.5},
		{"normal", 1.0},
		{"thick", 5.0},
		{"zero", 0.0},
		{"negative", -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStroke().WithWidth(tt.width)
			if s.Width != tt.width {
				t.Errorf("WithWidth(%v).Width = %v", tt.width, s.Width)
			}
		})
	}
}

func TestStroke_WithCap(t *testing.T) {
	tests := []struct {
		name string
		cap  LineCap
	}{
		{"butt", LineCapButt},
		{"round", LineCapRound},
		{"square", LineCapSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStroke().WithCap(tt.cap)
			if s.Cap != tt.cap {
				t.Errorf("WithCap(%v).Cap = %v", tt.cap, s.Cap)
			}
		})
	}
}

func TestStroke_WithJoin(t *testing.T) {
	tests := []struct {
		name string
		join LineJoin
	}{
		{"miter", LineJoinMiter},
		{"round", LineJoinRound},
		{"bevel", LineJoinBevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStroke().WithJoin(tt.join)
			if s.Join != tt.join {
				t.Errorf("WithJoin(%v).Join = %v", tt.join, s.Join)
			}
		})
	}
}

func TestStroke_WithMiterLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit float32
	}{
		{"one", 1.0},
		{"default", 4.0},
		{"high", 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStroke().WithMiterLimit(tt.limit)
			if s.MiterLimit != tt.limit {
				t.Errorf("WithMiterLimit(%v).MiterLimit = %v", tt.limit, s.MiterLimit)
			}
		})
	}
}

func TestStroke_WithDash(t *testing.T) {
	t.Run("with nil dash", func(t *testing.T) {
		s := DefaultStroke().WithDash(nil)
		if s.Dash != nil {
			t.Errorf("WithDash(nil).Dash = %v, want nil", s.Dash)
		}
	})

	t.Run("with valid dash", func(t *testing.T) {
		dash, ok := NewStrokeDash([]float32{5, 3}, 0)
		if !ok {
			t.Fatal("NewStrokeDash([5 3], 0) failed")
		}
		s := DefaultStroke().WithDash(dash)
		if s.Dash == nil {
			t.Fatal("WithDash(dash).Dash = nil")
		}
		if len(s.Dash.Array()) != 2 {
			t.Errorf("WithDash(dash).Dash.Array() length = %d, want 2", len(s.Dash.Array()))
		}
	})

	t.Run("clears dash with nil", func(t *testing.T) {
		s := DefaultStroke().WithDashPattern(5, 3).WithDash(nil)
		if s.Dash != nil {
			t.Errorf("WithDash(nil) should clear dash")
		}
	})
}

func TestStroke_WithDashPattern(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float32
		wantNil bool
	}{
		{
			name:    "empty pattern",
			lengths: []float32{},
			wantNil: true,
		},
		{
			name:    "odd length pattern",
			lengths: []float32{5},
			wantNil: true,
		},
		{
			name:    "simple pattern",
			lengths: []float32{5, 3},
			wantNil: false,
		},
		{
			name:    "four values",
			lengths: []float32{5, 3, 1, 3},
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStroke().WithDashPattern(tt.lengths...)
			if tt.wantNil {
				if s.Dash != nil {
					t.Errorf("WithDashPattern().Dash = %v, want nil", s.Dash)
				}
				return
			}
			if s.Dash == nil {
				t.Fatal("WithDashPattern().Dash = nil")
			}
			if len(s.Dash.Array()) != len(tt.lengths) {
				t.Errorf("Dash.Array() length = %d, want %d", len(s.Dash.Array()), len(tt.lengths))
			}
		})
	}
}

func TestStroke_WithDashOffset(t *testing.T) {
	t.Run("with dash set", func(t *testing.T) {
		s := DefaultStroke().WithDashPattern(5, 3).WithDashOffset(2)
		if s.Dash == nil {
			t.Fatal("Dash = nil")
		}
		if s.Dash.Offset() != 2 {
			t.Errorf("Dash.Offset() = %v, want 2", s.Dash.Offset())
		}
	})

	t.Run("without dash set", func(t *testing.T) {
		s := DefaultStroke().WithDashOffset(2)
		// Should have no effect since no dash is set
		if s.Dash != nil {
			t.Errorf("Dash = %v, want nil", s.Dash)
		}
	})
}

func TestStroke_IsDashed(t *testing.T) {
	if DefaultStroke().IsDashed() {
		t.Error("DefaultStroke().IsDashed() = true, want false")
	}
	if !DashedStroke(5, 3).IsDashed() {
		t.Error("DashedStroke(5, 3).IsDashed() = false, want true")
	}
}

func TestStrokePresets(t *testing.T) {
	if got := Thin().Width; got != 0.5 {
		t.Errorf("Thin().Width = %v, want 0.5", got)
	}
	if got := Thick().Width; got != 3.0 {
		t.Errorf("Thick().Width = %v, want 3.0", got)
	}
	if got := Bold().Width; got != 5.0 {
		t.Errorf("Bold().Width = %v, want 5.0", got)
	}

	rs := RoundStroke()
	if rs.Cap != LineCapRound || rs.Join != LineJoinRound {
		t.Errorf("RoundStroke() = cap %v join %v, want round/round", rs.Cap, rs.Join)
	}

	if got := SquareStroke().Cap; got != LineCapSquare {
		t.Errorf("SquareStroke().Cap = %v, want LineCapSquare", got)
	}
}

func TestLineCapString(t *testing.T) {
	tests := []struct {
		cap  LineCap
		want string
	}{
		{LineCapButt, "Butt"},
		{LineCapRound, "Round"},
		{LineCapSquare, "Square"},
	}

	for _, tt := range tests {
		if got := tt.cap.String(); got != tt.want {
			t.Errorf("LineCap(%d).String() = %q, want %q", tt.cap, got, tt.want)
		}
	}
}

func TestLineJoinString(t *testing.T) {
	tests := []struct {
		join LineJoin
		want string
	}{
		{LineJoinMiter, "Miter"},
		{LineJoinRound, "Round"},
		{LineJoinBevel, "Bevel"},
	}

	for _, tt := range tests {
		if got := tt.join.String(); got != tt.want {
			t.Errorf("LineJoin(%d).String() = %q, want %q", tt.join, got, tt.want)
		}
	}
}
