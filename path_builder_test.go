package ink

import (
	"math"
	"testing"
)

func TestPathBuilderFinish(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, ok := NewPathBuilder().Finish(); ok {
			t.Error("Finish() on empty builder succeeded, want failure")
		}
	})

	t.Run("lone move", func(t *testing.T) {
		pb := NewPathBuilder()
		pb.MoveTo(1, 2)
		if _, ok := pb.Finish(); ok {
			t.Error("Finish() on a lone MoveTo succeeded, want failure")
		}
	})

	t.Run("move and close", func(t *testing.T) {
		pb := NewPathBuilder()
		pb.MoveTo(1, 2)
		pb.Close()
		if _, ok := pb.Finish(); !ok {
			t.Error("Finish() on Move+Close failed, want success")
		}
	})

	t.Run("non-finite point", func(t *testing.T) {
		pb := NewPathBuilder()
		pb.MoveTo(0, 0)
		pb.LineTo(float32(math.NaN()), 0)
		if _, ok := pb.Finish(); ok {
			t.Error("Finish() with a NaN point succeeded, want failure")
		}
	})
}

func TestPathBuilderMoveToOverwrite(t *testing.T) {
	pb := NewPathBuilder()
	pb.MoveTo(1, 1)
	pb.MoveTo(2, 2)
	pb.LineTo(3, 3)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	// Consecutive MoveTo calls collapse into the last one.
	if path.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", path.Len())
	}
	if pts := path.Points(); pts[0] != Pt(2, 2) {
		t.Errorf("first point = %v, want (2, 2)", pts[0])
	}
}

func TestPathBuilderInjectedMoveTo(t *testing.T) {
	t.Run("empty builder", func(t *testing.T) {
		pb := NewPathBuilder()
		pb.LineTo(10, 10)
		path, ok := pb.Finish()
		if !ok {
			t.Fatal("Finish() failed")
		}
		if verbs := path.Verbs(); verbs[0] != PathVerbMove || path.Points()[0] != Pt(0, 0) {
			t.Error("LineTo on an empty builder did not inject Move(0, 0)")
		}
	})

	t.Run("after close", func(t *testing.T) {
		pb := NewPathBuilder()
		pb.MoveTo(5, 5)
		pb.LineTo(10, 5)
		pb.Close()
		pb.LineTo(20, 20)
		path, ok := pb.Finish()
		if !ok {
			t.Fatal("Finish() failed")
		}

		// The new contour starts where the closed one started.
		verbs := path.Verbs()
		if verbs[3] != PathVerbMove {
			t.Fatalf("verb after Close = %v, want Move", verbs[3])
		}
		if pts := path.Points(); pts[2] != Pt(5, 5) {
			t.Errorf("injected move point = %v, want (5, 5)", pts[2])
		}
	})
}

func TestPathBuilderClose(t *testing.T) {
	pb := NewPathBuilder()
	pb.Close() // no-op on an empty builder
	if !pb.IsEmpty() {
		t.Error("Close() on an empty builder added a verb")
	}

	pb.MoveTo(0, 0)
	pb.LineTo(1, 0)
	pb.Close()
	pb.Close() // repeated Close collapses
	if pb.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pb.Len())
	}
}

func TestPathBuilderLastPoint(t *testing.T) {
	pb := NewPathBuilder()
	if _, ok := pb.LastPoint(); ok {
		t.Error("LastPoint() on empty builder succeeded")
	}
	pb.MoveTo(1, 2)
	pb.QuadTo(3, 4, 5, 6)
	if p, ok := pb.LastPoint(); !ok || p != Pt(5, 6) {
		t.Errorf("LastPoint() = %v, want (5, 6)", p)
	}
}

func TestPathBuilderPushRect(t *testing.T) {
	pb := NewPathBuilder()
	pb.PushRect(10, 20, 30, 40)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	wantVerbs := []PathVerb{PathVerbMove, PathVerbLine, PathVerbLine, PathVerbLine, PathVerbClose}
	verbs := path.Verbs()
	if len(verbs) != len(wantVerbs) {
		t.Fatalf("verbs = %v, want %v", verbs, wantVerbs)
	}
	for i := range wantVerbs {
		if verbs[i] != wantVerbs[i] {
			t.Errorf("verb %d = %v, want %v", i, verbs[i], wantVerbs[i])
		}
	}

	want := Rect{Left: 10, Top: 20, Right: 40, Bottom: 60}
	if path.Bounds() != want {
		t.Errorf("Bounds() = %+v, want %+v", path.Bounds(), want)
	}
}

func TestPathBuilderPushCircle(t *testing.T) {
	pb := NewPathBuilder()
	pb.PushCircle(50, 50, 10)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	b := path.Bounds()
	// Control points of the arc quads lie slightly outside the circle.
	if b.Left > 40 || b.Top > 40 || b.Right < 60 || b.Bottom < 60 {
		t.Errorf("Bounds() = %+v, want to cover [40 40 60 60]", b)
	}
	if b.Left < 39 || b.Right > 61 {
		t.Errorf("Bounds() = %+v, much larger than the circle", b)
	}
}

func TestFromRect(t *testing.T) {
	r, ok := NewRect(0, 0, 10, 10)
	if !ok {
		t.Fatal("NewRect failed")
	}
	path := FromRect(r)
	if path == nil {
		t.Fatal("FromRect returned nil")
	}
	if path.Bounds() != r {
		t.Errorf("Bounds() = %+v, want %+v", path.Bounds(), r)
	}
}

func TestFromCircle(t *testing.T) {
	if _, ok := FromCircle(0, 0, 0); ok {
		t.Error("FromCircle with zero radius succeeded, want failure")
	}
	if _, ok := FromCircle(0, 0, -1); ok {
		t.Error("FromCircle with negative radius succeeded, want failure")
	}
	path, ok := FromCircle(10, 10, 5)
	if !ok {
		t.Fatal("FromCircle(10, 10, 5) failed")
	}
	b := path.Bounds()
	if b.Left > 5 || b.Right < 15 {
		t.Errorf("Bounds() = %+v, want to cover [5 5 15 15]", b)
	}
}

func TestPathBuilderClear(t *testing.T) {
	pb := NewPathBuilder()
	pb.MoveTo(0, 0)
	pb.LineTo(1, 1)
	pb.Clear()
	if !pb.IsEmpty() {
		t.Error("Clear() left the builder non-empty")
	}
	pb.LineTo(2, 2) // must inject a fresh Move(0, 0)
	if _, ok := pb.Finish(); !ok {
		t.Error("Finish() after Clear() failed")
	}
}
