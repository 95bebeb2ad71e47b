package ink

import "testing"

func TestFillPath(t *testing.T) {
	pm := NewPixmap(20, 20)

	pb := NewPathBuilder()
	pb.PushRect(5, 5, 10, 10)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	if !pm.FillPath(path, Red, Identity()) {
		t.Fatal("FillPath failed")
	}

	if got := pm.GetPixel(10, 10); got.A == 0 || got.R < 0.9 {
		t.Errorf("interior pixel = %+v, want opaque red", got)
	}
	if got := pm.GetPixel(1, 1); got.A != 0 {
		t.Errorf("exterior pixel = %+v, want untouched", got)
	}
}

func TestFillPathTransformed(t *testing.T) {
	pm := NewPixmap(20, 20)

	pb := NewPathBuilder()
	pb.PushRect(0, 0, 5, 5)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	// Translate the square into the lower-right quadrant.
	if !pm.FillPath(path, Blue, FromTranslate(12, 12)) {
		t.Fatal("FillPath failed")
	}

	if got := pm.GetPixel(14, 14); got.A == 0 {
		t.Errorf("translated interior pixel = %+v, want painted", got)
	}
	if got := pm.GetPixel(2, 2); got.A != 0 {
		t.Errorf("original location pixel = %+v, want untouched", got)
	}
}

func TestFillPathCurved(t *testing.T) {
	pm := NewPixmap(40, 40)

	path, ok := FromCircle(20, 20, 10)
	if !ok {
		t.Fatal("FromCircle failed")
	}

	if !pm.FillPath(path, Green, Identity()) {
		t.Fatal("FillPath failed")
	}

	if got := pm.GetPixel(20, 20); got.A == 0 {
		t.Errorf("circle center = %+v, want painted", got)
	}
	// (8,8) is fully outside the circle, clear of any antialiased edge.
	if got := pm.GetPixel(8, 8); got.A != 0 {
		t.Errorf("outside the circle = %+v, want untouched", got)
	}
}

func TestStrokePath(t *testing.T) {
	pm := NewPixmap(30, 30)

	pb := NewPathBuilder()
	pb.MoveTo(5, 15)
	pb.LineTo(25, 15)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	stroke := DefaultStroke().WithWidth(4)
	if !pm.StrokePath(path, stroke, Black, Identity()) {
		t.Fatal("StrokePath failed")
	}

	if got := pm.GetPixel(15, 15); got.A == 0 {
		t.Errorf("pixel on the line = %+v, want painted", got)
	}
	if got := pm.GetPixel(15, 5); got.A != 0 {
		t.Errorf("pixel far from the line = %+v, want untouched", got)
	}
}

func TestStrokePathInvalid(t *testing.T) {
	pm := NewPixmap(10, 10)

	pb := NewPathBuilder()
	pb.MoveTo(0, 0)
	pb.LineTo(5, 5)
	path, ok := pb.Finish()
	if !ok {
		t.Fatal("Finish() failed")
	}

	if pm.StrokePath(path, DefaultStroke().WithWidth(0), Black, Identity()) {
		t.Error("StrokePath with zero width succeeded, want failure")
	}
}
