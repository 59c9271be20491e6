package motion

import "testing"

func TestPointSub(t *testing.T) {
	got := Pt(10, 20).Sub(Pt(4, 5))
	if got != Pt(6, 15) {
		t.Errorf("Expected (6, 15), got (%v, %v)", got.X, got.Y)
	}
}

func TestPointAdd(t *testing.T) {
	got := Pt(1, 2).Add(Pt(3, 4))
	if got != Pt(4, 6) {
		t.Errorf("Expected (4, 6), got (%v, %v)", got.X, got.Y)
	}
}

func TestPointLerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 20)
	if mid := a.Lerp(b, 0.5); mid != Pt(5, 10) {
		t.Errorf("Expected midpoint (5, 10), got (%v, %v)", mid.X, mid.Y)
	}
	if start := a.Lerp(b, 0); start != a {
		t.Errorf("Expected start point, got (%v, %v)", start.X, start.Y)
	}
	if end := a.Lerp(b, 1); end != b {
		t.Errorf("Expected end point, got (%v, %v)", end.X, end.Y)
	}
}
