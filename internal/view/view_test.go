package view

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	v := Default()
	v.OffsetX, v.OffsetY = -0.3, 0.7

	x, y := v.ToUniverse(100, 200)
	px, py := v.ToPixel(x, y)
	if math.Abs(px-100) > 1e-9 || math.Abs(py-200) > 1e-9 {
		t.Errorf("expected (100, 200), got (%v, %v)", px, py)
	}
}

func TestSetZoom_KeepsCenterFixed(t *testing.T) {
	v := Default()
	cx, cy := 400.0, 300.0
	x0, y0 := v.ToUniverse(cx, cy)

	v.SetZoom(3, cx, cy)
	x1, y1 := v.ToUniverse(cx, cy)
	if math.Abs(x1-x0) > 1e-12 || math.Abs(y1-y0) > 1e-12 {
		t.Errorf("zoom moved the center: (%v, %v) -> (%v, %v)", x0, y0, x1, y1)
	}
	if want := DefaultScale * math.Pow(math.Sqrt(0.5), 3); math.Abs(v.Scale-want) > 1e-15 {
		t.Errorf("expected scale %v, got %v", want, v.Scale)
	}
	if v.VelocityScale != 4*v.Scale {
		t.Errorf("velocity scale not updated: %v", v.VelocityScale)
	}
}

func TestSetZoom_Clamps(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{25, MaxZoom},
		{-30, -MaxZoom},
		{5, 5},
	}

	for _, tt := range tests {
		v := Default()
		v.SetZoom(tt.level, 0, 0)
		if v.Zoom != tt.want {
			t.Errorf("level %d: expected %d, got %d", tt.level, tt.want, v.Zoom)
		}
	}
}

func TestRecenter(t *testing.T) {
	v := Default()
	v.SetZoom(2, 10, 10)
	v.Recenter(320, 240)

	x, y := v.ToUniverse(320, 240)
	if math.Abs(x) > 1e-15 || math.Abs(y) > 1e-15 {
		t.Errorf("expected origin at center pixel, got (%v, %v)", x, y)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"terminal", 80, 48},
		{"window", 1024, 768},
		{"tall", 30, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Fit(tt.w, tt.h, 0, 0, 1, 1)

			x0, y0 := v.ToUniverse(0, 0)
			x1, y1 := v.ToUniverse(float64(tt.w), float64(tt.h))
			if x0 > 1e-9 || y0 > 1e-9 || x1 < 1-1e-9 || y1 < 1-1e-9 {
				t.Errorf("window shows [%v,%v]x[%v,%v], want it to cover the unit square", x0, x1, y0, y1)
			}
			cx, cy := v.ToUniverse(float64(tt.w)/2, float64(tt.h)/2)
			if math.Abs(cx-0.5) > 1e-12 || math.Abs(cy-0.5) > 1e-12 {
				t.Errorf("center maps to (%v,%v), want (0.5,0.5)", cx, cy)
			}

			tighter := v
			tighter.SetZoom(v.Zoom+1, 0, 0)
			if v.Zoom < MaxZoom && tighter.Scale*float64(tt.w) > 1+1e-9 && tighter.Scale*float64(tt.h) > 1+1e-9 {
				t.Errorf("zoom %d is not the tightest fit", v.Zoom)
			}
		})
	}
}
