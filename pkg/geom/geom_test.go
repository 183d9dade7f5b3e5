package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPolar(t *testing.T) {
	tests := []struct {
		name   string
		center Point
		r, a   float64
		want   Point
	}{
		{"east", Pt(0, 0), 10, 0, Pt(10, 0)},
		{"south in y-down", Pt(0, 0), 10, math.Pi / 2, Pt(0, 10)},
		{"west offset", Pt(5, 5), 5, math.Pi, Pt(0, 5)},
		{"north", Pt(100, 100), 50, -math.Pi / 2, Pt(100, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polar(tt.center, tt.r, tt.a)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Polar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4)
	if got := p.Add(Pt(1, 1)); got != Pt(4, 5) {
		t.Errorf("Add = %v, want (4, 5)", got)
	}
	if got := p.Sub(Pt(3, 4)); got != Pt(0, 0) {
		t.Errorf("Sub = %v, want (0, 0)", got)
	}
	if got := p.Scale(2); got != Pt(6, 8) {
		t.Errorf("Scale = %v, want (6, 8)", got)
	}
	if got := p.Dist(Pt(0, 0)); !near(got, 5) {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 40, H: 10}
	if got := r.Center(); got != Pt(30, 25) {
		t.Errorf("Center = %v, want (30, 25)", got)
	}
	if !r.Contains(Pt(10, 20)) || !r.Contains(Pt(50, 30)) {
		t.Error("Contains should include edges")
	}
	if r.Contains(Pt(51, 25)) {
		t.Error("Contains(51, 25) = true, want false")
	}
	c := r.Corners()
	if c[2] != Pt(50, 30) {
		t.Errorf("Corners()[2] = %v, want (50, 30)", c[2])
	}
}

func TestNormalizeAngle(t *testing.T) {
	from := -math.Pi / 2
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{from, from},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in, from); !near(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
