// Package geom provides the small 2D vocabulary shared by layout, label
// placement and the sinks.
//
// All coordinates are in user units (pixels in SVG/PNG) in a y-down space:
// x grows to the right and y grows downward. With that orientation the
// standard parametrization (cos a, sin a) turns clockwise on screen.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in user space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Angle returns the angle of p relative to center, in (-pi, pi].
func (p Point) Angle(center Point) float64 { return math.Atan2(p.Y-center.Y, p.X-center.X) }

func (p Point) String() string { return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y) }

// Polar returns the point at radius r and angle a (radians) around center.
func Polar(center Point, r, a float64) Point {
	return Point{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Contains reports whether p lies inside the rectangle (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// NormalizeAngle maps a into [from, from+2pi).
func NormalizeAngle(a, from float64) float64 {
	const tau = 2 * math.Pi
	a = math.Mod(a-from, tau)
	if a < 0 {
		a += tau
	}
	return a + from
}
