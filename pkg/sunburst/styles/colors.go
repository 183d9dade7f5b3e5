package styles

import (
	"fmt"
	"image/color"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// RGBA converts the color to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

func channel(v float64) uint8 {
	return uint8(clamp(v)*255 + 0.5)
}

func clamp(v float64) float64 { return max(0, min(1, v)) }

// Scale multiplies every component by f, clamped to [0, 1].
func (c Color) Scale(f float64) Color {
	return Color{clamp(c.R * f), clamp(c.G * f), clamp(c.B * f)}
}

// Shift adds d to every component, clamped to [0, 1].
func (c Color) Shift(d float64) Color {
	return Color{clamp(c.R + d), clamp(c.G + d), clamp(c.B + d)}
}

// Palette holds the base colors assigned to top-level nodes in order.
var Palette = []Color{
	{0.95, 0.50, 0.40}, // coral
	{0.45, 0.75, 0.55}, // green
	{0.40, 0.60, 0.95}, // blue
	{0.95, 0.75, 0.35}, // orange
	{0.44, 0.19, 0.63}, // purple
	{0.84, 0.15, 0.16}, // red
	{0.12, 0.47, 0.71}, // steel
	{0.20, 0.63, 0.17}, // leaf
}

// ColorFor returns the fill for a node in palette slot index at depth.
// Rings darken by 15% per level below the first.
func ColorFor(index, depth int) Color {
	base := Palette[((index%len(Palette))+len(Palette))%len(Palette)]
	return base.Scale(1 - float64(max(depth, 1)-1)*0.15)
}

// GradientStops returns the inner and outer colors of a wedge's radial
// gradient: lighter toward the center, darker toward the rim.
func GradientStops(c Color) (inner, outer Color) {
	return c.Shift(0.15), c.Shift(-0.1)
}
