package styles

import (
	"bytes"
	"encoding/xml"
	"math"

	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/label"
)

// FontFamily is the CSS font stack used for labels. The Go font comes first
// so SVG output matches the embedded font used for PNG and PDF.
const FontFamily = "Go,Helvetica,Arial,sans-serif"

const (
	fontSizeMin = 6.0
	fontSizeMax = 24.0
)

// ClampFontSize bounds a requested label size.
func ClampFontSize(size float64) float64 {
	return max(fontSizeMin, min(fontSizeMax, size))
}

// Fits reports whether box lies inside the annular sector seg around center.
// Corners and edge midpoints are tested, which catches boxes poking through
// the inner circle between two corners.
func Fits(seg label.ArcSegment, center geom.Point, box geom.Rect) bool {
	if box.W > 2*seg.OuterRadius || box.H > 2*seg.OuterRadius {
		return false
	}
	c := box.Corners()
	samples := [...]geom.Point{
		c[0], c[1], c[2], c[3],
		midpoint(c[0], c[1]), midpoint(c[1], c[2]), midpoint(c[2], c[3]), midpoint(c[3], c[0]),
	}
	full := seg.Sweep() >= 2*math.Pi
	for _, p := range samples {
		r := p.Dist(center)
		if r < seg.InnerRadius || r > seg.OuterRadius {
			return false
		}
		if full {
			continue
		}
		a := geom.NormalizeAngle(p.Angle(center), seg.StartAngle)
		if a > seg.EndAngle {
			return false
		}
	}
	return true
}

func midpoint(a, b geom.Point) geom.Point { return a.Add(b).Scale(0.5) }

// TruncateLabel shortens text with a ".." suffix until its placed box fits
// seg. It returns the text that fits with its placement, or false if not even
// the shortest form does.
func TruncateLabel(p *label.Placer, seg label.ArcSegment, center geom.Point, text string) (label.Result, bool) {
	runes := []rune(text)
	for n := len(runes); n >= 1; n-- {
		candidate := text
		if n < len(runes) {
			if n < 3 {
				break
			}
			candidate = string(runes[:n-2]) + ".."
		}
		r, err := p.PlaceText(seg, center, candidate)
		if err != nil {
			return label.Result{}, false
		}
		if Fits(seg, center, r.Bounds()) {
			return r, true
		}
	}
	return label.Result{}, false
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
