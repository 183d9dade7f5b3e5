package label

import (
	"fmt"

	"github.com/matzehuels/sunburst/pkg/geom"
)

// FontRef identifies the font a label is measured and drawn with.
type FontRef struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size"`
}

// Measurer reports the pixel size of text set in font. It is supplied by the
// host renderer; the placer never draws.
type Measurer interface {
	Measure(text string, font FontRef) (width, height float64)
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, font FontRef) (width, height float64)

// Measure calls f(text, font).
func (f MeasureFunc) Measure(text string, font FontRef) (float64, float64) { return f(text, font) }

// Placer measures labels and places them on arc segments.
// A Placer holds no mutable state and is safe for concurrent use.
type Placer struct {
	Measurer Measurer
	Font     FontRef
}

// NewPlacer returns a Placer using m for measurement and font for every label.
func NewPlacer(m Measurer, font FontRef) *Placer {
	return &Placer{Measurer: m, Font: font}
}

// Labeled pairs a segment with the text drawn on it.
type Labeled struct {
	ID      string
	Text    string
	Segment ArcSegment
}

// Result is a placed label together with its measured size.
type Result struct {
	ID        string
	Text      string
	Width     float64
	Height    float64
	Placement Placement
}

// Bounds returns the label's bounding box.
func (r Result) Bounds() geom.Rect { return r.Placement.Bounds(r.Width, r.Height) }

// PlaceText measures text and places it on seg.
func (p *Placer) PlaceText(seg ArcSegment, center geom.Point, text string) (Result, error) {
	w, h := p.Measurer.Measure(text, p.Font)
	pl, err := Place(seg, center, w, h)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Width: w, Height: h, Placement: pl}, nil
}

// PlaceAll places every label in order. It stops at the first invalid segment
// and reports which label caused it.
func (p *Placer) PlaceAll(center geom.Point, items []Labeled) ([]Result, error) {
	out := make([]Result, 0, len(items))
	for _, it := range items {
		r, err := p.PlaceText(it.Segment, center, it.Text)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", it.ID, err)
		}
		r.ID = it.ID
		out = append(out, r)
	}
	return out, nil
}
