package label

import (
	"fmt"
	"math"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/geom"
)

// ErrInvalidSegment is matched (via the standard errors.Is) by every error
// Place returns for a segment that violates the ArcSegment invariant.
var ErrInvalidSegment = errors.New(errors.ErrCodeInvalidSegment, "invalid arc segment")

// ArcSegment is one wedge of a radial chart.
//
// Angles are radians with 0 along +x, growing toward +y (clockwise on a y-down
// screen). Invariant: 0 <= InnerRadius <= OuterRadius and StartAngle <= EndAngle.
type ArcSegment struct {
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
}

// Validate checks the segment invariant.
func (s ArcSegment) Validate() error {
	for _, v := range [...]float64{s.StartAngle, s.EndAngle, s.InnerRadius, s.OuterRadius} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidSegment, "segment has non-finite component: %+v", s)
		}
	}
	if s.InnerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidSegment, "inner radius %g is negative", s.InnerRadius)
	}
	if s.InnerRadius > s.OuterRadius {
		return errors.New(errors.ErrCodeInvalidSegment, "inner radius %g exceeds outer radius %g", s.InnerRadius, s.OuterRadius)
	}
	if s.StartAngle > s.EndAngle {
		return errors.New(errors.ErrCodeInvalidSegment, "start angle %g exceeds end angle %g", s.StartAngle, s.EndAngle)
	}
	return nil
}

// Sweep returns the angular extent of the segment.
func (s ArcSegment) Sweep() float64 { return s.EndAngle - s.StartAngle }

// Thickness returns the radial extent of the segment.
func (s ArcSegment) Thickness() float64 { return s.OuterRadius - s.InnerRadius }

// MidAngle returns the angle halfway through the segment.
func MidAngle(s ArcSegment) float64 { return (s.StartAngle + s.EndAngle) / 2 }

// MidRadius returns the radius halfway between the inner and outer edge.
func MidRadius(s ArcSegment) float64 { return (s.InnerRadius + s.OuterRadius) / 2 }

// Midpoint returns the point at mid-angle and mid-radius around center.
func Midpoint(s ArcSegment, center geom.Point) geom.Point {
	return geom.Polar(center, MidRadius(s), MidAngle(s))
}

// HAlign is the horizontal alignment of a label relative to its anchor.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("HAlign(%d)", int(a))
}

// VAlign is the vertical alignment of a label relative to its anchor.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

func (a VAlign) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return fmt.Sprintf("VAlign(%d)", int(a))
}

// Placement is where and how to draw a label. It has no rotation: labels are
// always drawn horizontally.
type Placement struct {
	Anchor geom.Point `json:"anchor"`
	HAlign HAlign     `json:"halign"`
	VAlign VAlign     `json:"valign"`
}

// Rotation returns the label rotation in radians, which is always zero.
func (Placement) Rotation() float64 { return 0 }

// Bounds returns the label bounding box for a label of size w x h.
func (p Placement) Bounds(w, h float64) geom.Rect {
	x, y := p.Anchor.X, p.Anchor.Y
	switch p.HAlign {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	switch p.VAlign {
	case AlignMiddle:
		y -= h / 2
	case AlignBottom:
		y -= h
	}
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

// Centered converts the placement to the equivalent center/middle form for a
// label of size w x h, for drawing primitives that take alignment flags.
func (p Placement) Centered(w, h float64) Placement {
	return Placement{Anchor: p.Bounds(w, h).Center(), HAlign: AlignCenter, VAlign: AlignMiddle}
}

// Place computes where to draw a textWidth x textHeight label so that its
// bounding box is centered on the segment's midpoint at mid-radius.
//
// The result uses the top-left form: Anchor is the corner of the bounding box,
// with AlignLeft and AlignTop.
func Place(seg ArcSegment, center geom.Point, textWidth, textHeight float64) (Placement, error) {
	if err := seg.Validate(); err != nil {
		return Placement{}, err
	}
	raw := Midpoint(seg, center)
	return Placement{
		Anchor: geom.Point{X: raw.X - textWidth/2, Y: raw.Y - textHeight/2},
		HAlign: AlignLeft,
		VAlign: AlignTop,
	}, nil
}
