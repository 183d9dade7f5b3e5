// Package shape generates outlines for annular sectors.
//
// An [Arc] is converted to a renderer-neutral list of [Command] values that
// each sink translates to its own path syntax: [Arc.SVGPath] writes SVG path
// data directly, the canvas sink builds a tdewolff/canvas path from
// [Arc.Commands].
//
// Angles follow pkg/label: radians, 0 along +x, growing toward +y. In y-down
// screen space that is clockwise, so an ArcTo with Sweep set turns clockwise
// on screen, matching SVG's sweep-flag=1.
package shape

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/label"
)

const epsilon = 1e-10

// Arc is an annular sector. InnerRadius 0 produces a pie slice; a sweep of a
// full turn produces a ring (or disc).
type Arc struct {
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
	// PadAngle is removed from the sweep, half at each end.
	PadAngle float64
}

// FromSegment returns the arc covering seg with the given padding.
func FromSegment(seg label.ArcSegment, pad float64) Arc {
	return Arc{
		InnerRadius: seg.InnerRadius,
		OuterRadius: seg.OuterRadius,
		StartAngle:  seg.StartAngle,
		EndAngle:    seg.EndAngle,
		PadAngle:    pad,
	}
}

// Segment returns the unpadded extent of the arc.
func (a Arc) Segment() label.ArcSegment {
	return label.ArcSegment{
		StartAngle:  a.StartAngle,
		EndAngle:    a.EndAngle,
		InnerRadius: a.InnerRadius,
		OuterRadius: a.OuterRadius,
	}
}

// Centroid returns the mid-angle, mid-radius point of the arc relative to
// center. It is the same point pkg/label centers labels on.
func (a Arc) Centroid(center geom.Point) geom.Point {
	return label.Midpoint(a.Segment(), center)
}

// padded returns the start and end angles after the pad is applied.
func (a Arc) padded() (start, end float64) {
	start, end = a.StartAngle, a.EndAngle
	if a.PadAngle > 0 {
		start += a.PadAngle / 2
		end -= a.PadAngle / 2
	}
	return start, end
}

// Op is a path operation.
type Op int

const (
	MoveTo Op = iota
	LineTo
	ArcTo
	Close
)

// Command is one step of an outline. ArcTo commands draw a circular arc of
// Radius from the current point to To; Large and Sweep have the SVG meaning.
type Command struct {
	Op     Op
	To     geom.Point
	Radius float64
	Large  bool
	Sweep  bool
}

// Commands returns the outline of the arc around center. It returns nil when
// the padded sweep is empty or negative.
func (a Arc) Commands(center geom.Point) []Command {
	inner := max(a.InnerRadius, 0)
	outer := max(a.OuterRadius, 0)
	start, end := a.padded()
	sweep := end - start
	if sweep < epsilon || outer < epsilon {
		return nil
	}

	switch {
	case sweep >= 2*math.Pi-epsilon:
		return ring(center, inner, outer)
	case inner < epsilon:
		return pie(center, outer, start, end)
	default:
		return donut(center, inner, outer, start, end)
	}
}

func ring(c geom.Point, inner, outer float64) []Command {
	cmds := []Command{
		{Op: MoveTo, To: geom.Polar(c, outer, 0)},
		{Op: ArcTo, To: geom.Polar(c, outer, math.Pi), Radius: outer, Sweep: true},
		{Op: ArcTo, To: geom.Polar(c, outer, 0), Radius: outer, Sweep: true},
		{Op: Close},
	}
	if inner < epsilon {
		return cmds
	}
	// Inner circle runs the opposite way so nonzero filling leaves a hole.
	return append(cmds,
		Command{Op: MoveTo, To: geom.Polar(c, inner, 0)},
		Command{Op: ArcTo, To: geom.Polar(c, inner, math.Pi), Radius: inner},
		Command{Op: ArcTo, To: geom.Polar(c, inner, 0), Radius: inner},
		Command{Op: Close},
	)
}

func pie(c geom.Point, outer, start, end float64) []Command {
	return []Command{
		{Op: MoveTo, To: c},
		{Op: LineTo, To: geom.Polar(c, outer, start)},
		{Op: ArcTo, To: geom.Polar(c, outer, end), Radius: outer, Large: end-start > math.Pi, Sweep: true},
		{Op: Close},
	}
}

func donut(c geom.Point, inner, outer, start, end float64) []Command {
	large := end-start > math.Pi
	return []Command{
		{Op: MoveTo, To: geom.Polar(c, outer, start)},
		{Op: ArcTo, To: geom.Polar(c, outer, end), Radius: outer, Large: large, Sweep: true},
		{Op: LineTo, To: geom.Polar(c, inner, end)},
		{Op: ArcTo, To: geom.Polar(c, inner, start), Radius: inner, Large: large},
		{Op: Close},
	}
}

// SVGPath returns SVG path data for the arc, or "" if it is empty.
func (a Arc) SVGPath(center geom.Point) string {
	cmds := a.Commands(center)
	if len(cmds) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			fmt.Fprintf(&b, "M%.2f,%.2f", c.To.X, c.To.Y)
		case LineTo:
			fmt.Fprintf(&b, "L%.2f,%.2f", c.To.X, c.To.Y)
		case ArcTo:
			fmt.Fprintf(&b, "A%.2f,%.2f 0 %d %d %.2f,%.2f", c.Radius, c.Radius, flag(c.Large), flag(c.Sweep), c.To.X, c.To.Y)
		case Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func flag(v bool) int {
	if v {
		return 1
	}
	return 0
}
