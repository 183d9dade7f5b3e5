package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/label"
)

// Defaults applied by Build when no option overrides them.
const (
	DefaultPadding    = 15.0
	DefaultMinSweep   = 0.01
	DefaultStartAngle = -math.Pi / 2
	DefaultPadAngle   = 0.01
)

// Layout is the computed geometry of a sunburst chart.
type Layout struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Center     geom.Point `json:"center"`
	MaxRadius  float64    `json:"max_radius"`
	RingWidth  float64    `json:"ring_width"`
	MaxDepth   int        `json:"max_depth"`
	StartAngle float64    `json:"start_angle"`
	PadAngle   float64    `json:"pad_angle"`
	Arcs       []Arc      `json:"arcs"`
}

// Arc is one drawn wedge. Arcs appear in pre-order: a parent always comes
// before its descendants.
type Arc struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	Depth      int              `json:"depth"`
	Value      float64          `json:"value"`
	ColorIndex int              `json:"color_index"`
	Leaf       bool             `json:"leaf"`
	Segment    label.ArcSegment `json:"segment"`
}

// Option configures Build.
type Option func(*builder)

type builder struct {
	padding    float64
	minSweep   float64
	startAngle float64
	padAngle   float64
	sortValues bool
}

// WithPadding sets the margin between the outermost ring and the frame edge.
func WithPadding(p float64) Option { return func(b *builder) { b.padding = p } }

// WithMinSweep sets the smallest angular extent that is still drawn. Arcs at
// or below it are dropped together with their descendants.
func WithMinSweep(s float64) Option { return func(b *builder) { b.minSweep = s } }

// WithStartAngle sets where the first top-level wedge begins.
func WithStartAngle(a float64) Option { return func(b *builder) { b.startAngle = a } }

// WithPadAngle sets the gap drawn between neighbouring wedges.
func WithPadAngle(a float64) Option { return func(b *builder) { b.padAngle = a } }

// WithSortByValue orders siblings largest first before assigning angles.
func WithSortByValue() Option { return func(b *builder) { b.sortValues = true } }

// Build lays out root inside a width x height frame. The caller's tree is not
// modified.
func Build(root *hierarchy.Node, width, height float64, opts ...Option) (Layout, error) {
	b := builder{
		padding:    DefaultPadding,
		minSweep:   DefaultMinSweep,
		startAngle: DefaultStartAngle,
		padAngle:   DefaultPadAngle,
	}
	for _, opt := range opts {
		opt(&b)
	}

	if err := errors.ValidateDimensions(width, height); err != nil {
		return Layout{}, err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"padding", b.padding}, {"min sweep", b.minSweep}, {"start angle", b.startAngle}, {"pad angle", b.padAngle}} {
		if err := errors.ValidateFinite(f.name, f.v); err != nil {
			return Layout{}, err
		}
	}
	if err := root.Validate(); err != nil {
		return Layout{}, err
	}

	maxRadius := min(width, height)/2 - b.padding
	if maxRadius <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "frame %gx%g is too small for padding %g", width, height, b.padding)
	}

	tree := root.Clone()
	tree.Sum()
	if b.sortValues {
		tree.SortByValue()
	}
	tree.Annotate()
	tree.AssignColors()

	l := Layout{
		Width:      width,
		Height:     height,
		Center:     geom.Pt(width/2, height/2),
		MaxRadius:  maxRadius,
		MaxDepth:   tree.Height,
		StartAngle: b.startAngle,
		PadAngle:   b.padAngle,
	}
	l.RingWidth = maxRadius / float64(l.MaxDepth+1)

	b.children(&l, tree, nil, b.startAngle, b.startAngle+2*math.Pi)
	return l, nil
}

// children splits [start, end] among n's children proportionally to value.
func (b *builder) children(l *Layout, n *hierarchy.Node, path []string, start, end float64) {
	total := n.Value
	angle := start
	for _, c := range n.Children {
		var sweep float64
		if total > 0 {
			sweep = c.Value / total * (end - start)
		}
		childPath := append(path[:len(path):len(path)], c.Name)
		if sweep > b.minSweep {
			l.Arcs = append(l.Arcs, Arc{
				ID:         strings.Join(childPath, "/"),
				Label:      c.Name,
				Depth:      c.Depth,
				Value:      c.Value,
				ColorIndex: c.ColorIndex,
				Leaf:       c.IsLeaf(),
				Segment: label.ArcSegment{
					StartAngle:  angle,
					EndAngle:    angle + sweep,
					InnerRadius: float64(c.Depth-1) * l.RingWidth,
					OuterRadius: float64(c.Depth) * l.RingWidth,
				},
			})
			b.children(l, c, childPath, angle, angle+sweep)
		}
		angle += sweep
	}
}

// Arc returns the arc with the given ID.
func (l Layout) Arc(id string) (Arc, bool) {
	for _, a := range l.Arcs {
		if a.ID == id {
			return a, true
		}
	}
	return Arc{}, false
}

// HitTest returns the arc under p, if any.
func (l Layout) HitTest(p geom.Point) (Arc, bool) {
	dist := p.Dist(l.Center)
	if l.MaxDepth == 0 || l.RingWidth <= 0 || dist > l.MaxRadius {
		return Arc{}, false
	}
	depth := int(math.Floor(dist/l.RingWidth + 1))
	if depth < 1 || depth > l.MaxDepth {
		return Arc{}, false
	}
	angle := geom.NormalizeAngle(p.Angle(l.Center), l.StartAngle)
	for _, a := range l.Arcs {
		if a.Depth == depth && angle >= a.Segment.StartAngle && angle < a.Segment.EndAngle {
			return a, true
		}
	}
	return Arc{}, false
}

// Labels places a label on every arc using p. Results are in arc order and
// carry the arc ID.
func (l Layout) Labels(p *label.Placer) ([]label.Result, error) {
	items := make([]label.Labeled, len(l.Arcs))
	for i, a := range l.Arcs {
		items[i] = label.Labeled{ID: a.ID, Text: a.Label, Segment: a.Segment}
	}
	return p.PlaceAll(l.Center, items)
}
