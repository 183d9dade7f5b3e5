package sink

import (
	"github.com/matzehuels/sunburst/pkg/fonts"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/shape"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
)

// DefaultFontSize is the label size used when WithFontSize is not given.
const DefaultFontSize = 11.0

// DefaultScale is the PNG resolution used when WithScale is not given.
const DefaultScale = 2.0

// Option configures every sink in this package.
type Option func(*renderer)

type renderer struct {
	style     styles.Style
	styleName string
	measurer  label.Measurer
	fontSize  float64
	labels    bool
	title     string
	embedFont bool
	scale     float64
}

// WithStyle sets the visual style (default styles.Simple).
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithStyleName records the style name in JSON output.
func WithStyleName(name string) Option { return func(r *renderer) { r.styleName = name } }

// WithMeasurer sets the text measurer used to size labels.
func WithMeasurer(m label.Measurer) Option { return func(r *renderer) { r.measurer = m } }

// WithFontSize sets the label font size in user units.
func WithFontSize(size float64) Option { return func(r *renderer) { r.fontSize = size } }

// WithLabels turns label drawing on or off (default on).
func WithLabels(on bool) Option { return func(r *renderer) { r.labels = on } }

// WithTitle sets the document title.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithEmbeddedFont embeds the Go font into SVG output as a data URI.
func WithEmbeddedFont() Option { return func(r *renderer) { r.embedFont = true } }

// WithScale sets the PNG resolution in pixels per user unit (default DefaultScale).
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

func newRenderer(opts ...Option) renderer {
	r := renderer{style: styles.Simple{}, fontSize: DefaultFontSize, labels: true, scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	r.fontSize = styles.ClampFontSize(r.fontSize)
	return r
}

func (r *renderer) placer(fallback label.Measurer) *label.Placer {
	m := r.measurer
	if m == nil {
		m = fallback
	}
	return label.NewPlacer(m, label.FontRef{Family: fonts.FontFamily, Size: r.fontSize})
}

// buildWedges converts layout arcs to style input in layout order.
func buildWedges(l layout.Layout) []styles.Wedge {
	wedges := make([]styles.Wedge, 0, len(l.Arcs))
	for _, a := range l.Arcs {
		path := svgPath(l, a)
		if path == "" {
			continue
		}
		wedges = append(wedges, styles.Wedge{
			ID:         a.ID,
			Index:      len(wedges),
			Label:      a.Label,
			Path:       path,
			Depth:      a.Depth,
			ColorIndex: a.ColorIndex,
			Center:     l.Center,
			Inner:      a.Segment.InnerRadius,
			Outer:      a.Segment.OuterRadius,
		})
	}
	return wedges
}

// buildTexts places every arc label that fits its wedge, truncating where
// needed. Labels that cannot fit are left out.
func buildTexts(l layout.Layout, p *label.Placer, size float64) []styles.Text {
	var texts []styles.Text
	for _, a := range l.Arcs {
		res, ok := styles.TruncateLabel(p, a.Segment, l.Center, a.Label)
		if !ok {
			continue
		}
		texts = append(texts, styles.Text{
			ID:       a.ID,
			Label:    res.Text,
			Box:      res.Bounds(),
			FontSize: size,
			Depth:    a.Depth,
		})
	}
	return texts
}

func svgPath(l layout.Layout, a layout.Arc) string {
	return shape.FromSegment(a.Segment, l.PadAngle).SVGPath(l.Center)
}
