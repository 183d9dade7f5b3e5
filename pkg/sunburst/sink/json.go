package sink

import (
	"encoding/json"

	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/textmeasure"
)

type jsonOutput struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Center    geom.Point `json:"center"`
	MaxRadius float64    `json:"max_radius"`
	RingWidth float64    `json:"ring_width"`
	MaxDepth  int        `json:"max_depth"`
	Title     string     `json:"title,omitempty"`
	Style     string     `json:"style,omitempty"`
	FontSize  float64    `json:"font_size"`
	Arcs      []jsonArc  `json:"arcs"`
}

type jsonArc struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Depth   int              `json:"depth"`
	Value   float64          `json:"value"`
	Leaf    bool             `json:"leaf,omitempty"`
	Color   string           `json:"color"`
	Segment label.ArcSegment `json:"segment"`
	Path    string           `json:"path"`
	Text    *jsonText        `json:"text,omitempty"`
}

type jsonText struct {
	Content string     `json:"content"`
	Anchor  geom.Point `json:"anchor"`
	HAlign  string     `json:"halign"`
	VAlign  string     `json:"valign"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Fits    bool       `json:"fits"`
}

// RenderJSON exports the layout with every arc's label placement. Unlike the
// drawing sinks it keeps labels that do not fit, flagged with fits=false.
func RenderJSON(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	p := r.placer(textmeasure.Approx{})

	out := jsonOutput{
		Width:     l.Width,
		Height:    l.Height,
		Center:    l.Center,
		MaxRadius: l.MaxRadius,
		RingWidth: l.RingWidth,
		MaxDepth:  l.MaxDepth,
		Title:     r.title,
		Style:     r.styleName,
		FontSize:  r.fontSize,
		Arcs:      make([]jsonArc, 0, len(l.Arcs)),
	}

	for _, a := range l.Arcs {
		ja := jsonArc{
			ID:      a.ID,
			Label:   a.Label,
			Depth:   a.Depth,
			Value:   a.Value,
			Leaf:    a.Leaf,
			Color:   styles.ColorFor(a.ColorIndex, a.Depth).Hex(),
			Segment: a.Segment,
			Path:    svgPath(l, a),
		}
		if r.labels {
			res, err := p.PlaceText(a.Segment, l.Center, a.Label)
			if err != nil {
				return nil, err
			}
			ja.Text = &jsonText{
				Content: res.Text,
				Anchor:  res.Placement.Anchor,
				HAlign:  res.Placement.HAlign.String(),
				VAlign:  res.Placement.VAlign.String(),
				Width:   res.Width,
				Height:  res.Height,
				Fits:    styles.Fits(a.Segment, l.Center, res.Bounds()),
			}
		}
		out.Arcs = append(out.Arcs, ja)
	}

	return json.MarshalIndent(out, "", "  ")
}
