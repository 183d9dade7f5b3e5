package styles

import (
	"bytes"

	"github.com/matzehuels/sunburst/pkg/geom"
)

// Style defines the visual appearance of a sunburst chart.
// Implementations control how wedges and labels are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (gradients) for the given wedges.
	RenderDefs(buf *bytes.Buffer, wedges []Wedge)
	// RenderArc writes the SVG for a single wedge.
	RenderArc(buf *bytes.Buffer, w Wedge)
	// RenderText writes the SVG for a wedge's label.
	RenderText(buf *bytes.Buffer, t Text)
}

// Wedge contains all data needed to render one arc of the chart.
type Wedge struct {
	ID         string     // Slash-joined path of the node
	Index      int        // Position in render order, unique per chart
	Label      string     // Node name
	Path       string     // SVG path data
	Depth      int        // Ring, 1 for top-level nodes
	ColorIndex int        // Palette slot
	Center     geom.Point // Chart center (for radial gradients)
	Inner      float64    // Inner radius
	Outer      float64    // Outer radius
}

// Text contains positioning data for a label. Box is the label's bounding box;
// labels are never rotated.
type Text struct {
	ID       string
	Label    string
	Box      geom.Rect
	FontSize float64
	Depth    int
}

// ByName returns the style registered under name ("simple" or "gradient").
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "gradient":
		return Gradient{}, true
	}
	return nil, false
}

// Names lists the built-in style names.
func Names() []string { return []string{"simple", "gradient"} }
