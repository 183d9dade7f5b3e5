package styles

import (
	"bytes"
	"fmt"
)

// Gradient shades each wedge with a radial gradient, lighter toward the
// center of the chart and darker toward its rim.
type Gradient struct{}

func (Gradient) RenderDefs(buf *bytes.Buffer, wedges []Wedge) {
	if len(wedges) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, w := range wedges {
		inner, outer := GradientStops(ColorFor(w.ColorIndex, w.Depth))
		start := 0.0
		if w.Outer > 0 {
			start = w.Inner / w.Outer * 100
		}
		fmt.Fprintf(buf, `    <radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">`+
			`<stop offset="%.1f%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></radialGradient>`+"\n",
			gradientID(w.Index), w.Center.X, w.Center.Y, w.Outer, start, inner.Hex(), outer.Hex())
	}
	buf.WriteString("  </defs>\n")
}

func (Gradient) RenderArc(buf *bytes.Buffer, w Wedge) {
	fmt.Fprintf(buf, `  <path id="arc-%s" class="arc" data-depth="%d" d="%s" fill="url(#%s)" stroke="white" stroke-width="1.5"><title>%s</title></path>`+"\n",
		EscapeXML(w.ID), w.Depth, w.Path, gradientID(w.Index), EscapeXML(w.ID))
}

func (Gradient) RenderText(buf *bytes.Buffer, t Text) {
	renderLabel(buf, t, "#111")
}

func gradientID(i int) string { return fmt.Sprintf("grad-%d", i) }
