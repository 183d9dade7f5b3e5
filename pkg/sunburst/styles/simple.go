package styles

import (
	"bytes"
	"fmt"
)

// Simple fills each wedge with a flat palette color.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer, []Wedge) {}

func (Simple) RenderArc(buf *bytes.Buffer, w Wedge) {
	fmt.Fprintf(buf, `  <path id="arc-%s" class="arc" data-depth="%d" d="%s" fill="%s" stroke="white" stroke-width="1"><title>%s</title></path>`+"\n",
		EscapeXML(w.ID), w.Depth, w.Path, ColorFor(w.ColorIndex, w.Depth).Hex(), EscapeXML(w.ID))
}

func (Simple) RenderText(buf *bytes.Buffer, t Text) {
	renderLabel(buf, t, "#222")
}

// renderLabel draws t centered on its box with the given fill.
func renderLabel(buf *bytes.Buffer, t Text, fill string) {
	c := t.Box.Center()
	fmt.Fprintf(buf, `  <text class="arc-label" data-arc="%s" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		EscapeXML(t.ID), c.X, c.Y, FontFamily, t.FontSize, fill, EscapeXML(t.Label))
}
