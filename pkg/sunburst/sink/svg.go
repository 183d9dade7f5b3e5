package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/fonts"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/textmeasure"
)

const arcInteractionCSS = `
    .arc { transition: opacity 0.2s ease; }
    .arc:hover { opacity: 0.8; }
    .arc-label { pointer-events: none; }`

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	wedges := buildWedges(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	renderFontFace(&buf, r.embedFont)

	r.style.RenderDefs(&buf, wedges)
	buf.WriteString(`  <g class="arcs">` + "\n")
	for _, w := range wedges {
		r.style.RenderArc(&buf, w)
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		texts := buildTexts(l, r.placer(textmeasure.Approx{}), r.fontSize)
		buf.WriteString(`  <g class="labels">` + "\n")
		for _, t := range texts {
			r.style.RenderText(&buf, t)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFontFace(buf *bytes.Buffer, embed bool) {
	buf.WriteString("  <style>")
	if embed {
		fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	buf.WriteString(arcInteractionCSS)
	buf.WriteString("\n  </style>\n")
}
