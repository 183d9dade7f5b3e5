package sink

import (
	"bytes"
	"image/png"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/shape"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/textmeasure"
)

var labelColor = canvas.Hex("#222222")

// embeddedFont is loaded once and shared; textmeasure.Font is safe for
// concurrent use.
var embeddedFont = sync.OnceValues(textmeasure.NewFont)

// RenderPNG rasterizes the layout in-process.
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c, err := r.draw(l)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(r.scale), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderPDF renders the layout as a single-page PDF.
func RenderPDF(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c, err := r.draw(l)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, l.Width, l.Height, nil)
	writer.SetInfo(r.title, "", "sunburst", "", "sunburst")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// draw paints the chart onto a canvas. Canvas space is y-up, so every
// y coordinate is mirrored against the frame height.
func (r *renderer) draw(l layout.Layout) (*canvas.Canvas, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout has no size")
	}
	font, err := embeddedFont()
	if err != nil {
		return nil, err
	}

	c := canvas.New(l.Width, l.Height)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(l.Width, l.Height))

	ctx.SetStrokeColor(canvas.White)
	ctx.SetStrokeWidth(1)
	for _, a := range l.Arcs {
		cmds := shape.FromSegment(a.Segment, l.PadAngle).Commands(l.Center)
		if len(cmds) == 0 {
			continue
		}
		ctx.SetFillColor(styles.ColorFor(a.ColorIndex, a.Depth).RGBA())
		ctx.DrawPath(0, 0, toPath(cmds, l.Height))
	}

	if !r.labels {
		return c, nil
	}
	face := font.Face(r.fontSize, labelColor)
	m := face.Metrics()
	for _, t := range buildTexts(l, r.placer(font), r.fontSize) {
		// Center the glyph block vertically within the measured box.
		baseline := t.Box.Y + (t.Box.H-(m.Ascent+m.Descent))/2 + m.Ascent
		line := canvas.NewTextLine(face, t.Label, canvas.Left)
		ctx.DrawText(t.Box.X, l.Height-baseline, line)
	}
	return c, nil
}

// toPath converts y-down outline commands into a y-up canvas path. Mirroring
// reverses orientation, so sweep flags are inverted.
func toPath(cmds []shape.Command, height float64) *canvas.Path {
	p := &canvas.Path{}
	for _, cmd := range cmds {
		x, y := cmd.To.X, height-cmd.To.Y
		switch cmd.Op {
		case shape.MoveTo:
			p.MoveTo(x, y)
		case shape.LineTo:
			p.LineTo(x, y)
		case shape.ArcTo:
			p.ArcTo(cmd.Radius, cmd.Radius, 0, cmd.Large, !cmd.Sweep, x, y)
		case shape.Close:
			p.Close()
		}
	}
	return p
}
