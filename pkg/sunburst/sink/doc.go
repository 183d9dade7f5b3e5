// Package sink renders sunburst layouts to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG, drawn through a [styles.Style]
//   - [RenderPNG]: raster image, drawn in-process with tdewolff/canvas
//   - [RenderPDF]: single-page vector PDF, also via tdewolff/canvas
//   - [RenderJSON]: layout geometry plus every label placement
//
// # Labels
//
// All drawing sinks place labels with pkg/label: each label's box is
// centered on its wedge's mid-angle, mid-radius point and drawn horizontally.
// A label that overflows its wedge is shortened with a ".." suffix, and
// dropped if even that does not fit.
//
// SVG measures text with [textmeasure.Approx] by default; PNG and PDF measure
// with the embedded Go font they draw with. Override either with
// [WithMeasurer].
//
// # Usage
//
//	l, _ := layout.Build(root, 800, 800)
//	svg := sink.RenderSVG(l, sink.WithStyle(styles.Gradient{}), sink.WithFontSize(12))
//	png, err := sink.RenderPNG(l, sink.WithScale(3))
package sink
