package pipeline

import (
	"bytes"
	"context"
	"sync"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/nodelink"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/sink"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/textmeasure"
)

var fontMeasurer = sync.OnceValues(textmeasure.NewFont)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, root *hierarchy.Node, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsNodelink() {
		return renderNodelink(ctx, root, opts)
	}
	return renderSunburst(ctx, l, opts)
}

// renderSunburst generates sunburst outputs.
func renderSunburst(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	sinkOpts, err := buildSinkOptions(opts)
	if err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(l, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sinkOpts...)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported sunburst format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink draws the tree as a graphviz diagram. JSON output is the
// hierarchy itself.
func renderNodelink(ctx context.Context, root *hierarchy.Node, opts Options) (map[string][]byte, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink render needs the hierarchy")
	}
	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		case FormatJSON:
			var buf bytes.Buffer
			err = io.WriteJSON(root, &buf)
			data = buf.Bytes()
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSinkOptions translates pipeline options to sink options.
func buildSinkOptions(opts Options) ([]sink.Option, error) {
	style, ok := styles.ByName(opts.Style)
	if !ok {
		return nil, ValidateStyle(opts.Style)
	}
	so := []sink.Option{
		sink.WithStyle(style),
		sink.WithStyleName(opts.Style),
		sink.WithLabels(opts.LabelsEnabled()),
		sink.WithFontSize(opts.FontSize),
	}
	if opts.Title != "" {
		so = append(so, sink.WithTitle(opts.Title))
	}
	if opts.EmbedFont {
		so = append(so, sink.WithEmbeddedFont())
	}
	if opts.Scale > 0 {
		so = append(so, sink.WithScale(opts.Scale))
	}
	if opts.Measure == MeasureFont {
		m, err := Measurer(opts.Measure)
		if err != nil {
			return nil, err
		}
		so = append(so, sink.WithMeasurer(m))
	}
	return so, nil
}

// Measurer resolves a measurer name. Font measuring loads the embedded Go
// font once per process.
func Measurer(name string) (label.Measurer, error) {
	if name == MeasureFont {
		f, err := fontMeasurer()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
		}
		return f, nil
	}
	return textmeasure.Approx{}, nil
}
