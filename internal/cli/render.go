package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
)

// renderFlags holds the command-line flags shared by render and inspect.
// Only flags the user actually set override the config file.
type renderFlags struct {
	inputFormat string
	vizType     string
	formats     string
	width       float64
	height      float64
	style       string
	labels      bool
	fontSize    float64
	measure     string
	title       string
	padding     float64
	minSweep    float64
	padAngle    float64
	startAngle  float64
	sort        bool
	embedFont   bool
	scale       float64
	detailed    bool
}

// registerLayout adds the flags that influence layout and label measuring.
func (f *renderFlags) registerLayout(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.inputFormat, "input-format", "", "input format: json, toml, dsl (default: from file extension)")
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height")
	fs.Float64Var(&f.fontSize, "font-size", pipeline.DefaultFontSize, "label font size in pixels")
	fs.StringVar(&f.measure, "measure", pipeline.MeasureApprox, "label measurer: approx, font")
	fs.Float64Var(&f.padding, "padding", 0, "margin between the outer ring and the frame")
	fs.Float64Var(&f.minSweep, "min-sweep", 0, "smallest arc sweep in radians that is drawn")
	fs.Float64Var(&f.padAngle, "pad-angle", 0, "gap between sibling arcs in radians")
	fs.Float64Var(&f.startAngle, "start-angle", 0, "angle of the first arc in radians (default: -π/2, top)")
	fs.BoolVar(&f.sort, "sort", false, "order siblings by descending value")
}

// register adds the layout flags plus the output flags of render.
func (f *renderFlags) register(cmd *cobra.Command) {
	f.registerLayout(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: sunburst, nodelink")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, gradient")
	fs.BoolVar(&f.labels, "labels", true, "draw arc labels")
	fs.StringVar(&f.title, "title", "", "chart title")
	fs.BoolVar(&f.embedFont, "embed-font", false, "embed the label font in SVG output")
	fs.Float64Var(&f.scale, "scale", 0, fmt.Sprintf("PNG pixels per unit (0 = %g)", pipeline.DefaultScale))
	fs.BoolVar(&f.detailed, "detailed", false, "show values and depths (nodelink)")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON))
	_ = cmd.RegisterFlagCompletionFunc("type", fixedCompletion(pipeline.VizTypeSunburst, pipeline.VizTypeNodelink))
	_ = cmd.RegisterFlagCompletionFunc("style", fixedCompletion(styles.Names()...))
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// options builds pipeline options from config defaults overlaid with every
// flag set on cmd.
func (f *renderFlags) options(cmd *cobra.Command, cfg RenderConfig) pipeline.Options {
	var opts pipeline.Options
	cfg.apply(&opts)

	changed := cmd.Flags().Changed
	opts.VizType = f.vizType
	opts.InputFormat = f.inputFormat
	opts.Title = f.title
	opts.SortByValue = f.sort
	opts.EmbedFont = f.embedFont
	opts.Scale = f.scale
	opts.Detailed = f.detailed
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("style") {
		opts.Style = f.style
	}
	if changed("labels") {
		opts.Labels = pipeline.Bool(f.labels)
	}
	if changed("font-size") {
		opts.FontSize = f.fontSize
	}
	if changed("measure") {
		opts.Measure = f.measure
	}
	if changed("padding") {
		opts.Padding = pipeline.Float(f.padding)
	}
	if changed("min-sweep") {
		opts.MinSweep = pipeline.Float(f.minSweep)
	}
	if changed("pad-angle") {
		opts.PadAngle = pipeline.Float(f.padAngle)
	}
	if changed("start-angle") {
		opts.StartAngle = pipeline.Float(f.startAngle)
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   renderFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a hierarchy as a sunburst chart",
		Long: `Render a hierarchy as a sunburst chart.

The input is a JSON, TOML or DSL (.sb) hierarchy. Every arc gets a horizontal
label centered at its middle. Several formats can be written at once:

  sunburst render langs.sb -f svg,png -o charts/langs

Results are cached; --refresh recomputes and --no-cache skips the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg.Render)
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runRender reads the input, runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, format, err := readInput(input, opts.InputFormat)
	if err != nil {
		return err
	}
	opts.Input = data
	opts.InputFormat = string(format)
	opts.Logger = logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	if output != "-" {
		spinner.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}
	prog.done("Rendered " + input)

	printSuccess("Rendered %s", opts.VizType)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.ArcCount, result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Inspect labels", appName+" inspect "+input)
	return nil
}

// readInput reads path and resolves its input format. An explicit format
// wins over the file extension.
func readInput(path, format string) ([]byte, io.Format, error) {
	var (
		f   io.Format
		err error
	)
	if format != "" {
		f, err = io.ParseFormat(format)
	} else {
		f, err = io.DetectFormat(path)
	}
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > pipeline.MaxInputSize {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "input %s exceeds %d bytes", path, pipeline.MaxInputSize)
	}
	return data, f, nil
}

// outputPaths maps each format to its destination. A single format writes to
// output verbatim when given; otherwise <base>.<format> is used.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path. If output is empty, the extension
// is stripped from input; a known format extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes every requested artifact and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	dest := outputPaths(formats, input, output)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return written, errors.New(errors.ErrCodeInternal, "no %s artifact produced", f)
		}
		path := dest[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
