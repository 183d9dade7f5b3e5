// Package pipeline runs the load → layout → render chain behind every
// sunburst entry point.
//
// The CLI and the HTTP server both build an [Options] value and hand it to a
// [Runner]. Centralizing the chain keeps defaults, validation and caching
// identical no matter where a chart is requested from.
//
// # Stages
//
//  1. Load: decode the input (JSON, TOML or DSL) into a validated hierarchy
//  2. Layout: compute the ring geometry for every arc
//  3. Render: produce SVG, PNG, PDF or JSON artifacts
//
// Layouts and artifacts are cached under keys derived from the loaded tree,
// so the same chart described in two input formats shares cache entries.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:       data,
//	    InputFormat: "json",
//	    Formats:     []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	goio "io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/sink"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 600.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// DefaultFontSize is the default label size in pixels.
	DefaultFontSize = sink.DefaultFontSize

	// MaxFrameSize bounds width and height so a request cannot ask for an
	// enormous raster.
	MaxFrameSize = 8192.0

	// MaxFontSize bounds the requested label size.
	MaxFontSize = 96.0

	// DefaultScale is the PNG resolution used when Scale is zero.
	DefaultScale = sink.DefaultScale

	// MaxScale bounds the PNG pixels-per-unit factor.
	MaxScale = 8.0

	// MaxRasterSide bounds each side of a PNG in pixels (frame side × scale).
	MaxRasterSide = 16384.0

	// MaxInputSize bounds the accepted input document.
	MaxInputSize = 8 << 20
)

// Visualization types.
const (
	VizTypeSunburst = "sunburst"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSunburst

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Label measurers.
const (
	MeasureApprox = "approx"
	MeasureFont   = "font"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSunburst: true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. It supports JSON
// for API requests; pointer fields distinguish "unset" from an explicit zero.
type Options struct {
	// Load options
	Input       []byte          `json:"-"`
	Root        *hierarchy.Node `json:"root,omitempty"` // pre-decoded input, takes precedence over Input
	InputFormat string          `json:"input_format,omitempty"`

	// Layout options
	VizType     string   `json:"viz_type,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Padding     *float64 `json:"padding,omitempty"`
	MinSweep    *float64 `json:"min_sweep,omitempty"`
	PadAngle    *float64 `json:"pad_angle,omitempty"`
	StartAngle  *float64 `json:"start_angle,omitempty"`
	SortByValue bool     `json:"sort_by_value,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Labels    *bool    `json:"labels,omitempty"`
	FontSize  float64  `json:"font_size,omitempty"`
	Measure   string   `json:"measure,omitempty"`
	Title     string   `json:"title,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"` // nodelink: show values and depths

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-"`
	Refresh bool        `json:"-"` // skip cache reads

	validated bool
}

// Float returns a pointer to v, for the optional Options fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the loaded hierarchy (summed and annotated).
	Root *hierarchy.Node

	// InputHash is the content hash of the loaded tree.
	InputHash string

	// Layout is the computed sunburst geometry. It is also computed for
	// nodelink runs so callers can report arc counts.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	ArcCount   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok || style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateMeasure checks that a measurer name is valid.
func ValidateMeasure(measure string) error {
	if measure != MeasureApprox && measure != MeasureFont {
		return errors.New(errors.ErrCodeInvalidInput, "invalid measure: %q (must be approx or font)", measure)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: sunburst, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input fields.
func (o *Options) ValidateForLoad() error {
	o.setLogger()
	if o.Root != nil {
		return nil
	}
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if len(o.Input) > MaxInputSize {
		return errors.New(errors.ErrCodeInvalidInput, "input too large (%d bytes, max %d)", len(o.Input), MaxInputSize)
	}
	if o.InputFormat == "" {
		o.InputFormat = string(io.FormatJSON)
	}
	f, err := io.ParseFormat(o.InputFormat)
	if err != nil {
		return err
	}
	o.InputFormat = string(f)
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Width > MaxFrameSize || o.Height > MaxFrameSize {
		return errors.New(errors.ErrCodeInvalidInput, "frame %gx%g exceeds %g", o.Width, o.Height, MaxFrameSize)
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"padding", o.Padding}, {"min_sweep", o.MinSweep}, {"pad_angle", o.PadAngle}, {"start_angle", o.StartAngle}} {
		if f.v == nil {
			continue
		}
		if err := errors.ValidateFinite(f.name, *f.v); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Measure == "" {
		o.Measure = MeasureApprox
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateMeasure(o.Measure); err != nil {
		return err
	}
	if err := o.validateSizes(); err != nil {
		return err
	}
	if o.IsNodelink() && slices.Contains(o.Formats, FormatPDF) {
		return errors.New(errors.ErrCodeUnsupported, "nodelink charts cannot be rendered as pdf")
	}
	o.Formats = dedupe(o.Formats)
	return nil
}

// validateSizes bounds font size and scale. A zero Scale means the sink
// default.
func (o *Options) validateSizes() error {
	if err := errors.ValidateFinite("font_size", o.FontSize); err != nil {
		return err
	}
	if o.FontSize <= 0 || o.FontSize > MaxFontSize {
		return errors.New(errors.ErrCodeInvalidInput, "font_size %g out of range (0, %g]", o.FontSize, MaxFontSize)
	}
	if err := errors.ValidateFinite("scale", o.Scale); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range [0, %g]", o.Scale, MaxScale)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		scale := o.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		if side := max(o.Width, o.Height) * scale; side > MaxRasterSide {
			return errors.New(errors.ErrCodeInvalidInput, "png would be %g pixels wide, limit %g", side, MaxRasterSide)
		}
	}
	return nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LabelsEnabled reports whether labels are drawn (default true).
func (o *Options) LabelsEnabled() bool {
	return o.Labels == nil || *o.Labels
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:     VizTypeSunburst,
		Width:       o.Width,
		Height:      o.Height,
		Padding:     value(o.Padding, layout.DefaultPadding),
		MinSweep:    value(o.MinSweep, layout.DefaultMinSweep),
		PadAngle:    value(o.PadAngle, layout.DefaultPadAngle),
		StartAngle:  value(o.StartAngle, layout.DefaultStartAngle),
		SortByValue: o.SortByValue,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := o.LayoutKeyOpts()
	k.VizType = o.VizType
	return cache.ArtifactKeyOpts{
		Layout:    k,
		Format:    format,
		Style:     o.Style,
		Labels:    o.LabelsEnabled(),
		FontSize:  o.FontSize,
		Measure:   o.Measure,
		Title:     o.Title,
		EmbedFont: o.EmbedFont,
		Scale:     o.Scale,
		Detailed:  o.Detailed,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(goio.Discard, log.Options{})
	}
}

func value(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
