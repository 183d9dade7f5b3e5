package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
)

// placeFlags holds the flags of the place command.
type placeFlags struct {
	seg      label.ArcSegment
	center   geom.Point
	degrees  bool
	text     string
	width    float64
	height   float64
	fontSize float64
	measure  string
	json     bool
}

// placement is the machine-readable output of place.
type placement struct {
	Text     string           `json:"text,omitempty"`
	Anchor   geom.Point       `json:"anchor"`
	HAlign   string           `json:"halign"`
	VAlign   string           `json:"valign"`
	Rotation float64          `json:"rotation"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Bounds   geom.Rect        `json:"bounds"`
	Midpoint geom.Point       `json:"midpoint"`
	Center   geom.Point       `json:"center"`
	Segment  label.ArcSegment `json:"segment"`
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var f placeFlags

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute the label placement for one arc segment",
		Long: `Compute where a horizontal label goes on one arc segment.

The label's bounding box is centered on the point at mid-angle and mid-radius.
Give either --text (measured with --measure and --font-size) or an explicit
--width and --height:

  sunburst place --start 0 --end 90 --degrees --inner 50 --outer 100 --text Java`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.place(cmd)
			if err != nil {
				return err
			}
			if f.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printPlacement(res)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&f.seg.StartAngle, "start", 0, "start angle (radians, or degrees with --degrees)")
	fs.Float64Var(&f.seg.EndAngle, "end", 0, "end angle")
	fs.Float64Var(&f.seg.InnerRadius, "inner", 0, "inner radius")
	fs.Float64Var(&f.seg.OuterRadius, "outer", 0, "outer radius")
	fs.Float64Var(&f.center.X, "cx", 0, "chart center x")
	fs.Float64Var(&f.center.Y, "cy", 0, "chart center y")
	fs.BoolVar(&f.degrees, "degrees", false, "read --start and --end as degrees")
	fs.StringVar(&f.text, "text", "", "label text to measure")
	fs.Float64Var(&f.width, "width", 0, "label width, instead of --text")
	fs.Float64Var(&f.height, "height", 0, "label height, instead of --text")
	fs.Float64Var(&f.fontSize, "font-size", pipeline.DefaultFontSize, "font size used to measure --text")
	fs.StringVar(&f.measure, "measure", pipeline.MeasureApprox, "text measurer: approx, font")
	fs.BoolVar(&f.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("outer")
	cmd.MarkFlagsMutuallyExclusive("text", "width")
	cmd.MarkFlagsMutuallyExclusive("text", "height")
	cmd.MarkFlagsRequiredTogether("width", "height")

	return cmd
}

// place resolves the label size and runs the placement.
func (f *placeFlags) place(cmd *cobra.Command) (placement, error) {
	seg := f.seg
	if f.degrees {
		seg.StartAngle *= math.Pi / 180
		seg.EndAngle *= math.Pi / 180
	}

	w, h := f.width, f.height
	if f.text != "" {
		if err := errors.ValidateLabel(f.text); err != nil {
			return placement{}, err
		}
		if err := pipeline.ValidateMeasure(f.measure); err != nil {
			return placement{}, err
		}
		m, err := pipeline.Measurer(f.measure)
		if err != nil {
			return placement{}, err
		}
		w, h = m.Measure(f.text, label.FontRef{Size: f.fontSize})
	} else if !cmd.Flags().Changed("width") {
		return placement{}, errors.New(errors.ErrCodeInvalidInput, "either --text or --width/--height is required")
	}
	if err := validateSize(w, h); err != nil {
		return placement{}, err
	}

	pl, err := label.Place(seg, f.center, w, h)
	if err != nil {
		return placement{}, err
	}
	return placement{
		Text:     f.text,
		Anchor:   pl.Anchor,
		HAlign:   pl.HAlign.String(),
		VAlign:   pl.VAlign.String(),
		Rotation: pl.Rotation(),
		Width:    w,
		Height:   h,
		Bounds:   pl.Bounds(w, h),
		Midpoint: label.Midpoint(seg, f.center),
		Center:   f.center,
		Segment:  seg,
	}, nil
}

func validateSize(w, h float64) error {
	if err := errors.ValidateFinite("label width", w); err != nil {
		return err
	}
	if err := errors.ValidateFinite("label height", h); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "label size must not be negative, got %gx%g", w, h)
	}
	return nil
}

func printPlacement(p placement) {
	if p.Text != "" {
		printSuccess("Placed %q", p.Text)
	} else {
		printSuccess("Placed %gx%g label", p.Width, p.Height)
	}
	printKeyValue("anchor", fmt.Sprintf("%.2f, %.2f", p.Anchor.X, p.Anchor.Y))
	printKeyValue("align", p.HAlign+" / "+p.VAlign)
	printKeyValue("size", fmt.Sprintf("%.2f x %.2f", p.Width, p.Height))
	printKeyValue("midpoint", fmt.Sprintf("%.2f, %.2f", p.Midpoint.X, p.Midpoint.Y))
	printKeyValue("sweep", fmt.Sprintf("%.1f°", p.Segment.Sweep()*180/math.Pi))
	if !styles.Fits(p.Segment, p.Center, p.Bounds) {
		printWarning("label overflows its arc")
	}
}
