package pipeline

import (
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the sunburst geometry for root. root is not
// modified.
func GenerateLayout(root *hierarchy.Node, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	return layout.Build(root, opts.Width, opts.Height, layoutOptions(opts)...)
}

func layoutOptions(opts Options) []layout.Option {
	var lo []layout.Option
	if opts.Padding != nil {
		lo = append(lo, layout.WithPadding(*opts.Padding))
	}
	if opts.MinSweep != nil {
		lo = append(lo, layout.WithMinSweep(*opts.MinSweep))
	}
	if opts.PadAngle != nil {
		lo = append(lo, layout.WithPadAngle(*opts.PadAngle))
	}
	if opts.StartAngle != nil {
		lo = append(lo, layout.WithStartAngle(*opts.StartAngle))
	}
	if opts.SortByValue {
		lo = append(lo, layout.WithSortByValue())
	}
	return lo
}
