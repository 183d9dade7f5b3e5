// Package layout computes sunburst geometry from a weighted hierarchy.
//
// # Rings
//
// The chart is centered in the frame with an outer radius of
// min(width, height)/2 minus the padding. The radius is divided into
// MaxDepth+1 equal rings; a node at depth d (top-level children have depth 1)
// occupies the band [(d-1)*RingWidth, d*RingWidth]. The root itself is not
// drawn.
//
// # Angles
//
// Top-level children share a full turn starting at the start angle (12
// o'clock by default). Every node's span is split among its children in
// proportion to their summed values; a node whose children sum to zero gives
// them nothing. Arcs whose sweep does not exceed the minimum sweep are left
// out together with their subtrees.
//
// Angles use the pkg/label convention, so each [Arc.Segment] can be handed
// straight to the label placer:
//
//	l, _ := layout.Build(root, 800, 800)
//	results, err := l.Labels(label.NewPlacer(measurer, font))
//
// # Hit testing
//
// [Layout.HitTest] maps a point back to the arc under it by ring and angle,
// for interactive tooling.
package layout
