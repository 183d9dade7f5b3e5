// Package label places horizontal text labels on the wedges of radial charts.
//
// # Overview
//
// Rotating individual glyphs along an arc needs per-glyph transforms that a
// plain text-drawing primitive does not offer. This package takes the other
// route: every label stays horizontal and is centered on its wedge at the
// wedge's mid-angle and mid-radius. The arithmetic is small:
//
//	midAngle  = (start + end) / 2
//	midRadius = (inner + outer) / 2
//	raw       = center + midRadius * (cos midAngle, sin midAngle)
//	anchor    = raw - (width/2, height/2)
//
// [Place] returns the anchor in top-left form (AlignLeft, AlignTop).
// [Placement.Centered] converts it for primitives that take alignment flags;
// both describe the same bounding box.
//
// # Angles
//
// Angles are radians with 0 pointing along +x and growing toward +y. On a
// y-down screen that is clockwise. The sunburst layout offsets its spans by
// -pi/2 so charts start at 12 o'clock; Place itself applies no offset.
//
// # Collaborators
//
// Text measurement is external: a [Measurer] reports the pixel size of a
// string in a [FontRef]. [Placer] binds a Measurer and places whole batches.
// Drawing is never performed here.
//
// # Errors
//
// Segments with InnerRadius > OuterRadius or StartAngle > EndAngle (or a
// negative or non-finite component) fail with an INVALID_SEGMENT error that
// matches [ErrInvalidSegment] under errors.Is.
package label
