// Package styles defines visual styles for sunburst rendering.
//
// # Overview
//
// A [Style] turns wedges and labels into SVG elements. Two styles ship with
// the package:
//
//   - [Simple]: flat palette fills with white separators
//   - [Gradient]: radial gradients per wedge, lighter toward the center
//
// Both draw labels horizontally, centered on the box computed by pkg/label.
//
// # Colors
//
// Top-level nodes take consecutive [Palette] entries; descendants inherit
// their ancestor's slot and darken by 15% per ring ([ColorFor]).
//
// # Label Fitting
//
// [Fits] checks a label box against the annular sector it belongs to, and
// [TruncateLabel] shortens a label with a ".." suffix until it fits. Sinks
// skip labels that do not fit at all.
package styles
