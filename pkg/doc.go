// Package pkg provides the core libraries for sunburst chart rendering.
//
// # Overview
//
// Sunburst turns weighted hierarchies into radial charts: every node becomes
// an annular sector whose sweep is proportional to its value, and every
// sector carries a horizontal label anchored at its midpoint. The pkg
// directory is organized into three areas:
//
//  1. Domain logic (hierarchy, geometry, label placement, layout, rendering)
//  2. Infrastructure (caching, observability, errors)
//  3. Orchestration and transport (pipeline, server)
//
// # Architecture
//
// The typical data flow:
//
//	JSON / TOML / DSL input
//	         ↓
//	    [io] and [dsl] packages (parse into a hierarchy)
//	         ↓
//	    [hierarchy] package (weighted tree + validation)
//	         ↓
//	    [sunburst/layout] package (one arc per node)
//	         ↓
//	    [label] package (anchor every label on its arc)
//	         ↓
//	    [sunburst/sink] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
// Place a single label:
//
//	import "github.com/matzehuels/sunburst/pkg/label"
//
//	seg := label.ArcSegment{StartAngle: 0, EndAngle: math.Pi / 2, InnerRadius: 50, OuterRadius: 100}
//	p, err := label.Place(seg, geom.Point{}, 40, 12)
//	// p.Anchor is the top-left corner of the 40×12 label box.
//
// Render a whole chart:
//
//	root, _ := io.Import("langs.json")
//	l, _ := layout.Build(root, 800, 800)
//	svg := sink.RenderSVG(l, sink.WithStyleName("gradient"))
//
// # Main Packages
//
// [label] - Horizontal label placement for annular sectors. The core
// operation, [label.Place], maps an arc segment and a text box to a
// top-left anchor so the box is centered on the arc's midpoint.
//
// [geom] - Points and rectangles shared by layout, labels and sinks.
//
// [shape] - Outline commands for annular sectors, consumed by the SVG and
// canvas sinks.
//
// [hierarchy] - The weighted tree a chart is built from, with value
// aggregation and validation.
//
// [sunburst/layout] - Partitions the full circle among a hierarchy's nodes,
// one ring per depth.
//
// [sunburst/styles] - Palettes and wedge/text drawing for the sinks.
//
// [sunburst/sink] - Output formats: SVG, PNG and PDF via tdewolff/canvas,
// and JSON with every arc's label placement.
//
// [nodelink] - Alternative Graphviz rendering of the same hierarchy.
//
// [textmeasure] and [fonts] - Label measurement, either approximate or from
// the embedded font's metrics.
//
// [io] and [dsl] - Hierarchy input formats.
//
// [cache] - Layout and artifact cache with memory, file, Redis and MongoDB
// backends.
//
// [pipeline] - Load, layout and render orchestration shared by the CLI and
// the HTTP server.
//
// [server] - chi-based HTTP API for placement and rendering.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information stamped at build time.
package pkg
