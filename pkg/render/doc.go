// Package render provides visualization rendering for tiling layouts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms layouts
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Floor-plan rendering of pane rectangles (in [plan] subpackage)
//   - Adjacency graph diagrams (in [adjacency] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are used by both
// the plan and adjacency renderers.
//
//	svg := plan.RenderSVG(l, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Floor Plans
//
// The [plan] subpackage draws the layout itself: every pane as a
// rectangle at its percentage bounds, scaled to a pixel frame, with
// optional labels and edge highlights.
//
// # Adjacency Diagrams
//
// The [adjacency] subpackage renders the adjacency graph as a node-link
// diagram using Graphviz. Panes appear as boxes, shared edges as
// connections between them.
//
//	dot := adjacency.ToDOT(report, adjacency.Options{})
//	svg, err := adjacency.RenderSVG(dot)
//
// [plan]: github.com/matzehuels/tilegrid/pkg/render/plan
// [adjacency]: github.com/matzehuels/tilegrid/pkg/render/adjacency
package render
