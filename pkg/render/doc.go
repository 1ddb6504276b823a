// Package render draws a laid out tree onto a drawing surface.
//
// # Overview
//
// Rendering is a pure consumer of a [layout.Layout] and a sparse node
// payload ([Nodes]). It performs no layout computation of its own:
//
//	l, err := layout.Compute(params)
//	stats := render.Draw(surface, l, nodes)
//
// or in one step:
//
//	err := render.DrawTree(surface, params, nodes)
//
// # Sparse Payloads
//
// Every slot of the perfect tree has a coordinate, but only indices present
// in [Nodes] are drawn. An edge between k and one of its children is drawn
// if and only if both endpoints are present, so a missing index silently
// removes itself and every edge touching it. Missing entries are never an
// error.
//
// # Draw Order
//
// All edges are drawn first, then every present node as a filled circle
// followed by its label. Later draws paint over earlier ones, so circles
// cover the ends of their edges.
//
// # Surfaces
//
// [Surface] is the only dependency on an output format. Concrete surfaces
// live in the [sink] subpackage (SVG, terminal canvas) together with
// exporters for JSON and Graphviz DOT. [ToPDF] and [ToPNG] convert SVG output
// with the external rsvg-convert tool.
//
// [sink]: github.com/matzehuels/rbdraw/pkg/render/sink
package render
