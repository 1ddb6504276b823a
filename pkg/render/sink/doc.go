// Package sink provides output format renderers for laid out trees.
//
// # Overview
//
// A "sink" turns a computed [layout.Layout] plus a [render.Nodes] payload into
// a final output format. Every sink goes through [render.Draw] or
// [render.Edges], so all formats agree on which edges exist: an edge is
// written only when both of its endpoints are occupied.
//
//   - SVG: standalone vector document ([RenderSVG])
//   - JSON: every slot with coordinates, round-trippable ([RenderJSON], [ReadJSON])
//   - DOT: Graphviz graph with pinned positions ([RenderDOT], [RenderDOTSVG])
//   - Canvas: terminal picture ([RenderCanvas])
//   - PDF / PNG: converted from SVG (requires rsvg-convert)
//
// # SVG Output
//
//	svg := sink.RenderSVG(l, nodes,
//	    sink.WithStyle(render.DefaultStyle()),
//	    sink.WithMargin(20),
//	)
//
// The viewBox is the layout's [layout.Layout.Bounds] padded by the margin and
// half the outline width, so unoccupied slots still take up space.
//
// # DOT Output
//
// Layout units are treated as points. [RenderDOT] writes positions in inches
// with the y axis flipped and a trailing "!" so neato keeps them fixed.
// [RenderDOTSVG] renders the result in-process through go-graphviz.
//
// # Canvas
//
// [Canvas] rasterizes onto a rune grid. [Canvas.String] returns plain text,
// [Canvas.Styled] colors node cells with lipgloss for terminal previews.
package sink
