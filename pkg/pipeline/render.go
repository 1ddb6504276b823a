package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

// RenderLayout draws nodes onto l in every requested format. Options must
// already be validated.
func RenderLayout(ctx context.Context, l layout.Layout, nodes render.Nodes, opts Options) (map[string][]byte, error) {
	svgOpts := []sink.SVGOption{sink.WithStyle(opts.Style), sink.WithMargin(opts.Margin)}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, nodes, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, nodes, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, nodes, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, nodes)
		case FormatDOT:
			data = []byte(sink.RenderDOT(l, nodes, sink.WithDOTStyle(opts.Style)))
		case FormatGraphviz:
			data, err = sink.RenderDOTSVG(ctx, sink.RenderDOT(l, nodes, sink.WithDOTStyle(opts.Style)))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		if opts.Logger != nil {
			opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// countEdges returns the number of edges Draw issues for nodes.
func countEdges(depth int, nodes render.Nodes) int {
	var n int
	for range render.Edges(depth, nodes) {
		n++
	}
	return n
}
