package sink

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// pointsPerInch converts layout units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// DOTOption configures RenderDOT.
type DOTOption func(*dotRenderer)

type dotRenderer struct {
	style render.Style
}

// WithDOTStyle sets the palette and font written into the DOT attributes.
func WithDOTStyle(s render.Style) DOTOption { return func(r *dotRenderer) { r.style = s } }

// RenderDOT writes the tree as an undirected Graphviz graph with every node
// pinned at its layout position. Positions are in inches with y flipped, since
// Graphviz y grows upward. Only occupied slots become nodes and only edges
// between two occupied slots are written.
func RenderDOT(l layout.Layout, nodes render.Nodes, opts ...DOTOption) string {
	r := dotRenderer{style: render.DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}
	st := r.style.WithDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, penwidth=%s, fontname=%q, fontsize=%s, fontcolor=%q];\n",
		inches(2*l.Radius()), num(st.OutlineWidth), st.FontFamily, num(st.FontSize), st.TextColor)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=%s];\n", st.EdgeColor, num(st.EdgeWidth))
	buf.WriteString("\n")

	for _, k := range nodes.Indices() {
		p, ok := l.Point(k)
		if !ok {
			continue
		}
		n := nodes[k]
		fill := st.Fill(n.Color)
		fmt.Fprintf(&buf, "  n%d [pos=\"%s,%s!\", fillcolor=%q, color=%q, label=%s];\n",
			k, inches(p.X), inches(-p.Y), fill, fill, strconv.Quote(n.Text))
	}

	buf.WriteString("\n")
	for parent, child := range render.Edges(l.Depth(), nodes) {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", parent, child)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT document to SVG with the neato engine, which
// honors the pinned positions written by RenderDOT.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.SetLayout(graphviz.NEATO).Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return buf.Bytes(), nil
}

func inches(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v/pointsPerInch, 'f', 4, 64)
}
