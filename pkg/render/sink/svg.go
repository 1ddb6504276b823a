package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// DefaultMargin is the blank border added around the node extents.
const DefaultMargin = 10.0

// SVG is a render.Surface that writes SVG elements into a buffer.
type SVG struct {
	buf   bytes.Buffer
	style render.Style
}

// NewSVG returns an empty SVG surface using style for strokes and text.
func NewSVG(style render.Style) *SVG {
	return &SVG{style: style.WithDefaults()}
}

// Line implements render.Surface.
func (s *SVG) Line(a, b layout.Point) {
	fmt.Fprintf(&s.buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(a.X), num(a.Y), num(b.X), num(b.Y), s.style.EdgeColor, num(s.style.EdgeWidth))
}

// Circle implements render.Surface.
func (s *SVG) Circle(c layout.Point, r float64, fill string) {
	fmt.Fprintf(&s.buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(c.X), num(c.Y), num(r), fill, fill, num(s.style.OutlineWidth))
}

// Text implements render.Surface.
func (s *SVG) Text(at layout.Point, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(&s.buf, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" fill="%s" font-family="%s" font-size="%s">%s</text>`+"\n",
		num(at.X), num(at.Y), s.style.TextColor, s.style.FontFamily, num(s.style.FontSize), escape(text))
}

// Body returns the elements drawn so far, without the enclosing svg tag.
func (s *SVG) Body() []byte { return s.buf.Bytes() }

// Document wraps the drawn elements in an svg element whose viewBox is box.
func (s *SVG) Document(box layout.Rect) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(box.MinX), num(box.MinY), num(box.Width()), num(box.Height()), box.Width(), box.Height())
	out.Write(s.buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  render.Style
	margin float64
}

// WithStyle sets colors, stroke widths and font.
func WithStyle(s render.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithMargin sets the border around the tree (default DefaultMargin).
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// RenderSVG draws the tree described by l and nodes as a standalone SVG
// document. The viewBox covers every slot of the layout, occupied or not, so
// trees of equal shape render at equal size.
func RenderSVG(l layout.Layout, nodes render.Nodes, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	s := NewSVG(r.style)
	render.Draw(s, l, nodes, render.WithStyle(r.style))
	// Outlines are stroked centered on the circle edge.
	return s.Document(viewBox(l, r.margin+r.style.OutlineWidth/2))
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: render.DefaultStyle(), margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	r.style = r.style.WithDefaults()
	return r
}

func viewBox(l layout.Layout, margin float64) layout.Rect {
	if l.Len() == 0 {
		return layout.Rect{}.Pad(margin)
	}
	return l.Bounds().Pad(margin)
}

// num formats a coordinate compactly: integral values without a fraction,
// everything else with two decimals.
func num(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var _ render.Surface = (*SVG)(nil)
