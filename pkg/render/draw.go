package render

import (
	"iter"

	"github.com/matzehuels/rbdraw/pkg/heap"
	"github.com/matzehuels/rbdraw/pkg/layout"
)

// Surface is the drawing target. Implementations decide stroke widths, fonts
// and every other presentation detail; Draw only supplies geometry, the fill
// color and the label text.
type Surface interface {
	// Line draws an edge between two node centers.
	Line(a, b layout.Point)
	// Circle draws a filled node circle.
	Circle(c layout.Point, r float64, fill string)
	// Text draws a label centered on at.
	Text(at layout.Point, s string)
}

// Stats counts the primitives issued by Draw.
type Stats struct {
	Edges int
	Nodes int
}

// Option configures Draw.
type Option func(*drawer)

type drawer struct {
	style Style
}

// WithStyle sets the palette used to map node colors to fills.
func WithStyle(s Style) Option { return func(d *drawer) { d.style = s.WithDefaults() } }

// Draw issues the draw calls for a tree: every edge whose two endpoints are
// present in nodes, then a circle and label for every present node, both in
// index order.
func Draw(s Surface, l layout.Layout, nodes Nodes, opts ...Option) Stats {
	d := drawer{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&d)
	}

	var st Stats
	for parent, child := range Edges(l.Depth(), nodes) {
		s.Line(l.MustPoint(parent), l.MustPoint(child))
		st.Edges++
	}

	r := l.Radius()
	for k, p := range l.All() {
		n, ok := nodes.Get(k)
		if !ok {
			continue
		}
		s.Circle(p, r, d.style.Fill(n.Color))
		s.Text(p, n.Text)
		st.Nodes++
	}
	return st
}

// Edges yields the parent/child pairs of a depth-d tree whose endpoints are
// both occupied, parents in index order and the left child first.
func Edges(depth int, nodes Nodes) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		if depth < 2 {
			return
		}
		for k := 1; k <= heap.LevelEnd(depth-1); k++ {
			if !nodes.Has(k) {
				continue
			}
			for _, c := range [2]int{heap.Left(k), heap.Right(k)} {
				if nodes.Has(c) && !yield(k, c) {
					return
				}
			}
		}
	}
}

// DrawTree computes the layout for p and draws nodes onto s.
func DrawTree(s Surface, p layout.Params, nodes Nodes, opts ...Option) (Stats, error) {
	l, err := layout.Compute(p)
	if err != nil {
		return Stats{}, err
	}
	return Draw(s, l, nodes, opts...), nil
}
