package sink

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/heap"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// JSONLayout is the serialized form of a layout and its payload.
type JSONLayout struct {
	Depth       int          `json:"depth"`
	Radius      float64      `json:"radius"`
	LevelHeight float64      `json:"level_height"`
	Root        layout.Point `json:"root"`
	Bounds      layout.Rect  `json:"bounds"`
	Nodes       []JSONNode   `json:"nodes"`
}

// JSONNode is one slot of the layout. Color and Text are set only for
// occupied slots.
type JSONNode struct {
	Index int     `json:"index"`
	Level int     `json:"level"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Export converts a layout and payload into the serialized form.
func Export(l layout.Layout, nodes render.Nodes) JSONLayout {
	out := JSONLayout{
		Depth:       l.Depth(),
		Radius:      l.Radius(),
		LevelHeight: l.LevelHeight(),
		Nodes:       make([]JSONNode, 0, l.Len()),
	}
	if l.Len() > 0 {
		out.Root = l.Root()
		out.Bounds = l.Bounds()
	}
	for k, p := range l.All() {
		jn := JSONNode{Index: k, Level: heap.Level(k), X: p.X, Y: p.Y}
		if n, ok := nodes.Get(k); ok {
			jn.Color = n.Color
			jn.Text = n.Text
		}
		out.Nodes = append(out.Nodes, jn)
	}
	return out
}

// RenderJSON exports every slot of the layout with its coordinates, plus the
// color and label of occupied slots, as a pretty-printed JSON document.
func RenderJSON(l layout.Layout, nodes render.Nodes) ([]byte, error) {
	return json.MarshalIndent(Export(l, nodes), "", "  ")
}

// ReadJSON parses a document produced by RenderJSON back into a layout and
// payload. The document must list every slot of its depth exactly once.
func ReadJSON(data []byte) (layout.Layout, render.Nodes, error) {
	var in JSONLayout
	if err := json.Unmarshal(data, &in); err != nil {
		return layout.Layout{}, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout JSON")
	}
	return in.Import()
}

// Import rebuilds the layout and payload from the serialized form.
func (j JSONLayout) Import() (layout.Layout, render.Nodes, error) {
	if err := errors.ValidateDepth(j.Depth, layout.MaxDepth); err != nil {
		return layout.Layout{}, nil, err
	}

	entries := slices.Clone(j.Nodes)
	slices.SortFunc(entries, func(a, b JSONNode) int { return cmp.Compare(a.Index, b.Index) })

	size := heap.Size(j.Depth)
	if len(entries) != size {
		return layout.Layout{}, nil, errors.New(errors.ErrCodeInvalidFormat,
			"depth %d needs %d nodes, got %d", j.Depth, size, len(entries))
	}

	points := make([]layout.Point, size)
	nodes := render.Nodes{}
	for i, e := range entries {
		if e.Index != i+1 {
			return layout.Layout{}, nil, errors.New(errors.ErrCodeInvalidFormat,
				"missing or duplicate node index near %d", i+1)
		}
		points[i] = layout.Point{X: e.X, Y: e.Y}
		if e.Color != "" {
			nodes[e.Index] = render.Node{Color: e.Color, Text: e.Text}
		}
	}
	if err := nodes.Validate(j.Depth); err != nil {
		return layout.Layout{}, nil, err
	}

	l, err := layout.Restore(j.Depth, j.Radius, j.LevelHeight, points)
	if err != nil {
		return layout.Layout{}, nil, err
	}
	return l, nodes, nil
}
