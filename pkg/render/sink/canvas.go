package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

type cell struct {
	r    rune
	fill string // non-empty for cells that belong to a node
}

// Canvas is a render.Surface that rasterizes a tree onto a grid of terminal
// cells. Edges become runs of '-', '|', '/' and '\', nodes become their label
// (or 'o' when unlabeled) centered on the node's cell.
type Canvas struct {
	origin layout.Point
	sx, sy float64 // world units per column and per row
	cols   int
	rows   int
	cells  []cell
	style  render.Style
	fill   string
}

// NewCanvas returns a blank canvas covering bounds, cols cells wide. Rows
// follow from the bounds' aspect ratio.
func NewCanvas(bounds layout.Rect, cols int, style render.Style) *Canvas {
	cols = max(cols, 1)
	sx := 1.0
	if cols > 1 && bounds.Width() > 0 {
		sx = bounds.Width() / float64(cols-1)
	}
	sy := sx * cellAspect
	rows := int(math.Floor(bounds.Height()/sy)) + 1

	return &Canvas{
		origin: layout.Point{X: bounds.MinX, Y: bounds.MinY},
		sx:     sx,
		sy:     sy,
		cols:   cols,
		rows:   max(rows, 1),
		cells:  make([]cell, cols*max(rows, 1)),
		style:  style.WithDefaults(),
	}
}

// RenderCanvas draws the tree onto a canvas cols cells wide.
func RenderCanvas(l layout.Layout, nodes render.Nodes, cols int, style render.Style) *Canvas {
	bounds := layout.Rect{}
	if l.Len() > 0 {
		bounds = l.Bounds()
	}
	c := NewCanvas(bounds, cols, style)
	render.Draw(c, l, nodes, render.WithStyle(c.style))
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// At returns the rune at a cell, or a space outside the canvas.
func (c *Canvas) At(col, row int) rune {
	if !c.inside(col, row) {
		return ' '
	}
	if r := c.cells[row*c.cols+col].r; r != 0 {
		return r
	}
	return ' '
}

// Line implements render.Surface.
func (c *Canvas) Line(a, b layout.Point) {
	c0, r0 := c.cell(a)
	c1, r1 := c.cell(b)
	dc, dr := c1-c0, r1-r0

	var glyph rune
	switch {
	case dc == 0:
		glyph = '|'
	case dr == 0:
		glyph = '-'
	case (dc > 0) == (dr > 0):
		glyph = '\\'
	default:
		glyph = '/'
	}

	steps := max(abs(dc), abs(dr))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := c0 + int(math.Round(t*float64(dc)))
		row := r0 + int(math.Round(t*float64(dr)))
		c.set(col, row, glyph, "")
	}
}

// Circle implements render.Surface. It marks the center with 'o' and
// remembers the fill so the following label is painted the same way.
func (c *Canvas) Circle(center layout.Point, _ float64, fill string) {
	c.fill = fill
	col, row := c.cell(center)
	c.set(col, row, 'o', fill)
}

// Text implements render.Surface.
func (c *Canvas) Text(at layout.Point, s string) {
	if s == "" {
		return
	}
	col, row := c.cell(at)
	runes := []rune(s)
	start := col - len(runes)/2
	for i, r := range runes {
		c.set(start+i, row, r, c.fill)
	}
}

// String returns the picture with trailing blanks trimmed from every row.
func (c *Canvas) String() string {
	return c.render(func(r rune, _ string) string { return string(r) })
}

// Styled returns the picture with node cells colored by their fill.
func (c *Canvas) Styled() string {
	styles := map[string]lipgloss.Style{}
	return c.render(func(r rune, fill string) string {
		if fill == "" {
			return string(r)
		}
		st, ok := styles[fill]
		if !ok {
			st = lipgloss.NewStyle().
				Background(lipgloss.Color(fill)).
				Foreground(lipgloss.Color(c.style.TextColor)).
				Bold(true)
			styles[fill] = st
		}
		return st.Render(string(r))
	})
}

func (c *Canvas) render(paint func(rune, string) string) string {
	lines := make([]string, c.rows)
	for row := range c.rows {
		last := -1
		for col := range c.cols {
			if c.cells[row*c.cols+col].r != 0 {
				last = col
			}
		}
		var sb strings.Builder
		for col := 0; col <= last; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.r == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(paint(cl.r, cl.fill))
		}
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) cell(p layout.Point) (col, row int) {
	col = int(math.Round((p.X - c.origin.X) / c.sx))
	row = int(math.Round((p.Y - c.origin.Y) / c.sy))
	return col, row
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *Canvas) set(col, row int, r rune, fill string) {
	if !c.inside(col, row) {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, fill: fill}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ render.Surface = (*Canvas)(nil)
