package layout

import (
	"iter"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/heap"
)

// MaxDepth bounds the depth accepted by Compute. A depth-20 tree already has
// over a million slots.
const MaxDepth = 20

// Params describes the tree shape and spacing policy to lay out.
type Params struct {
	Root        Point       // caller-supplied center of node 1
	Depth       int         // number of levels, root included
	Radius      float64     // node circle radius
	Spacing     SpacingFunc // extra gap between adjacent n-sibling leaves
	LevelHeight float64     // vertical distance between levels; may be negative
}

// Validate checks the caller contract: depth in [1, MaxDepth], a finite
// non-negative radius, a finite root and level height, and a spacing
// function.
func (p Params) Validate() error {
	if err := errors.ValidateDepth(p.Depth, MaxDepth); err != nil {
		return err
	}
	if err := errors.ValidateRadius(p.Radius); err != nil {
		return err
	}
	if err := validateGeometry(p.Root, p.LevelHeight); err != nil {
		return err
	}
	if p.Spacing == nil && p.Depth > 1 {
		return errors.New(errors.ErrCodeInvalidSpacing, "spacing function is required for depth %d", p.Depth)
	}
	return nil
}

func validateGeometry(root Point, levelHeight float64) error {
	if err := errors.ValidateCoordinate("root x", root.X); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("root y", root.Y); err != nil {
		return err
	}
	return errors.ValidateCoordinate("level height", levelHeight)
}

// Layout maps every node index of a perfect tree to its center. It is
// immutable once computed.
type Layout struct {
	depth       int
	radius      float64
	levelHeight float64
	points      []Point // points[0] is unused
}

// Compute lays out a perfect binary tree of p.Depth levels.
//
// The spacing function is evaluated once per degree in [1, Depth-1]; a
// negative, NaN or infinite gap is reported as INVALID_SPACING.
func Compute(p Params) (Layout, error) {
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}

	gaps, err := gapTable(p.Spacing, p.Depth)
	if err != nil {
		return Layout{}, err
	}

	d, r := p.Depth, p.Radius
	points := make([]Point, heap.Size(d)+1)
	points[1] = p.Root

	if d > 1 {
		placeLeaves(points, p, gaps)
		placeInternal(points, p)
	}

	return Layout{depth: d, radius: r, levelHeight: p.LevelHeight, points: points}, nil
}

// ComputeAt is Compute with positional arguments.
func ComputeAt(rootX, rootY float64, depth int, radius float64, f SpacingFunc, levelHeight float64) (Layout, error) {
	return Compute(Params{
		Root:        Point{X: rootX, Y: rootY},
		Depth:       depth,
		Radius:      radius,
		Spacing:     f,
		LevelHeight: levelHeight,
	})
}

// gapTable evaluates f for every degree a depth-d tree can produce.
// gaps[n] = f(n) for n in [1, d-1]; gaps[0] is unused.
func gapTable(f SpacingFunc, d int) ([]float64, error) {
	gaps := make([]float64, d)
	for n := 1; n < d; n++ {
		gaps[n] = f(n)
		if err := errors.ValidateGap(n, gaps[n]); err != nil {
			return nil, err
		}
	}
	return gaps, nil
}

func placeLeaves(points []Point, p Params, gaps []float64) {
	d, r := p.Depth, p.Radius
	y := p.Root.Y + p.LevelHeight*float64(d-1)

	first := heap.LevelStart(d)
	w := leftSubtreeWidth(d, r, gaps)
	points[first] = Point{X: p.Root.X - w - (gaps[d-1]/2 + r), Y: y}

	for k := first + 1; k <= heap.LevelEnd(d); k++ {
		points[k] = Point{X: points[k-1].X + gaps[heap.SiblingDegree(k)] + 2*r, Y: y}
	}
}

// placeInternal fills levels d-1 up to 2. Children are always placed before
// their parent.
func placeInternal(points []Point, p Params) {
	for l := p.Depth - 1; l > 1; l-- {
		y := p.Root.Y + p.LevelHeight*float64(l-1)
		for k := heap.LevelStart(l); k <= heap.LevelEnd(l); k++ {
			points[k] = Point{X: (points[heap.Left(k)].X + points[heap.Right(k)].X) / 2, Y: y}
		}
	}
}

// Restore rebuilds a layout from previously computed points, for example
// after a JSON round trip. points[i] is the center of node i+1.
func Restore(depth int, radius, levelHeight float64, points []Point) (Layout, error) {
	if err := errors.ValidateDepth(depth, MaxDepth); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateRadius(radius); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateCoordinate("level height", levelHeight); err != nil {
		return Layout{}, err
	}
	if len(points) != heap.Size(depth) {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"depth %d needs %d points, got %d", depth, heap.Size(depth), len(points))
	}
	for i, pt := range points {
		if err := validateGeometry(pt, levelHeight); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidCoord, err, "node %d", i+1)
		}
	}
	pts := make([]Point, len(points)+1)
	copy(pts[1:], points)
	return Layout{depth: depth, radius: radius, levelHeight: levelHeight, points: pts}, nil
}

// Depth returns the number of levels.
func (l Layout) Depth() int { return l.depth }

// Radius returns the node radius the layout was computed with.
func (l Layout) Radius() float64 { return l.radius }

// LevelHeight returns the vertical distance between levels.
func (l Layout) LevelHeight() float64 { return l.levelHeight }

// Len returns the number of laid out nodes, 2^depth-1.
func (l Layout) Len() int { return max(len(l.points)-1, 0) }

// Root returns the center of node 1.
func (l Layout) Root() Point { return l.MustPoint(1) }

// Point returns the center of node k, or false if k is not a slot of the
// tree.
func (l Layout) Point(k int) (Point, bool) {
	if k < 1 || k >= len(l.points) {
		return Point{}, false
	}
	return l.points[k], true
}

// MustPoint is like Point but panics if k is out of range.
func (l Layout) MustPoint(k int) Point {
	p, ok := l.Point(k)
	if !ok {
		panic(errors.New(errors.ErrCodeInvalidIndex, "node index %d outside tree of depth %d", k, l.depth))
	}
	return p
}

// All iterates over every node in index order.
func (l Layout) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for k := 1; k < len(l.points); k++ {
			if !yield(k, l.points[k]) {
				return
			}
		}
	}
}

// Points returns a copy of all centers; element i is node i+1.
func (l Layout) Points() []Point {
	if len(l.points) == 0 {
		return nil
	}
	return append([]Point(nil), l.points[1:]...)
}

// Level returns the centers of level lvl from left to right.
func (l Layout) Level(lvl int) []Point {
	if lvl < 1 || lvl > l.depth {
		return nil
	}
	return append([]Point(nil), l.points[heap.LevelStart(lvl):heap.LevelEnd(lvl)+1]...)
}

// Leaves returns the centers of the deepest level from left to right.
func (l Layout) Leaves() []Point { return l.Level(l.depth) }

// Bounds returns the smallest box containing every node circle.
func (l Layout) Bounds() Rect {
	b := emptyRect()
	for _, p := range l.All() {
		b = b.Extend(p, l.radius)
	}
	return b
}
