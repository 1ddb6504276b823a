package render

import "github.com/matzehuels/rbdraw/pkg/layout"

// Op identifies a recorded draw call.
type Op int

// Recorded operations.
const (
	OpLine Op = iota
	OpCircle
	OpText
)

// Call is one recorded draw call. Only the fields relevant to Op are set.
type Call struct {
	Op     Op
	From   layout.Point // line start, circle center, text anchor
	To     layout.Point // line end
	Radius float64
	Fill   string
	Text   string
}

// Recorder is a Surface that remembers every call in order. It is useful
// for tests and for replaying a drawing onto several surfaces.
type Recorder struct {
	Calls []Call
}

// Line implements Surface.
func (r *Recorder) Line(a, b layout.Point) {
	r.Calls = append(r.Calls, Call{Op: OpLine, From: a, To: b})
}

// Circle implements Surface.
func (r *Recorder) Circle(c layout.Point, radius float64, fill string) {
	r.Calls = append(r.Calls, Call{Op: OpCircle, From: c, Radius: radius, Fill: fill})
}

// Text implements Surface.
func (r *Recorder) Text(at layout.Point, s string) {
	r.Calls = append(r.Calls, Call{Op: OpText, From: at, Text: s})
}

// Count returns how many calls of kind op were recorded.
func (r *Recorder) Count(op Op) int {
	var n int
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Replay issues the recorded calls onto s in their original order.
func (r *Recorder) Replay(s Surface) {
	for _, c := range r.Calls {
		switch c.Op {
		case OpLine:
			s.Line(c.From, c.To)
		case OpCircle:
			s.Circle(c.From, c.Radius, c.Fill)
		case OpText:
			s.Text(c.From, c.Text)
		}
	}
}

var _ Surface = (*Recorder)(nil)
