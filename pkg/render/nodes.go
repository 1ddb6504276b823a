package render

import (
	"maps"
	"slices"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/heap"
)

// Node colors.
const (
	Red   = errors.ColorRed
	Black = errors.ColorBlack
)

// Node is the payload drawn at one occupied slot.
type Node struct {
	Color string `json:"color" bson:"color"`
	Text  string `json:"text" bson:"text"`
}

// IsRed reports whether the node is drawn with the red fill.
func (n Node) IsRed() bool { return n.Color == Red }

// Nodes maps heap indices to payloads. Indices without an entry are empty
// slots.
type Nodes map[int]Node

// Get returns the payload at k and whether the slot is occupied.
func (ns Nodes) Get(k int) (Node, bool) {
	n, ok := ns[k]
	return n, ok
}

// Has reports whether slot k is occupied.
func (ns Nodes) Has(k int) bool {
	_, ok := ns[k]
	return ok
}

// Indices returns the occupied indices in increasing order.
func (ns Nodes) Indices() []int {
	return slices.Sorted(maps.Keys(ns))
}

// Depth returns the smallest tree depth that contains every occupied index,
// or 0 for an empty payload.
func (ns Nodes) Depth() int {
	var d int
	for k := range ns {
		d = max(d, heap.Level(k))
	}
	return d
}

// Validate checks that every index fits a tree of depth d and every node has
// a recognized color and a drawable label. Colors are normalized in place
// ("r" becomes "red").
func (ns Nodes) Validate(d int) error {
	for _, k := range ns.Indices() {
		if err := errors.ValidateIndex(d, k); err != nil {
			return err
		}
		n := ns[k]
		c, ok := errors.NormalizeColor(n.Color)
		if !ok {
			return errors.New(errors.ErrCodeInvalidColor, "node %d: invalid color %q (must be 'red' or 'black')", k, n.Color)
		}
		if err := errors.ValidateLabel(n.Text); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLabel, err, "node %d", k)
		}
		if c != n.Color {
			n.Color = c
			ns[k] = n
		}
	}
	return nil
}
