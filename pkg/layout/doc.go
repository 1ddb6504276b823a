// Package layout computes center coordinates for every node of a perfect
// binary tree.
//
// # Overview
//
// A tree of depth d has 2^d-1 slots in heap order (see package heap). The
// caller supplies the root coordinate, the node radius r, the vertical
// distance v between levels and a spacing function f. f(n) is the extra
// horizontal gap between two adjacent leaves that are n-siblings, that is,
// whose lowest common ancestor is n levels up. Leaves that only share a
// distant ancestor can thus be pushed further apart than leaves that share a
// parent, which keeps wide red-black and AA trees readable.
//
// # Algorithm
//
// The computation has two passes over a flat slice indexed by node:
//
//  1. Leaves. The leftmost leaf is placed [LeftSubtreeWidth] plus half of the
//     widest gap to the left of the root. Every following leaf k sits
//     f(SiblingDegree(k)) + 2r to the right of leaf k-1, so neighbouring
//     circles never overlap.
//  2. Internal nodes. Levels d-1 up to 2 are filled bottom-up; each node is
//     centered between its two children.
//
// The root keeps the caller's coordinate. Because the leaf sequence is
// mirror-symmetric, the root also ends up centered between its children.
//
// # Usage
//
//	l, err := layout.Compute(layout.Params{
//	    Root:        layout.Point{X: 400, Y: 40},
//	    Depth:       4,
//	    Radius:      15,
//	    LevelHeight: 60,
//	    Spacing:     layout.Geometric(8, 2).Gap,
//	})
//	if err != nil {
//	    return err
//	}
//	p, _ := l.Point(5)
//
// A [Layout] is immutable; compute a new one for different parameters.
//
// # Spacing
//
// [Spacing] values name a spacing policy so it can be configured as text
// ("constant:20", "linear:10,5", "geometric:8,2", "table:4,12,30") and used as
// a cache key. See [ParseSpacing].
package layout
