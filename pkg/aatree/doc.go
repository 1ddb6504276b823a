// Package aatree implements AA trees, the red-black tree variant in which
// only right children may be red.
//
// Each node carries a level. Leaves are at level 1, a left child is always
// one level below its parent and a right child is at most one level below.
// A right child on the same level as its parent is a horizontal link, which
// is the AA equivalent of a red node. Insert restores these rules with two
// rotations, skew and split, applied on the way back up.
//
// [Tree.Payload] turns a tree into a drawable payload for the render
// package, coloring horizontal links red:
//
//	t := aatree.New[int, struct{}]()
//	for _, k := range []int{7, 8, 9, 6} {
//	    t.Insert(k, struct{}{})
//	}
//	nodes, depth := t.Payload(nil)
//	l, err := layout.Compute(layout.Params{Depth: depth, Radius: 20, LevelHeight: 60,
//	    Spacing: layout.Constant(10).Gap})
//	svg := sink.RenderSVG(l, nodes)
//
// Deletion is not supported.
package aatree
