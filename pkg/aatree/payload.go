package aatree

import (
	"fmt"

	"github.com/matzehuels/rbdraw/pkg/heap"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// Payload projects the tree onto heap indices (root 1, children 2k and
// 2k+1) for drawing, and returns the depth of the smallest perfect tree that
// holds it.
//
// A node is red when its level equals its parent's level, i.e. it hangs off
// a horizontal link; every other node, the root included, is black. label
// formats each node's text; nil uses fmt.Sprint of the key.
func (t *Tree[K, V]) Payload(label func(K, V) string) (render.Nodes, int) {
	if label == nil {
		label = func(k K, _ V) string { return fmt.Sprint(k) }
	}

	nodes := make(render.Nodes, t.size)
	var visit func(n *node[K, V], k, parentLevel int)
	visit = func(n *node[K, V], k, parentLevel int) {
		if n == nil {
			return
		}
		color := render.Black
		if n.level == parentLevel {
			color = render.Red
		}
		nodes[k] = render.Node{Color: color, Text: label(n.key, n.value)}
		visit(n.left, heap.Left(k), n.level)
		visit(n.right, heap.Right(k), n.level)
	}
	visit(t.root, 1, 0)

	return nodes, t.Height()
}
