package aatree

import (
	"cmp"
	"iter"
)

type node[K cmp.Ordered, V any] struct {
	key         K
	value       V
	left, right *node[K, V]
	level       int
}

// Tree is an AA tree: a binary search tree balanced by a level on every
// node. The zero value is an empty tree ready to use. A Tree is not safe for
// concurrent mutation.
type Tree[K cmp.Ordered, V any] struct {
	root *node[K, V]
	size int
}

// New returns an empty tree.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// Insert stores value under key. If the key was already present its value is
// replaced and the previous value is returned with replaced set.
func (t *Tree[K, V]) Insert(key K, value V) (old V, replaced bool) {
	t.root, old, replaced = insert(t.root, key, value)
	if !replaced {
		t.size++
	}
	return old, replaced
}

func insert[K cmp.Ordered, V any](n *node[K, V], key K, value V) (*node[K, V], V, bool) {
	var old V
	if n == nil {
		return &node[K, V]{key: key, value: value, level: 1}, old, false
	}

	var replaced bool
	switch c := cmp.Compare(key, n.key); {
	case c == 0:
		old, n.value = n.value, value
		return n, old, true
	case c < 0:
		n.left, old, replaced = insert(n.left, key, value)
	default:
		n.right, old, replaced = insert(n.right, key, value)
	}

	return split(skew(n)), old, replaced
}

// skew removes a horizontal left link by rotating right.
//
//	    a      b
//	   /        \
//	  b    =>    a
//	   \        /
//	    c      c
func skew[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	if n == nil || n.left == nil || n.left.level != n.level {
		return n
	}
	l := n.left
	n.left = l.right
	l.right = n
	return l
}

// split removes two consecutive horizontal right links by rotating left and
// promoting the middle node.
//
//	  a            b
//	   \          / \
//	    b    =>  a   c
//	   / \        \
//	  d   c        d
func split[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	if n == nil || n.right == nil || n.right.right == nil || n.right.right.level != n.level {
		return n
	}
	r := n.right
	n.right = r.left
	r.left = n
	r.level++
	return r
}

// Find returns the value stored under key.
func (t *Tree[K, V]) Find(key K) (V, bool) {
	for n := t.root; n != nil; {
		switch c := cmp.Compare(key, n.key); {
		case c == 0:
			return n.value, true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Find(key)
	return ok
}

// Len returns the number of keys.
func (t *Tree[K, V]) Len() int { return t.size }

// Height returns the number of nodes on the longest root-to-leaf path, 0 for
// an empty tree.
func (t *Tree[K, V]) Height() int { return height(t.root) }

func height[K cmp.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Level returns the AA level of the node holding key.
func (t *Tree[K, V]) Level(key K) (int, bool) {
	for n := t.root; n != nil; {
		switch c := cmp.Compare(key, n.key); {
		case c == 0:
			return n.level, true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return 0, false
}

// All iterates over key/value pairs in key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		walk(t.root, yield)
	}
}

func walk[K cmp.Ordered, V any](n *node[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.key, n.value) && walk(n.right, yield)
}

// Keys returns every key in increasing order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}
