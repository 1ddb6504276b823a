package aatree

import "cmp"

// IsBST reports whether every left subtree holds smaller keys and every
// right subtree larger keys.
func (t *Tree[K, V]) IsBST() bool {
	if t.root == nil {
		return true
	}
	ok, _, _ := isBST(t.root)
	return ok
}

// isBST returns the subtree's validity and its smallest and largest keys.
func isBST[K cmp.Ordered, V any](n *node[K, V]) (bool, K, K) {
	lo, hi := n.key, n.key
	if n.left != nil {
		ok, lmin, lmax := isBST(n.left)
		if !ok || lmax >= n.key {
			return false, lo, hi
		}
		lo = lmin
	}
	if n.right != nil {
		ok, rmin, rmax := isBST(n.right)
		if !ok || rmin <= n.key {
			return false, lo, hi
		}
		hi = rmax
	}
	return true, lo, hi
}

// IsAA reports whether the tree is a binary search tree satisfying the AA
// level rules for every node n:
//
//   - if n is missing a child, its level is 1
//   - its left child's level is one less than n's
//   - its right child's level is equal to or one less than n's
//   - its right child's right child's level is less than n's
func (t *Tree[K, V]) IsAA() bool {
	if t.root == nil {
		return true
	}
	return t.IsBST() && isAA(t.root)
}

func isAA[K cmp.Ordered, V any](n *node[K, V]) bool {
	if n == nil {
		return true
	}
	if (n.left == nil || n.right == nil) && n.level != 1 {
		return false
	}
	if n.left != nil && n.left.level+1 != n.level {
		return false
	}
	if r := n.right; r != nil {
		if r.level != n.level && r.level+1 != n.level {
			return false
		}
		if r.right != nil && r.right.level == n.level {
			return false
		}
	}
	return isAA(n.left) && isAA(n.right)
}
