// Package heap provides index arithmetic for perfect binary trees stored in
// implicit heap order.
//
// The root is index 1, the children of k are 2k and 2k+1 and the parent of k
// is k/2. Level l (the root is level 1) holds the indices
// [2^(l-1), 2^l - 1]:
//
//	        1
//	    2       3
//	  4   5   6   7
//
// A tree of depth d therefore occupies the indices 1..2^d-1, which lets the
// layout and renderer keep every per-node value in a flat slice.
package heap

import (
	"fmt"
	"math/bits"
)

// MaxDepth is the deepest tree whose indices fit comfortably in an int on
// every platform.
const MaxDepth = 30

// Parent returns the index of k's parent. The root has parent 0.
func Parent(k int) int { return k >> 1 }

// Left returns the index of k's left child.
func Left(k int) int { return k << 1 }

// Right returns the index of k's right child.
func Right(k int) int { return k<<1 | 1 }

// IsLeft reports whether k is the left child of its parent.
func IsLeft(k int) bool { return k > 1 && k&1 == 0 }

// Level returns the 1-based level of index k (floor(log2 k) + 1).
// It returns 0 for k < 1.
func Level(k int) int {
	if k < 1 {
		return 0
	}
	return bits.Len(uint(k))
}

// LevelStart returns the leftmost index on level l.
func LevelStart(l int) int { return 1 << (l - 1) }

// LevelEnd returns the rightmost index on level l.
func LevelEnd(l int) int { return 1<<l - 1 }

// LevelWidth returns the number of slots on level l.
func LevelWidth(l int) int { return LevelStart(l) }

// Size returns the number of slots in a perfect tree of depth d.
func Size(d int) int {
	if d < 1 {
		return 0
	}
	return 1<<d - 1
}

// Contains reports whether k is a slot of a perfect tree of depth d.
func Contains(d, k int) bool {
	return k >= 1 && k <= Size(d)
}

// IsLeaf reports whether k sits on the last level of a tree of depth d.
func IsLeaf(d, k int) bool {
	return Contains(d, k) && Level(k) == d
}

// Ancestor returns the n-parent of k: the node reached by following n parent
// links. Ancestor(k, 0) is k itself.
func Ancestor(k, n int) int { return k >> n }

// SiblingDegree returns n such that k-1 and k are n-siblings, that is, the
// number of parent steps up to their lowest common ancestor.
//
// Odd k shares its parent with k-1, so the degree is 1. For even k every
// trailing zero bit is one more shared level that k-1 has to climb before the
// two paths meet. k must be at least 2 and not the leftmost index of its
// level (a power of two), which has no left neighbour on the same level.
func SiblingDegree(k int) int {
	if k < 2 || k&(k-1) == 0 {
		panic(fmt.Sprintf("heap: SiblingDegree(%d): index has no left neighbour on its level", k))
	}
	if k&1 == 1 {
		return 1
	}
	return bits.TrailingZeros(uint(k)) + 1
}

// Degree returns n such that a and b are n-siblings. Both indices must be
// distinct and on the same level; Degree(k-1, k) equals SiblingDegree(k).
func Degree(a, b int) int {
	if a == b || Level(a) != Level(b) || a < 1 {
		panic(fmt.Sprintf("heap: Degree(%d, %d): indices must be distinct and on the same level", a, b))
	}
	return bits.Len(uint(a ^ b))
}

// LowestCommonAncestor returns the deepest index that has both a and b in its
// subtree.
func LowestCommonAncestor(a, b int) int {
	la, lb := Level(a), Level(b)
	if la > lb {
		a >>= la - lb
	} else {
		b >>= lb - la
	}
	if a == b {
		return a
	}
	return a >> bits.Len(uint(a^b))
}
