package layout

// LeftSubtreeWidth returns the left-subtree width used to place the leftmost
// leaf relative to the root, accumulated bottom-up in leaf spacing units:
//
//	W(0) = 0
//	W(i) = 2*W(i-1) + f(i) + 2r    for i = 1 .. depth-2
//
// The result is W(depth-2), or 0 when depth <= 2.
func LeftSubtreeWidth(depth int, radius float64, f SpacingFunc) float64 {
	var w float64
	for i := 1; i < depth-1; i++ {
		w = 2*w + f(i) + 2*radius
	}
	return w
}

// leftSubtreeWidth is LeftSubtreeWidth over a precomputed gap table where
// gaps[n] = f(n).
func leftSubtreeWidth(depth int, radius float64, gaps []float64) float64 {
	return LeftSubtreeWidth(depth, radius, func(n int) float64 { return gaps[n] })
}
