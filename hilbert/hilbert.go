// Package hilbert maps scan positions in a length x length grid (length a
// power of two) onto a locality-preserving Hilbert space-filling curve.
//
// Index is pure and stateless; its inverse on the permutation group is
// itself applied to the complementary coordinate order, so encoder and
// decoder only ever need the forward mapping, applied consistently.
package hilbert

// Index maps scan index i in [0, length*length) to a linear position
// x*length+y along a Hilbert curve oriented so that Index(length, 0) == 0.
// length must be a power of two.
func Index(length, i int) int {
	x, y := 0, 0
	for s := 1; s < length; s *= 2 {
		rx := 1 & (i / 2)
		ry := 1 & (i ^ rx)
		x, y = rotate(s, x, y, rx, ry)
		x += s * rx
		y += s * ry
		i /= 4
	}
	return x*length + y
}

// rotate applies the quadrant flip/transpose that keeps each recursive
// Hilbert quadrant self-similar to the whole curve.
func rotate(s, x, y, rx, ry int) (int, int) {
	if ry != 0 {
		return x, y
	}
	if rx == 1 {
		x = s - 1 - x
		y = s - 1 - y
	}
	return y, x
}

// Permutation precomputes Index(length, i) for every i in [0, length*length),
// for callers (the bit-plane coder) that walk the same level many times
// over successive planes and would otherwise repeat the O(log length) work.
func Permutation(length int) []int {
	n := length * length
	order := make([]int, n)
	for i := 0; i < n; i++ {
		order[i] = Index(length, i)
	}
	return order
}
