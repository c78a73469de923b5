package hilbert_test

import (
	"testing"

	"github.com/xdsopl-go/lqt/hilbert"
)

func TestIndexLength2(t *testing.T) {
	want := []int{0, 1, 3, 2}
	for i, w := range want {
		if got := hilbert.Index(2, i); got != w {
			t.Errorf("Index(2, %d) = %d, want %d", i, got, w)
		}
	}
}

func TestPermutationIsBijection(t *testing.T) {
	for _, length := range []int{1, 2, 4, 8, 16, 32} {
		order := hilbert.Permutation(length)
		n := length * length
		if len(order) != n {
			t.Fatalf("Permutation(%d) has %d entries, want %d", length, len(order), n)
		}
		seen := make([]bool, n)
		for _, pos := range order {
			if pos < 0 || pos >= n {
				t.Fatalf("Permutation(%d) contains out-of-range position %d", length, pos)
			}
			if seen[pos] {
				t.Fatalf("Permutation(%d) repeats position %d", length, pos)
			}
			seen[pos] = true
		}
	}
}

func TestConsecutiveStepsAreAdjacent(t *testing.T) {
	for _, length := range []int{2, 4, 8, 16} {
		order := hilbert.Permutation(length)
		for i := 1; i < len(order); i++ {
			x0, y0 := order[i-1]/length, order[i-1]%length
			x1, y1 := order[i]/length, order[i]%length
			dist := abs(x1-x0) + abs(y1-y0)
			if dist != 1 {
				t.Fatalf("length=%d: step %d->%d has Manhattan distance %d, want 1", length, i-1, i, dist)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
