package profile

import (
	"math"
	"sort"
)

// Barrier describes the highest point between two wells.
type Barrier struct {
	Left  int // index of the left minimum
	Right int // index of the right minimum
	Top   int // index of the maximum between them

	// HeightLeft and HeightRight are y[Top] minus the respective well depth.
	HeightLeft  float64
	HeightRight float64
}

// LocalMinima returns the interior indices i with y[i-1] > y[i] <= y[i+1].
// On a flat bottom the first point of the plateau is reported.
func LocalMinima(y []float64) []int {
	var out []int
	for i := 1; i+1 < len(y); i++ {
		if y[i] < y[i-1] && y[i] <= y[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// Wells locates the two deepest local minima of y and the barrier between
// them. It reports false when y has fewer than two local minima.
func Wells(y []float64) (Barrier, bool) {
	minima := LocalMinima(y)
	if len(minima) < 2 {
		return Barrier{}, false
	}

	sort.SliceStable(minima, func(a, b int) bool {
		return y[minima[a]] < y[minima[b]]
	})
	left, right := minima[0], minima[1]
	if left > right {
		left, right = right, left
	}

	top := left
	for i := left + 1; i < right; i++ {
		if !math.IsNaN(y[i]) && y[i] > y[top] {
			top = i
		}
	}

	return Barrier{
		Left:        left,
		Right:       right,
		Top:         top,
		HeightLeft:  y[top] - y[left],
		HeightRight: y[top] - y[right],
	}, true
}
