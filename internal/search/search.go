// Package search binary-searches the priority order for the largest k
// whose rendering fits a byte budget, reusing one Marks buffer across
// every probe.
package search

import (
	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render"
)

// Result is the outcome of a budget search: the winning k, its
// rendering, and the byte length actually produced (which may exceed
// Budget if even the empty preview doesn't fit).
type Result struct {
	K      int
	Output string
	Len    int
}

// Budget finds the largest k in [0, total nodes] such that
// len(render.Render(o, m, k, cfg)) <= budget, assuming rendering length
// is monotonic in k. It always returns a usable Result: if k=0 already
// overflows the budget, that minimal rendering is returned anyway.
func Budget(o *order.Order, m *render.Marks, budget int, cfg render.Config) Result {
	total := o.TotalNodes()

	lo, hi := 0, total
	bestK := 0
	bestOut := render.Render(o, m, 0, cfg)
	bestLen := len(bestOut)

	if bestLen > budget {
		return Result{K: 0, Output: bestOut, Len: bestLen}
	}

	for lo <= hi {
		mid := lo + (hi-lo)/2
		out := render.Render(o, m, mid, cfg)
		n := len(out)
		if n <= budget {
			bestK, bestOut, bestLen = mid, out, n
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return Result{K: bestK, Output: bestOut, Len: bestLen}
}
