package search

import (
	"testing"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/order"
	"github.com/kantord/headson/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildArrayOrder(t *testing.T, n int) *order.Order {
	t.Helper()
	b := arena.NewBuilder()
	children := make([]int, n)
	for i := range children {
		children[i] = b.PushString("item-value")
	}
	root := b.PushArray(children, len(children), nil)
	b.SetRoot(root)
	a := b.Finish()
	return order.Build(a, order.Config{MaxStringGraphemes: 50, ArrayMaxItems: n})
}

func jsonConfig() render.Config {
	return render.Config{Template: render.Json, IndentUnit: "  ", Space: " ", Newline: "\n"}
}

func TestBudgetSearchFitsWithinLimit(t *testing.T) {
	o := buildArrayOrder(t, 30)
	m := render.NewMarks(o)

	res := Budget(o, m, 120, jsonConfig())

	assert.LessOrEqual(t, res.Len, 120)
	assert.Equal(t, res.Len, len(res.Output))
}

func TestBudgetSearchReturnsMinimalWhenEvenEmptyOverflows(t *testing.T) {
	o := buildArrayOrder(t, 30)
	m := render.NewMarks(o)

	res := Budget(o, m, 0, jsonConfig())

	require.Equal(t, 0, res.K)
	assert.Equal(t, len(res.Output), res.Len)
}

func TestBudgetSearchIsMonotonicNonDecreasingInK(t *testing.T) {
	o := buildArrayOrder(t, 30)
	m := render.NewMarks(o)

	small := Budget(o, m, 40, jsonConfig())
	large := Budget(o, m, 400, jsonConfig())

	assert.LessOrEqual(t, small.K, large.K)
	assert.LessOrEqual(t, small.Len, large.Len)
}
