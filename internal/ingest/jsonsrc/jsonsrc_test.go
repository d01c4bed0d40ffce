package jsonsrc

import (
	"strings"
	"testing"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestObjectWithNestedArray(t *testing.T) {
	a, err := Ingest(strings.NewReader(`{"a": [1, 2, 3], "b": "hi"}`), Config{ArrayMaxItems: 10})
	require.NoError(t, err)

	root := a.Nodes[a.Root]
	require.Equal(t, arena.Object, root.Kind)
	require.Equal(t, 2, root.ObjectLen)

	keys := a.ObjectKeys(&root)
	children := a.ObjectChildren(&root)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	for i, k := range keys {
		if k == "a" {
			arr := a.Nodes[children[i]]
			require.Equal(t, arena.Array, arr.Kind)
			assert.Equal(t, 3, arr.ArrayLen)
			assert.Len(t, a.ArrayChildren(&arr), 3)
		}
	}
}

func TestIngestArraySamplingRespectsCap(t *testing.T) {
	a, err := Ingest(strings.NewReader(`[1,2,3,4,5,6,7,8,9,10]`), Config{ArrayMaxItems: 4, ArrayStrategy: sampler.Head})
	require.NoError(t, err)

	root := a.Nodes[a.Root]
	require.Equal(t, arena.Array, root.Kind)
	assert.Equal(t, 10, root.ArrayLen)
	assert.Len(t, a.ArrayChildren(&root), 4)
}

func TestIngestPreservesExactNumberText(t *testing.T) {
	a, err := Ingest(strings.NewReader(`3.140`), Config{ArrayMaxItems: 10})
	require.NoError(t, err)

	root := a.Nodes[a.Root]
	assert.Equal(t, "3.140", root.AtomicToken)
}
