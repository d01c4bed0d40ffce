package textsrc

import (
	"strings"
	"testing"

	"github.com/kantord/headson/internal/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLinesDropsTrailingNewlineOnly(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines([]byte("a\nb\nc\n")))
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines([]byte("a\nb\nc")))
	assert.Equal(t, []string{}, SplitLines([]byte("")))
}

func TestSplitLinesNormalizesCRLFAndCR(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines([]byte("a\r\nb\rc")))
}

func TestIngestBuildsArrayOfLines(t *testing.T) {
	a, err := Ingest(strings.NewReader("a\nb\nc\n"), Config{ArrayMaxItems: 10})
	require.NoError(t, err)

	root := a.Nodes[a.Root]
	require.Equal(t, arena.Array, root.Kind)
	assert.Equal(t, 3, root.ArrayLen)
	kids := a.ArrayChildren(&root)
	require.Len(t, kids, 3)
	assert.Equal(t, "b", a.Nodes[kids[1]].StringValue)
}
