package fileset

import (
	"context"
	"testing"

	"github.com/kantord/headson/internal/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestIngestCombinesFilesIntoFilesetObject(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := []Input{
		{Path: "a.json", Data: []byte(`{"x": 1}`)},
		{Path: "b.txt", Data: []byte("line1\nline2\n")},
	}

	a, err := Ingest(context.Background(), inputs, Config{ArrayMaxItems: 10})
	require.NoError(t, err)

	assert.True(t, a.IsFileset)
	root := a.Nodes[a.Root]
	require.Equal(t, arena.Object, root.Kind)
	assert.ElementsMatch(t, []string{"a.json", "b.txt"}, a.ObjectKeys(&root))
}

func TestIngestBoundsConcurrencyWithMaxConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := make([]Input, 8)
	for i := range inputs {
		inputs[i] = Input{Path: "f.txt", Data: []byte("line\n")}
	}

	a, err := Ingest(context.Background(), inputs, Config{ArrayMaxItems: 10, MaxConcurrency: 2})
	require.NoError(t, err)
	assert.True(t, a.IsFileset)
}

func TestIngestRejectsEmptyInput(t *testing.T) {
	_, err := Ingest(context.Background(), nil, Config{})
	assert.ErrorIs(t, err, ErrEmptyFileset)
}

func TestDetectFormatIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, JSON, DetectFormat("data.JSON"))
	assert.Equal(t, YAML, DetectFormat("data.YML"))
	assert.Equal(t, Text, DetectFormat("data.unknown"))
}
