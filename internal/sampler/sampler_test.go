package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource feeds a fixed []int sequence, recording arena ids as the
// values themselves (sufficient to assert on kept content in tests).
type sliceSource struct {
	vals []int
	pos  int
}

func (s *sliceSource) Next() (int, bool, error) {
	if s.pos >= len(s.vals) {
		return 0, false, nil
	}
	v := s.vals[s.pos]
	s.pos++
	return v, true, nil
}

func (s *sliceSource) Skip() (bool, error) {
	if s.pos >= len(s.vals) {
		return false, nil
	}
	s.pos++
	return true, nil
}

func seqSource(n int) *sliceSource {
	vals := make([]int, n)
	for i := range vals {
		vals[i] = i
	}
	return &sliceSource{vals: vals}
}

func TestTailSamplerKeepsLastNIndices(t *testing.T) {
	res, err := Sample(Tail, seqSource(10), 5)
	require.NoError(t, err)
	assert.Equal(t, 10, res.TotalLen)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, res.Children)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, res.Indices)
}

func TestHeadSamplerKeepsPrefix(t *testing.T) {
	res, err := Sample(Head, seqSource(50), 15)
	require.NoError(t, err)
	assert.Equal(t, 50, res.TotalLen)
	require.Len(t, res.Children, 15)
	for i := 0; i < 15; i++ {
		assert.Equal(t, i, res.Children[i])
	}
	assert.Nil(t, res.Indices, "identity prefix should not carry an explicit index map")
}

func TestNoneSamplerKeepsNothing(t *testing.T) {
	res, err := Sample(None, seqSource(7), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalLen)
	assert.Empty(t, res.Children)
}

func TestHeadMidTailKeepsHeadPrefixAndIsDeterministic(t *testing.T) {
	res1, err := Sample(HeadMidTail, seqSource(1000), 50)
	require.NoError(t, err)
	res2, err := Sample(HeadMidTail, seqSource(1000), 50)
	require.NoError(t, err)

	assert.Equal(t, 1000, res1.TotalLen)
	assert.Equal(t, res1.Children, res2.Children, "sampler must be deterministic across runs")
	require.GreaterOrEqual(t, len(res1.Children), 3)
	assert.Equal(t, []int{0, 1, 2}, res1.Children[:3], "first three elements are always kept")
}

func TestAcceptIndexIsDeterministic(t *testing.T) {
	for i := uint64(0); i < 100; i++ {
		assert.Equal(t, acceptIndex(i), acceptIndex(i))
	}
}

func TestSmallCapNeverExceedsCap(t *testing.T) {
	for _, cap := range []int{0, 1, 2, 3, 4, 5, 10} {
		res, err := Sample(HeadMidTail, seqSource(200), cap)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Children), cap)
	}
}
