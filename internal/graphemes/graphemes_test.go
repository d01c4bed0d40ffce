package graphemes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountCountsClustersNotBytes(t *testing.T) {
	assert.Equal(t, 3, Count("abc"))
	assert.Equal(t, 1, Count("é")) // e + combining acute, one cluster
}

func TestSplitReturnsOneEntryPerCluster(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("abc"))
}

func TestPrefixStopsAtClusterBoundary(t *testing.T) {
	prefix, truncated := Prefix("hello", 3)
	assert.Equal(t, "hel", prefix)
	assert.True(t, truncated)

	prefix, truncated = Prefix("hi", 10)
	assert.Equal(t, "hi", prefix)
	assert.False(t, truncated)
}

func TestPrefixWithZeroReportsTruncatedWhenNonEmpty(t *testing.T) {
	prefix, truncated := Prefix("x", 0)
	assert.Equal(t, "", prefix)
	assert.True(t, truncated)

	prefix, truncated = Prefix("", 0)
	assert.Equal(t, "", prefix)
	assert.False(t, truncated)
}
