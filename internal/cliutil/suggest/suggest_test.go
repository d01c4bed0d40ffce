package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var knownFlags = []string{"budget", "template", "verbosity", "color", "array-max-items"}

func TestFlagSuggestsClosestMatch(t *testing.T) {
	assert.Equal(t, "budget", Flag("budgte", knownFlags))
	assert.Equal(t, "color", Flag("colour", knownFlags))
}

func TestFlagReturnsEmptyWhenTooFarOff(t *testing.T) {
	assert.Equal(t, "", Flag("xyzzyplugh", knownFlags))
}

func TestSimilarityIsOneForIdenticalStrings(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("budget", "budget"))
}
