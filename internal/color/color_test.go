package color

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledAlwaysAndNeverIgnoreTTYAndEnv(t *testing.T) {
	assert.True(t, Enabled(Always, false))
	assert.False(t, Enabled(Never, true))
}

func TestEnabledAutoFollowsTTYAbsentNoColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	assert.True(t, Enabled(Auto, true))
	assert.False(t, Enabled(Auto, false))
}

func TestEnabledAutoRespectsNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, Enabled(Auto, true))
}

func TestOmissionMarkerPlainWhenDisabled(t *testing.T) {
	assert.Equal(t, "…", OmissionMarker(false))
}

func TestCommentPlainWhenDisabled(t *testing.T) {
	assert.Equal(t, "# 3 more items", Comment("# 3 more items", false))
}
