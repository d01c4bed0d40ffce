package headson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ParseError, cause).WithPath("a.json")

	assert.Equal(t, "parse_error: a.json: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestExitCodeIsZeroForNonFatalKinds(t *testing.T) {
	assert.Equal(t, 0, Skipped.ExitCode())
	assert.Equal(t, 0, EmptyFileset.ExitCode())
	assert.Equal(t, 1, ParseError.ExitCode())
}
