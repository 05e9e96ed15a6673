package skew_test

import (
	"errors"
	"io"
	"testing"

	"github.com/dargueta/skew"
	"github.com/stretchr/testify/assert"
)

func TestSkewErrorWithMessage(t *testing.T) {
	newErr := skew.ErrTruncatedContainer.WithMessage("block 3 header")
	assert.Equal(
		t, "Truncated container: block 3 header", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, skew.ErrTruncatedContainer)
	assert.NotErrorIs(t, newErr, skew.ErrCorruptPayload)
}

func TestSkewErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := skew.ErrCorruptPayload.Wrap(originalErr)
	expectedMessage := "Corrupt block payload: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, skew.ErrCorruptPayload, "skew error not set as parent")
}

func TestSkewErrorWrapThenMessage(t *testing.T) {
	newErr := skew.ErrTruncatedContainer.Wrap(io.ErrUnexpectedEOF).WithMessage("block 7")

	assert.Equal(
		t,
		"Truncated container: unexpected EOF: block 7",
		newErr.Error(),
	)
	assert.ErrorIs(t, newErr, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, newErr, skew.ErrTruncatedContainer)
}
