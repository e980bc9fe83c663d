package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPassesThroughClassifiedErrors(t *testing.T) {
	orig := NotFound("order %s not found", "abc")

	got := Classify(orig, "fetch order failed")
	assert.Same(t, orig, got.(*Error))

	wrapped := fmt.Errorf("outer: %w", orig)
	assert.Equal(t, KindNotFound, KindOf(Classify(wrapped, "fetch order failed")))
}

func TestClassifyWrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("connection reset")

	got := Classify(cause, "list orders failed")
	assert.Equal(t, KindInternal, KindOf(got))
	assert.ErrorIs(t, got, cause)
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil, "whatever"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindInvalid, KindOf(Invalid("bad amount")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("duplicate entry")
	err := Internal(cause, "create customer failed")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create customer failed")
	assert.Contains(t, err.Error(), "duplicate entry")
}
