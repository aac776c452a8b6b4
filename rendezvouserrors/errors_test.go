package rendezvouserrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/rendezvous/rendezvouserrors"
)

func TestCollection_EmptyHasNoError(t *testing.T) {
	t.Parallel()

	var c rendezvouserrors.Collection

	assert.False(t, c.HasError())
	assert.NoError(t, c.GetError())
}

func TestCollection_NilErrorsIgnored(t *testing.T) {
	t.Parallel()

	var c rendezvouserrors.Collection

	c.Add(nil)
	assert.False(t, c.HasError())
}

func TestCollection_SingleErrorReturnedDirectly(t *testing.T) {
	t.Parallel()

	errOne := errors.New("one")

	var c rendezvouserrors.Collection

	c.Add(errOne)

	assert.True(t, c.HasError())
	assert.Same(t, errOne, c.GetError())
}

func TestCollection_MultipleErrorsJoined(t *testing.T) {
	t.Parallel()

	errOne := errors.New("one")
	errTwo := errors.New("two")

	var c rendezvouserrors.Collection

	c.Add(errOne)
	c.Add(errTwo)

	joined := c.GetError()
	require.Error(t, joined)
	assert.ErrorIs(t, joined, errOne)
	assert.ErrorIs(t, joined, errTwo)
}

func TestGetPanicRecoveryError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, rendezvouserrors.GetPanicRecoveryError(nil, nil))
}

func TestGetPanicRecoveryError_WrapsRecoveredError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	err := rendezvouserrors.GetPanicRecoveryError(cause, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rendezvouserrors.ErrPanicRecovery)
	assert.ErrorIs(t, err, cause)
}

func TestGetPanicRecoveryError_WrapsNonErrorValue(t *testing.T) {
	t.Parallel()

	err := rendezvouserrors.GetPanicRecoveryError("kaboom", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rendezvouserrors.ErrPanicRecovery)
	assert.Contains(t, err.Error(), "kaboom")
}
