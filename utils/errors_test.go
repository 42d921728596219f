package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictErrorCarriesStatus(t *testing.T) {
	err := ConflictError("amounts disagree", nil)
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Equal(t, "amounts disagree", err.Error())
}

func TestGetAppErrorFindsWrappedError(t *testing.T) {
	inner := ConflictError("currency mismatch", nil)
	wrapped := WrapError(inner, "reconcile order")
	require.Error(t, wrapped)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "currency mismatch", appErr.Message)
}

func TestGetAppErrorIgnoresPlainErrors(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("boom")))
	assert.Nil(t, GetAppError(nil))
}

func TestWrapErrorPreservesChain(t *testing.T) {
	assert.NoError(t, WrapError(nil, "context"))

	base := errors.New("row locked")
	wrapped := WrapError(base, "save payment record")
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "save payment record")
}
