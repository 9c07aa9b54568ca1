package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pastorprompt/internal/errors"
)

func TestNewFieldErrors_SortsMessage(t *testing.T) {
	err := errors.NewFieldErrors(map[string]string{
		"true_version": "must be at most 2000 characters",
		"event":        "is required",
	})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, errors.ErrCodeValidation, err.Code)
	assert.Equal(t, "validation failed: event is required; true_version must be at most 2000 characters", err.Message)
	assert.Len(t, err.Fields, 2)
}

func TestAs_WrappedAppError(t *testing.T) {
	original := errors.NewForbiddenError("cannot delete the General folder")
	wrapped := fmt.Errorf("delete folder: %w", original)

	got := errors.As(wrapped)
	require.Same(t, original, got)
	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeForbidden))
}

func TestAs_PlainErrorBecomesInternal(t *testing.T) {
	cause := stderrors.New("disk I/O error")

	got := errors.As(cause)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestNewNotFoundError(t *testing.T) {
	err := errors.NewNotFoundError("story", int64(42))
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND: story not found: 42", err.Error())
	assert.False(t, errors.HasCode(err, errors.ErrCodeValidation))
}
