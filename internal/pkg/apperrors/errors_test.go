package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseNotFoundMatchesResourceNotFound(t *testing.T) {
	wrapped := fmt.Errorf("lookup course 999: %w", ErrCourseNotFound)

	assert.True(t, errors.Is(wrapped, ErrCourseNotFound))
	assert.True(t, errors.Is(wrapped, ErrResourceNotFound))
	assert.False(t, errors.Is(wrapped, ErrBadRequest))
	assert.Equal(t, "course not found", ErrCourseNotFound.Error())
	assert.Equal(t, "RES_001", ErrCourseNotFound.Code)
}

func TestIs_AnyOf(t *testing.T) {
	err := NewBadRequestError("id must be numeric")

	assert.True(t, Is(err, ErrResourceNotFound, ErrValidationFailed, ErrBadRequest))
	assert.False(t, Is(err, ErrResourceNotFound))
	assert.Equal(t, "id must be numeric", err.Error())
}

func TestCustomError_FallbackMessages(t *testing.T) {
	assert.Equal(t, "resource not found", (&CustomError{Err: ErrResourceNotFound}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestAs_FindsWrappedCustomError(t *testing.T) {
	err := fmt.Errorf("parse: %w", NewBadRequestError("Invalid course ID").WithField("id").WithDetails("must be an integer"))

	custom, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "id", custom.Field)
	assert.Equal(t, "must be an integer", custom.Details)
	assert.Equal(t, ErrBadRequest, custom.Unwrap())

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
