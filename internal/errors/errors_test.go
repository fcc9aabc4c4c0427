package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "User not found", NotFound("User not found").Error())

	wrapped := Wrap(stderrors.New("no rows"), ErrCodeNotFound, "User not found")
	assert.Equal(t, "User not found: no rows", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("no rows")
	wrapped := Wrap(cause, ErrCodeNotFound, "User not found")

	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		err       error
		predicate func(error) bool
	}{
		{Validation("bad input"), IsValidation},
		{Unauthenticated("who are you"), IsUnauthenticated},
		{Forbidden("not yours"), IsForbidden},
		{Conflict("already there"), IsConflict},
		{NotFound("gone"), IsNotFound},
		{Expired("too late"), IsExpired},
		{Upstream("provider failed"), IsUpstream},
		{Internal("broken"), IsInternal},
	}

	for _, tt := range tests {
		assert.True(t, tt.predicate(tt.err), "%v", tt.err)
		assert.False(t, IsValidation(stderrors.New("plain")), "plain errors match nothing")
	}
}

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("add connection: %w", Conflict("Connection already exists"))

	assert.True(t, IsConflict(err))
	assert.Equal(t, ErrCodeConflict, GetCode(err))
	assert.Equal(t, "Connection already exists", GetMessage(err))
}

func TestGetters_PlainError(t *testing.T) {
	err := stderrors.New("plain")

	assert.Equal(t, ErrorCode(""), GetCode(err))
	assert.Empty(t, GetMessage(err))
	assert.Empty(t, GetField(err))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Email address is required")

	require.True(t, IsValidation(err))
	assert.Equal(t, "email", GetField(err))
	assert.Equal(t, "Email address is required", GetMessage(err))
}
