package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns formatted string", func(t *testing.T) {
		err := SessionNotFound()
		assert.Equal(t, "NOT_FOUND: Session not found", err.Error())
	})

	t.Run("Error with cause includes cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := Database(cause)
		assert.Contains(t, err.Error(), "DATABASE_ERROR")
		assert.Contains(t, err.Error(), "Database error")
		assert.Contains(t, err.Error(), "database connection failed")
	})

	t.Run("WithCause adds cause to error", func(t *testing.T) {
		cause := errors.New("original error")
		err := Internal("Something went wrong").WithCause(cause)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("errors.Is matches by code and reason", func(t *testing.T) {
		err := fmt.Errorf("save envelope: %w", AlreadySubmitted())
		assert.True(t, errors.Is(err, AlreadySubmitted()))
		assert.False(t, errors.Is(err, SessionRevealed()))
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name           string
		constructor    func() *AppError
		expectedCode   ErrorCode
		expectedReason Reason
	}{
		{"SessionNotFound", SessionNotFound, ErrCodeNotFound, ReasonSessionNotFound},
		{"InvalidCode", InvalidCode, ErrCodeValidation, ReasonInvalidCode},
		{"NameRequired", NameRequired, ErrCodeValidation, ReasonNameRequired},
		{"MissingKey", MissingKey, ErrCodeUnauthorized, ReasonMissingKey},
		{"WrongKey", WrongKey, ErrCodeUnauthorized, ReasonWrongKey},
		{"IdentityMissing", IdentityMissing, ErrCodeUnauthorized, ReasonRejoin},
		{"InvalidParticipant", InvalidParticipant, ErrCodeUnauthorized, ReasonInvalidParticipant},
		{"SessionRevealed", SessionRevealed, ErrCodeConflict, ReasonSessionRevealed},
		{"AlreadySubmitted", AlreadySubmitted, ErrCodeConflict, ReasonAlreadySubmitted},
		{"CannotAllocateSession", func() *AppError { return CannotAllocateSession(10) }, ErrCodeUnavailable, ReasonCannotAllocate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.constructor()
			assert.Equal(t, tc.expectedCode, err.Code)
			assert.Equal(t, tc.expectedReason, err.Reason)
			assert.NotEmpty(t, err.Message)
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	assert.True(t, IsUserFacing(SessionNotFound()))
	assert.True(t, IsUserFacing(fmt.Errorf("wrapped: %w", WrongKey())))
	assert.False(t, IsUserFacing(CannotAllocateSession(10)))
	assert.False(t, IsUserFacing(Database(errors.New("down"))))
	assert.False(t, IsUserFacing(errors.New("plain")))
}

func TestAsAppError(t *testing.T) {
	t.Run("extracts AppError", func(t *testing.T) {
		original := SessionNotFound()
		extracted, ok := AsAppError(original)
		assert.True(t, ok)
		assert.Equal(t, original, extracted)
	})

	t.Run("returns false for non-AppError", func(t *testing.T) {
		err := errors.New("standard error")
		extracted, ok := AsAppError(err)
		assert.False(t, ok)
		assert.Nil(t, extracted)
	})
}

func TestGetCodeAndReason(t *testing.T) {
	t.Run("returns code and reason for AppError", func(t *testing.T) {
		err := AlreadySubmitted()
		assert.Equal(t, ErrCodeConflict, GetCode(err))
		assert.Equal(t, ReasonAlreadySubmitted, GetReason(err))
	})

	t.Run("falls back for standard error", func(t *testing.T) {
		err := errors.New("standard error")
		assert.Equal(t, ErrCodeInternal, GetCode(err))
		assert.Equal(t, Reason(""), GetReason(err))
	})
}
