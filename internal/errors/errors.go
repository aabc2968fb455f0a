package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the category of a failure.
type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
)

// Reason is the short token carried in a redirect's query string
// (for example ?error=SESSIONE_NON_TROVATA) and read by the target page.
type Reason string

const (
	ReasonInvalidCode        Reason = "CODICE_NON_VALIDO"
	ReasonNameRequired       Reason = "NOME_OBBLIGATORIO"
	ReasonSessionNotFound    Reason = "SESSIONE_NON_TROVATA"
	ReasonRejoin             Reason = "RIPARTI_DA_JOIN"
	ReasonInvalidParticipant Reason = "PARTECIPANTE_NON_VALIDO"
	ReasonSessionRevealed    Reason = "SESSIONE_GIA_APERTA"
	ReasonAlreadySubmitted   Reason = "GIA_CONSEGNATA"
	ReasonMissingKey         Reason = "CHIAVE_MANCANTE"
	ReasonWrongKey           Reason = "CHIAVE_ERRATA"
	ReasonCannotAllocate     Reason = "SESSIONE_NON_ALLOCABILE"
)

// AppError is a classified failure with the reason shown to the user.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Reason  Reason    `json:"reason,omitempty"`
	Message string    `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

// Is matches another AppError by code and reason, so callers can compare
// against the constructors below with errors.Is.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Reason == other.Reason
}

// New creates a new AppError
func New(code ErrorCode, reason Reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Not found

func SessionNotFound() *AppError {
	return New(ErrCodeNotFound, ReasonSessionNotFound, "Session not found")
}

// Validation

func InvalidCode() *AppError {
	return New(ErrCodeValidation, ReasonInvalidCode, "Session code is required")
}

func NameRequired() *AppError {
	return New(ErrCodeValidation, ReasonNameRequired, "Display name is required")
}

// Authorization

func MissingKey() *AppError {
	return New(ErrCodeUnauthorized, ReasonMissingKey, "Admin key is required")
}

func WrongKey() *AppError {
	return New(ErrCodeUnauthorized, ReasonWrongKey, "Admin key does not match")
}

func IdentityMissing() *AppError {
	return New(ErrCodeUnauthorized, ReasonRejoin, "Participant identity is missing for this session")
}

func InvalidParticipant() *AppError {
	return New(ErrCodeUnauthorized, ReasonInvalidParticipant, "Participant identity is stale or belongs to another session")
}

// State conflicts

func SessionRevealed() *AppError {
	return New(ErrCodeConflict, ReasonSessionRevealed, "Session is already revealed")
}

func AlreadySubmitted() *AppError {
	return New(ErrCodeConflict, ReasonAlreadySubmitted, "Envelope is already submitted")
}

// Exhausted retry

func CannotAllocateSession(attempts int) *AppError {
	return New(ErrCodeUnavailable, ReasonCannotAllocate,
		fmt.Sprintf("Cannot allocate a session code after %d attempts, try again", attempts))
}

// Internal

func Internal(message string) *AppError {
	return New(ErrCodeInternal, "", message)
}

func Database(cause error) *AppError {
	return Wrap(ErrCodeDatabase, "Database error", cause)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error code if the error is an AppError, otherwise returns ErrCodeInternal
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetReason returns the redirect reason of err, or "" when it has none.
func GetReason(err error) Reason {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Reason
	}
	return ""
}

// IsUserFacing reports whether err should be answered with a redirect
// carrying its reason rather than a generic failure page.
func IsUserFacing(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Reason == "" {
		return false
	}
	switch appErr.Code {
	case ErrCodeNotFound, ErrCodeValidation, ErrCodeUnauthorized, ErrCodeConflict:
		return true
	}
	return false
}
