// Package errors provides the standardized error type used across the intake gateway.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAction      ErrorCode = "INVALID_ACTION"
	ErrCodeSchemaViolation    ErrorCode = "SCHEMA_VIOLATION"
	ErrCodeSubmissionCanceled ErrorCode = "SUBMISSION_CANCELED"
	ErrCodeNetworkFailure     ErrorCode = "NETWORK_FAILURE"
	ErrCodeSubmissionRejected ErrorCode = "SUBMISSION_REJECTED"

	ErrCodeDraftNotFound    ErrorCode = "DRAFT_NOT_FOUND"
	ErrCodeDraftStoreFailed ErrorCode = "DRAFT_STORE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeLedgerInsertFailed       ErrorCode = "LEDGER_INSERT_FAILED"

	ErrCodeTokenInvalid        ErrorCode = "TOKEN_INVALID"
	ErrCodeIdentityUnavailable ErrorCode = "IDENTITY_UNAVAILABLE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// As extracts a *StandardError from an error chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := As(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewValidationFailedError reports a form that failed field validation.
func NewValidationFailedError(firstField string, count int) *StandardError {
	e := newError(ErrCodeValidationFailed, "Form has invalid fields",
		fmt.Sprintf("%d field errors, first: %s", count, firstField), false, nil)
	e.Metadata = map[string]interface{}{"firstField": firstField, "errorCount": count}
	return e
}

// NewInvalidActionError reports an action envelope that could not be decoded.
func NewInvalidActionError(details string) *StandardError {
	return newError(ErrCodeInvalidAction, "Unrecognized or malformed form action", details, false, nil)
}

// NewSchemaViolationError reports a built payload that does not match the upstream schema.
func NewSchemaViolationError(details string) *StandardError {
	return newError(ErrCodeSchemaViolation, "Submission payload does not conform to schema", details, false, nil)
}

// NewSubmissionCanceledError marks a request superseded by a newer attempt.
func NewSubmissionCanceledError(err error) *StandardError {
	return newError(ErrCodeSubmissionCanceled, "Submission superseded by a newer attempt", err.Error(), false, err)
}

// NewNetworkFailureError reports a transport-level failure reaching the upstream.
func NewNetworkFailureError(err error) *StandardError {
	return newError(ErrCodeNetworkFailure, "Upstream could not be reached", err.Error(), true, err)
}

// NewSubmissionRejectedError reports a non-2xx or ok=false upstream response.
func NewSubmissionRejectedError(status int, serverMessage string) *StandardError {
	e := newError(ErrCodeSubmissionRejected, "Upstream rejected the submission",
		fmt.Sprintf("status: %d, message: %s", status, serverMessage), false, nil)
	e.Metadata = map[string]interface{}{"status": status}
	return e
}

// NewDraftNotFoundError reports an unknown or expired session.
func NewDraftNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeDraftNotFound, "Form session not found", fmt.Sprintf("sessionId: %s", sessionID), false, nil)
}

// NewDraftStoreFailedError wraps a storage backend failure.
func NewDraftStoreFailedError(op string, err error) *StandardError {
	return newError(ErrCodeDraftStoreFailed, "Draft store operation failed",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), true, err)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

// NewLedgerInsertFailedError creates a retryable ledger insert error.
func NewLedgerInsertFailedError(err error) *StandardError {
	return newError(ErrCodeLedgerInsertFailed, "Submission ledger insert failed", err.Error(), true, err)
}

// NewTokenInvalidError reports an inactive or unknown bearer token.
func NewTokenInvalidError(details string) *StandardError {
	return newError(ErrCodeTokenInvalid, "Token is not active", details, false, nil)
}

// NewIdentityUnavailableError wraps an identity provider transport failure.
func NewIdentityUnavailableError(err error) *StandardError {
	return newError(ErrCodeIdentityUnavailable, "Identity provider unavailable", err.Error(), true, err)
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidAction:
		return "client"
	case ErrCodeSubmissionCanceled:
		return "canceled"
	case ErrCodeNetworkFailure, ErrCodeSubmissionRejected:
		return "upstream"
	case ErrCodeDraftNotFound, ErrCodeDraftStoreFailed, ErrCodeDatabaseConnectionFailed, ErrCodeLedgerInsertFailed:
		return "storage"
	case ErrCodeTokenInvalid, ErrCodeIdentityUnavailable:
		return "identity"
	default:
		return "internal"
	}
}
