package core

import (
	"errors"
	"fmt"
)

// Error codes carried by TransactionError.
const (
	CodeLedgerError  = "LEDGER_ERROR"
	CodeWriteFailed  = "WRITE_FAILED"
	CodeDeleteFailed = "DELETE_FAILED"
	CodeUpdateFailed = "UPDATE_FAILED"
	CodeQueryFailed  = "QUERY_FAILED"
)

// ValidationError reports input that failed a field-level rule. It never
// indicates a storage problem; the caller can correct the input and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports that a referenced row does not exist, or is not
// visible to the calling user. ID is the identifier the lookup used,
// usually an int64 row id, a string for username lookups.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given resource and id.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// TransactionError is the catch-all for ledger operation failures,
// including storage anomalies where a write was attempted and its outcome
// is uncertain. Callers should re-fetch state before retrying.
type TransactionError struct {
	Code    string
	Message string
	Err     error
}

func (e *TransactionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransactionError) Unwrap() error { return e.Err }

// NewTransactionError wraps err as a TransactionError with the given code.
func NewTransactionError(code, message string, err error) *TransactionError {
	return &TransactionError{Code: code, Message: message, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
