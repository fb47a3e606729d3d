// Package error defines domain-specific errors for the finance tracker client.
package error

import "errors"

// State store and view errors.
var (
	// ErrStoreClosed is returned when an operation is issued after Close.
	ErrStoreClosed = errors.New("store is closed")

	// ErrViewNotFound is returned when a transaction view does not exist or expired.
	ErrViewNotFound = errors.New("view not found")

	// ErrRateLimited is returned when a client exceeds the request budget.
	ErrRateLimited = errors.New("too many requests")

	// ErrSyncHistoryFailed is returned when sync runs cannot be stored or read.
	ErrSyncHistoryFailed = errors.New("sync history unavailable")
)

// StoreErrorCode defines error codes for store errors.
// Format: STR-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	ErrCodeStoreClosed   StoreErrorCode = "STR-010001"
	ErrCodeViewNotFound  StoreErrorCode = "STR-020001"
	ErrCodeInvalidViewID StoreErrorCode = "STR-020002"
	ErrCodeRateLimited   StoreErrorCode = "STR-030001"
	ErrCodeSyncHistory   StoreErrorCode = "STR-040001"
	ErrCodeStoreInternal StoreErrorCode = "STR-990001"
)

// StoreError represents a store error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given code and message.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
