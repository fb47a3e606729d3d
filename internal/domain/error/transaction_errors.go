// Package error defines domain-specific errors for the finance tracker client.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionDate is returned when the transaction date is missing or malformed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrEmptyDescription is returned when the description is blank.
	ErrEmptyDescription = errors.New("description is required")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrSignMismatch is returned when is_expense disagrees with the sign of amount.
	ErrSignMismatch = errors.New("is_expense does not match amount sign")

	// ErrInvalidTypeFilter is returned when the type filter is not all, expense or income.
	ErrInvalidTypeFilter = errors.New("invalid type filter")

	// ErrInvalidPage is returned when a page number is below 1.
	ErrInvalidPage = errors.New("page must be at least 1")

	// ErrInvalidImportFile is returned when an uploaded statement is empty or too large.
	ErrInvalidImportFile = errors.New("invalid import file")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeEmptyDescription         TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010004"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidTypeFilter        TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidPage              TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidTransactionID     TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidImportFile        TransactionErrorCode = "TXN-010009"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"

	// Integrity errors (03XXXX)
	ErrCodeSignMismatch TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
