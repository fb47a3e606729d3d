// Package error defines domain-specific errors for the finance tracker client.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when the category name is blank.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrCategoryDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrCategoryDescriptionTooLong = errors.New("category description too long")

	// ErrCategoryNameExists is returned when another category already uses the name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrDefaultCategoryDelete is returned when deleting a system-provided category.
	ErrDefaultCategoryDelete = errors.New("default categories cannot be deleted")

	// ErrInvalidReassignTarget is returned when transactions would be moved to the deleted category itself.
	ErrInvalidReassignTarget = errors.New("cannot reassign transactions to the deleted category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	ErrCodeCategoryNameRequired  CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010003"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010004"
	ErrCodeInvalidCategoryID     CategoryErrorCode = "CAT-010005"
	ErrCodeInvalidReassignTarget CategoryErrorCode = "CAT-010006"
	ErrCodeCategoryDescTooLong   CategoryErrorCode = "CAT-010007"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-020001"
	ErrCodeDefaultCategoryDelete CategoryErrorCode = "CAT-030001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
