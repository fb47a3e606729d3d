// Package error defines domain-specific errors for the finance tracker client.
package error

import "errors"

// Stats domain errors.
var (
	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidTrendsQuery is returned when num_periods or period_days is out of bounds.
	ErrInvalidTrendsQuery = errors.New("num_periods must be 1-12 and period_days 1-365")
)

// StatsErrorCode defines error codes for stats errors.
// Format: STS-XXYYYY where XX is category and YYYY is specific error.
type StatsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange   StatsErrorCode = "STS-010001"
	ErrCodeInvalidDateFormat  StatsErrorCode = "STS-010002"
	ErrCodeInvalidTrendsQuery StatsErrorCode = "STS-010003"

	// Internal errors (99XXXX)
	ErrCodeStatsInternalError StatsErrorCode = "STS-990001"
)

// StatsError represents a stats error with code and message.
type StatsError struct {
	Code    StatsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatsError) Unwrap() error {
	return e.Err
}

// NewStatsError creates a new StatsError with the given code and message.
func NewStatsError(code StatsErrorCode, message string, err error) *StatsError {
	return &StatsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
