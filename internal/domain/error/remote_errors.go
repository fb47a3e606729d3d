// Package error defines domain-specific errors for the finance tracker client.
package error

import (
	"errors"
	"net/http"
)

// Remote finance API errors.
var (
	// ErrRemoteUnavailable is returned when the finance API cannot be reached.
	ErrRemoteUnavailable = errors.New("finance api unavailable")

	// ErrRemoteRejected is returned when the finance API rejects a request (4xx).
	ErrRemoteRejected = errors.New("finance api rejected the request")

	// ErrRemoteNotFound is returned when the finance API answers 404.
	ErrRemoteNotFound = errors.New("finance api resource not found")

	// ErrRemoteFailure is returned when the finance API fails (5xx).
	ErrRemoteFailure = errors.New("finance api failure")

	// ErrMalformedResponse is returned when a response body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed finance api response")
)

// RemoteErrorCode defines error codes for finance API errors.
// Format: API-XXYYYY where XX is category and YYYY is specific error.
type RemoteErrorCode string

const (
	// Transport errors (01XXXX)
	ErrCodeRemoteUnavailable RemoteErrorCode = "API-010001"
	ErrCodeRemoteTimeout     RemoteErrorCode = "API-010002"

	// Response errors (02XXXX)
	ErrCodeRemoteRejected      RemoteErrorCode = "API-020001"
	ErrCodeRemoteNotFound      RemoteErrorCode = "API-020002"
	ErrCodeRemoteFailure       RemoteErrorCode = "API-020003"
	ErrCodeMalformedResponse   RemoteErrorCode = "API-020004"
	ErrCodeRemoteRateLimited   RemoteErrorCode = "API-020005"
	ErrCodeRemoteInternalError RemoteErrorCode = "API-990001"
)

// RemoteError represents a failed finance API call.
// Detail carries the API's own "detail" message when it sent one.
type RemoteError struct {
	Code    RemoteErrorCode
	Status  int
	Detail  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError creates a new RemoteError with the given code and message.
func NewRemoteError(code RemoteErrorCode, message string, err error) *RemoteError {
	return &RemoteError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewRemoteStatusError classifies a non-2xx status from the finance API.
func NewRemoteStatusError(status int, detail string) *RemoteError {
	e := &RemoteError{Status: status, Detail: detail}
	switch {
	case status == http.StatusNotFound:
		e.Code, e.Err = ErrCodeRemoteNotFound, ErrRemoteNotFound
	case status == http.StatusTooManyRequests:
		e.Code, e.Err = ErrCodeRemoteRateLimited, ErrRemoteRejected
	case status >= 400 && status < 500:
		e.Code, e.Err = ErrCodeRemoteRejected, ErrRemoteRejected
	default:
		e.Code, e.Err = ErrCodeRemoteFailure, ErrRemoteFailure
	}
	e.Message = http.StatusText(status)
	if detail != "" {
		e.Message = detail
	}
	return e
}

// DetailOrDefault returns the remote detail message carried by err, or fallback.
func DetailOrDefault(err error, fallback string) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Detail != "" {
		return remoteErr.Detail
	}
	return fallback
}
