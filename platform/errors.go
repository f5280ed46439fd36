package platform

import (
	"errors"
	"fmt"
)

// Error codes for platform API failures.
const (
	CodeNotFound     = "notFound"
	CodeUnauthorized = "unauthorized"
	CodeBadRequest   = "badRequest"
	CodeNetwork      = "network"
)

// APIError is a failed call to the platform API.
type APIError struct {
	Code    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newAPIError(code string, status int, msg string) *APIError {
	return &APIError{Code: code, Status: status, Message: msg}
}

// IsNotFound reports whether err is a 404 from the platform API.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsUnauthorized reports whether err is a 401/403 from the platform API.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	return hasCode(err, CodeNetwork)
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
