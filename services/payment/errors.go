package payment

import (
	"errors"
	"fmt"
)

// Adapter error codes.
const (
	CodeInit       = "providerInit"
	CodeDeclined   = "cardDeclined"
	CodeValidation = "validation"
	CodeNetwork    = "network"
	CodeTimeout    = "timeout"
)

// Error is a provider adapter failure. Message is already plain user-visible
// text derived from the provider's message; raw payloads stay in logs.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// UserMessage returns the user-visible text for an adapter error, or the
// given fallback for foreign errors.
func UserMessage(err error, fallback string) string {
	var pe *Error
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return fallback
}

// IsInit reports whether err happened during intent initialization.
func IsInit(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == CodeInit
}
