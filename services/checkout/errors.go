package checkout

import (
	"errors"
	"fmt"
)

// Checkout error codes, matching the flow's failure taxonomy.
const (
	CodeNotFound       = "notFound"
	CodeUnauthorized   = "unauthorized"
	CodeAlreadyPaid    = "alreadyPaid"
	CodeInvalidState   = "invalidState"
	CodeInitInFlight   = "initializationInFlight"
	CodeProviderInit   = "providerInitError"
	CodeConfirm        = "confirmError"
	CodeNetwork        = "networkError"
	CodeSessionExpired = "sessionExpired"
)

// CheckoutError carries a machine code, plain user-visible text and an
// optional route the shell should send the user to.
type CheckoutError struct {
	Code     string
	Message  string
	Redirect string
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &CheckoutError{Code: CodeNotFound, Message: msg, Redirect: "/dashboard"}
}

func NewUnauthorizedError(returnPath string) error {
	return &CheckoutError{
		Code:     CodeUnauthorized,
		Message:  "Please login to continue",
		Redirect: "/login?redirect=" + returnPath,
	}
}

func NewAlreadyPaidError(bookingID string) error {
	return &CheckoutError{
		Code:     CodeAlreadyPaid,
		Message:  fmt.Sprintf("booking %s is already paid", bookingID),
		Redirect: "/dashboard",
	}
}

func NewInvalidStateError(msg string) error {
	return &CheckoutError{Code: CodeInvalidState, Message: msg}
}

func NewInitInFlightError() error {
	return &CheckoutError{Code: CodeInitInFlight, Message: "payment initialization already in progress"}
}

func NewProviderInitError(msg string) error {
	if msg == "" {
		msg = "Failed to initialize payment"
	}
	return &CheckoutError{Code: CodeProviderInit, Message: msg}
}

func NewConfirmError(msg string) error {
	if msg == "" {
		msg = "Payment failed. Please try again."
	}
	return &CheckoutError{Code: CodeConfirm, Message: msg}
}

func NewNetworkError() error {
	return &CheckoutError{Code: CodeNetwork, Message: "Something went wrong. Please try again."}
}

func NewSessionExpiredError() error {
	return &CheckoutError{Code: CodeSessionExpired, Message: "checkout session not found or expired"}
}

// ErrorCode extracts the checkout error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var ce *CheckoutError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
