package models

// PaymentProvider identifies one of the two supported payment integrations.
type PaymentProvider string

const (
	// ProviderStripe is the embedded card provider: payment details are
	// captured in an element on the page and confirmed from client code.
	ProviderStripe PaymentProvider = "stripe"
	// ProviderBkash is the wallet/redirect provider: the user completes
	// payment in a separate provider-hosted context.
	ProviderBkash PaymentProvider = "bkash"
)

// Valid reports whether p names a supported provider.
func (p PaymentProvider) Valid() bool {
	return p == ProviderStripe || p == ProviderBkash
}

// DefaultCurrency returns the currency the provider charges in.
func (p PaymentProvider) DefaultCurrency() string {
	if p == ProviderBkash {
		return "BDT"
	}
	return "USD"
}

// Payment intent statuses.
const (
	IntentInitialized         = "initialized"
	IntentPendingConfirmation = "pending-confirmation"
	IntentSucceeded           = "succeeded"
	IntentFailed              = "failed"
)

// PaymentIntent is one provider-scoped attempt to pay for one booking.
// Exactly one of ClientSecret (stripe) or RedirectURL (bkash) is set.
type PaymentIntent struct {
	BookingID    string          `json:"bookingId"`
	Provider     PaymentProvider `json:"provider"`
	Currency     string          `json:"currency"`
	ClientSecret string          `json:"clientSecret,omitempty"`
	RedirectURL  string          `json:"redirectUrl,omitempty"`
	// ProviderPaymentID is the provider's handle for the intent
	// (a Stripe payment-intent ID or a bKash paymentID).
	ProviderPaymentID string `json:"providerPaymentId,omitempty"`
	Status            string `json:"status"`
}

// PaymentConfirmation is the provider-level proof of a completed charge,
// handed to the reconciler and surfaced on the success event.
type PaymentConfirmation struct {
	BookingID       string          `json:"bookingId"`
	Provider        PaymentProvider `json:"provider"`
	PaymentIntentID string          `json:"paymentIntentId"`
	TransactionID   string          `json:"transactionId,omitempty"`
}

// CreatePaymentRequest is the platform API payload for intent creation.
type CreatePaymentRequest struct {
	BookingID string `json:"booking_id"`
	Provider  string `json:"provider"`
	Currency  string `json:"currency"`
}

// CreatePaymentResponse is the platform API answer: a client secret for the
// embedded provider or a hosted URL for the wallet provider.
type CreatePaymentResponse struct {
	PaymentID     string `json:"payment_id"`
	TransactionID string `json:"transaction_id"`
	ClientSecret  string `json:"client_secret,omitempty"`
	BkashURL      string `json:"bkash_url,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ReconcilePayload is the queued retry payload for a failed reconciliation.
type ReconcilePayload struct {
	BookingID       string `json:"bookingId"`
	PaymentIntentID string `json:"paymentIntentId"`
	AuthToken       string `json:"authToken"`
}
