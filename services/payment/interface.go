// Package payment contains the provider adapters for the checkout flow. The
// two integrations share the initialize contract but diverge in how
// completion is observed: the embedded card adapter confirms synchronously
// with the provider, the wallet adapter hands out a hosted URL and cannot
// itself report success.
package payment

import (
	"context"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

// Adapter is the capability both providers share.
type Adapter interface {
	Provider() models.PaymentProvider

	// Initialize creates a payment intent for the booking via the platform
	// API. It must be called at most once per checkout session unless the
	// session's provider selection is reset.
	Initialize(ctx context.Context, token, bookingID, currency string) (*models.PaymentIntent, error)
}

// CardAdapter is the embedded variant: the captured payment details are
// submitted straight to the provider and the verdict is awaited in-line.
type CardAdapter interface {
	Adapter

	// Confirm submits the payment method against the intent and blocks until
	// the provider reaches a terminal verdict. Ambiguous outcomes (further
	// action required) are resolved by polling within a bounded window
	// rather than surfaced as a pending state. Re-invoking Confirm on the
	// same intent after a decline is permitted.
	Confirm(ctx context.Context, intent *models.PaymentIntent, paymentMethodID string) (*models.PaymentConfirmation, error)
}

// WalletAdapter is the redirect variant. Launch returns the provider-hosted
// URL immediately; it does not and cannot know when the user completes
// payment there.
type WalletAdapter interface {
	Adapter

	Launch(intent *models.PaymentIntent) string
}
