// Package platform is the HTTP client for the remote platform API, the
// backend that owns all durable state (users, properties, bookings,
// payments). The checkout service never persists domain state itself; it
// reads and mutates it through this client only. The caller's bearer token
// is passed explicitly on every call rather than held in ambient state.
package platform

import (
	"context"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

// Client defines the slice of the platform API the checkout flow consumes.
type Client interface {
	// GetBooking fetches one booking record.
	GetBooking(ctx context.Context, token, bookingID string) (*models.Booking, error)

	// CreatePayment asks the platform to create a provider payment intent
	// for a booking. The response carries a client secret (stripe) or a
	// hosted payment URL (bkash).
	CreatePayment(ctx context.Context, token string, req models.CreatePaymentRequest) (*models.CreatePaymentResponse, error)

	// InitiateBkash starts a wallet payment via the bKash initiate endpoint.
	// The matching execute/callback endpoints are driven by the wallet
	// provider's own redirect, not by this client.
	InitiateBkash(ctx context.Context, token, bookingID, currency string) (*models.CreatePaymentResponse, error)

	// ConfirmStripePayment reports a provider-confirmed charge back to the
	// platform so durable booking state can be updated. The platform is
	// expected to be idempotent on the payment intent ID.
	ConfirmStripePayment(ctx context.Context, token, paymentIntentID, bookingID string) error
}
