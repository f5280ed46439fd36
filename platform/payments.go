package platform

import (
	"context"
	"net/http"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

// CreatePayment creates a provider payment intent for a booking.
func (c *HTTPClient) CreatePayment(ctx context.Context, token string, req models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	var out models.CreatePaymentResponse
	if err := c.doJSON(ctx, token, http.MethodPost, "/payments/create/", req, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, newAPIError(CodeBadRequest, http.StatusBadRequest, out.Error)
	}
	return &out, nil
}

// InitiateBkash starts a wallet payment through the bKash initiate endpoint.
func (c *HTTPClient) InitiateBkash(ctx context.Context, token, bookingID, currency string) (*models.CreatePaymentResponse, error) {
	req := models.CreatePaymentRequest{
		BookingID: bookingID,
		Provider:  string(models.ProviderBkash),
		Currency:  currency,
	}
	var out models.CreatePaymentResponse
	if err := c.doJSON(ctx, token, http.MethodPost, "/payments/bkash/initiate/", req, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, newAPIError(CodeBadRequest, http.StatusBadRequest, out.Error)
	}
	return &out, nil
}

type stripeConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	BookingID       string `json:"booking_id"`
}

// ConfirmStripePayment reports a provider-confirmed charge to the platform.
func (c *HTTPClient) ConfirmStripePayment(ctx context.Context, token, paymentIntentID, bookingID string) error {
	req := stripeConfirmRequest{PaymentIntentID: paymentIntentID, BookingID: bookingID}
	return c.doJSON(ctx, token, http.MethodPost, "/payments/stripe/confirm/", req, nil)
}
