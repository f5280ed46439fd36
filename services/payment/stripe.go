package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
)

const (
	defaultPollInterval   = 2 * time.Second
	defaultConfirmTimeout = 30 * time.Second
)

// intentAPI is the slice of the Stripe client the adapter drives.
type intentAPI interface {
	Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeAdapter is the embedded card provider. Initialization goes through
// the platform API (which creates the intent and returns its client secret);
// confirmation talks to Stripe directly, not through the platform.
type StripeAdapter struct {
	Platform platform.Client
	Intents  intentAPI
	Logger   *zap.Logger

	PollInterval   time.Duration
	ConfirmTimeout time.Duration
}

func NewStripeAdapter(platformClient platform.Client, apiKey string, logger *zap.Logger) *StripeAdapter {
	return &StripeAdapter{
		Platform:       platformClient,
		Intents:        &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: apiKey},
		Logger:         logger,
		PollInterval:   defaultPollInterval,
		ConfirmTimeout: defaultConfirmTimeout,
	}
}

func (a *StripeAdapter) Provider() models.PaymentProvider {
	return models.ProviderStripe
}

func (a *StripeAdapter) Initialize(ctx context.Context, token, bookingID, currency string) (*models.PaymentIntent, error) {
	resp, err := a.Platform.CreatePayment(ctx, token, models.CreatePaymentRequest{
		BookingID: bookingID,
		Provider:  string(models.ProviderStripe),
		Currency:  currency,
	})
	if err != nil {
		a.Logger.Warn("stripe intent creation failed", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, newError(CodeInit, initMessage(err))
	}
	if resp.ClientSecret == "" {
		return nil, newError(CodeInit, "No client secret received")
	}

	providerID := resp.TransactionID
	if providerID == "" {
		providerID = intentIDFromSecret(resp.ClientSecret)
	}

	return &models.PaymentIntent{
		BookingID:         bookingID,
		Provider:          models.ProviderStripe,
		Currency:          currency,
		ClientSecret:      resp.ClientSecret,
		ProviderPaymentID: providerID,
		Status:            models.IntentPendingConfirmation,
	}, nil
}

// Confirm submits the payment method and waits for Stripe's verdict,
// resolving requires-action outcomes by polling within ConfirmTimeout.
func (a *StripeAdapter) Confirm(ctx context.Context, intent *models.PaymentIntent, paymentMethodID string) (*models.PaymentConfirmation, error) {
	id := intent.ProviderPaymentID
	if id == "" {
		id = intentIDFromSecret(intent.ClientSecret)
	}
	if id == "" {
		return nil, newError(CodeValidation, "Payment was not initialized")
	}

	params := &stripe.PaymentIntentConfirmParams{}
	// stripe-go v76 has no ClientSecret field on confirm params; send the
	// same client_secret form field via AddExtra.
	params.AddExtra("client_secret", intent.ClientSecret)
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}

	pi, err := a.Intents.Confirm(id, params)
	if err != nil {
		return nil, a.mapStripeError(err)
	}
	return a.awaitTerminal(ctx, intent, pi)
}

// awaitTerminal polls the intent until it settles or the confirm window
// closes. Stripe's own retry semantics apply within each call; past the
// bound a generic network error is surfaced instead of hanging.
func (a *StripeAdapter) awaitTerminal(ctx context.Context, intent *models.PaymentIntent, pi *stripe.PaymentIntent) (*models.PaymentConfirmation, error) {
	deadline := time.Now().Add(a.ConfirmTimeout)

	for {
		switch pi.Status {
		case stripe.PaymentIntentStatusSucceeded:
			return &models.PaymentConfirmation{
				BookingID:       intent.BookingID,
				Provider:        models.ProviderStripe,
				PaymentIntentID: pi.ID,
				TransactionID:   pi.ID,
			}, nil
		case stripe.PaymentIntentStatusRequiresPaymentMethod:
			msg := "Your card was declined."
			if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
				msg = pi.LastPaymentError.Msg
			}
			return nil, newError(CodeDeclined, msg)
		case stripe.PaymentIntentStatusCanceled:
			return nil, newError(CodeDeclined, "Payment was canceled.")
		}

		// requires_action, requires_confirmation or processing: keep polling.
		if time.Now().After(deadline) {
			a.Logger.Warn("stripe confirm timed out",
				zap.String("paymentIntentID", pi.ID),
				zap.String("status", string(pi.Status)),
			)
			return nil, newError(CodeTimeout, "Payment failed. Please try again.")
		}

		select {
		case <-ctx.Done():
			return nil, newError(CodeNetwork, "Payment failed. Please try again.")
		case <-time.After(a.PollInterval):
		}

		refreshed, err := a.Intents.Get(pi.ID, &stripe.PaymentIntentParams{
			ClientSecret: stripe.String(intent.ClientSecret),
		})
		if err != nil {
			return nil, a.mapStripeError(err)
		}
		pi = refreshed
	}
}

func (a *StripeAdapter) mapStripeError(err error) error {
	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		a.Logger.Warn("stripe request failed", zap.Error(err))
		return newError(CodeNetwork, "Payment failed. Please try again.")
	}

	msg := sErr.Msg
	if msg == "" {
		msg = "Payment failed. Please try again."
	}

	switch sErr.Code {
	case stripe.ErrorCodeCardDeclined, stripe.ErrorCodeExpiredCard,
		stripe.ErrorCodeIncorrectCVC, stripe.ErrorCodeIncorrectNumber,
		stripe.ErrorCodeProcessingError:
		return newError(CodeDeclined, msg)
	}
	if sErr.Type == stripe.ErrorTypeInvalidRequest {
		return newError(CodeValidation, msg)
	}
	return newError(CodeNetwork, msg)
}

func initMessage(err error) string {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.Code == platform.CodeBadRequest {
		return apiErr.Message
	}
	return "Failed to initialize payment"
}

// intentIDFromSecret derives the payment intent ID from its client secret
// ("pi_xxx_secret_yyy" -> "pi_xxx").
func intentIDFromSecret(secret string) string {
	if i := strings.Index(secret, "_secret"); i > 0 {
		return secret[:i]
	}
	return ""
}
