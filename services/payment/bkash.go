package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
)

// BkashAdapter is the wallet/redirect provider. The user pays in a separate
// provider-hosted context; completion is reported to the platform by the
// wallet's own callback, so the adapter never observes success itself.
type BkashAdapter struct {
	Platform platform.Client
	Logger   *zap.Logger
}

func NewBkashAdapter(platformClient platform.Client, logger *zap.Logger) *BkashAdapter {
	return &BkashAdapter{Platform: platformClient, Logger: logger}
}

func (a *BkashAdapter) Provider() models.PaymentProvider {
	return models.ProviderBkash
}

func (a *BkashAdapter) Initialize(ctx context.Context, token, bookingID, currency string) (*models.PaymentIntent, error) {
	resp, err := a.Platform.InitiateBkash(ctx, token, bookingID, currency)
	if err != nil {
		a.Logger.Warn("bkash initiate failed", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, newError(CodeInit, initMessage(err))
	}
	if resp.BkashURL == "" {
		return nil, newError(CodeInit, "No bKash URL received")
	}

	providerID := resp.TransactionID
	if providerID == "" {
		providerID = resp.PaymentID
	}

	return &models.PaymentIntent{
		BookingID:         bookingID,
		Provider:          models.ProviderBkash,
		Currency:          currency,
		RedirectURL:       resp.BkashURL,
		ProviderPaymentID: providerID,
		Status:            models.IntentPendingConfirmation,
	}, nil
}

// Launch hands back the hosted payment URL without waiting for anything.
// Whether the user ever completes payment there is unknowable from here.
func (a *BkashAdapter) Launch(intent *models.PaymentIntent) string {
	a.Logger.Info("bkash payment window issued",
		zap.String("bookingID", intent.BookingID),
		zap.String("paymentID", intent.ProviderPaymentID),
	)
	return intent.RedirectURL
}
