package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
)

func TestBkashInitialize(t *testing.T) {
	plat := &stubPlatform{bkashResp: &models.CreatePaymentResponse{
		PaymentID: "TR0011",
		BkashURL:  "https://sandbox.bkash.test/pay/TR0011",
	}}
	adapter := NewBkashAdapter(plat, zap.NewNop())

	intent, err := adapter.Initialize(context.Background(), "tok", "B2", "BDT")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderBkash, intent.Provider)
	assert.Equal(t, "https://sandbox.bkash.test/pay/TR0011", intent.RedirectURL)
	assert.Equal(t, "TR0011", intent.ProviderPaymentID)
	assert.Empty(t, intent.ClientSecret)
}

func TestBkashInitializeMissingURL(t *testing.T) {
	plat := &stubPlatform{bkashResp: &models.CreatePaymentResponse{PaymentID: "TR0011"}}
	adapter := NewBkashAdapter(plat, zap.NewNop())

	_, err := adapter.Initialize(context.Background(), "tok", "B2", "BDT")
	require.Error(t, err)
	assert.True(t, IsInit(err))
	assert.Equal(t, "No bKash URL received", UserMessage(err, ""))
}

func TestBkashInitializeSurfacesPlatformRejection(t *testing.T) {
	plat := &stubPlatform{bkashErr: &platform.APIError{
		Code:    platform.CodeBadRequest,
		Status:  400,
		Message: "Invalid booking",
	}}
	adapter := NewBkashAdapter(plat, zap.NewNop())

	_, err := adapter.Initialize(context.Background(), "tok", "B2", "BDT")
	assert.Equal(t, "Invalid booking", UserMessage(err, ""))
}

func TestBkashLaunchReturnsHostedURL(t *testing.T) {
	adapter := NewBkashAdapter(&stubPlatform{}, zap.NewNop())

	url := adapter.Launch(&models.PaymentIntent{
		BookingID:         "B2",
		Provider:          models.ProviderBkash,
		RedirectURL:       "https://sandbox.bkash.test/pay/TR0011",
		ProviderPaymentID: "TR0011",
	})
	assert.Equal(t, "https://sandbox.bkash.test/pay/TR0011", url)
}
