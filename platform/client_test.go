package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, zap.NewNop())
}

func TestGetBookingSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bookings/B1/", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(models.Booking{
			ID:            "B1",
			TotalAmount:   "500000",
			PaymentStatus: models.PaymentStatusUnpaid,
			Status:        models.BookingStatusPending,
		})
	})

	booking, err := client.GetBooking(context.Background(), "tok-123", "B1")
	require.NoError(t, err)
	assert.Equal(t, "B1", booking.ID)
	assert.Equal(t, "500000", booking.TotalAmount)
	assert.False(t, booking.IsPaid())
}

func TestGetBookingNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	})

	_, err := client.GetBooking(context.Background(), "tok", "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not found.", apiErr.Message)
}

func TestGetBookingUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
		})

		_, err := client.GetBooking(context.Background(), "stale", "B1")
		assert.True(t, IsUnauthorized(err), "status %d must map to unauthorized", status)
	}
}

func TestGetBookingServerErrorIsNetwork(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetBooking(context.Background(), "tok", "B1")
	assert.True(t, IsNetwork(err))
}

func TestGetBookingUnreachableHost(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", zap.NewNop())

	_, err := client.GetBooking(context.Background(), "tok", "B1")
	assert.True(t, IsNetwork(err))
}

func TestCreatePaymentReturnsClientSecret(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/create/", r.URL.Path)

		var req models.CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "B1", req.BookingID)
		assert.Equal(t, "stripe", req.Provider)
		assert.Equal(t, "USD", req.Currency)

		_ = json.NewEncoder(w).Encode(models.CreatePaymentResponse{
			PaymentID:    "pay_1",
			ClientSecret: "pi_abc_secret_xyz",
		})
	})

	resp, err := client.CreatePayment(context.Background(), "tok", models.CreatePaymentRequest{
		BookingID: "B1",
		Provider:  "stripe",
		Currency:  "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_abc_secret_xyz", resp.ClientSecret)
}

func TestCreatePaymentErrorEnvelope(t *testing.T) {
	// The platform can answer 200 with an error field in the body.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.CreatePaymentResponse{Error: "Booking already paid"})
	})

	_, err := client.CreatePayment(context.Background(), "tok", models.CreatePaymentRequest{BookingID: "B1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeBadRequest, apiErr.Code)
	assert.Equal(t, "Booking already paid", apiErr.Message)
}

func TestInitiateBkashReturnsHostedURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/bkash/initiate/", r.URL.Path)

		var req models.CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bkash", req.Provider)
		assert.Equal(t, "BDT", req.Currency)

		_ = json.NewEncoder(w).Encode(models.CreatePaymentResponse{
			PaymentID: "TR0011",
			BkashURL:  "https://sandbox.bkash.test/pay/TR0011",
		})
	})

	resp, err := client.InitiateBkash(context.Background(), "tok", "B2", "BDT")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.bkash.test/pay/TR0011", resp.BkashURL)
}

func TestConfirmStripePayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/stripe/confirm/", r.URL.Path)

		var req stripeConfirmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pi_abc", req.PaymentIntentID)
		assert.Equal(t, "B1", req.BookingID)

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	err := client.ConfirmStripePayment(context.Background(), "tok", "pi_abc", "B1")
	assert.NoError(t, err)
}

func TestConfirmStripePaymentBadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Payment not completed"}`))
	})

	err := client.ConfirmStripePayment(context.Background(), "tok", "pi_abc", "B1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeBadRequest, apiErr.Code)
	assert.Equal(t, "Payment not completed", apiErr.Message)
}
