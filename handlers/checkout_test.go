package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/handlers"
	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/routes"
	"github.com/eiasinprodhan/luxury-real-estate/services/checkout"
)

// fakeService scripts CheckoutService responses per operation.
type fakeService struct {
	session *models.CheckoutSession
	err     error

	lastToken     string
	lastBookingID string
	canceled      []string
}

func (f *fakeService) StartSession(ctx context.Context, token, bookingID string) (*models.CheckoutSession, error) {
	f.lastToken = token
	f.lastBookingID = bookingID
	return f.session, f.err
}

func (f *fakeService) GetSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	return f.session, f.err
}

func (f *fakeService) SelectProvider(ctx context.Context, sessionID string, provider models.PaymentProvider) (*models.CheckoutSession, error) {
	return f.session, f.err
}

func (f *fakeService) Initialize(ctx context.Context, token, sessionID string) (*models.CheckoutSession, error) {
	f.lastToken = token
	return f.session, f.err
}

func (f *fakeService) ConfirmCard(ctx context.Context, token, sessionID, paymentMethodID string) (*models.CheckoutSession, error) {
	f.lastToken = token
	return f.session, f.err
}

func (f *fakeService) WalletReturn(ctx context.Context, token, sessionID string) (*models.CheckoutSession, error) {
	return f.session, f.err
}

func (f *fakeService) CancelSession(ctx context.Context, sessionID string) error {
	f.canceled = append(f.canceled, sessionID)
	return f.err
}

func newRouter(svc checkout.CheckoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.RegisterCheckoutRoutes(router, handlers.NewCheckoutHandler(svc, zap.NewNop()))
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionFixture(state models.CheckoutState) *models.CheckoutSession {
	return &models.CheckoutSession{
		SessionID: "s1",
		Booking:   models.Booking{ID: "B1", TotalAmount: "500000"},
		State:     state,
	}
}

func TestStartCheckoutSessionCreated(t *testing.T) {
	svc := &fakeService{session: sessionFixture(models.StateReady)}
	router := newRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/checkout/session", `{"booking_id":"B1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "tok-123", svc.lastToken, "bearer token is forwarded, never stored")
	assert.Equal(t, "B1", svc.lastBookingID)

	var body struct {
		Session models.CheckoutSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.Session.SessionID)
}

func TestStartCheckoutSessionRequiresBookingID(t *testing.T) {
	router := newRouter(&fakeService{})

	w := doRequest(router, http.MethodPost, "/api/checkout/session", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartCheckoutSessionMissingAuth(t *testing.T) {
	router := newRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", strings.NewReader(`{"booking_id":"B1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "/login")
}

func TestStartCheckoutSessionAlreadyPaidConflict(t *testing.T) {
	svc := &fakeService{err: checkout.NewAlreadyPaidError("B1")}
	router := newRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/checkout/session", `{"booking_id":"B1"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/dashboard"`)
}

func TestGetCheckoutSessionExpired(t *testing.T) {
	svc := &fakeService{err: checkout.NewSessionExpiredError()}
	router := newRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/checkout/session/s1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitializePaymentInFlightConflict(t *testing.T) {
	svc := &fakeService{err: checkout.NewInitInFlightError()}
	router := newRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/checkout/session/s1/initialize", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInitializePaymentProviderError(t *testing.T) {
	svc := &fakeService{err: checkout.NewProviderInitError("No client secret received")}
	router := newRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/checkout/session/s1/initialize", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No client secret received")
}

func TestConfirmCardPaymentDeclined(t *testing.T) {
	svc := &fakeService{err: checkout.NewConfirmError("Your card was declined.")}
	router := newRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/checkout/session/s1/confirm", `{"payment_method":"pm_1"}`)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Your card was declined.")
}

func TestConfirmCardPaymentSuccessRedirect(t *testing.T) {
	done := sessionFixture(models.StateDone)
	done.Confirmation = &models.PaymentConfirmation{
		BookingID:       "B1",
		Provider:        models.ProviderStripe,
		PaymentIntentID: "pi_abc",
	}
	router := newRouter(&fakeService{session: done})

	w := doRequest(router, http.MethodPost, "/api/checkout/session/s1/confirm", `{"payment_method":"pm_1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/payment-success?booking_id=B1"`)
	assert.Contains(t, w.Body.String(), "pi_abc")
}

func TestWalletReturnStillWaiting(t *testing.T) {
	router := newRouter(&fakeService{session: sessionFixture(models.StateAwaitingWallet)})

	w := doRequest(router, http.MethodPost, "/api/checkout/session/s1/wallet/return", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"still_waiting":true`)
}

func TestWalletReturnDone(t *testing.T) {
	done := sessionFixture(models.StateDone)
	done.Confirmation = &models.PaymentConfirmation{
		BookingID: "B1",
		Provider:  models.ProviderBkash,
	}
	router := newRouter(&fakeService{session: done})

	w := doRequest(router, http.MethodPost, "/api/checkout/session/s1/wallet/return", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "still_waiting")
	assert.Contains(t, w.Body.String(), `"redirect":"/payment-success?booking_id=B1"`)
}

func TestCancelCheckoutSession(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	w := doRequest(router, http.MethodDelete, "/api/checkout/session/s1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"s1"}, svc.canceled)
}

func TestUnexpectedErrorIsOpaque(t *testing.T) {
	svc := &fakeService{err: assert.AnError}
	router := newRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/checkout/session/s1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
