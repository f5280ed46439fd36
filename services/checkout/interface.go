package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/services/payment"
)

// CheckoutService defines the interface for driving a stateful checkout
// session from booking load through payment completion.
type CheckoutService interface {
	StartSession(ctx context.Context, token, bookingID string) (*models.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	SelectProvider(ctx context.Context, sessionID string, provider models.PaymentProvider) (*models.CheckoutSession, error)
	Initialize(ctx context.Context, token, sessionID string) (*models.CheckoutSession, error)
	ConfirmCard(ctx context.Context, token, sessionID, paymentMethodID string) (*models.CheckoutSession, error)
	WalletReturn(ctx context.Context, token, sessionID string) (*models.CheckoutSession, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// EventSink receives the success/failure events the checkout flow exposes to
// the surrounding shell.
type EventSink interface {
	PaymentSucceeded(sessionID string, conf *models.PaymentConfirmation)
	PaymentFailed(sessionID, message string)
}

// LogEventSink is the default sink: it only logs.
type LogEventSink struct {
	Logger *zap.Logger
}

func (s *LogEventSink) PaymentSucceeded(sessionID string, conf *models.PaymentConfirmation) {
	s.Logger.Info("payment succeeded",
		zap.String("sessionID", sessionID),
		zap.String("bookingID", conf.BookingID),
		zap.String("provider", string(conf.Provider)),
	)
}

func (s *LogEventSink) PaymentFailed(sessionID, message string) {
	s.Logger.Warn("payment failed",
		zap.String("sessionID", sessionID),
		zap.String("message", message),
	)
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Resolver   BookingResolver
	Store      SessionStore
	Card       payment.CardAdapter
	Wallet     payment.WalletAdapter
	Reconciler ConfirmationReconciler
	Events     EventSink
	Logger     *zap.Logger
}
