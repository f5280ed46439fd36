package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/services/payment"
)

// StartSession resolves the booking and opens a checkout session for it.
// Already-paid bookings never reach payment UI: they surface as a redirect.
func (s *DefaultCheckoutService) StartSession(ctx context.Context, token, bookingID string) (*models.CheckoutSession, error) {
	outcome, err := s.Resolver.Load(ctx, token, bookingID)
	if err != nil {
		return nil, err
	}
	if outcome.AlreadyPaid {
		return nil, NewAlreadyPaidError(bookingID)
	}

	session := &models.CheckoutSession{
		SessionID: uuid.New().String(),
		Booking:   *outcome.Booking,
		State:     models.StateReady,
		CreatedAt: time.Now(),
	}
	if err := s.Store.Save(ctx, session); err != nil {
		s.Logger.Error("failed to store checkout session", zap.Error(err))
		return nil, NewNetworkError()
	}

	s.Logger.Info("checkout session started",
		zap.String("sessionID", session.SessionID),
		zap.String("bookingID", bookingID),
	)
	return session, nil
}

// GetSession returns the current session state.
func (s *DefaultCheckoutService) GetSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// SelectProvider records the user's provider choice. Switching providers
// discards any tracked intent and clears prior error text; the abandoned
// intent itself is not canceled server-side.
func (s *DefaultCheckoutService) SelectProvider(ctx context.Context, sessionID string, provider models.PaymentProvider) (*models.CheckoutSession, error) {
	if !provider.Valid() {
		return nil, NewInvalidStateError("unsupported payment provider")
	}

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == models.StateDone {
		return nil, NewInvalidStateError("payment already completed")
	}

	session.Provider = provider
	session.Intent = nil
	session.Confirmation = nil
	session.LastError = ""
	session.State = models.StateProviderSelected

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, NewNetworkError()
	}
	return session, nil
}

// Initialize creates the payment intent for the selected provider. The
// per-session lock rejects concurrent attempts outright; a session that
// already holds a pending intent for the same provider is returned as-is, so
// repeated clicks can never create a second intent for one booking.
func (s *DefaultCheckoutService) Initialize(ctx context.Context, token, sessionID string) (*models.CheckoutSession, error) {
	ok, err := s.Store.AcquireInitLock(ctx, sessionID)
	if err != nil {
		s.Logger.Error("failed to acquire init lock", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, NewNetworkError()
	}
	if !ok {
		return nil, NewInitInFlightError()
	}
	defer func() {
		if err := s.Store.ReleaseInitLock(ctx, sessionID); err != nil {
			s.Logger.Warn("failed to release init lock", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	// Re-read under the lock: an earlier holder may have initialized already.
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Provider == "" {
		return nil, NewInvalidStateError("select a payment provider first")
	}
	if session.State == models.StateDone {
		return nil, NewInvalidStateError("payment already completed")
	}
	if session.HasPendingIntent() && session.Intent.Provider == session.Provider {
		return session, nil
	}

	adapter := s.adapterFor(session.Provider)
	intent, err := adapter.Initialize(ctx, token, session.Booking.ID, session.Provider.DefaultCurrency())
	if err != nil {
		msg := payment.UserMessage(err, "Failed to initialize payment")
		session.LastError = msg
		session.State = models.StateProviderSelected
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			s.Logger.Error("failed to store session after init error", zap.Error(saveErr))
		}
		return nil, NewProviderInitError(msg)
	}

	session.Intent = intent
	session.LastError = ""
	if session.Provider == models.ProviderBkash {
		session.State = models.StateAwaitingWallet
		s.Wallet.Launch(intent)
	} else {
		session.State = models.StateAwaitingConfirmation
	}

	if err := s.Store.Save(ctx, session); err != nil {
		s.Logger.Error("failed to store initialized session", zap.Error(err))
		return nil, NewNetworkError()
	}

	s.Logger.Info("payment intent initialized",
		zap.String("sessionID", sessionID),
		zap.String("provider", string(session.Provider)),
	)
	return session, nil
}

// ConfirmCard drives the embedded provider to a verdict for the session's
// pending card intent. On provider-level success the session reaches its
// terminal state immediately; reconciliation is attempted but its outcome
// does not gate the result.
func (s *DefaultCheckoutService) ConfirmCard(ctx context.Context, token, sessionID, paymentMethodID string) (*models.CheckoutSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.StateAwaitingConfirmation || session.Provider != models.ProviderStripe || session.Intent == nil {
		return nil, NewInvalidStateError("no card payment awaiting confirmation")
	}

	conf, err := s.Card.Confirm(ctx, session.Intent, paymentMethodID)
	if err != nil {
		msg := payment.UserMessage(err, "Payment failed. Please try again.")
		// The rendered surface stays confirmable: no state change, manual retry.
		session.LastError = msg
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			s.Logger.Error("failed to store session after confirm error", zap.Error(saveErr))
		}
		s.Events.PaymentFailed(sessionID, msg)
		return nil, NewConfirmError(msg)
	}

	session.Intent.Status = models.IntentSucceeded
	session.Confirmation = conf
	session.LastError = ""
	session.State = models.StateDone

	if err := s.Reconciler.Reconcile(ctx, token, conf); err != nil {
		// The charge is confirmed; the backend record catches up out-of-band.
		s.Logger.Warn("proceeding to success despite reconcile failure",
			zap.String("sessionID", sessionID),
			zap.String("bookingID", conf.BookingID),
		)
	}

	if err := s.Store.Save(ctx, session); err != nil {
		s.Logger.Error("failed to store completed session", zap.Error(err))
	}
	s.Events.PaymentSucceeded(sessionID, conf)
	return session, nil
}

// WalletReturn handles the user's "I've completed payment" signal for the
// wallet flow. Client-side state is never trusted here: the booking is
// re-queried and only an observed paid status advances the session; anything
// else leaves it waiting.
func (s *DefaultCheckoutService) WalletReturn(ctx context.Context, token, sessionID string) (*models.CheckoutSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.StateAwaitingWallet || session.Intent == nil {
		return nil, NewInvalidStateError("no wallet payment in progress")
	}

	outcome, err := s.Resolver.Load(ctx, token, session.Booking.ID)
	if err != nil {
		return nil, err
	}
	if !outcome.AlreadyPaid {
		s.Logger.Info("wallet payment not yet observed",
			zap.String("sessionID", sessionID),
			zap.String("bookingID", session.Booking.ID),
		)
		return session, nil
	}

	session.Booking = *outcome.Booking
	session.Intent.Status = models.IntentSucceeded
	session.Confirmation = &models.PaymentConfirmation{
		BookingID:       session.Booking.ID,
		Provider:        models.ProviderBkash,
		PaymentIntentID: session.Intent.ProviderPaymentID,
		TransactionID:   session.Intent.ProviderPaymentID,
	}
	session.LastError = ""
	session.State = models.StateDone

	if err := s.Store.Save(ctx, session); err != nil {
		s.Logger.Error("failed to store completed session", zap.Error(err))
	}
	s.Events.PaymentSucceeded(sessionID, session.Confirmation)
	return session, nil
}

// CancelSession drops the session state. In-flight intents are left to the
// platform; nothing is canceled provider-side from here.
func (s *DefaultCheckoutService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultCheckoutService) adapterFor(provider models.PaymentProvider) payment.Adapter {
	if provider == models.ProviderBkash {
		return s.Wallet
	}
	return s.Card
}
