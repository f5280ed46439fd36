package models

import "time"

// CheckoutState is the orchestrator's position in the checkout flow.
type CheckoutState string

const (
	// StateReady: booking loaded, no provider chosen yet.
	StateReady CheckoutState = "ready"
	// StateProviderSelected: a provider is chosen; initialization may begin.
	StateProviderSelected CheckoutState = "provider_selected"
	// StateAwaitingConfirmation: an embedded intent exists and the card
	// surface may be confirmed.
	StateAwaitingConfirmation CheckoutState = "awaiting_confirmation"
	// StateAwaitingWallet: the wallet URL was issued; completion is only
	// observable by re-querying the booking on the user's signal.
	StateAwaitingWallet CheckoutState = "awaiting_wallet"
	// StateDone: the provider confirmed the charge. Reconciliation has been
	// attempted; its outcome does not gate this state.
	StateDone CheckoutState = "done"
)

// CheckoutSession holds context for one checkout flow between booking load
// and payment completion. It is cached with a TTL, never persisted.
type CheckoutSession struct {
	SessionID string          `json:"sessionId"`
	Booking   Booking         `json:"booking"`
	State     CheckoutState   `json:"state"`
	Provider  PaymentProvider `json:"provider,omitempty"`
	Intent    *PaymentIntent  `json:"intent,omitempty"`
	// LastError is plain user-visible text, never a raw provider payload.
	LastError     string               `json:"lastError,omitempty"`
	Confirmation  *PaymentConfirmation `json:"confirmation,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// HasPendingIntent reports whether an intent is awaiting confirmation. At
// most one intent per session may be in this status at any time.
func (s *CheckoutSession) HasPendingIntent() bool {
	return s.Intent != nil && s.Intent.Status == IntentPendingConfirmation
}
