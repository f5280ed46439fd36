package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
)

// LoadOutcome is the result of resolving a booking for checkout. AlreadyPaid
// is distinct from normal success: the shell must navigate away instead of
// rendering payment UI.
type LoadOutcome struct {
	Booking     *models.Booking
	AlreadyPaid bool
	RedirectTo  string
}

// BookingResolver fetches and validates the booking a checkout session is
// for. Read-only; retries are manual, never automatic.
type BookingResolver interface {
	Load(ctx context.Context, token, bookingID string) (*LoadOutcome, error)
}

// DefaultBookingResolver resolves bookings through the platform API.
type DefaultBookingResolver struct {
	Platform platform.Client
	Logger   *zap.Logger
}

func NewBookingResolver(client platform.Client, logger *zap.Logger) *DefaultBookingResolver {
	return &DefaultBookingResolver{Platform: client, Logger: logger}
}

func (r *DefaultBookingResolver) Load(ctx context.Context, token, bookingID string) (*LoadOutcome, error) {
	booking, err := r.Platform.GetBooking(ctx, token, bookingID)
	if err != nil {
		switch {
		case platform.IsNotFound(err):
			return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
		case platform.IsUnauthorized(err):
			return nil, NewUnauthorizedError("/checkout/" + bookingID)
		default:
			r.Logger.Warn("booking load failed", zap.String("bookingID", bookingID), zap.Error(err))
			return nil, NewNetworkError()
		}
	}

	if booking.IsPaid() {
		r.Logger.Info("booking already paid, redirecting away", zap.String("bookingID", bookingID))
		return &LoadOutcome{Booking: booking, AlreadyPaid: true, RedirectTo: "/dashboard"}, nil
	}

	return &LoadOutcome{Booking: booking}, nil
}
