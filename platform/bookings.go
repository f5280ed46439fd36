package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

// GetBooking fetches one booking record for the token's owner.
func (c *HTTPClient) GetBooking(ctx context.Context, token, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/%s/", bookingID)
	if err := c.doJSON(ctx, token, http.MethodGet, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
