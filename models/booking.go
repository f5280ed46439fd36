package models

// Booking payment statuses.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Booking lifecycle statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusPaid      = "paid"
	BookingStatusCompleted = "completed"
	BookingStatusCanceled  = "canceled"
)

// PropertySummary is the slice of a property the checkout summary renders.
type PropertySummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Location      string `json:"location"`
	FeaturedImage string `json:"featured_image,omitempty"`
	Bedrooms      int    `json:"bedrooms,omitempty"`
	Bathrooms     int    `json:"bathrooms,omitempty"`
}

// Booking is a scheduled property viewing with a payable amount. Amounts are
// decimal strings as serialized by the platform API; they are never parsed
// into floats here.
type Booking struct {
	ID        string           `json:"id"`
	Property  *PropertySummary `json:"property,omitempty"`
	VisitDate string           `json:"visit_date"`
	VisitTime string           `json:"visit_time"`

	BaseAmount  string `json:"base_amount"`
	ServiceFee  string `json:"service_fee,omitempty"`
	TaxAmount   string `json:"tax_amount,omitempty"`
	TotalAmount string `json:"total_amount"`

	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
}

// IsPaid reports whether the booking has already been paid for. A paid
// booking must never be resubmitted for payment.
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}
