package entity

import "eventtickets/validation"

type BookingRequest struct {
	EventID        string  `json:"eventId" validate:"required"`
	UserID         string  `json:"userId" validate:"required"`
	Email          string  `json:"email" validate:"required"`
	Quantity       int     `json:"tickets" validate:"gte=1"`
	PaymentMethod  string  `json:"paymentMethod" validate:"required"`
	PaidAmount     float64 `json:"paidAmount" validate:"gt=0"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

func (r BookingRequest) Validate() error {
	return validateStruct(r)
}

// SameBooking reports whether ticket was booked by an identical request.
func (r BookingRequest) SameBooking(ticket Ticket) bool {
	return ticket.UserID == r.UserID &&
		ticket.EventID == r.EventID &&
		ticket.Quantity == r.Quantity
}

// NewReplayMismatchError rejects an idempotency key reused for another booking.
func NewReplayMismatchError() error {
	return &ValidationError{Fields: map[string]string{
		"idempotencyKey": validation.Message("idempotencyKey", "replay", ""),
	}}
}
