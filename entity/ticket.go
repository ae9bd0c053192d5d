package entity

import "time"

type Ticket struct {
	ID             string    `json:"_id" db:"ticket_id"`
	EventID        string    `json:"eventId" db:"event_id"`
	UserID         string    `json:"userId" db:"user_id"`
	Email          string    `json:"email" db:"email"`
	Quantity       int       `json:"tickets" db:"quantity"`
	PaymentMethod  string    `json:"paymentMethod" db:"payment_method"`
	PaidAmount     float64   `json:"paidAmount" db:"paid_amount"`
	QR             string    `json:"qr" db:"qr"`
	IdempotencyKey *string   `json:"-" db:"idempotency_key"`
	CreatedAt      time.Time `json:"date" db:"created_at"`
}

// TicketWithEvent is a ledger entry joined with the event it was booked for.
type TicketWithEvent struct {
	Ticket
	EventName        string `json:"eventName" db:"event_name"`
	EventDescription string `json:"eventDescription" db:"event_description"`
	Location         string `json:"location" db:"event_location"`
}
