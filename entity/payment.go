package entity

import "time"

const PaymentStatusSuccess = "success"

type Payment struct {
	ID        string    `json:"paymentId" db:"payment_id"`
	TicketID  *string   `json:"ticketId,omitempty" db:"ticket_id"`
	UserID    string    `json:"userId" db:"user_id"`
	EventID   string    `json:"eventId" db:"event_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Tickets   int       `json:"tickets" db:"tickets"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"date" db:"created_at"`
}
