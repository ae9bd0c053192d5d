package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type TicketBooked_v1 struct {
	Header EventHeader `json:"header"`

	TicketID      string  `json:"ticket_id"`
	EventID       string  `json:"event_id"`
	UserID        string  `json:"user_id"`
	Email         string  `json:"email"`
	Quantity      int     `json:"quantity"`
	PaymentMethod string  `json:"payment_method"`
	PaidAmount    float64 `json:"paid_amount"`
}

func NewTicketBooked(ticket Ticket) TicketBooked_v1 {
	return TicketBooked_v1{
		Header:        NewEventHeaderWithIdempotencyKey(ticket.ID),
		TicketID:      ticket.ID,
		EventID:       ticket.EventID,
		UserID:        ticket.UserID,
		Email:         ticket.Email,
		Quantity:      ticket.Quantity,
		PaymentMethod: ticket.PaymentMethod,
		PaidAmount:    ticket.PaidAmount,
	}
}

type EventCreated_v1 struct {
	Header EventHeader `json:"header"`

	EventID          string    `json:"event_id"`
	Name             string    `json:"name"`
	Date             time.Time `json:"date"`
	AvailableTickets int       `json:"available_tickets"`
	MaxPerPerson     int       `json:"max_per_person"`
}
