package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"eventtickets/entity"
)

type TicketsPostgresRepository struct {
	db *sqlx.DB
}

func NewTicketsPostgresRepository(db *sqlx.DB) *TicketsPostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &TicketsPostgresRepository{db: db}
}

const ticketsWithEventQuery = `
	SELECT
		t.ticket_id, t.event_id, t.user_id, t.email, t.quantity, t.payment_method,
		t.paid_amount, t.qr, t.idempotency_key, t.created_at,
		COALESCE(e.name, '') AS event_name,
		COALESCE(e.description, '') AS event_description,
		COALESCE(e.location, '') AS event_location
	FROM tickets t
	LEFT JOIN events e ON e.event_id = t.event_id
`

func (r *TicketsPostgresRepository) FindByUserID(ctx context.Context, userID string) ([]entity.TicketWithEvent, error) {
	tickets := []entity.TicketWithEvent{}
	err := r.db.SelectContext(ctx, &tickets, ticketsWithEventQuery+`
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get tickets of user %s: %w", userID, err)
	}

	return tickets, nil
}

func (r *TicketsPostgresRepository) FindByEmail(ctx context.Context, email string) ([]entity.TicketWithEvent, error) {
	tickets := []entity.TicketWithEvent{}
	err := r.db.SelectContext(ctx, &tickets, ticketsWithEventQuery+`
		WHERE t.email = $1
		ORDER BY t.created_at DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("could not get tickets for email: %w", err)
	}

	return tickets, nil
}
