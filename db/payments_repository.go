package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"eventtickets/entity"
)

type PaymentsPostgresRepository struct {
	db *sqlx.DB
}

func NewPaymentsPostgresRepository(db *sqlx.DB) *PaymentsPostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &PaymentsPostgresRepository{db: db}
}

// Add records a payment. A second payment for the same ticket is ignored,
// so redelivered TicketBooked events are harmless.
func (r *PaymentsPostgresRepository) Add(ctx context.Context, payment entity.Payment) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO
			payments (payment_id, ticket_id, user_id, event_id, amount, tickets, status, created_at)
		VALUES
			(:payment_id, :ticket_id, :user_id, :event_id, :amount, :tickets, :status, :created_at)
		ON CONFLICT DO NOTHING
	`, payment)
	if err != nil {
		return fmt.Errorf("could not add payment %s: %w", payment.ID, err)
	}

	return nil
}

func (r *PaymentsPostgresRepository) GetByTicketID(ctx context.Context, ticketID string) (entity.Payment, error) {
	var payment entity.Payment
	err := r.db.GetContext(ctx, &payment, `
		SELECT payment_id, ticket_id, user_id, event_id, amount, tickets, status, created_at
		FROM payments
		WHERE ticket_id = $1
	`, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Payment{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Payment{}, fmt.Errorf("could not get payment for ticket %s: %w", ticketID, err)
	}

	return payment, nil
}
