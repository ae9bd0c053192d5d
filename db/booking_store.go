package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"eventtickets/booking"
	"eventtickets/entity"
	"eventtickets/pubsub/bus"
	"eventtickets/pubsub/outbox"
)

// BookingStore runs a booking in one transaction. The event row is locked
// with SELECT ... FOR UPDATE, so bookings of the same event are serialized
// and both the inventory and the per-person quota checks stay valid until commit.
type BookingStore struct {
	db *sqlx.DB
}

func NewBookingStore(db *sqlx.DB) *BookingStore {
	if db == nil {
		panic("db is nil")
	}

	return &BookingStore{db: db}
}

func (s *BookingStore) InTx(ctx context.Context, fn func(ctx context.Context, tx booking.StoreTx) error) error {
	return UpdateInTx(
		ctx,
		s.db,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			return fn(ctx, bookingTx{tx: tx})
		},
	)
}

type bookingTx struct {
	tx *sqlx.Tx
}

func (b bookingTx) TicketByIdempotencyKey(ctx context.Context, key string) (entity.Ticket, error) {
	var ticket entity.Ticket
	err := b.tx.GetContext(ctx, &ticket, `
		SELECT ticket_id, event_id, user_id, email, quantity, payment_method, paid_amount, qr, idempotency_key, created_at
		FROM tickets
		WHERE idempotency_key = $1
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Ticket{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not get ticket by idempotency key: %w", err)
	}

	return ticket, nil
}

func (b bookingTx) EventForUpdate(ctx context.Context, eventID string) (entity.Event, error) {
	var event entity.Event
	err := b.tx.GetContext(ctx, &event, `
		SELECT event_id, name, event_date, location, description, available_tickets, max_per_person, price
		FROM events
		WHERE event_id = $1
		FOR UPDATE
	`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Event{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not get event %s: %w", eventID, err)
	}

	return event, nil
}

func (b bookingTx) BookedQuantity(ctx context.Context, eventID, userID string) (int, error) {
	var booked int
	err := b.tx.GetContext(ctx, &booked, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM tickets
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return 0, fmt.Errorf("could not get booked tickets count: %w", err)
	}

	return booked, nil
}

func (b bookingTx) InsertTicket(ctx context.Context, ticket entity.Ticket) error {
	_, err := b.tx.NamedExecContext(ctx, `
		INSERT INTO
			tickets (ticket_id, event_id, user_id, email, quantity, payment_method, paid_amount, qr, idempotency_key, created_at)
		VALUES
			(:ticket_id, :event_id, :user_id, :email, :quantity, :payment_method, :paid_amount, :qr, :idempotency_key, :created_at)
	`, ticket)
	if isErrorUniqueViolation(err) && ticket.IdempotencyKey != nil {
		// a booking of another event committed the key after our lookup
		return entity.NewReplayMismatchError()
	}
	if err != nil {
		return fmt.Errorf("could not add ticket: %w", err)
	}

	return nil
}

func (b bookingTx) DecrementAvailableTickets(ctx context.Context, eventID string, quantity int) error {
	res, err := b.tx.ExecContext(ctx, `
		UPDATE events
		SET available_tickets = available_tickets - $2
		WHERE event_id = $1 AND available_tickets >= $2
	`, eventID, quantity)
	if err != nil {
		return fmt.Errorf("could not decrement available tickets: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return entity.ErrInsufficientInventory
	}

	return nil
}

func (b bookingTx) PublishTicketBooked(ctx context.Context, event entity.TicketBooked_v1) error {
	outboxPublisher, err := outbox.NewPublisherForDb(ctx, b.tx)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	eventBus, err := bus.NewEventBus(outboxPublisher)
	if err != nil {
		return fmt.Errorf("could not create event bus: %w", err)
	}

	if err := eventBus.Publish(ctx, event); err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}
