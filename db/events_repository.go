package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"eventtickets/entity"
	"eventtickets/pubsub/bus"
	"eventtickets/pubsub/outbox"
)

type EventsPostgresRepository struct {
	db *sqlx.DB
}

func NewEventsPostgresRepository(db *sqlx.DB) *EventsPostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &EventsPostgresRepository{db: db}
}

// Add stores the event and publishes EventCreated_v1 in the same transaction.
func (r *EventsPostgresRepository) Add(ctx context.Context, event entity.Event) error {
	return UpdateInTx(
		ctx,
		r.db,
		sql.LevelReadCommitted,
		func(ctx context.Context, tx *sqlx.Tx) error {
			_, err := tx.NamedExecContext(ctx, `
				INSERT INTO
					events (event_id, name, event_date, location, description, available_tickets, max_per_person, price)
				VALUES
					(:event_id, :name, :event_date, :location, :description, :available_tickets, :max_per_person, :price)
			`, event)
			if err != nil {
				return fmt.Errorf("could not add event: %w", err)
			}

			outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
			if err != nil {
				return fmt.Errorf("could not create outbox publisher: %w", err)
			}

			eventBus, err := bus.NewEventBus(outboxPublisher)
			if err != nil {
				return fmt.Errorf("could not create event bus: %w", err)
			}

			err = eventBus.Publish(ctx, entity.EventCreated_v1{
				Header:           entity.NewEventHeaderWithIdempotencyKey(event.ID),
				EventID:          event.ID,
				Name:             event.Name,
				Date:             event.Date,
				AvailableTickets: event.AvailableTickets,
				MaxPerPerson:     event.MaxPerPerson,
			})
			if err != nil {
				return fmt.Errorf("could not publish event: %w", err)
			}

			return nil
		},
	)
}

func (r *EventsPostgresRepository) Get(ctx context.Context, eventID string) (entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `
		SELECT event_id, name, event_date, location, description, available_tickets, max_per_person, price
		FROM events
		WHERE event_id = $1
	`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Event{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not get event %s: %w", eventID, err)
	}

	return event, nil
}

// FindAll returns events ordered by date. A non-positive limit returns all of them.
func (r *EventsPostgresRepository) FindAll(ctx context.Context, limit int) ([]entity.Event, error) {
	query := `
		SELECT event_id, name, event_date, location, description, available_tickets, max_per_person, price
		FROM events
		ORDER BY event_date ASC, created_at ASC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	events := []entity.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("could not get events: %w", err)
	}

	return events, nil
}
