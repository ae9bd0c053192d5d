package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"eventtickets/entity"
)

const ticketBookedEventName = "TicketBooked_v1"

type DataLake interface {
	GetEventsByName(ctx context.Context, name string) ([]entity.DataLakeEvent, error)
}

// PaymentRecorder is the handler recording the payment of a booked ticket.
type PaymentRecorder interface {
	Handle(ctx context.Context, event any) error
}

// MigratePayments replays every TicketBooked_v1 event from the data lake
// through the payment recorder. Recording is idempotent per ticket, so
// already recorded payments are left as they are.
func MigratePayments(ctx context.Context, dl DataLake, recorder PaymentRecorder) error {
	logger := log.FromContext(ctx)
	logger.Info("Migrating payments")

	events, err := dl.GetEventsByName(ctx, ticketBookedEventName)
	if err != nil {
		return fmt.Errorf("could not get events from data lake: %w", err)
	}

	logger.WithField("events_count", len(events)).Info("Has events to migrate")

	for _, event := range events {
		start := time.Now()

		logger := logger.WithFields(logrus.Fields{
			"event_name": event.Name,
			"event_id":   event.ID,
		})

		ticketBooked, err := unmarshalDataLakeEvent[entity.TicketBooked_v1](event)
		if err != nil {
			return err
		}

		if err := recorder.Handle(ctx, ticketBooked); err != nil {
			return fmt.Errorf("could not migrate event %s (%s): %w", event.ID, event.Name, err)
		}

		logger.WithField("duration", time.Since(start)).Debug("Event migrated")
	}

	return nil
}

func unmarshalDataLakeEvent[T any](event entity.DataLakeEvent) (*T, error) {
	eventInstance := new(T)

	err := json.Unmarshal(event.Payload, eventInstance)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal event %s: %w", event.Name, err)
	}

	return eventInstance, nil
}
