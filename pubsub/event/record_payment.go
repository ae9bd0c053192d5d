package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"eventtickets/entity"
)

// RecordPaymentHandler stores the stub payment of a booked ticket. Payments
// are unique per ticket, so redelivered events don't record it twice.
func (h Handler) RecordPaymentHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"RecordPaymentHandler",
		func(ctx context.Context, event *entity.TicketBooked_v1) error {
			log.FromContext(ctx).WithField("ticket_id", event.TicketID).Info("Recording payment")

			ticketID := event.TicketID
			err := h.paymentsRepo.Add(ctx, entity.Payment{
				ID:        uuid.NewString(),
				TicketID:  &ticketID,
				UserID:    event.UserID,
				EventID:   event.EventID,
				Amount:    event.PaidAmount,
				Tickets:   event.Quantity,
				Status:    entity.PaymentStatusSuccess,
				CreatedAt: h.clock.Now(),
			})
			if err != nil {
				return fmt.Errorf("could not record payment of ticket %s: %w", event.TicketID, err)
			}

			return nil
		},
	)
}
