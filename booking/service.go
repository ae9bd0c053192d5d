package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"eventtickets/artifact"
	"eventtickets/clock"
	"eventtickets/entity"
	"eventtickets/metrics"
)

// Store runs fn inside a single transaction. Nothing written through tx is
// visible to other requests unless fn returns nil.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx StoreTx) error) error
}

type StoreTx interface {
	// TicketByIdempotencyKey returns entity.ErrNotFound when no ticket was booked with the key.
	// It is called after EventForUpdate.
	TicketByIdempotencyKey(ctx context.Context, key string) (entity.Ticket, error)
	// EventForUpdate loads the event and holds it against concurrent bookings until the tx ends.
	EventForUpdate(ctx context.Context, eventID string) (entity.Event, error)
	BookedQuantity(ctx context.Context, eventID, userID string) (int, error)
	// InsertTicket rejects an idempotency key already taken by another booking with a *entity.ValidationError.
	InsertTicket(ctx context.Context, ticket entity.Ticket) error
	// DecrementAvailableTickets returns entity.ErrInsufficientInventory when fewer than quantity tickets are left.
	DecrementAvailableTickets(ctx context.Context, eventID string, quantity int) error
	PublishTicketBooked(ctx context.Context, event entity.TicketBooked_v1) error
}

type Encoder interface {
	Encode(payload artifact.Payload) (string, error)
}

type Service struct {
	store   Store
	encoder Encoder
	clock   clock.Clock
}

func NewService(store Store, encoder Encoder, clk clock.Clock) *Service {
	if store == nil {
		panic("missing store")
	}
	if encoder == nil {
		panic("missing encoder")
	}
	if clk == nil {
		panic("missing clock")
	}

	return &Service{
		store:   store,
		encoder: encoder,
		clock:   clk,
	}
}

func (s *Service) Book(ctx context.Context, req entity.BookingRequest) (ticket entity.Ticket, err error) {
	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id": req.EventID,
		"user_id":  req.UserID,
		"tickets":  req.Quantity,
	})

	defer func() {
		metrics.BookingsTotal.WithLabelValues(bookingOutcome(err)).Inc()
	}()

	if err := req.Validate(); err != nil {
		return entity.Ticket{}, err
	}

	var replayed bool
	err = s.store.InTx(ctx, func(ctx context.Context, tx StoreTx) error {
		// locked first so requests repeating a key for the same event wait for each other
		event, err := tx.EventForUpdate(ctx, req.EventID)
		if err != nil {
			return err
		}

		if req.IdempotencyKey != "" {
			existing, err := tx.TicketByIdempotencyKey(ctx, req.IdempotencyKey)
			if err == nil {
				if !req.SameBooking(existing) {
					return entity.NewReplayMismatchError()
				}
				logger.WithField("ticket_id", existing.ID).Info("Booking already processed")
				ticket = existing
				replayed = true
				return nil
			}
			if !errors.Is(err, entity.ErrNotFound) {
				return err
			}
		}

		if req.Quantity > event.AvailableTickets {
			return entity.ErrInsufficientInventory
		}

		booked, err := tx.BookedQuantity(ctx, req.EventID, req.UserID)
		if err != nil {
			return err
		}
		if booked+req.Quantity > event.MaxPerPerson {
			return entity.ErrQuotaExceeded
		}

		now := s.clock.Now()
		newTicket := entity.Ticket{
			ID:            uuid.NewString(),
			EventID:       req.EventID,
			UserID:        req.UserID,
			Email:         req.Email,
			Quantity:      req.Quantity,
			PaymentMethod: req.PaymentMethod,
			PaidAmount:    req.PaidAmount,
			CreatedAt:     now,
		}
		if req.IdempotencyKey != "" {
			key := req.IdempotencyKey
			newTicket.IdempotencyKey = &key
		}

		newTicket.QR, err = s.encoder.Encode(artifact.Payload{
			TicketID: newTicket.ID,
			UserID:   newTicket.UserID,
			EventID:  newTicket.EventID,
			Tickets:  newTicket.Quantity,
			Date:     now,
		})
		if err != nil {
			return fmt.Errorf("could not encode ticket: %w", err)
		}

		if err := tx.InsertTicket(ctx, newTicket); err != nil {
			return err
		}

		if err := tx.DecrementAvailableTickets(ctx, req.EventID, req.Quantity); err != nil {
			return err
		}

		if err := tx.PublishTicketBooked(ctx, entity.NewTicketBooked(newTicket)); err != nil {
			return err
		}

		ticket = newTicket
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			logger.WithError(err).Info("Booking rejected")
			return entity.Ticket{}, err
		}
		logger.WithError(err).Error("Booking failed")
		return entity.Ticket{}, fmt.Errorf("%w: %w", entity.ErrStoreUnavailable, err)
	}

	if !replayed {
		metrics.TicketsBooked.Add(float64(ticket.Quantity))
		logger.WithField("ticket_id", ticket.ID).Info("Tickets booked")
	}

	return ticket, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, entity.ErrInsufficientInventory) ||
		errors.Is(err, entity.ErrQuotaExceeded) ||
		errors.Is(err, entity.ErrInvalidRequest)
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "booked"
	case errors.Is(err, entity.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, entity.ErrNotFound):
		return "event_not_found"
	case errors.Is(err, entity.ErrInsufficientInventory):
		return "insufficient_inventory"
	case errors.Is(err, entity.ErrQuotaExceeded):
		return "quota_exceeded"
	default:
		return "error"
	}
}
