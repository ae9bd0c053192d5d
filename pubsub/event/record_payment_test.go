package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventtickets/clock"
	"eventtickets/entity"
)

type paymentsRepoMock struct {
	lock     sync.Mutex
	payments map[string]entity.Payment
	err      error
}

func (m *paymentsRepoMock) Add(ctx context.Context, payment entity.Payment) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return m.err
	}
	if m.payments == nil {
		m.payments = map[string]entity.Payment{}
	}
	if _, ok := m.payments[*payment.TicketID]; ok {
		return nil
	}
	m.payments[*payment.TicketID] = payment

	return nil
}

func TestHandler_RecordPaymentHandler(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &paymentsRepoMock{}
	h := NewHandler(repo, clock.NewFixed(now))

	event := &entity.TicketBooked_v1{
		Header:        entity.NewEventHeaderWithIdempotencyKey("ticket-1"),
		TicketID:      "ticket-1",
		EventID:       "event-1",
		UserID:        "user-1",
		Email:         "user@example.com",
		Quantity:      2,
		PaymentMethod: "card",
		PaidAmount:    50,
	}

	handler := h.RecordPaymentHandler()
	for i := 0; i < 3; i++ {
		require.NoError(t, handler.Handle(context.Background(), event))
	}

	require.Len(t, repo.payments, 1)
	payment := repo.payments["ticket-1"]
	assert.Equal(t, entity.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, 2, payment.Tickets)
	assert.Equal(t, 50.0, payment.Amount)
	assert.Equal(t, "user-1", payment.UserID)
	assert.Equal(t, now, payment.CreatedAt)
}

func TestHandler_RecordPaymentHandler_repository_error(t *testing.T) {
	repoErr := errors.New("connection refused")
	h := NewHandler(&paymentsRepoMock{err: repoErr}, clock.NewSystem())

	err := h.RecordPaymentHandler().Handle(context.Background(), &entity.TicketBooked_v1{TicketID: "ticket-1"})
	assert.ErrorIs(t, err, repoErr)
}

func TestHandler_Handlers(t *testing.T) {
	h := NewHandler(&paymentsRepoMock{}, clock.NewSystem())

	names := lo.Map(h.Handlers(), func(handler cqrs.EventHandler, _ int) string {
		return handler.HandlerName()
	})
	assert.Contains(t, names, "RecordPaymentHandler")
}
