package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventtickets/entity"
)

func TestEventsRepository_Get_not_found(t *testing.T) {
	repo := NewEventsPostgresRepository(getTestDb(t))

	_, err := repo.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestEventsRepository_Add_publishes_to_outbox(t *testing.T) {
	ctx := context.Background()
	dbConn := getTestDb(t)
	repo := NewEventsPostgresRepository(dbConn)

	countOutboxMessages := func() int {
		var count int
		err := dbConn.GetContext(ctx, &count, `SELECT COUNT(*) FROM watermill_events_to_forward`)
		require.NoError(t, err)
		return count
	}

	before := countOutboxMessages()
	event := addTestEvent(t, repo, 100, 4)
	assert.Equal(t, before+1, countOutboxMessages())

	stored, err := repo.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Name, stored.Name)
	assert.Equal(t, 100, stored.AvailableTickets)
	assert.True(t, event.Date.Equal(stored.Date))
}

func TestEventsRepository_FindAll_limit(t *testing.T) {
	ctx := context.Background()
	repo := NewEventsPostgresRepository(getTestDb(t))

	for i := 0; i < 4; i++ {
		addTestEvent(t, repo, 10, 2)
	}

	limited, err := repo.FindAll(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)

	all, err := repo.FindAll(ctx, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 4)
}

func TestPaymentsRepository_Add_idempotency(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentsPostgresRepository(getTestDb(t))

	ticketID := uuid.NewString()
	payment := entity.Payment{
		ID:        uuid.NewString(),
		TicketID:  &ticketID,
		UserID:    "user-a",
		EventID:   uuid.NewString(),
		Amount:    50,
		Tickets:   2,
		Status:    entity.PaymentStatusSuccess,
		CreatedAt: time.Now().UTC(),
	}

	for i := 0; i < 2; i++ {
		redelivered := payment
		redelivered.ID = uuid.NewString()
		require.NoError(t, repo.Add(ctx, redelivered))
	}

	stored, err := repo.GetByTicketID(ctx, ticketID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Tickets)
	assert.Equal(t, entity.PaymentStatusSuccess, stored.Status)

	_, err = repo.GetByTicketID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestTicketsRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	dbConn := getTestDb(t)
	eventsRepo := NewEventsPostgresRepository(dbConn)
	repo := NewTicketsPostgresRepository(dbConn)

	event := addTestEvent(t, eventsRepo, 10, 5)
	email := uuid.NewString() + "@example.com"

	insertTicket(t, dbConn, entity.Ticket{
		ID:            uuid.NewString(),
		EventID:       event.ID,
		UserID:        "user-a",
		Email:         email,
		Quantity:      1,
		PaymentMethod: "card",
		PaidAmount:    25,
		QR:            "data:image/png;base64,",
		CreatedAt:     time.Now().UTC().Add(-time.Minute),
	})
	newest := insertTicket(t, dbConn, entity.Ticket{
		ID:            uuid.NewString(),
		EventID:       event.ID,
		UserID:        "user-b",
		Email:         email,
		Quantity:      2,
		PaymentMethod: "card",
		PaidAmount:    50,
		QR:            "data:image/png;base64,",
		CreatedAt:     time.Now().UTC(),
	})

	tickets, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, newest.ID, tickets[0].ID)
	assert.Equal(t, event.Description, tickets[0].EventDescription)

	none, err := repo.FindByEmail(ctx, uuid.NewString()+"@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func insertTicket(t *testing.T, dbConn *sqlx.DB, ticket entity.Ticket) entity.Ticket {
	t.Helper()

	err := UpdateInTx(context.Background(), dbConn, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		return bookingTx{tx: tx}.InsertTicket(ctx, ticket)
	})
	require.NoError(t, err)

	return ticket
}

func TestSalesReadModel_SalesReport(t *testing.T) {
	ctx := context.Background()
	dbConn := getTestDb(t)
	eventsRepo := NewEventsPostgresRepository(dbConn)

	popular := addTestEvent(t, eventsRepo, 1000, 1000)
	quiet := addTestEvent(t, eventsRepo, 1000, 1000)

	for _, ticket := range []entity.Ticket{
		{EventID: popular.ID, Quantity: 500, PaidAmount: 1000},
		{EventID: popular.ID, Quantity: 400, PaidAmount: 800},
		{EventID: quiet.ID, Quantity: 1, PaidAmount: 25},
	} {
		ticket.ID = uuid.NewString()
		ticket.UserID = "user-a"
		ticket.Email = "a@example.com"
		ticket.PaymentMethod = "card"
		ticket.QR = "data:image/png;base64,"
		ticket.CreatedAt = time.Now().UTC()
		insertTicket(t, dbConn, ticket)
	}

	report, err := NewSalesReadModel(dbConn).SalesReport(ctx)
	require.NoError(t, err)

	popularSales, ok := lo.Find(report, func(s entity.EventSales) bool { return s.EventID == popular.ID })
	require.True(t, ok)
	assert.Equal(t, 900, popularSales.TicketsSold)
	assert.InDelta(t, 1800, popularSales.Revenue, 0.001)
	assert.Equal(t, popular.Name, popularSales.EventName)

	popularIdx := lo.IndexOf(lo.Map(report, func(s entity.EventSales, _ int) string { return s.EventID }), popular.ID)
	quietIdx := lo.IndexOf(lo.Map(report, func(s entity.EventSales, _ int) string { return s.EventID }), quiet.ID)
	assert.Less(t, popularIdx, quietIdx)
}

func TestDataLake_StoreEvent_redelivery(t *testing.T) {
	ctx := context.Background()
	dataLake := NewDataLake(getTestDb(t))

	event := entity.DataLakeEvent{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
		Name:        "TicketBooked_v1",
		Payload:     []byte(`{"ticket_id":"` + uuid.NewString() + `"}`),
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, dataLake.StoreEvent(ctx, event))
	}

	events, err := dataLake.GetEventsByName(ctx, "TicketBooked_v1")
	require.NoError(t, err)

	stored := lo.Filter(events, func(e entity.DataLakeEvent, _ int) bool { return e.ID == event.ID })
	assert.Len(t, stored, 1)
}

func TestDataLake_GetEvents_in_publish_order(t *testing.T) {
	ctx := context.Background()
	dataLake := NewDataLake(getTestDb(t))

	base := time.Now().UTC().Truncate(time.Second)
	later := entity.DataLakeEvent{
		ID:          uuid.NewString(),
		PublishedAt: base.Add(time.Minute),
		Name:        "EventCreated_v1",
		Payload:     []byte(`{}`),
	}
	earlier := entity.DataLakeEvent{
		ID:          uuid.NewString(),
		PublishedAt: base,
		Name:        "TicketBooked_v1",
		Payload:     []byte(`{}`),
	}
	require.NoError(t, dataLake.StoreEvent(ctx, later))
	require.NoError(t, dataLake.StoreEvent(ctx, earlier))

	events, err := dataLake.GetEvents(ctx)
	require.NoError(t, err)

	ids := lo.Map(events, func(e entity.DataLakeEvent, _ int) string { return e.ID })
	require.Contains(t, ids, earlier.ID)
	require.Contains(t, ids, later.ID)
	assert.Less(t, lo.IndexOf(ids, earlier.ID), lo.IndexOf(ids, later.ID))
}
