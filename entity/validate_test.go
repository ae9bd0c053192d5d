package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventtickets/entity"
)

func TestEvent_Validate(t *testing.T) {
	valid := entity.Event{
		Name:             "Jazz night",
		Date:             time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		Location:         "Lisbon",
		Description:      "Ten characters at least",
		AvailableTickets: 10,
		MaxPerPerson:     2,
	}
	require.NoError(t, valid.Validate())

	err := entity.Event{Description: "short", Price: -1}.Validate()
	require.ErrorIs(t, err, entity.ErrInvalidRequest)

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(
		t,
		[]string{"name", "date", "location", "description", "availableTickets", "maxPerPerson", "price"},
		lo.Keys(verr.Fields),
	)
	assert.Equal(t, "Invalid date", verr.Fields["date"])
	assert.Equal(t, "Maximum tickets per person must be 1 or more", verr.Fields["maxPerPerson"])
}

func TestEvent_Validate_description_counts_characters(t *testing.T) {
	event := entity.Event{
		Name:             "Fado",
		Date:             time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		Location:         "Porto",
		Description:      "çãõéíóúâêô",
		AvailableTickets: 1,
		MaxPerPerson:     1,
	}
	assert.NoError(t, event.Validate())
}

func TestBookingRequest_Validate(t *testing.T) {
	err := entity.BookingRequest{EventID: "event-1", UserID: "user-1", Quantity: 0}.Validate()

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"email", "tickets", "paymentMethod", "paidAmount"}, lo.Keys(verr.Fields))
	assert.Equal(t, "is required", verr.Fields["email"])
}

func TestBookingRequest_SameBooking(t *testing.T) {
	req := entity.BookingRequest{EventID: "event-1", UserID: "user-1", Quantity: 2}

	assert.True(t, req.SameBooking(entity.Ticket{EventID: "event-1", UserID: "user-1", Quantity: 2}))
	assert.False(t, req.SameBooking(entity.Ticket{EventID: "event-2", UserID: "user-1", Quantity: 2}))
	assert.False(t, req.SameBooking(entity.Ticket{EventID: "event-1", UserID: "user-2", Quantity: 2}))
	assert.False(t, req.SameBooking(entity.Ticket{EventID: "event-1", UserID: "user-1", Quantity: 3}))
}
