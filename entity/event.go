package entity

import "time"

type Event struct {
	ID               string    `json:"_id" db:"event_id"`
	Name             string    `json:"name" db:"name" validate:"required"`
	Date             time.Time `json:"date" db:"event_date" validate:"eventdate"`
	Location         string    `json:"location" db:"location" validate:"required"`
	Description      string    `json:"description" db:"description" validate:"min=10"`
	AvailableTickets int       `json:"availableTickets" db:"available_tickets" validate:"gte=1"`
	MaxPerPerson     int       `json:"maxPerPerson" db:"max_per_person" validate:"gte=1"`
	Price            float64   `json:"price" db:"price" validate:"gte=0"`
}

var eventDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseEventDate accepts the formats produced by the event authoring form.
func ParseEventDate(value string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Validate checks the rules an event must satisfy before it is stored.
func (e Event) Validate() error {
	return validateStruct(e)
}
