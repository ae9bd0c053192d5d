package entity

import "time"

type EventSales struct {
	EventID     string    `json:"eventId" db:"event_id"`
	EventName   string    `json:"eventName" db:"event_name"`
	Date        time.Time `json:"date" db:"event_date"`
	Location    string    `json:"location" db:"location"`
	TicketsSold int       `json:"ticketsSold" db:"tickets_sold"`
	Revenue     float64   `json:"revenue" db:"revenue"`
}
