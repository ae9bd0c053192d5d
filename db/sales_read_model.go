package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"eventtickets/entity"
)

type SalesReadModel struct {
	db *sqlx.DB
}

func NewSalesReadModel(db *sqlx.DB) SalesReadModel {
	if db == nil {
		panic("db is nil")
	}

	return SalesReadModel{db: db}
}

// SalesReport aggregates the ticket ledger per event, best sellers first.
func (r SalesReadModel) SalesReport(ctx context.Context) ([]entity.EventSales, error) {
	sales := []entity.EventSales{}
	err := r.db.SelectContext(ctx, &sales, `
		SELECT
			t.event_id,
			e.name AS event_name,
			e.event_date,
			e.location,
			SUM(t.quantity) AS tickets_sold,
			SUM(t.paid_amount) AS revenue
		FROM tickets t
		JOIN events e ON e.event_id = t.event_id
		GROUP BY t.event_id, e.name, e.event_date, e.location
		ORDER BY tickets_sold DESC, e.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("could not get sales report: %w", err)
	}

	return sales, nil
}
