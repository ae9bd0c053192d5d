package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			event_id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			event_date TIMESTAMPTZ NOT NULL,
			location VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			available_tickets INT NOT NULL CHECK (available_tickets >= 0),
			max_per_person INT NOT NULL CHECK (max_per_person >= 1),
			price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS tickets (
			ticket_id VARCHAR(255) PRIMARY KEY,
			event_id VARCHAR(255) NOT NULL REFERENCES events (event_id),
			user_id VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			payment_method VARCHAR(255) NOT NULL,
			paid_amount NUMERIC(12, 2) NOT NULL,
			qr TEXT NOT NULL,
			idempotency_key VARCHAR(255) UNIQUE,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS tickets_event_id_user_id_idx ON tickets (event_id, user_id);
		CREATE INDEX IF NOT EXISTS tickets_user_id_idx ON tickets (user_id);
		CREATE INDEX IF NOT EXISTS tickets_email_idx ON tickets (email);

		CREATE TABLE IF NOT EXISTS payments (
			payment_id VARCHAR(255) PRIMARY KEY,
			ticket_id VARCHAR(255) UNIQUE,
			user_id VARCHAR(255) NOT NULL,
			event_id VARCHAR(255) NOT NULL,
			amount NUMERIC(12, 2) NOT NULL,
			tickets INT NOT NULL,
			status VARCHAR(32) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS data_lake_events (
			event_id VARCHAR(255) PRIMARY KEY,
			published_at TIMESTAMPTZ NOT NULL,
			event_name VARCHAR(255) NOT NULL,
			event_payload JSONB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}

	return nil
}
