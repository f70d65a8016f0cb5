package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createEventsTable,
		createTicketClassesTable,
		createTicketsTable,
		createTicketsExpiryIndex,
		createTicketsUserIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    first_name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    title VARCHAR(500) NOT NULL,
    description TEXT,
    type VARCHAR(50) NOT NULL DEFAULT 'concert',
    starts_at TIMESTAMP NOT NULL,
    ends_at TIMESTAMP NOT NULL,
    online BOOLEAN NOT NULL DEFAULT FALSE,
    recur_frequency VARCHAR(10) NOT NULL DEFAULT 'none',
    recur_interval INTEGER NOT NULL DEFAULT 1,
    recur_count INTEGER,
    repeat_until TIMESTAMP,
    by_weekday VARCHAR(30) NOT NULL DEFAULT '',
    exclude_dates TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (recur_frequency IN ('none', 'daily', 'weekly', 'monthly', 'yearly'))
);`

const createTicketClassesTable = `
CREATE TABLE IF NOT EXISTS ticket_classes (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name VARCHAR(200) NOT NULL,
    price BIGINT NOT NULL DEFAULT 0,
    amount_available INTEGER NOT NULL DEFAULT 0,
    max_tickets_per_user INTEGER NOT NULL DEFAULT 1,
    sale_start TIMESTAMP NOT NULL,
    sale_end TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (amount_available >= 0)
);`

const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
    ticket_id UUID PRIMARY KEY,
    ticket_class_id INTEGER NOT NULL REFERENCES ticket_classes(id),
    event_id INTEGER NOT NULL REFERENCES events(id),
    user_id INTEGER NOT NULL REFERENCES users(user_id),
    title VARCHAR(700) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    modified_at TIMESTAMP NOT NULL DEFAULT NOW(),
    created_by INTEGER NOT NULL,
    modified_by INTEGER NOT NULL,
    used_at TIMESTAMP,
    used_by INTEGER,
    canceled_at TIMESTAMP,
    canceled_by INTEGER,
    canceled_reason TEXT NOT NULL DEFAULT '',

    CHECK (status IN ('AVAILABLE', 'USED', 'CANCELED', 'EXPIRED'))
);`

const createTicketsExpiryIndex = `
CREATE INDEX IF NOT EXISTS idx_tickets_expiry ON tickets (expires_at) WHERE status = 'AVAILABLE';`

const createTicketsUserIndex = `
CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets (user_id, ticket_class_id);`
