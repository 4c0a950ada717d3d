package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS locations (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL,
		status       TEXT NOT NULL,
		start_time   TIMESTAMPTZ NOT NULL,
		end_time     TIMESTAMPTZ NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		cancelled_at TIMESTAMPTZ,
		cancelled_by UUID,
		is_deleted   BOOLEAN NOT NULL DEFAULT FALSE,
		CONSTRAINT bookings_window_chk CHECK (end_time > start_time)
	)`,
	`CREATE TABLE IF NOT EXISTS slots (
		id           UUID PRIMARY KEY,
		location_id  UUID NOT NULL REFERENCES locations (id),
		slot_number  TEXT NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		booking_id   UUID REFERENCES bookings (id) ON DELETE SET NULL,
		UNIQUE (location_id, slot_number)
	)`,
	`CREATE TABLE IF NOT EXISTS booking_slots (
		booking_id UUID NOT NULL REFERENCES bookings (id) ON DELETE CASCADE,
		slot_id    UUID NOT NULL REFERENCES slots (id),
		PRIMARY KEY (booking_id, slot_id)
	)`,
	`CREATE TABLE IF NOT EXISTS booking_histories (
		id              BIGSERIAL PRIMARY KEY,
		status_snapshot TEXT NOT NULL,
		slot_id         UUID NOT NULL,
		booking_id      UUID NOT NULL,
		user_id         UUID NOT NULL,
		start_time      TIMESTAMPTZ NOT NULL,
		end_time        TIMESTAMPTZ NOT NULL,
		time_stamp      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS booking_histories_booking_idx
		ON booking_histories (booking_id, time_stamp, id)`,
	`CREATE TABLE IF NOT EXISTS billings (
		id             UUID PRIMARY KEY,
		amount         BIGINT NOT NULL CHECK (amount > 0),
		currency       TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		time_stamp     TIMESTAMPTZ NOT NULL,
		booking_id     UUID NOT NULL,
		is_deleted     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS billings_active_booking_uidx
		ON billings (booking_id) WHERE NOT is_deleted`,
}

// Migrate applies the schema in a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
