package app

import (
	"context"
	"database/sql"
)

// Tabel yang dipakai repo plain-SQL. Entity gorm (employees, leave_types)
// dimigrasi lewat AutoMigrate di BuildApp.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS leave_balances (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id),
		leave_type_id UUID NOT NULL REFERENCES leave_types(id),
		balance DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_leave_balance UNIQUE (employee_id, leave_type_id)
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id),
		leave_type_id UUID NOT NULL REFERENCES leave_types(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_days INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL,
		manager_comment TEXT,
		created_on DATE NOT NULL,
		decision_on DATE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_employee ON leave_requests (employee_id, created_on)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_status ON leave_requests (status) WHERE status = 'PENDING'`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		request_id TEXT,
		aggregate_type TEXT NOT NULL,
		aggregate_id UUID NOT NULL,
		event_type TEXT NOT NULL,
		topic TEXT NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(16) NOT NULL,
		retry_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		next_retry_at TIMESTAMPTZ,
		processed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending ON outbox_events (created_at) WHERE status IN ('pending', 'failed')`,
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
