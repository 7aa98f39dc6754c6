package store

import (
	"context"
	"database/sql"
	"fmt"
)

// tables holds the DDL of every table the store owns. Statements are
// idempotent so migrate can run on every Open.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS question_pool (
		key        TEXT PRIMARY KEY,
		category   TEXT NOT NULL,
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS supply_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		request_id    TEXT NOT NULL,
		category      TEXT NOT NULL,
		topic         TEXT NOT NULL DEFAULT '',
		source        TEXT NOT NULL,
		state         TEXT NOT NULL,
		count         INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS supply_events_category ON supply_events (category)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, ddl := range tables {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
