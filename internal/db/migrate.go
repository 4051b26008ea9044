package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Credentials and other small values under fixed keys.
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS practice_logs (
		id              TEXT PRIMARY KEY,
		category        TEXT NOT NULL
		                CHECK(category IN ('meditation','anxiety-management','sleep-hygiene','self-care','stress-relief')),
		planned_seconds INTEGER NOT NULL CHECK(planned_seconds > 0),
		elapsed_seconds INTEGER NOT NULL DEFAULT 0,
		minutes         INTEGER NOT NULL DEFAULT 0,
		completed       INTEGER NOT NULL DEFAULT 0,
		submitted       INTEGER NOT NULL DEFAULT 0,
		submit_error    TEXT NOT NULL DEFAULT '',
		started_at      TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_practice_logs_created ON practice_logs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_logs_category ON practice_logs(category)`,
}
