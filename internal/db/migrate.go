package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent (CREATE IF
// NOT EXISTS); ALTER TABLE additions tolerate re-runs.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		role       TEXT NOT NULL DEFAULT 'analyst',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ventures (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		sector                TEXT NOT NULL,
		location              TEXT NOT NULL,
		stage                 TEXT NOT NULL
		                      CHECK(stage IN ('INTAKE','SCREENING','DUE_DILIGENCE','INVESTMENT_READY','FUNDED','EXITED')),
		status                TEXT NOT NULL
		                      CHECK(status IN ('ACTIVE','INACTIVE','ARCHIVED')),
		funding_raised        REAL NOT NULL DEFAULT 0,
		funding_sought        REAL NOT NULL DEFAULT 0,
		team_size             INTEGER NOT NULL DEFAULT 0,
		contact_email         TEXT,
		contact_phone         TEXT,
		website               TEXT,
		operational_readiness TEXT,
		capital_readiness     TEXT,
		created_by_id         TEXT NOT NULL REFERENCES users(id),
		assigned_to_id        TEXT REFERENCES users(id),
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS gedsi_metrics (
		id            TEXT PRIMARY KEY,
		venture_id    TEXT NOT NULL REFERENCES ventures(id) ON DELETE CASCADE,
		metric_code   TEXT NOT NULL,
		metric_name   TEXT NOT NULL,
		category      TEXT NOT NULL
		              CHECK(category IN ('GENDER','DISABILITY','SOCIAL_INCLUSION','CROSS_CUTTING')),
		target_value  REAL NOT NULL CHECK(target_value >= 0),
		current_value REAL NOT NULL DEFAULT 0 CHECK(current_value >= 0),
		unit          TEXT NOT NULL,
		status        TEXT NOT NULL
		              CHECK(status IN ('NOT_STARTED','IN_PROGRESS','VERIFIED','COMPLETED')),
		notes         TEXT,
		created_by_id TEXT NOT NULL REFERENCES users(id),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS documents (
		id          TEXT PRIMARY KEY,
		venture_id  TEXT NOT NULL REFERENCES ventures(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		type        TEXT,
		url         TEXT NOT NULL,
		size        INTEGER NOT NULL DEFAULT 0,
		mime_type   TEXT,
		uploaded_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id          TEXT PRIMARY KEY,
		type        TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT,
		venture_id  TEXT REFERENCES ventures(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL REFERENCES users(id),
		metadata    TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS capital_activities (
		id         TEXT PRIMARY KEY,
		venture_id TEXT NOT NULL REFERENCES ventures(id) ON DELETE CASCADE,
		type       TEXT NOT NULL
		           CHECK(type IN ('GRANT','EQUITY','DEBT','OTHER')),
		amount     REAL NOT NULL DEFAULT 0 CHECK(amount >= 0),
		currency   TEXT NOT NULL DEFAULT 'USD',
		status     TEXT NOT NULL
		           CHECK(status IN ('REQUESTED','APPROVED','DISBURSED','DECLINED')),
		note       TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ventures_status ON ventures(status)`,
	`CREATE INDEX IF NOT EXISTS idx_ventures_stage ON ventures(stage)`,
	`CREATE INDEX IF NOT EXISTS idx_ventures_created_by ON ventures(created_by_id)`,
	`CREATE INDEX IF NOT EXISTS idx_gedsi_metrics_venture ON gedsi_metrics(venture_id)`,
	`CREATE INDEX IF NOT EXISTS idx_gedsi_metrics_status ON gedsi_metrics(status)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_venture ON documents(venture_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_venture ON activities(venture_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_capital_activities_venture ON capital_activities(venture_id)`,
}
