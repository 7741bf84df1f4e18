package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed Repository for the chat domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("chat/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("chat/repository/postgre.%s", method)
}

// InitSchema creates the chat domain tables when they do not exist.
// Idempotent, run once at startup.
func InitSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			user_id     BIGINT PRIMARY KEY,
			history     JSONB NOT NULL DEFAULT '[]'::jsonb,
			chat_model  TEXT NOT NULL DEFAULT '',
			image_model TEXT NOT NULL DEFAULT '',
			persona     TEXT NOT NULL DEFAULT '',
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS scheduled_events (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT NOT NULL,
			payload    TEXT NOT NULL,
			due_at     TIMESTAMPTZ NOT NULL,
			status     TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_events_due
			ON scheduled_events (status, due_at)`,
		`CREATE TABLE IF NOT EXISTS user_memories (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT NOT NULL,
			content    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS calendar_events (
			id          BIGSERIAL PRIMARY KEY,
			user_id     BIGINT NOT NULL,
			summary     TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_at    TIMESTAMPTZ NOT NULL,
			end_at      TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("chat/repository/postgre: schema init failed: %w", err)
		}
	}
	return nil
}
