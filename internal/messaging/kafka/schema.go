package kafka

import (
	"context"
	"database/sql"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id            UUID PRIMARY KEY,
    request_id    TEXT,
    aggregate_type TEXT NOT NULL,
    aggregate_id  TEXT NOT NULL,
    event_type    TEXT NOT NULL,
    topic         TEXT NOT NULL,
    payload       JSONB NOT NULL,
    status        TEXT NOT NULL DEFAULT 'pending',
    retry_count   INT NOT NULL DEFAULT 0,
    next_retry_at TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, next_retry_at);
`

// EnsureOutboxTable creates the outbox table on startup. The domain
// tables go through gorm's AutoMigrate; the outbox is raw SQL end to
// end, so its DDL lives here with the repository that owns it.
func EnsureOutboxTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, outboxSchema)
	return err
}
