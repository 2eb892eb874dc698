package db

import (
	"context"
	"database/sql"
)

type DB struct {
	*sql.DB
}

const migration = `
CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    provider text NOT NULL,
    provider_id text NOT NULL,
    name text,
    email text,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT users_provider_unique
        UNIQUE (provider, provider_id)
);

CREATE TABLE IF NOT EXISTS summaries (
    id bigserial PRIMARY KEY,
    user_id bigint REFERENCES users(id) ON DELETE CASCADE,
    original_text text NOT NULL,
    summary_text text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS summaries_user_id_idx
ON summaries (user_id);
`

func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}
