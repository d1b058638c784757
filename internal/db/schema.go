package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and the order-number sequence if they do
// not exist yet. Statements are idempotent so the server can run this on
// every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique ON users (lower(email))`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			token_hash TEXT PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			type          TEXT NOT NULL,
			proteins      INT NOT NULL,
			fat           INT NOT NULL,
			carbohydrates INT NOT NULL,
			calories      INT NOT NULL,
			price         INT NOT NULL,
			image         TEXT NOT NULL,
			image_mobile  TEXT NOT NULL,
			image_large   TEXT NOT NULL
		)`,
		`CREATE SEQUENCE IF NOT EXISTS order_numbers START 1`,
		`CREATE TABLE IF NOT EXISTS orders (
			id          UUID PRIMARY KEY,
			number      BIGINT NOT NULL UNIQUE,
			owner_id    UUID NOT NULL,
			name        TEXT NOT NULL,
			status      TEXT NOT NULL,
			ingredients TEXT[] NOT NULL,
			price       INT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS orders_updated_at_idx ON orders (updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS orders_owner_idx ON orders (owner_id)`,
		`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status) WHERE status = 'preparing'`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
