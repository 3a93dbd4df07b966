package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the service needs. The schema is small
// enough that a bootstrap statement beats carrying migration tooling.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS documents (
			collection text NOT NULL,
			id         text NOT NULL,
			doc        jsonb NOT NULL,
			PRIMARY KEY (collection, id)
		);

		CREATE TABLE IF NOT EXISTS users (
			id            text PRIMARY KEY,
			email         text NOT NULL UNIQUE,
			password_hash text NOT NULL,
			name          text NOT NULL,
			role          text NOT NULL,
			created_at    text NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
