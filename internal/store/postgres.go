package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCollection stores every document of one logical collection as a
// JSONB row in the shared documents table.
type PostgresCollection[T Document] struct {
	pool *pgxpool.Pool
	name string
}

func NewPostgresCollection[T Document](pool *pgxpool.Pool, name string) *PostgresCollection[T] {
	return &PostgresCollection[T]{pool: pool, name: name}
}

func (c *PostgresCollection[T]) List(ctx context.Context, q Query) ([]T, error) {
	filterJSON, err := marshalFilter(q.Filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT doc FROM documents WHERE collection = $1 AND doc @> $2`
	if q.Sort != nil {
		dir := "ASC"
		if q.Sort.Desc {
			dir = "DESC"
		}
		expr := fmt.Sprintf("doc->>'%s'", q.Sort.Field)
		if q.Sort.Numeric {
			expr = "(" + expr + ")::numeric"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", expr, dir)
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := c.pool.Query(ctx, query, c.name, filterJSON)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *PostgresCollection[T]) Get(ctx context.Context, field, value string) (T, error) {
	const query = `SELECT doc FROM documents WHERE collection = $1 AND doc->>$2 = $3 LIMIT 1`

	var doc T
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, field, value).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return doc, ErrNotFound
		}
		return doc, fmt.Errorf("get %s by %s: %w", c.name, field, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s document: %w", c.name, err)
	}
	return doc, nil
}

func (c *PostgresCollection[T]) Insert(ctx context.Context, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.name, err)
	}

	const query = `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`
	if _, err := c.pool.Exec(ctx, query, c.name, doc.DocumentID(), raw); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert %s: %w", c.name, err)
	}
	return nil
}

// isUniqueViolation reports whether err is Postgres SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (c *PostgresCollection[T]) Update(ctx context.Context, field, value string, patch Patch) (T, error) {
	var doc T
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return doc, fmt.Errorf("encode patch: %w", err)
	}

	const query = `
		UPDATE documents SET doc = doc || $4
		WHERE collection = $1 AND doc->>$2 = $3
		RETURNING doc
	`
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, field, value, patchJSON).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return doc, ErrNotFound
		}
		return doc, fmt.Errorf("update %s: %w", c.name, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s document: %w", c.name, err)
	}
	return doc, nil
}

func (c *PostgresCollection[T]) Delete(ctx context.Context, field, value string) error {
	const query = `DELETE FROM documents WHERE collection = $1 AND doc->>$2 = $3`
	cmd, err := c.pool.Exec(ctx, query, c.name, field, value)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *PostgresCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}

	const query = `SELECT COUNT(*) FROM documents WHERE collection = $1 AND doc @> $2`
	var count int64
	if err := c.pool.QueryRow(ctx, query, c.name, filterJSON).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return count, nil
}

func marshalFilter(f Filter) ([]byte, error) {
	if len(f) == 0 {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	return raw, nil
}
