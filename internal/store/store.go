// Package store provides a generic document collection over Postgres JSONB.
// Collections behave like schemaless document stores: equality filters,
// single-field sorts, and shallow partial updates applied as one atomic
// statement (concurrent writers are last-writer-wins).
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Document is any value persisted in a collection.
type Document interface {
	DocumentID() string
}

// Filter matches documents whose fields equal every given value.
type Filter map[string]any

// Patch is a shallow merge applied to a document; keys absent from the patch
// are left untouched.
type Patch map[string]any

type Sort struct {
	Field   string
	Desc    bool
	Numeric bool
}

type Query struct {
	Filter Filter
	Sort   *Sort
	Limit  int
}

type Collection[T Document] interface {
	List(ctx context.Context, q Query) ([]T, error)
	Get(ctx context.Context, field, value string) (T, error)
	Insert(ctx context.Context, doc T) error
	Update(ctx context.Context, field, value string, patch Patch) (T, error)
	Delete(ctx context.Context, field, value string) error
	Count(ctx context.Context, filter Filter) (int64, error)
}
