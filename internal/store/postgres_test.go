package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pkViolation := &pgconn.PgError{Code: "23505", ConstraintName: "documents_pkey"}

	assert.True(t, isUniqueViolation(pkViolation))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert pages: %w", pkViolation)))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
