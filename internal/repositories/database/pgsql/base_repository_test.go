package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: pgUniqueViolation}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestWrapNotFound(t *testing.T) {
	assert.ErrorIs(t, wrapNotFound(pgx.ErrNoRows, "budget b-1"), apperrors.ErrNotFound)

	cause := errors.New("connection reset")
	err := wrapNotFound(cause, "budget b-1")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExpectOneRow(t *testing.T) {
	assert.NoError(t, expectOneRow(pgconn.NewCommandTag("UPDATE 1"), "budget b-1"))
	assert.ErrorIs(t, expectOneRow(pgconn.NewCommandTag("DELETE 0"), "budget b-1"), apperrors.ErrNotFound)
}
