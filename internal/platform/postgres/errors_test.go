package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/foodbridge/match-api/internal/platform/postgres"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "confirmed_matches",
		ColumnName:     "task_id",
		ConstraintName: "confirmed_matches_task_id_key",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), store.ErrNotFound},
		{"unique violation", newPgError("23505"), store.ErrDuplicate},
		{"foreign key violation", newPgError("23503"), store.ErrInvalidEntity},
		{"check violation", newPgError("23514"), store.ErrInvalidEntity},
		{"not null violation", newPgError("23502"), store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tc.err), tc.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		other := errors.New("connection reset")
		assert.Same(t, other, postgres.MapError(other))
		pgOther := newPgError("40001")
		assert.Same(t, error(pgOther), postgres.MapError(pgOther))
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, postgres.MapUniqueViolation(newPgError("23505"), store.ErrTaskAlreadyConfirmed), store.ErrTaskAlreadyConfirmed)
	assert.ErrorIs(t, postgres.MapUniqueViolation(newPgError("23503"), store.ErrTaskAlreadyConfirmed), store.ErrInvalidEntity)
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError("23505"))))
	assert.False(t, postgres.IsUniqueViolation(errors.New("plain")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrDonationNotFound))
	assert.ErrorIs(t, postgres.CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrDonationNotFound), store.ErrDonationNotFound)
	assert.Error(t, postgres.CheckRowsAffected(nil, store.ErrDonationNotFound))
	assert.Error(t, postgres.CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), store.ErrDonationNotFound))
}
