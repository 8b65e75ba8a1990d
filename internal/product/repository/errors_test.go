package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsConstraintViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("connection refused"), false},
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"pgx foreign key violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"pgx serialization failure", &pgconn.PgError{Code: "40001"}, false},
		{"lib/pq unique violation", &pq.Error{Code: "23505"}, true},
		{"lib/pq undefined table", &pq.Error{Code: "42P01"}, false},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, true},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"already classified", fmt.Errorf("%w: dup", ErrConstraintViolation), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsConstraintViolation(tc.err))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("Wraps integrity errors", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
		assert.ErrorIs(t, err, ErrConstraintViolation)
		assert.Contains(t, err.Error(), "duplicate key value")
	})

	t.Run("Passes other errors through", func(t *testing.T) {
		orig := errors.New("disk full")
		assert.Same(t, orig, classify(orig))
	})

	t.Run("Nil stays nil", func(t *testing.T) {
		assert.NoError(t, classify(nil))
	})
}
