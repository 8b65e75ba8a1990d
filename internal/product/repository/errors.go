package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// SQLSTATE class 23 is integrity_constraint_violation (23505 unique, 23503 fk, 23514 check...).
const integrityViolationClass = "23"

// IsConstraintViolation reports whether err is an integrity error from any
// of the supported drivers.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, integrityViolationClass)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == integrityViolationClass
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	return false
}

// classify wraps integrity errors with ErrConstraintViolation and passes
// everything else through untouched.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrConstraintViolation) {
		return err
	}
	if IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
