package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres unique constraint violation.
const codeUniqueViolation = "23505"

// MapError converts driver-level errors into the caller's domain errors:
// sql.ErrNoRows becomes notFound, a unique constraint violation becomes
// duplicate. Anything else passes through untouched.
func MapError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return duplicate
	}

	return err
}
