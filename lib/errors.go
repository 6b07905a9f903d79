package lib

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PgErrorCode returns the SQLSTATE carried by err, from either pgdriver or pgx,
// or "" when err did not come from Postgres.
func PgErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		return drvErr.Field('C')
	}
	return ""
}

func MapPgError(err error) error {
	switch PgErrorCode(err) { // SQLSTATE
	case "23505", "23503": // unique_violation, foreign_key_violation
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case "P0002": // no_data_found
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
