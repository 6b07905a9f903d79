package repository

import (
	"comandas_server/comanda"
	"comandas_server/lib"
	"database/sql"
	"errors"
	"fmt"
)

// wrapErr turns a storage error into a *comanda.RepositoryError for op.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *comanda.RepositoryError
	if errors.As(err, &re) {
		return err
	}

	kind := comanda.KindFailure
	mapped := lib.MapPgError(err)
	switch {
	case errors.Is(mapped, lib.ErrConflict):
		kind = comanda.KindConflict
	case errors.Is(mapped, lib.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		kind = comanda.KindNotFound
	}
	return comanda.NewRepositoryError(op, kind, lib.PgErrorCode(err), err)
}

func notFound(op, what string) error {
	return comanda.NewRepositoryError(op, comanda.KindNotFound, "", fmt.Errorf("%s %w", what, lib.ErrNotFound))
}

func conflict(op string, err error) error {
	return comanda.NewRepositoryError(op, comanda.KindConflict, "", err)
}
