package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Transaction runs fn inside a transaction, committing when it returns nil and rolling
// back on error or panic.
func Transaction(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return fmt.Errorf("database instance not initialized")
	}
	return db.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// TransactionWithResult runs fn inside a transaction and returns its result
func TransactionWithResult[T any](ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}
