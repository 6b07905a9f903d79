package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// execute runs op under the retry policy of the statement. Nothing is retried inside a
// transaction: after a failure Postgres rejects every later statement with 25P02. Writes
// that are not repeatable (inserts, deletes) are only retried when the server never
// applied them.
func (q *QueryBuilder[T]) execute(ctx context.Context, repeatable bool, op func() error) error {
	cfg := q.retry
	switch {
	case q.inTx:
		cfg.EnableRetry = false
	case !repeatable:
		cfg.Retryable = isRetryableWrite
	}
	return RetryWithBackoff(ctx, cfg, op)
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := q.execute(ctx, true, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First returns the first matching record, or nil when nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	data := new(T)
	err := q.execute(ctx, true, func() error {
		return q.buildSelect(data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count returns the number of matching records
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := q.execute(ctx, true, func() error {
		var err error
		count, err = q.buildSelect((*T)(nil)).Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Insert inserts a new record
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.execute(ctx, false, func() error {
		_, err := q.db.NewInsert().Model(data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records in one statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return data, nil
	}
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.execute(ctx, false, func() error {
		_, err := q.db.NewInsert().Model(&data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update writes the given columns of data for the matching rows and returns the rows affected.
// With no columns every column is written.
func (q *QueryBuilder[T]) Update(ctx context.Context, data *T, columns ...string) (int64, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var affected int64
	err := q.execute(ctx, true, func() error {
		query := q.db.NewUpdate().Model(data)
		if len(columns) > 0 {
			query = query.Column(columns...)
		}
		if len(q.wheres) == 0 {
			query = query.WherePK()
		}
		q.applyWheres(func(s string, args ...any) { query = query.Where(s, args...) })

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}

// Set updates the given columns on the matching rows and returns the rows affected
func (q *QueryBuilder[T]) Set(ctx context.Context, values map[string]any) (int64, error) {
	if len(values) == 0 {
		return 0, errors.New("nothing to update")
	}
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	columns := slices.Sorted(maps.Keys(values))

	var affected int64
	err := q.execute(ctx, true, func() error {
		query := q.buildUpdate()
		for _, col := range columns {
			query = query.Set("? = ?", bun.Ident(col), values[col])
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}

// Delete removes the matching rows and returns the rows affected
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int64, error) {
	if len(q.wheres) == 0 {
		return 0, errors.New("refusing to delete without conditions")
	}
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var affected int64
	err := q.execute(ctx, false, func() error {
		res, err := q.buildDelete().Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}
