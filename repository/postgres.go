package repository

import (
	"comandas_server/database"
	"time"

	"github.com/uptrace/bun"
)

// PostgresStore implements every store on top of bun.
type PostgresStore struct {
	db      *database.DB
	timeout time.Duration
}

func NewPostgresStore(db *database.DB, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func query[T any](s *PostgresStore, db bun.IDB) *database.QueryBuilder[T] {
	if db == nil {
		db = s.db
	}
	return database.Query[T](db).Timeout(s.timeout)
}

func orderItems(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("ti.created_at ASC, ti.id ASC")
}

func orderPayments(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("pay.paid_at ASC")
}
