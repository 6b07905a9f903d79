package database

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// QueryBuilder provides a fluent, type-safe API over bun select, update and delete queries.
type QueryBuilder[T any] struct {
	db bun.IDB

	wheres    []whereClause
	orders    []orderClause
	relations []relation
	limitVal  int
	forUpdate bool
	timeout   time.Duration
	inTx      bool
	retry     RetryConfig
}

type whereClause struct {
	query string
	args  []any
}

type orderClause struct {
	column    string
	direction OrderDirection
}

type relation struct {
	name  string
	apply []func(*bun.SelectQuery) *bun.SelectQuery
}

// Query creates a new QueryBuilder on db, which may be a *DB or a transaction.
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	if wrapped, ok := db.(*DB); ok {
		db = wrapped.DB
	}
	q := &QueryBuilder[T]{db: db, retry: DefaultRetryConfig()}
	switch db.(type) {
	case bun.Tx, *bun.Tx:
		q.inTx = true
	}
	return q
}

// Where adds an equality condition on column
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a condition with an explicit comparison operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{
		query: "? " + operator + " ?",
		args:  []any{bun.Ident(column), value},
	})
	return q
}

// WhereRaw adds a raw condition with bun placeholders
func (q *QueryBuilder[T]) WhereRaw(query string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{query: query, args: args})
	return q
}

// Search matches term case-insensitively against any of columns.
func (q *QueryBuilder[T]) Search(term string, columns ...string) *QueryBuilder[T] {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)*2)
	for _, col := range columns {
		parts = append(parts, "? ILIKE ?")
		args = append(args, bun.Ident(col), "%"+term+"%")
	}
	return q.WhereRaw("("+strings.Join(parts, " OR ")+")", args...)
}

func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, orderClause{column: column, direction: direction})
	return q
}

func (q *QueryBuilder[T]) Limit(n int) *QueryBuilder[T] {
	q.limitVal = n
	return q
}

// Relation preloads a bun relation, optionally customizing its query
func (q *QueryBuilder[T]) Relation(name string, apply ...func(*bun.SelectQuery) *bun.SelectQuery) *QueryBuilder[T] {
	q.relations = append(q.relations, relation{name: name, apply: apply})
	return q
}

// ForUpdate locks selected rows, only meaningful inside a transaction
func (q *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	q.forUpdate = true
	return q
}

// Timeout bounds every execution of the query
func (q *QueryBuilder[T]) Timeout(d time.Duration) *QueryBuilder[T] {
	q.timeout = d
	return q
}

func (q *QueryBuilder[T]) applyWheres(apply func(query string, args ...any)) {
	for _, w := range q.wheres {
		apply(w.query, w.args...)
	}
}

func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)
	q.applyWheres(func(s string, args ...any) { query = query.Where(s, args...) })

	for _, rel := range q.relations {
		query = query.Relation(rel.name, rel.apply...)
	}
	for _, o := range q.orders {
		query = query.OrderExpr("? "+string(o.direction), bun.Ident(o.column))
	}
	if q.limitVal > 0 {
		query = query.Limit(q.limitVal)
	}
	if q.forUpdate {
		query = query.For("UPDATE")
	}
	return query
}

func (q *QueryBuilder[T]) buildUpdate() *bun.UpdateQuery {
	query := q.db.NewUpdate().Model((*T)(nil))
	q.applyWheres(func(s string, args ...any) { query = query.Where(s, args...) })
	return query
}

func (q *QueryBuilder[T]) buildDelete() *bun.DeleteQuery {
	query := q.db.NewDelete().Model((*T)(nil))
	q.applyWheres(func(s string, args ...any) { query = query.Where(s, args...) })
	return query
}
