package repository

import (
	"comandas_server/comanda"
	"comandas_server/database"
	"comandas_server/structs/tables"
	"context"
	"time"
)

// ClosedTickets returns tickets closed within [from, to] with their customer, items and payments.
func (s *PostgresStore) ClosedTickets(ctx context.Context, from, to time.Time) ([]tables.Ticket, error) {
	rows, err := query[tables.Ticket](s, nil).
		Where("t.status", string(comanda.StatusClosed)).
		WhereOp("t.closed_at", ">=", from.UTC()).
		WhereOp("t.closed_at", "<=", to.UTC()).
		Relation("Customer").
		Relation("Items", orderItems).
		Relation("Payments", orderPayments).
		OrderBy("t.closed_at", database.ASC).
		All(ctx)
	if err != nil {
		return nil, wrapErr("list closed tickets", err)
	}
	return rows, nil
}
