package repository

import (
	"comandas_server/comanda"
	"comandas_server/database"
	"comandas_server/structs/tables"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

func (s *PostgresStore) ListOpenTickets(ctx context.Context) ([]comanda.Ticket, error) {
	rows, err := query[tables.Ticket](s, nil).
		Where("t.status", string(comanda.StatusOpen)).
		Relation("Items", orderItems).
		OrderBy("t.number", database.ASC).
		All(ctx)
	if err != nil {
		return nil, wrapErr("list open tickets", err)
	}

	out := make([]comanda.Ticket, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToComanda())
	}
	return out, nil
}

func (s *PostgresStore) GetTicketByNumber(ctx context.Context, number int) (*comanda.Ticket, error) {
	row, err := query[tables.Ticket](s, nil).
		Where("t.number", number).
		Where("t.status", string(comanda.StatusOpen)).
		Relation("Items", orderItems).
		First(ctx)
	if err != nil {
		return nil, wrapErr("get ticket by number", err)
	}
	if row == nil {
		return nil, nil
	}
	t := row.ToComanda()
	return &t, nil
}

func (s *PostgresStore) CreateTicket(ctx context.Context, number int, customerID *uuid.UUID) (*comanda.Ticket, error) {
	row := &tables.Ticket{
		ID:         uuid.New(),
		Number:     number,
		CustomerID: customerID,
		Status:     string(comanda.StatusOpen),
		OpenedAt:   time.Now().UTC(),
	}
	if _, err := query[tables.Ticket](s, nil).Insert(ctx, row); err != nil {
		return nil, wrapErr("create ticket", err)
	}
	t := row.ToComanda()
	return &t, nil
}

func (s *PostgresStore) AddLineItem(ctx context.Context, ticketID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*comanda.LineItem, error) {
	const op = "add line item"
	if quantity < 1 {
		return nil, comanda.NewRepositoryError(op, comanda.KindFailure, "", comanda.ErrInvalidQuantity)
	}

	item, err := database.TransactionWithResult(ctx, s.db, func(ctx context.Context, tx bun.Tx) (*tables.TicketItem, error) {
		ticket, err := query[tables.Ticket](s, tx).Where("t.id", ticketID).ForUpdate().First(ctx)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, notFound(op, "ticket")
		}
		if ticket.Status != string(comanda.StatusOpen) {
			return nil, conflict(op, comanda.ErrTicketNotOpen)
		}

		product, err := query[tables.Product](s, tx).Where("p.id", productID).First(ctx)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, notFound(op, "product")
		}

		row := &tables.TicketItem{
			ID:          uuid.New(),
			TicketID:    ticketID,
			ProductID:   productID,
			ProductName: product.Name,
			Category:    product.Category,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			CreatedAt:   time.Now().UTC(),
		}
		return query[tables.TicketItem](s, tx).Insert(ctx, row)
	})
	if err != nil {
		return nil, wrapErr(op, err)
	}

	li := item.ToComanda()
	return &li, nil
}

func (s *PostgresStore) UpdateLineItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	const op = "update line item quantity"
	if quantity < 1 {
		return comanda.NewRepositoryError(op, comanda.KindFailure, "", comanda.ErrInvalidQuantity)
	}
	affected, err := query[tables.TicketItem](s, nil).
		Where("id", itemID).
		WhereRaw(openTicketItems, string(comanda.StatusOpen)).
		Set(ctx, map[string]any{"quantity": quantity})
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return s.missingItem(ctx, op, itemID)
	}
	return nil
}

func (s *PostgresStore) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	const op = "delete line item"
	affected, err := query[tables.TicketItem](s, nil).
		Where("id", itemID).
		WhereRaw(openTicketItems, string(comanda.StatusOpen)).
		Delete(ctx)
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return s.missingItem(ctx, op, itemID)
	}
	return nil
}

// openTicketItems keeps item writes away from closed tickets.
const openTicketItems = "ticket_id IN (SELECT id FROM tickets WHERE status = ?)"

// missingItem explains a write that matched no row: the item is gone, or its ticket is closed.
func (s *PostgresStore) missingItem(ctx context.Context, op string, itemID uuid.UUID) error {
	item, err := query[tables.TicketItem](s, nil).Where("ti.id", itemID).First(ctx)
	if err != nil {
		return wrapErr(op, err)
	}
	if item == nil {
		return notFound(op, "line item")
	}
	return conflict(op, fmt.Errorf("item %s: %w", itemID, comanda.ErrTicketNotOpen))
}

func (s *PostgresStore) CloseTicket(ctx context.Context, ticketID uuid.UUID, closedAt time.Time, payments []comanda.PaymentInput) error {
	const op = "close ticket"
	err := database.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		affected, err := query[tables.Ticket](s, tx).
			Where("id", ticketID).
			Where("status", string(comanda.StatusOpen)).
			Set(ctx, map[string]any{
				"status":    string(comanda.StatusClosed),
				"closed_at": closedAt.UTC(),
			})
		if err != nil {
			return err
		}
		if affected == 0 {
			return conflict(op, fmt.Errorf("ticket %s: %w", ticketID, comanda.ErrTicketNotOpen))
		}

		rows := make([]tables.Payment, 0, len(payments))
		for _, p := range payments {
			rows = append(rows, tables.Payment{
				ID:       uuid.New(),
				TicketID: ticketID,
				Method:   string(p.Method),
				Amount:   p.Amount,
				PaidAt:   closedAt.UTC(),
			})
		}
		_, err = query[tables.Payment](s, tx).InsertMany(ctx, rows)
		return err
	})
	return wrapErr(op, err)
}

func (s *PostgresStore) AssignCustomer(ctx context.Context, ticketID uuid.UUID, customerID *uuid.UUID) error {
	const op = "assign customer"
	affected, err := query[tables.Ticket](s, nil).
		Where("id", ticketID).
		Where("status", string(comanda.StatusOpen)).
		Set(ctx, map[string]any{"customer_id": customerID})
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return notFound(op, "open ticket")
	}
	return nil
}
