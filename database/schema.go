package database

import (
	"comandas_server/structs/tables"
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateSchema creates every table and index the service needs if they are missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []struct {
		model       any
		foreignKeys []string
	}{
		{model: (*tables.Operator)(nil)},
		{model: (*tables.Customer)(nil)},
		{model: (*tables.Product)(nil)},
		{
			model:       (*tables.Ticket)(nil),
			foreignKeys: []string{`("customer_id") REFERENCES "customers" ("id") ON DELETE SET NULL`},
		},
		{
			model: (*tables.TicketItem)(nil),
			foreignKeys: []string{
				`("ticket_id") REFERENCES "tickets" ("id") ON DELETE CASCADE`,
				`("product_id") REFERENCES "products" ("id") ON DELETE RESTRICT`,
			},
		},
		{
			model:       (*tables.Payment)(nil),
			foreignKeys: []string{`("ticket_id") REFERENCES "tickets" ("id") ON DELETE CASCADE`},
		},
	}

	return Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range models {
			query := tx.NewCreateTable().Model(m.model).IfNotExists()
			for _, fk := range m.foreignKeys {
				query = query.ForeignKey(fk)
			}
			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", m.model, err)
			}
		}

		// a number may be reused once its previous ticket is closed
		if _, err := tx.NewCreateIndex().
			Model((*tables.Ticket)(nil)).
			Index("tickets_open_number_idx").
			Unique().
			Column("number").
			Where("status = 'open'").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create open ticket index: %w", err)
		}

		// one line per product on a ticket, so a replayed insert cannot duplicate it
		if _, err := tx.NewCreateIndex().
			Model((*tables.TicketItem)(nil)).
			Index("ticket_items_ticket_product_idx").
			Unique().
			Column("ticket_id", "product_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create ticket item index: %w", err)
		}

		indexes := []struct {
			name  string
			model any
			cols  []string
		}{
			{"ticket_items_ticket_idx", (*tables.TicketItem)(nil), []string{"ticket_id"}},
			{"payments_ticket_idx", (*tables.Payment)(nil), []string{"ticket_id"}},
			{"tickets_closed_at_idx", (*tables.Ticket)(nil), []string{"closed_at"}},
			{"products_category_idx", (*tables.Product)(nil), []string{"category"}},
		}
		for _, idx := range indexes {
			if _, err := tx.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.cols...).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}
		return nil
	})
}
