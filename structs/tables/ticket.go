package tables

import (
	"comandas_server/comanda"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Ticket struct {
	tableName  struct{}   `bun:"table:tickets,alias:t"`
	ID         uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Number     int        `bun:"number,notnull" json:"number"` // unique among open tickets only
	CustomerID *uuid.UUID `bun:"customer_id,type:uuid,nullzero" json:"customer_id,omitempty"`
	Status     string     `bun:"status,notnull,default:'open'" json:"status"`
	OpenedAt   time.Time  `bun:"opened_at,notnull,default:current_timestamp" json:"opened_at"`
	ClosedAt   *time.Time `bun:"closed_at,nullzero" json:"closed_at,omitempty"`

	Customer *Customer     `bun:"rel:belongs-to,join:customer_id=id" json:"customer,omitempty"`
	Items    []*TicketItem `bun:"rel:has-many,join:id=ticket_id" json:"items,omitempty"`
	Payments []*Payment    `bun:"rel:has-many,join:id=ticket_id" json:"payments,omitempty"`
}

// TicketItem keeps a snapshot of the product name, category and price when it was added.
type TicketItem struct {
	tableName   struct{}        `bun:"table:ticket_items,alias:ti"`
	ID          uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	TicketID    uuid.UUID       `bun:"ticket_id,type:uuid,notnull" json:"ticket_id"`
	ProductID   uuid.UUID       `bun:"product_id,type:uuid,notnull" json:"product_id"`
	ProductName string          `bun:"product_name,notnull" json:"product_name"`
	Category    string          `bun:"category,notnull" json:"category"`
	Quantity    int             `bun:"quantity,notnull" json:"quantity"`
	UnitPrice   decimal.Decimal `bun:"unit_price,type:numeric(10,2),notnull" json:"unit_price"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type Payment struct {
	tableName struct{}        `bun:"table:payments,alias:pay"`
	ID        uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	TicketID  uuid.UUID       `bun:"ticket_id,type:uuid,notnull" json:"ticket_id"`
	Method    string          `bun:"method,notnull" json:"method"`
	Amount    decimal.Decimal `bun:"amount,type:numeric(10,2),notnull" json:"amount"`
	PaidAt    time.Time       `bun:"paid_at,notnull,default:current_timestamp" json:"paid_at"`
}

func (ti *TicketItem) ToComanda() comanda.LineItem {
	return comanda.LineItem{
		ID:          ti.ID,
		TicketID:    ti.TicketID,
		ProductID:   ti.ProductID,
		ProductName: ti.ProductName,
		Quantity:    ti.Quantity,
		UnitPrice:   ti.UnitPrice,
	}
}

// ToComanda converts the row and its loaded items. Items keep insertion order.
func (t *Ticket) ToComanda() comanda.Ticket {
	out := comanda.Ticket{
		ID:       t.ID,
		Number:   t.Number,
		Status:   comanda.Status(t.Status),
		OpenedAt: t.OpenedAt,
		Items:    make([]comanda.LineItem, 0, len(t.Items)),
	}
	if t.CustomerID != nil {
		id := *t.CustomerID
		out.CustomerID = &id
	}
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		out.ClosedAt = &closed
	}
	for _, item := range t.Items {
		out.Items = append(out.Items, item.ToComanda())
	}
	return out
}

// PaidTotal sums the recorded payments.
func (t *Ticket) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Payments {
		total = total.Add(p.Amount)
	}
	return total
}
