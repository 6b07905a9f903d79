package comanda

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
	MethodPix  PaymentMethod = "pix"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodPix:
		return true
	}
	return false
}

// Product is the catalog snapshot needed to put something on a ticket.
type Product struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Active   bool            `json:"active"`
}

// LineItem is one product on a ticket. UnitPrice is captured when the item is added.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	TicketID    uuid.UUID       `json:"ticket_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (li LineItem) Total() decimal.Decimal {
	return LineTotal(li.Quantity, li.UnitPrice)
}

type PaymentInput struct {
	Method PaymentMethod   `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Ticket is the in-memory state of one comanda. Its total is always derived from Items.
type Ticket struct {
	ID         uuid.UUID  `json:"id"`
	Number     int        `json:"number"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Items      []LineItem `json:"items"`
	Status     Status     `json:"status"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

func (t *Ticket) Total() decimal.Decimal {
	return Total(t.Items)
}

func (t *Ticket) IsOpen() bool {
	return t.Status == StatusOpen
}

// FindItemByProduct returns the line holding productID, or nil.
func (t *Ticket) FindItemByProduct(productID uuid.UUID) *LineItem {
	for i := range t.Items {
		if t.Items[i].ProductID == productID {
			return &t.Items[i]
		}
	}
	return nil
}

func (t *Ticket) FindItem(itemID uuid.UUID) *LineItem {
	for i := range t.Items {
		if t.Items[i].ID == itemID {
			return &t.Items[i]
		}
	}
	return nil
}

// ApplyItemQuantity sets the quantity of an item in place. Anything below 1 removes it.
func (t *Ticket) ApplyItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return t.RemoveItem(itemID)
	}
	item := t.FindItem(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (t *Ticket) RemoveItem(itemID uuid.UUID) error {
	idx := slices.IndexFunc(t.Items, func(li LineItem) bool { return li.ID == itemID })
	if idx < 0 {
		return ErrItemNotFound
	}
	t.Items = slices.Delete(t.Items, idx, idx+1)
	return nil
}

// AppendItem adds a persisted line. Quantities below 1 are rejected.
func (t *Ticket) AppendItem(item LineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	t.Items = append(t.Items, item)
	return nil
}

// Clone returns a deep copy that shares no mutable state with t.
func (t Ticket) Clone() Ticket {
	out := t
	if t.Items != nil {
		out.Items = slices.Clone(t.Items)
	}
	if t.CustomerID != nil {
		id := *t.CustomerID
		out.CustomerID = &id
	}
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		out.ClosedAt = &closed
	}
	return out
}
