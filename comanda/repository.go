package comanda

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the persistence boundary for tickets. Every failure is a *RepositoryError.
type Repository interface {
	ListOpenTickets(ctx context.Context) ([]Ticket, error)
	// GetTicketByNumber returns the open ticket holding number, or nil when the number is free.
	GetTicketByNumber(ctx context.Context, number int) (*Ticket, error)
	CreateTicket(ctx context.Context, number int, customerID *uuid.UUID) (*Ticket, error)
	AddLineItem(ctx context.Context, ticketID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*LineItem, error)
	UpdateLineItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteLineItem(ctx context.Context, itemID uuid.UUID) error
	// CloseTicket flips the status and records payments atomically.
	CloseTicket(ctx context.Context, ticketID uuid.UUID, closedAt time.Time, payments []PaymentInput) error
	AssignCustomer(ctx context.Context, ticketID uuid.UUID, customerID *uuid.UUID) error
}
