package services

import (
	"comandas_server/comanda"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
)

type ProductStore interface {
	ListProducts(ctx context.Context, filter structs.ProductFilter) ([]tables.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error)
	CreateProduct(ctx context.Context, p *tables.Product) error
	UpdateProduct(ctx context.Context, p *tables.Product) error
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CountActiveProducts(ctx context.Context) (int, error)
}

type CustomerStore interface {
	ListCustomers(ctx context.Context, search string) ([]tables.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*tables.Customer, error)
	// FindCustomerByPhone returns nil, nil when nobody has the phone.
	FindCustomerByPhone(ctx context.Context, phone string) (*tables.Customer, error)
	CreateCustomer(ctx context.Context, c *tables.Customer) error
	UpdateCustomer(ctx context.Context, c *tables.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	CountCustomers(ctx context.Context) (int, error)
}

type ReportStore interface {
	// ClosedTickets returns tickets closed within [from, to] with customer, items and payments loaded.
	ClosedTickets(ctx context.Context, from, to time.Time) ([]tables.Ticket, error)
}

type OperatorStore interface {
	GetOperatorByUsername(ctx context.Context, username string) (*tables.Operator, error)
	CreateOperator(ctx context.Context, o *tables.Operator) error
	TouchOperatorLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Store is everything a storage backend provides.
type Store interface {
	comanda.Repository
	ProductStore
	CustomerStore
	ReportStore
	OperatorStore
}
