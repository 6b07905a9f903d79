package repository

import (
	"comandas_server/database"
	"comandas_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
)

func (s *PostgresStore) ListCustomers(ctx context.Context, search string) ([]tables.Customer, error) {
	rows, err := query[tables.Customer](s, nil).
		Search(search, "c.name", "c.phone").
		OrderBy("c.name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, wrapErr("list customers", err)
	}
	return rows, nil
}

func (s *PostgresStore) GetCustomer(ctx context.Context, id uuid.UUID) (*tables.Customer, error) {
	row, err := query[tables.Customer](s, nil).Where("c.id", id).First(ctx)
	if err != nil {
		return nil, wrapErr("get customer", err)
	}
	if row == nil {
		return nil, notFound("get customer", "customer")
	}
	return row, nil
}

// FindCustomerByPhone returns nil when nobody has that phone.
func (s *PostgresStore) FindCustomerByPhone(ctx context.Context, phone string) (*tables.Customer, error) {
	row, err := query[tables.Customer](s, nil).Where("c.phone", phone).First(ctx)
	if err != nil {
		return nil, wrapErr("find customer by phone", err)
	}
	return row, nil
}

func (s *PostgresStore) CreateCustomer(ctx context.Context, c *tables.Customer) error {
	now := time.Now().UTC()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := query[tables.Customer](s, nil).Insert(ctx, c)
	return wrapErr("create customer", err)
}

func (s *PostgresStore) UpdateCustomer(ctx context.Context, c *tables.Customer) error {
	const op = "update customer"
	c.UpdatedAt = time.Now().UTC()
	affected, err := query[tables.Customer](s, nil).Update(ctx, c, "name", "phone", "updated_at")
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return notFound(op, "customer")
	}
	return nil
}

func (s *PostgresStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	const op = "delete customer"
	affected, err := query[tables.Customer](s, nil).Where("id", id).Delete(ctx)
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return notFound(op, "customer")
	}
	return nil
}

func (s *PostgresStore) CountCustomers(ctx context.Context) (int, error) {
	n, err := query[tables.Customer](s, nil).Count(ctx)
	return n, wrapErr("count customers", err)
}
