package repository

import (
	"comandas_server/database"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
)

func (s *PostgresStore) ListProducts(ctx context.Context, filter structs.ProductFilter) ([]tables.Product, error) {
	q := query[tables.Product](s, nil)
	if filter.Category != "" {
		q = q.Where("p.category", filter.Category)
	}
	if filter.Active != nil {
		q = q.Where("p.active", *filter.Active)
	}
	q = q.Search(filter.Search, "p.name", "p.category")

	rows, err := q.OrderBy("p.category", database.ASC).OrderBy("p.name", database.ASC).All(ctx)
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	return rows, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	row, err := query[tables.Product](s, nil).Where("p.id", id).First(ctx)
	if err != nil {
		return nil, wrapErr("get product", err)
	}
	if row == nil {
		return nil, notFound("get product", "product")
	}
	return row, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *tables.Product) error {
	now := time.Now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := query[tables.Product](s, nil).Insert(ctx, p)
	return wrapErr("create product", err)
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p *tables.Product) error {
	const op = "update product"
	p.UpdatedAt = time.Now().UTC()
	affected, err := query[tables.Product](s, nil).Update(ctx, p, "name", "category", "price", "active", "updated_at")
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return notFound(op, "product")
	}
	return nil
}

func (s *PostgresStore) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	const op = "set product active"
	affected, err := query[tables.Product](s, nil).
		Where("id", id).
		Set(ctx, map[string]any{"active": active, "updated_at": time.Now().UTC()})
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return notFound(op, "product")
	}
	return nil
}

// DeleteProduct fails with a conflict while any ticket line still references the product.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "delete product"
	affected, err := query[tables.Product](s, nil).Where("id", id).Delete(ctx)
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return notFound(op, "product")
	}
	return nil
}

func (s *PostgresStore) CountActiveProducts(ctx context.Context) (int, error) {
	n, err := query[tables.Product](s, nil).Where("p.active", true).Count(ctx)
	return n, wrapErr("count active products", err)
}
