package repository

import (
	"comandas_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
)

func (s *PostgresStore) GetOperatorByUsername(ctx context.Context, username string) (*tables.Operator, error) {
	row, err := query[tables.Operator](s, nil).Where("op.username", username).First(ctx)
	if err != nil {
		return nil, wrapErr("get operator", err)
	}
	return row, nil
}

func (s *PostgresStore) CreateOperator(ctx context.Context, o *tables.Operator) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now().UTC()
	_, err := query[tables.Operator](s, nil).Insert(ctx, o)
	return wrapErr("create operator", err)
}

func (s *PostgresStore) TouchOperatorLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := query[tables.Operator](s, nil).Where("id", id).Set(ctx, map[string]any{"last_login": at.UTC()})
	return wrapErr("touch operator login", err)
}
