package repository

import (
	"comandas_server/lib"
	"comandas_server/structs/tables"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *MemoryStore) GetOperatorByUsername(ctx context.Context, username string) (*tables.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.operators {
		if o.Username == username {
			return &o, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateOperator(ctx context.Context, o *tables.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.operators {
		if existing.Username == o.Username {
			return conflict("create operator", fmt.Errorf("operator %s: %w", o.Username, lib.ErrConflict))
		}
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now().UTC()
	s.operators[o.ID] = *o
	return nil
}

func (s *MemoryStore) TouchOperatorLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.operators[id]
	if !ok {
		return notFound("touch operator login", "operator")
	}
	at = at.UTC()
	o.LastLogin = &at
	s.operators[id] = o
	return nil
}
