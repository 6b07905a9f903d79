package repository

import (
	"comandas_server/lib"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (s *MemoryStore) ListProducts(ctx context.Context, filter structs.ProductFilter) ([]tables.Product, error) {
	if err := s.injected("list products"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]tables.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b tables.Product) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	if err := s.injected("get product"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, notFound("get product", "product")
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p *tables.Product) error {
	if err := s.injected("create product"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, exists := s.products[p.ID]; exists {
		return conflict("create product", fmt.Errorf("product %s: %w", p.ID, lib.ErrConflict))
	}
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, p *tables.Product) error {
	const op = "update product"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[p.ID]
	if !ok {
		return notFound(op, "product")
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	const op = "set product active"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return notFound(op, "product")
	}
	p.Active = active
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "delete product"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return notFound(op, "product")
	}
	for _, item := range s.items {
		if item.ProductID == id {
			return conflict(op, fmt.Errorf("product %s is on a ticket: %w", id, lib.ErrConflict))
		}
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) CountActiveProducts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}
