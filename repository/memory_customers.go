package repository

import (
	"comandas_server/lib"
	"comandas_server/structs/tables"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

func cloneCustomer(c tables.Customer) tables.Customer {
	c.Phone = copyString(c.Phone)
	return c
}

// phoneTaken must be called with the lock held.
func (s *MemoryStore) phoneTaken(phone *string, except uuid.UUID) bool {
	if phone == nil {
		return false
	}
	for id, c := range s.customers {
		if id != except && c.Phone != nil && *c.Phone == *phone {
			return true
		}
	}
	return false
}

func (s *MemoryStore) ListCustomers(ctx context.Context, search string) ([]tables.Customer, error) {
	if err := s.injected("list customers"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]tables.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if term != "" && !strings.Contains(strings.ToLower(c.Name), term) && !strings.Contains(c.PhoneOrEmpty(), term) {
			continue
		}
		out = append(out, cloneCustomer(c))
	}
	slices.SortFunc(out, func(a, b tables.Customer) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *MemoryStore) GetCustomer(ctx context.Context, id uuid.UUID) (*tables.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, notFound("get customer", "customer")
	}
	c = cloneCustomer(c)
	return &c, nil
}

func (s *MemoryStore) FindCustomerByPhone(ctx context.Context, phone string) (*tables.Customer, error) {
	if err := s.injected("find customer by phone"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Phone != nil && *c.Phone == phone {
			c = cloneCustomer(c)
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateCustomer(ctx context.Context, c *tables.Customer) error {
	const op = "create customer"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if s.phoneTaken(c.Phone, c.ID) {
		return phoneConflict(op, *c.Phone)
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	s.customers[c.ID] = cloneCustomer(*c)
	return nil
}

func (s *MemoryStore) UpdateCustomer(ctx context.Context, c *tables.Customer) error {
	const op = "update customer"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.customers[c.ID]
	if !ok {
		return notFound(op, "customer")
	}
	if s.phoneTaken(c.Phone, c.ID) {
		return phoneConflict(op, *c.Phone)
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.customers[c.ID] = cloneCustomer(*c)
	return nil
}

func (s *MemoryStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	const op = "delete customer"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return notFound(op, "customer")
	}
	delete(s.customers, id)
	// tickets keep their history without the customer
	for tid, t := range s.tickets {
		if t.CustomerID != nil && *t.CustomerID == id {
			t.CustomerID = nil
			s.tickets[tid] = t
		}
	}
	return nil
}

func (s *MemoryStore) CountCustomers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}

func phoneConflict(op, phone string) error {
	return conflict(op, fmt.Errorf("phone %s already registered: %w", phone, lib.ErrConflict))
}
