package repository

import (
	"comandas_server/comanda"
	"comandas_server/structs/tables"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements every store in process. It is safe for concurrent use and
// hands out copies, never its own rows.
type MemoryStore struct {
	mu sync.RWMutex

	tickets   map[uuid.UUID]tables.Ticket
	items     map[uuid.UUID]tables.TicketItem
	itemSeq   map[uuid.UUID]int64
	payments  []tables.Payment
	products  map[uuid.UUID]tables.Product
	customers map[uuid.UUID]tables.Customer
	operators map[uuid.UUID]tables.Operator
	seq       int64

	failMu   sync.Mutex
	failures map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickets:   make(map[uuid.UUID]tables.Ticket),
		items:     make(map[uuid.UUID]tables.TicketItem),
		itemSeq:   make(map[uuid.UUID]int64),
		products:  make(map[uuid.UUID]tables.Product),
		customers: make(map[uuid.UUID]tables.Customer),
		operators: make(map[uuid.UUID]tables.Operator),
		failures:  make(map[string]error),
	}
}

// FailNext makes the next call of op fail with err wrapped in a repository failure.
// op is the operation name used in errors, e.g. "update line item quantity".
func (s *MemoryStore) FailNext(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

func (s *MemoryStore) injected(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return comanda.NewRepositoryError(op, comanda.KindFailure, "", err)
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
