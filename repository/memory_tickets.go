package repository

import (
	"comandas_server/comanda"
	"comandas_server/structs/tables"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ticketWithItems must be called with the lock held.
func (s *MemoryStore) ticketWithItems(row tables.Ticket) tables.Ticket {
	row.CustomerID = copyUUID(row.CustomerID)
	if row.ClosedAt != nil {
		closed := *row.ClosedAt
		row.ClosedAt = &closed
	}
	row.Items = nil
	row.Payments = nil
	row.Customer = nil

	var ids []uuid.UUID
	for id, item := range s.items {
		if item.TicketID == row.ID {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return int(s.itemSeq[a] - s.itemSeq[b]) })
	for _, id := range ids {
		item := s.items[id]
		row.Items = append(row.Items, &item)
	}
	for _, p := range s.payments {
		if p.TicketID == row.ID {
			row.Payments = append(row.Payments, &p)
		}
	}
	if row.CustomerID != nil {
		if c, ok := s.customers[*row.CustomerID]; ok {
			c.Phone = copyString(c.Phone)
			row.Customer = &c
		}
	}
	return row
}

func (s *MemoryStore) ListOpenTickets(ctx context.Context) ([]comanda.Ticket, error) {
	if err := s.injected("list open tickets"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]comanda.Ticket, 0)
	for _, row := range s.tickets {
		if row.Status == string(comanda.StatusOpen) {
			full := s.ticketWithItems(row)
			out = append(out, full.ToComanda())
		}
	}
	slices.SortFunc(out, func(a, b comanda.Ticket) int { return a.Number - b.Number })
	return out, nil
}

func (s *MemoryStore) GetTicketByNumber(ctx context.Context, number int) (*comanda.Ticket, error) {
	if err := s.injected("get ticket by number"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.tickets {
		if row.Number == number && row.Status == string(comanda.StatusOpen) {
			full := s.ticketWithItems(row)
			t := full.ToComanda()
			return &t, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateTicket(ctx context.Context, number int, customerID *uuid.UUID) (*comanda.Ticket, error) {
	const op = "create ticket"
	if err := s.injected(op); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.tickets {
		if row.Number == number && row.Status == string(comanda.StatusOpen) {
			return nil, comanda.NewRepositoryError(op, comanda.KindConflict, "23505", fmt.Errorf("ticket number %d is open", number))
		}
	}
	if customerID != nil {
		if _, ok := s.customers[*customerID]; !ok {
			return nil, comanda.NewRepositoryError(op, comanda.KindConflict, "23503", fmt.Errorf("customer %s does not exist", customerID))
		}
	}

	row := tables.Ticket{
		ID:         uuid.New(),
		Number:     number,
		CustomerID: copyUUID(customerID),
		Status:     string(comanda.StatusOpen),
		OpenedAt:   time.Now().UTC(),
	}
	s.tickets[row.ID] = row

	full := s.ticketWithItems(row)
	t := full.ToComanda()
	return &t, nil
}

func (s *MemoryStore) AddLineItem(ctx context.Context, ticketID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*comanda.LineItem, error) {
	const op = "add line item"
	if err := s.injected(op); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, comanda.NewRepositoryError(op, comanda.KindFailure, "", comanda.ErrInvalidQuantity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, notFound(op, "ticket")
	}
	if ticket.Status != string(comanda.StatusOpen) {
		return nil, conflict(op, comanda.ErrTicketNotOpen)
	}
	product, ok := s.products[productID]
	if !ok {
		return nil, notFound(op, "product")
	}
	for _, item := range s.items {
		if item.TicketID == ticketID && item.ProductID == productID {
			return nil, comanda.NewRepositoryError(op, comanda.KindConflict, "23505", fmt.Errorf("product %s already on ticket", productID))
		}
	}

	s.seq++
	row := tables.TicketItem{
		ID:          uuid.New(),
		TicketID:    ticketID,
		ProductID:   productID,
		ProductName: product.Name,
		Category:    product.Category,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   time.Now().UTC(),
	}
	s.items[row.ID] = row
	s.itemSeq[row.ID] = s.seq

	li := row.ToComanda()
	return &li, nil
}

// openItem must be called with the lock held.
func (s *MemoryStore) openItem(op string, itemID uuid.UUID) (tables.TicketItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return item, notFound(op, "line item")
	}
	if t := s.tickets[item.TicketID]; t.Status != string(comanda.StatusOpen) {
		return item, conflict(op, comanda.ErrTicketNotOpen)
	}
	return item, nil
}

func (s *MemoryStore) UpdateLineItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	const op = "update line item quantity"
	if err := s.injected(op); err != nil {
		return err
	}
	if quantity < 1 {
		return comanda.NewRepositoryError(op, comanda.KindFailure, "", comanda.ErrInvalidQuantity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.openItem(op, itemID)
	if err != nil {
		return err
	}
	item.Quantity = quantity
	s.items[itemID] = item
	return nil
}

func (s *MemoryStore) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	const op = "delete line item"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.openItem(op, itemID); err != nil {
		return err
	}
	delete(s.items, itemID)
	delete(s.itemSeq, itemID)
	return nil
}

func (s *MemoryStore) CloseTicket(ctx context.Context, ticketID uuid.UUID, closedAt time.Time, payments []comanda.PaymentInput) error {
	const op = "close ticket"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.tickets[ticketID]
	if !ok || row.Status != string(comanda.StatusOpen) {
		return conflict(op, fmt.Errorf("ticket %s: %w", ticketID, comanda.ErrTicketNotOpen))
	}

	closed := closedAt.UTC()
	row.Status = string(comanda.StatusClosed)
	row.ClosedAt = &closed
	s.tickets[ticketID] = row

	for _, p := range payments {
		s.payments = append(s.payments, tables.Payment{
			ID:       uuid.New(),
			TicketID: ticketID,
			Method:   string(p.Method),
			Amount:   p.Amount,
			PaidAt:   closed,
		})
	}
	return nil
}

func (s *MemoryStore) AssignCustomer(ctx context.Context, ticketID uuid.UUID, customerID *uuid.UUID) error {
	const op = "assign customer"
	if err := s.injected(op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.tickets[ticketID]
	if !ok || row.Status != string(comanda.StatusOpen) {
		return notFound(op, "open ticket")
	}
	if customerID != nil {
		if _, ok := s.customers[*customerID]; !ok {
			return comanda.NewRepositoryError(op, comanda.KindConflict, "23503", fmt.Errorf("customer %s does not exist", customerID))
		}
	}
	row.CustomerID = copyUUID(customerID)
	s.tickets[ticketID] = row
	return nil
}

// ClosedTickets returns tickets closed within [from, to] with their customer, items and payments.
func (s *MemoryStore) ClosedTickets(ctx context.Context, from, to time.Time) ([]tables.Ticket, error) {
	if err := s.injected("list closed tickets"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tables.Ticket, 0)
	for _, row := range s.tickets {
		if row.Status != string(comanda.StatusClosed) || row.ClosedAt == nil {
			continue
		}
		if row.ClosedAt.Before(from) || row.ClosedAt.After(to) {
			continue
		}
		out = append(out, s.ticketWithItems(row))
	}
	slices.SortFunc(out, func(a, b tables.Ticket) int { return a.ClosedAt.Compare(*b.ClosedAt) })
	return out, nil
}
