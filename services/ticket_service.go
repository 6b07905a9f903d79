package services

import (
	"comandas_server/comanda"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketService struct {
	logger    *gecho.Logger
	machine   *comanda.Machine
	products  ProductStore
	customers CustomerStore
}

func NewTicketService(logger *gecho.Logger, cfg *structs.Config, repo comanda.Repository, products ProductStore, customers CustomerStore) *TicketService {
	opts := comanda.Options{Logger: logger}
	if cfg.Tickets != nil {
		opts.MaxNumber = cfg.Tickets.MaxNumber
		opts.WriteTimeout = cfg.Tickets.WriteTimeout
	}
	return &TicketService{
		logger:    logger,
		machine:   comanda.NewMachine(repo, opts),
		products:  products,
		customers: customers,
	}
}

func (ts *TicketService) MaxNumber() int {
	return ts.machine.MaxNumber()
}

// Open opens a ticket. The customer comes either from an id or from details, in which
// case a customer with the same phone is reused before a new one is created.
func (ts *TicketService) Open(ctx context.Context, req *structs.OpenTicketRequest) (comanda.Ticket, error) {
	customerID, err := ts.resolveCustomer(ctx, req.CustomerID, req.Customer)
	if err != nil {
		return comanda.Ticket{}, err
	}

	t, err := ts.machine.Open(ctx, req.Number, customerID)
	if err != nil {
		return comanda.Ticket{}, err
	}
	ticketsOpened.Inc()
	return t, nil
}

func (ts *TicketService) resolveCustomer(ctx context.Context, id *uuid.UUID, details *structs.CustomerDetails) (*uuid.UUID, error) {
	if id != nil {
		c, err := ts.customers.GetCustomer(ctx, *id)
		if err != nil {
			return nil, err
		}
		return &c.ID, nil
	}
	if details == nil {
		return nil, nil
	}

	phone := strings.TrimSpace(details.Phone)
	if phone != "" {
		existing, err := ts.customers.FindCustomerByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &existing.ID, nil
		}
	}

	c := &tables.Customer{
		ID:   uuid.New(),
		Name: strings.TrimSpace(details.Name),
	}
	if phone != "" {
		c.Phone = &phone
	}
	if err := ts.customers.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	ts.logger.Debug("Customer created for ticket", gecho.Field("customer_id", c.ID))
	return &c.ID, nil
}

func (ts *TicketService) Get(ctx context.Context, number int) (comanda.Ticket, error) {
	return ts.machine.Ticket(ctx, number)
}

// Reload drops the cached state of number and reads it again from the store.
func (ts *TicketService) Reload(ctx context.Context, number int) (comanda.Ticket, error) {
	return ts.machine.Reload(ctx, number)
}

func (ts *TicketService) ListOpen(ctx context.Context) ([]comanda.Ticket, error) {
	return ts.machine.OpenTickets(ctx)
}

// Board lists every number with its open ticket, if any.
func (ts *TicketService) Board(ctx context.Context) ([]structs.BoardSlot, error) {
	open, err := ts.machine.OpenTickets(ctx)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int]comanda.Ticket, len(open))
	for _, t := range open {
		byNumber[t.Number] = t
	}

	slots := make([]structs.BoardSlot, 0, ts.machine.MaxNumber())
	for n := 1; n <= ts.machine.MaxNumber(); n++ {
		slot := structs.BoardSlot{Number: n, Total: decimal.Zero}
		if t, ok := byNumber[n]; ok {
			id := t.ID
			slot.Open = true
			slot.TicketID = &id
			slot.Items = len(t.Items)
			slot.Total = t.Total()
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (ts *TicketService) AddItem(ctx context.Context, number int, productID uuid.UUID) (comanda.Ticket, error) {
	p, err := ts.products.GetProduct(ctx, productID)
	if err != nil {
		return comanda.Ticket{}, err
	}
	t, err := ts.machine.AddOrIncrementItem(ctx, number, p.ToComanda())
	return t, ts.observe("add item", err)
}

func (ts *TicketService) SetQuantity(ctx context.Context, number int, itemID uuid.UUID, quantity int) (comanda.Ticket, error) {
	t, err := ts.machine.SetItemQuantity(ctx, number, itemID, quantity)
	return t, ts.observe("update quantity", err)
}

func (ts *TicketService) RemoveItem(ctx context.Context, number int, itemID uuid.UUID) (comanda.Ticket, error) {
	t, err := ts.machine.RemoveItem(ctx, number, itemID)
	return t, ts.observe("remove item", err)
}

func (ts *TicketService) AssignCustomer(ctx context.Context, number int, customerID *uuid.UUID) (comanda.Ticket, error) {
	if customerID != nil {
		if _, err := ts.customers.GetCustomer(ctx, *customerID); err != nil {
			return comanda.Ticket{}, err
		}
	}
	t, err := ts.machine.AssignCustomer(ctx, number, customerID)
	return t, ts.observe("assign customer", err)
}

func (ts *TicketService) Close(ctx context.Context, number int, req *structs.CloseTicketRequest) (comanda.CloseResult, error) {
	method := comanda.PaymentMethod(req.Method)
	if !method.Valid() {
		return comanda.CloseResult{}, fmt.Errorf("%w: %q", comanda.ErrInvalidMethod, req.Method)
	}

	res, err := ts.machine.Close(ctx, number, method, req.Tendered)
	if err != nil {
		return comanda.CloseResult{}, err
	}
	ticketsClosed.WithLabelValues(string(method)).Inc()
	ticketRevenue.WithLabelValues(string(method)).Add(res.Settlement.Amount.InexactFloat64())
	return res, nil
}

func (ts *TicketService) observe(op string, err error) error {
	var reverted *comanda.RevertedError
	if errors.As(err, &reverted) {
		mutationsReverted.WithLabelValues(op).Inc()
	}
	return err
}
